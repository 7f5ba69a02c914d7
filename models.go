package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AddressType tags an address record
type AddressType = string

const (
	// AddressShipping is a shipping address
	AddressShipping AddressType = "SHIPPING"
	// AddressBilling is a billing address
	AddressBilling AddressType = "BILLING"
)

// User is the user model. The uuid primary key never leaves the service;
// PublicID is the identifier the outside world sees and the one the token's
// userId claim carries.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PublicID      string     `bun:"user_id,notnull,unique" json:"user_id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	EmailVerified bool       `bun:"is_email_verified" json:"is_email_verified,omitempty"`
	Addresses     []*Address `bun:"rel:has-many,join:id=user_id" json:"addresses,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identity adapts the record to the token-facing view of an account
func (u *User) Identity() Identity {
	return accountIdentity{
		id:    u.PublicID,
		email: u.Email,
	}
}

// Address is an address attached to a user record
type Address struct {
	bun.BaseModel `bun:"table:addresses,alias:addr"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PublicID      string      `bun:"address_id,notnull,unique" json:"address_id,omitempty"`
	UserID        uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	StreetName    string      `bun:"street_name,notnull" json:"street_name,omitempty"`
	City          string      `bun:"city,notnull" json:"city,omitempty"`
	Country       string      `bun:"country,notnull" json:"country,omitempty"`
	PostalCode    string      `bun:"postal_code,notnull" json:"postal_code,omitempty"`
	Type          AddressType `bun:"type,notnull" json:"type,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

type accountIdentity struct {
	id    string
	email string
}

func (a accountIdentity) ID() string {
	return a.id
}

func (a accountIdentity) Email() string {
	return a.email
}

var _ Identity = accountIdentity{}
