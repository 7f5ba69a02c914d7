package users

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the structured view of a verified token
type AuthClaims interface {
	Subject() string
	UserID() string
	Expires() time.Time
	IssuedAt() time.Time
}

// AccessClaims is the concrete implementation of AuthClaims: the registered
// claims plus the userId claim carrying the account's public identifier.
type AccessClaims struct {
	jwt.RegisteredClaims
	UID string `json:"userId,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*AccessClaims)(nil)

// Subject returns the subject claim, the login identifier
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the public identifier carried by the userId claim
func (c *AccessClaims) UserID() string {
	return c.UID
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issue time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
