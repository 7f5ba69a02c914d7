package users

import (
	"encoding/xml"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest is the authentication payload
type LoginRequest struct {
	XMLName  xml.Name `json:"-" xml:"login"`
	Email    string   `json:"email" xml:"email"`
	Password string   `json:"password" xml:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
			validation.Length(0, 120),
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.By(ValidatePasswordPolicy),
		),
	)
}

// AuthResponse is the login response body; the same token also travels in
// the Authorization response header
type AuthResponse struct {
	XMLName xml.Name `json:"-" xml:"authentication"`
	UserID  string   `json:"userId" xml:"userId"`
	Token   string   `json:"token" xml:"token"`
}

// CreateUserRequest is the registration payload
type CreateUserRequest struct {
	XMLName   xml.Name         `json:"-" xml:"user"`
	FirstName string           `json:"first_name" xml:"first_name"`
	LastName  string           `json:"last_name" xml:"last_name"`
	Email     string           `json:"email" xml:"email"`
	Phone     string           `json:"phone_number" xml:"phone_number"`
	Password  string           `json:"password" xml:"password"`
	Addresses []AddressRequest `json:"addresses" xml:"addresses>address"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(0, 120)),
		validation.Field(&r.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&r.Password, validation.Required, validation.By(ValidatePasswordPolicy)),
		validation.Field(&r.Addresses, validation.Required),
	)
}

// Message maps the payload into the account service's input
func (r CreateUserRequest) Message() RegisterAccountMessage {
	msg := RegisterAccountMessage{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
	}
	for _, addr := range r.Addresses {
		msg.Addresses = append(msg.Addresses, AddressMessage{
			StreetName: addr.StreetName,
			City:       addr.City,
			Country:    addr.Country,
			PostalCode: addr.PostalCode,
			Type:       addr.Type,
		})
	}
	return msg
}

// AddressRequest is one address of a registration payload
type AddressRequest struct {
	XMLName    xml.Name `json:"-" xml:"address"`
	StreetName string   `json:"street_name" xml:"street_name"`
	City       string   `json:"city" xml:"city"`
	Country    string   `json:"country" xml:"country"`
	PostalCode string   `json:"postal_code" xml:"postal_code"`
	Type       string   `json:"type" xml:"type"`
}

func (r AddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StreetName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.City, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Country, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.PostalCode, validation.Required, validation.Length(3, 10)),
		validation.Field(
			&r.Type,
			validation.Required,
			validation.In(AddressShipping, AddressBilling),
		),
	)
}

// UpdateUserRequest carries the mutable profile fields
type UpdateUserRequest struct {
	XMLName   xml.Name `json:"-" xml:"user"`
	FirstName string   `json:"first_name" xml:"first_name"`
	LastName  string   `json:"last_name" xml:"last_name"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
	)
}

// UserResponse is the outward view of an account; the password hash and the
// row uuid never serialize
type UserResponse struct {
	XMLName   xml.Name          `json:"-" xml:"user"`
	UserID    string            `json:"user_id" xml:"user_id"`
	FirstName string            `json:"first_name" xml:"first_name"`
	LastName  string            `json:"last_name" xml:"last_name"`
	Email     string            `json:"email" xml:"email"`
	Phone     string            `json:"phone_number,omitempty" xml:"phone_number,omitempty"`
	Addresses []AddressResponse `json:"addresses,omitempty" xml:"addresses>address,omitempty"`
}

// AddressResponse is the outward view of an address
type AddressResponse struct {
	XMLName    xml.Name `json:"-" xml:"address"`
	AddressID  string   `json:"address_id" xml:"address_id"`
	StreetName string   `json:"street_name" xml:"street_name"`
	City       string   `json:"city" xml:"city"`
	Country    string   `json:"country" xml:"country"`
	PostalCode string   `json:"postal_code" xml:"postal_code"`
	Type       string   `json:"type" xml:"type"`
}

// UserListResponse is one page of accounts
type UserListResponse struct {
	XMLName xml.Name       `json:"-" xml:"users"`
	Page    int            `json:"page" xml:"page"`
	Limit   int            `json:"limit" xml:"limit"`
	Total   int            `json:"total" xml:"total"`
	Items   []UserResponse `json:"items" xml:"items>user"`
}

// NewUserResponse maps a record to its outward view
func NewUserResponse(u *User) UserResponse {
	resp := UserResponse{
		UserID:    u.PublicID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
	for _, addr := range u.Addresses {
		resp.Addresses = append(resp.Addresses, AddressResponse{
			AddressID:  addr.PublicID,
			StreetName: addr.StreetName,
			City:       addr.City,
			Country:    addr.Country,
			PostalCode: addr.PostalCode,
			Type:       addr.Type,
		})
	}
	return resp
}

// APIError is the error response body
type APIError struct {
	XMLName   xml.Name `json:"-" xml:"error"`
	Status    int      `json:"status" xml:"status"`
	Error     string   `json:"error" xml:"error"`
	Message   string   `json:"message" xml:"message"`
	Path      string   `json:"path" xml:"path"`
	Timestamp string   `json:"timestamp" xml:"timestamp"`
}

// NewAPIError stamps an error body for the given status and request path
func NewAPIError(status int, errorText, message, path string) APIError {
	return APIError{
		Status:    status,
		Error:     errorText,
		Message:   message,
		Path:      path,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}
}
