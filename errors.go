package users

import (
	"github.com/goliatone/go-errors"
)

// Text codes carried by outward-facing errors. Response messages come from
// the catalog keyed by these, never from the internal error text.
const (
	TextCodeValidation   = "VALIDATION_ERROR"
	TextCodeUnauthorized = "UNAUTHORIZED"
	TextCodeInvalidToken = "INVALID_TOKEN"
	TextCodeUserNotFound = "USER_NOT_FOUND"
	TextCodeEmailTaken   = "EMAIL_ALREADY_EXISTS"
	TextCodeInternal     = "INTERNAL_ERROR"
)

// ErrNoEmptyString rejects empty cleartext passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeValidation)

// ErrMismatchedHashAndPassword is the bcrypt comparison failure
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeUnauthorized)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password so login failures are indistinguishable to the caller
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeUnauthorized)

// ErrInvalidToken is the single verification failure: malformed, expired,
// wrong algorithm, and bad signature all collapse into it
var ErrInvalidToken = errors.New("invalid or expired token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidToken)

// ErrUnauthenticated rejects requests that reached a protected handler
// without a principal attached by the bearer middleware
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeUnauthorized)

// ErrUserNotFound is returned when a public identifier resolves to nothing
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrEmailAlreadyExists guards the unique email constraint at registration
var ErrEmailAlreadyExists = errors.New("email already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeEmailTaken)

var messageCatalog = map[string]string{
	TextCodeValidation:   "request validation failed",
	TextCodeUnauthorized: "invalid email or password",
	TextCodeInvalidToken: "invalid or expired token",
	TextCodeUserNotFound: "user not found",
	TextCodeEmailTaken:   "email address already in use",
	TextCodeInternal:     "internal server error",
}

// MessageForTextCode resolves the outward message for a text code. Unknown
// codes fall back to the internal message so nothing leaks by accident.
func MessageForTextCode(code string) string {
	if msg, ok := messageCatalog[code]; ok {
		return msg
	}
	return messageCatalog[TextCodeInternal]
}

// AsRichError normalizes any error into a tagged error; unknown errors are
// wrapped as internal so their text never reaches a response body.
func AsRichError(err error) *errors.Error {
	var rich *errors.Error
	if errors.As(err, &rich) {
		if rich.Code == 0 {
			rich = rich.WithCode(errors.CodeInternal)
		}
		if rich.TextCode == "" {
			rich = rich.WithTextCode(TextCodeInternal)
		}
		return rich
	}
	return errors.Wrap(err, errors.CategoryInternal, "internal error").
		WithCode(errors.CodeInternal).
		WithTextCode(TextCodeInternal)
}
