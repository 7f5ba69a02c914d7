package users

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is the fiber locals key the bearer middleware stores the
// principal under
const DefaultContextKey = "user"

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// PrincipalFromRequest finds the authenticated user the bearer middleware
// attached to the request, if any.
func PrincipalFromRequest(c *fiber.Ctx, key ...string) (*User, bool) {
	k := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}

	raw := c.Locals(k)
	if raw == nil {
		return nil, false
	}

	user, ok := raw.(*User)
	return user, ok
}
