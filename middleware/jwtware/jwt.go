// Package jwtware guards fiber routes with bearer-token authorization.
//
// The middleware is permissive: requests without an Authorization header, or
// with one that does not use the configured scheme, pass through untouched
// and the handler decides whether an anonymous request is acceptable. Only a
// present bearer token is verified and resolved to a principal.
package jwtware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is where the resolved principal lands in fiber locals
const DefaultContextKey = "user"

// DefaultAuthScheme is the Authorization header scheme
const DefaultAuthScheme = "Bearer"

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool

	// Validator verifies the raw token and returns the identifier carried by
	// its userId claim. Required.
	Validator func(token string) (string, error)

	// Resolver turns the validated identifier into a principal. Required.
	// Errors pass to ErrorHandler untouched, so a resolver may distinguish a
	// vanished account from an invalid token.
	Resolver func(ctx context.Context, publicID string) (any, error)

	// ContextEnricher propagates the principal into the standard context. If
	// set it runs after the principal is stored in locals.
	ContextEnricher func(ctx context.Context, principal any) context.Context

	// ErrorHandler maps validation and resolution failures to a response
	ErrorHandler func(c *fiber.Ctx, err error) error

	ContextKey string
	AuthScheme string
}

// New creates the bearer authorization middleware
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, ok := ExtractToken(c.Get(fiber.HeaderAuthorization), cfg.AuthScheme)
		if !ok {
			// no bearer token: stay anonymous
			return c.Next()
		}

		publicID, err := cfg.Validator(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		principal, err := cfg.Resolver(c.UserContext(), publicID)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, principal)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), principal))
		}

		return c.Next()
	}
}

// GetDefaultConfig fills in the optional fields and panics on a config that
// could never authorize a request
func GetDefaultConfig(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("jwtware: Validator is required")
	}
	if cfg.Resolver == nil {
		panic("jwtware: Resolver is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

// ExtractToken strips the auth scheme from an Authorization header value.
// The second return is false when the header is absent or carries a
// different scheme.
func ExtractToken(header, scheme string) (string, bool) {
	if header == "" {
		return "", false
	}

	prefix := scheme + " "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	return strings.TrimSpace(header[len(prefix):]), true
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  fiber.StatusUnauthorized,
		"error":   "Unauthorized",
		"message": "invalid or expired token",
	})
}
