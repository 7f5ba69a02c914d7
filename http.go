package users

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-users/middleware/jwtware"
)

// AuthController exposes the authentication gate
type AuthController struct {
	auther Authenticator
	logger Logger
	Debug  bool
}

// NewAuthController will create a new AuthController
func NewAuthController(auther Authenticator) *AuthController {
	return &AuthController{
		auther: auther,
		logger: defLogger{},
	}
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	if l != nil {
		a.logger = l
	}
	return a
}

// Login handles POST /login: decode, validate, verify, issue. A successful
// login answers 200 with the token both in the body and in the
// Authorization response header; every credential failure answers 401 with
// the same message and no header.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := DecodeBody(c, &payload); err != nil {
		return WriteError(c, a.logger, err)
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, a.logger, errors.Wrap(err, errors.CategoryValidation, "login payload failed validation").
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeValidation))
	}

	token, identity, err := a.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return WriteError(c, a.logger, err)
	}

	c.Set(fiber.HeaderAuthorization, jwtware.DefaultAuthScheme+" "+token)

	return Respond(c, fiber.StatusOK, AuthResponse{
		UserID: identity.ID(),
		Token:  token,
	})
}

// Protect builds the bearer authorization middleware wired to the token
// service and the users repository. A vanished account surfaces as
// ErrUserNotFound, not as an invalid token.
func Protect(tokens TokenService, store UserStore, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return jwtware.New(jwtware.Config{
		ContextKey: DefaultContextKey,
		Validator: func(raw string) (string, error) {
			claims, err := tokens.Validate(raw)
			if err != nil {
				return "", err
			}
			return claims.UserID(), nil
		},
		Resolver: func(ctx context.Context, publicID string) (any, error) {
			user, err := store.GetByPublicID(ctx, publicID)
			if err != nil {
				if repository.IsRecordNotFound(err) || errors.IsNotFound(err) {
					return nil, ErrUserNotFound
				}
				return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve token principal")
			}
			return user, nil
		},
		ContextEnricher: func(ctx context.Context, principal any) context.Context {
			if user, ok := principal.(*User); ok {
				return WithContext(ctx, user)
			}
			return ctx
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return WriteError(c, logger, err)
		},
	})
}

// RegisterRoutes mounts the API. The bearer gate runs ahead of every route,
// mirroring a filter chain: public endpoints simply tolerate an anonymous
// request, protected handlers reject one.
func RegisterRoutes(app *fiber.App, auth *AuthController, users *UserController, protect fiber.Handler) {
	v1 := app.Group("/api/v1")
	v1.Use(protect)

	v1.Post("/login", auth.Login)

	v1.Post("/users", users.Create)
	v1.Get("/users", users.Index)
	v1.Get("/users/:userId", users.Show)
	v1.Put("/users/:userId", users.Update)
	v1.Delete("/users/:userId", users.Delete)
}

// WriteError maps an error to the response body. The outward message comes
// from the catalog keyed by the error's text code; the internal error text
// is logged and never serialized.
func WriteError(c *fiber.Ctx, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	rich := AsRichError(err)

	status := rich.Code
	if status < fiber.StatusBadRequest || status > 599 {
		status = fiber.StatusInternalServerError
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed: %s %s: %v", c.Method(), c.Path(), err)
	} else {
		logger.Debug("request rejected: %s %s: %v", c.Method(), c.Path(), err)
	}

	body := NewAPIError(
		status,
		statusText(status),
		MessageForTextCode(rich.TextCode),
		c.Path(),
	)

	return Respond(c, status, body)
}

func statusText(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}
