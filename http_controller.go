package users

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// UserController exposes account CRUD over HTTP
type UserController struct {
	accounts Accounts
	logger   Logger
	Debug    bool
}

// NewUserController will create a new UserController
func NewUserController(accounts Accounts) *UserController {
	return &UserController{
		accounts: accounts,
		logger:   defLogger{},
	}
}

func (a *UserController) WithLogger(l Logger) *UserController {
	if l != nil {
		a.logger = l
	}
	return a
}

// Create handles POST /users: public registration
func (a *UserController) Create(c *fiber.Ctx) error {
	payload := CreateUserRequest{}
	if err := DecodeBody(c, &payload); err != nil {
		return WriteError(c, a.logger, err)
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, a.logger, errors.Wrap(err, errors.CategoryValidation, "registration payload failed validation").
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeValidation))
	}

	user, err := a.accounts.Register(c.UserContext(), payload.Message())
	if err != nil {
		return WriteError(c, a.logger, err)
	}

	return Respond(c, fiber.StatusCreated, NewUserResponse(user))
}

// Index handles GET /users: paginated listing, protected
func (a *UserController) Index(c *fiber.Ctx) error {
	if _, ok := PrincipalFromRequest(c); !ok {
		return WriteError(c, a.logger, ErrUnauthenticated)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", DefaultPageSize)

	records, total, err := a.accounts.List(c.UserContext(), page, limit)
	if err != nil {
		return WriteError(c, a.logger, err)
	}

	resp := UserListResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Items: make([]UserResponse, 0, len(records)),
	}
	for _, user := range records {
		resp.Items = append(resp.Items, NewUserResponse(user))
	}

	return Respond(c, fiber.StatusOK, resp)
}

// Show handles GET /users/:userId, protected
func (a *UserController) Show(c *fiber.Ctx) error {
	if _, ok := PrincipalFromRequest(c); !ok {
		return WriteError(c, a.logger, ErrUnauthenticated)
	}

	user, err := a.accounts.GetByPublicID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return WriteError(c, a.logger, err)
	}

	return Respond(c, fiber.StatusOK, NewUserResponse(user))
}

// Update handles PUT /users/:userId, protected. Only first and last name
// are mutable.
func (a *UserController) Update(c *fiber.Ctx) error {
	if _, ok := PrincipalFromRequest(c); !ok {
		return WriteError(c, a.logger, ErrUnauthenticated)
	}

	payload := UpdateUserRequest{}
	if err := DecodeBody(c, &payload); err != nil {
		return WriteError(c, a.logger, err)
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, a.logger, errors.Wrap(err, errors.CategoryValidation, "update payload failed validation").
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeValidation))
	}

	user, err := a.accounts.Update(c.UserContext(), c.Params("userId"), UpdateAccountMessage{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		return WriteError(c, a.logger, err)
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(user))
	}

	return Respond(c, fiber.StatusOK, NewUserResponse(user))
}

// Delete handles DELETE /users/:userId, protected
func (a *UserController) Delete(c *fiber.Ctx) error {
	if _, ok := PrincipalFromRequest(c); !ok {
		return WriteError(c, a.logger, ErrUnauthenticated)
	}

	if err := a.accounts.Delete(c.UserContext(), c.Params("userId")); err != nil {
		return WriteError(c, a.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
