package users

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Accounts is the account CRUD surface the HTTP layer talks to
type Accounts interface {
	Register(ctx context.Context, msg RegisterAccountMessage) (*User, error)
	GetByPublicID(ctx context.Context, publicID string) (*User, error)
	Update(ctx context.Context, publicID string, msg UpdateAccountMessage) (*User, error)
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context, page, limit int) ([]*User, int, error)
}

// RegisterAccountMessage carries a validated registration request
type RegisterAccountMessage struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Addresses []AddressMessage
}

// AddressMessage carries one address of a registration request
type AddressMessage struct {
	StreetName string
	City       string
	Country    string
	PostalCode string
	Type       AddressType
}

// UpdateAccountMessage carries the mutable profile fields
type UpdateAccountMessage struct {
	FirstName string
	LastName  string
}

// AccountService implements account CRUD over the repositories
type AccountService struct {
	repo   RepositoryManager
	logger Logger
}

var _ Accounts = (*AccountService)(nil)

// NewAccountService will create a new AccountService
func NewAccountService(repo RepositoryManager) *AccountService {
	return &AccountService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *AccountService) WithLogger(l Logger) *AccountService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Register creates the account and its addresses in one transaction. A
// duplicate email aborts with ErrEmailAlreadyExists before anything is
// written.
func (s *AccountService) Register(ctx context.Context, msg RegisterAccountMessage) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user := &User{}

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Users().GetByEmailTx(ctx, tx, msg.Email); err == nil {
			return ErrEmailAlreadyExists
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
		}

		hash, err := HashPassword(msg.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.FirstName = msg.FirstName
		user.LastName = msg.LastName
		user.Email = msg.Email
		user.Phone = msg.Phone
		user.PasswordHash = hash

		for _, addr := range msg.Addresses {
			user.Addresses = append(user.Addresses, &Address{
				StreetName: addr.StreetName,
				City:       addr.City,
				Country:    addr.Country,
				PostalCode: addr.PostalCode,
				Type:       addr.Type,
			})
		}

		if user, err = s.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user").
				WithCode(goerrors.CodeConflict).
				WithTextCode(TextCodeEmailTaken)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("failed to register account: %v", err)
		return nil, err
	}

	s.logger.Info("registered account %s", user.PublicID)

	return user, nil
}

// GetByPublicID fetches one account with its addresses
func (s *AccountService) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	user, err := s.repo.Users().GetByPublicID(ctx, publicID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account")
	}
	return user, nil
}

// Update changes the mutable profile fields, first and last name only
func (s *AccountService) Update(ctx context.Context, publicID string, msg UpdateAccountMessage) (*User, error) {
	user, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	record := &User{
		ID:        user.ID,
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
	}

	if _, err := s.repo.Users().Update(ctx, record, repository.UpdateByID(user.ID.String())); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update account")
	}

	return s.GetByPublicID(ctx, publicID)
}

// Delete soft deletes the account
func (s *AccountService) Delete(ctx context.Context, publicID string) error {
	if err := s.repo.Users().DeleteByPublicID(ctx, publicID); err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrUserNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete account")
	}

	s.logger.Info("deleted account %s", publicID)

	return nil
}

// List returns one page of accounts and the total count
func (s *AccountService) List(ctx context.Context, page, limit int) ([]*User, int, error) {
	records, total, err := s.repo.Users().ListPage(ctx, page, limit)
	if err != nil {
		return nil, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list accounts")
	}
	return records, total, nil
}
