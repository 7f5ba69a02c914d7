package users_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers overrides the repository methods the account service touches;
// the embedded interface covers the rest of the repository surface.
type MockUsers struct {
	mock.Mock
	users.Users
}

func (m *MockUsers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*users.User, error) {
	args := m.Called(ctx, tx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *users.User) (*users.User, error) {
	args := m.Called(ctx, tx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUsers) GetByPublicID(ctx context.Context, publicID string) (*users.User, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, record *users.User, criteria ...repository.UpdateCriteria) (*users.User, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUsers) DeleteByPublicID(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

func (m *MockUsers) ListPage(ctx context.Context, page, limit int) ([]*users.User, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*users.User), args.Int(1), args.Error(2)
}

// MockRepositoryManager runs transaction bodies inline
type MockRepositoryManager struct {
	usersRepo users.Users
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() users.Users { return m.usersRepo }

func registrationMessage() users.RegisterAccountMessage {
	return users.RegisterAccountMessage{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "Passw0rd!",
		Addresses: []users.AddressMessage{
			{
				StreetName: "12 Analytical Way",
				City:       "London",
				Country:    "GB",
				PostalCode: "EC1A1",
				Type:       users.AddressShipping,
			},
		},
	}
}

func TestAccountService_Register(t *testing.T) {
	t.Run("hashes the password and persists user with addresses", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("GetByEmailTx", mock.Anything, mock.Anything, "ada@example.com").
			Return(nil, repository.NewRecordNotFound())

		var persisted *users.User
		repo.On("RegisterTx", mock.Anything, mock.Anything, mock.AnythingOfType("*users.User")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*users.User)
				persisted.PublicID = "new-public-id"
			}).
			Return(&users.User{PublicID: "new-public-id", Email: "ada@example.com"}, nil)

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		created, err := svc.Register(context.Background(), registrationMessage())

		assert.NoError(t, err)
		assert.Equal(t, "new-public-id", created.PublicID)

		assert.NotNil(t, persisted)
		assert.NotEqual(t, "Passw0rd!", persisted.PasswordHash)
		assert.NoError(t, users.ComparePasswordAndHash("Passw0rd!", persisted.PasswordHash))
		assert.Len(t, persisted.Addresses, 1)
		assert.Equal(t, users.AddressShipping, persisted.Addresses[0].Type)
	})

	t.Run("insert failure surfaces as a conflict", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("GetByEmailTx", mock.Anything, mock.Anything, "ada@example.com").
			Return(nil, repository.NewRecordNotFound())
		repo.On("RegisterTx", mock.Anything, mock.Anything, mock.AnythingOfType("*users.User")).
			Return(nil, errors.New("UNIQUE constraint failed: users.email"))

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		_, err := svc.Register(context.Background(), registrationMessage())

		var richErr *goerrors.Error
		assert.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CodeConflict, richErr.Code)
		assert.Equal(t, users.TextCodeEmailTaken, richErr.TextCode)
	})

	t.Run("duplicate email aborts before anything is written", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("GetByEmailTx", mock.Anything, mock.Anything, "ada@example.com").
			Return(&users.User{Email: "ada@example.com"}, nil)

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		_, err := svc.Register(context.Background(), registrationMessage())

		assert.ErrorIs(t, err, users.ErrEmailAlreadyExists)
		repo.AssertNotCalled(t, "RegisterTx", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountService_GetByPublicID(t *testing.T) {
	t.Run("maps a missing record to ErrUserNotFound", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("GetByPublicID", mock.Anything, "missing").
			Return(nil, repository.NewRecordNotFound())

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		_, err := svc.GetByPublicID(context.Background(), "missing")

		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})
}

func TestAccountService_Update(t *testing.T) {
	t.Run("only names change", func(t *testing.T) {
		stored := &users.User{PublicID: "pub-id-123", FirstName: "Ada", LastName: "Lovelace"}

		repo := &MockUsers{}
		repo.On("GetByPublicID", mock.Anything, "pub-id-123").Return(stored, nil)

		var updated *users.User
		repo.On("Update", mock.Anything, mock.AnythingOfType("*users.User")).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*users.User)
			}).
			Return(stored, nil)

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		_, err := svc.Update(context.Background(), "pub-id-123", users.UpdateAccountMessage{
			FirstName: "Ada",
			LastName:  "Byron",
		})

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, "Byron", updated.LastName)
		assert.Empty(t, updated.Email)
		assert.Empty(t, updated.PasswordHash)
	})
}

func TestAccountService_Delete(t *testing.T) {
	t.Run("maps a missing record to ErrUserNotFound", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("DeleteByPublicID", mock.Anything, "missing").
			Return(repository.NewRecordNotFound())

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		err := svc.Delete(context.Background(), "missing")

		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("deletes an existing record", func(t *testing.T) {
		repo := &MockUsers{}
		repo.On("DeleteByPublicID", mock.Anything, "pub-id-123").Return(nil)

		svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

		assert.NoError(t, svc.Delete(context.Background(), "pub-id-123"))
	})
}

func TestAccountService_List(t *testing.T) {
	repo := &MockUsers{}
	repo.On("ListPage", mock.Anything, 1, 25).
		Return([]*users.User{{PublicID: "a"}}, 1, nil)

	svc := users.NewAccountService(&MockRepositoryManager{usersRepo: repo})

	records, total, err := svc.List(context.Background(), 1, 25)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, records, 1)
}
