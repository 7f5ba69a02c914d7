package users

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Pagination bounds for listing
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetByPublicID(ctx context.Context, publicID string) (*User, error)
	GetByPublicIDTx(ctx context.Context, tx bun.IDB, publicID string) (*User, error)

	DeleteByPublicID(ctx context.Context, publicID string) error
	ListPage(ctx context.Context, page, limit int) ([]*User, int, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

// RegisterTx persists a new user and its addresses in the given transaction
func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)

	created, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	if len(user.Addresses) > 0 {
		for _, addr := range user.Addresses {
			prepareAddressDefaults(created, addr)
		}
		if _, err := tx.NewInsert().Model(&user.Addresses).Exec(ctx); err != nil {
			return nil, err
		}
		created.Addresses = user.Addresses
	}

	return created, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	return a.getByColumnTx(ctx, tx, "email", email)
}

func (a *users) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	return a.GetByPublicIDTx(ctx, a.db, publicID)
}

func (a *users) GetByPublicIDTx(ctx context.Context, tx bun.IDB, publicID string) (*User, error) {
	return a.getByColumnTx(ctx, tx, "user_id", publicID)
}

func (a *users) getByColumnTx(ctx context.Context, tx bun.IDB, column, value string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("Addresses").
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					column: value,
				})
		}
		return nil, err
	}

	return record, nil
}

// DeleteByPublicID soft deletes the record; bun rewrites the delete into an
// update of deleted_at because of the soft_delete tag.
func (a *users) DeleteByPublicID(ctx context.Context, publicID string) error {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.user_id = ?", publicID).
		Exec(ctx)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"user_id": publicID,
			})
	}

	return nil
}

// ListPage returns one page of users ordered by creation time plus the
// total count. Page is 1-based; limit defaults to 25 and caps at 100. Named
// apart from the embedded repository's criteria-based List.
func (a *users) ListPage(ctx context.Context, page, limit int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	var records []*User
	total, err := a.db.NewSelect().
		Model(&records).
		Relation("Addresses").
		OrderExpr("?TableAlias.created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func prepareUserDefaults(user *User) {
	if user == nil {
		return
	}
	if user.ID == uuid.Nil {
		user.ID = newAccountID(user.Email)
	}
	if user.PublicID == "" {
		user.PublicID = NewPublicID(PublicIDLength)
	}
}

func prepareAddressDefaults(owner *User, addr *Address) {
	if addr == nil {
		return
	}
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	if addr.PublicID == "" {
		addr.PublicID = NewPublicID(PublicIDLength)
	}
	addr.UserID = owner.ID
}
