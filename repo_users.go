package jobboard

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the account record collection.
type Users interface {
	Register(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*User, error)
	// DeleteCascadeTx removes the user plus every job they own and every
	// application they filed or received. Destructive; callers wrap it in a
	// transaction via RepositoryManager.RunInTx.
	DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

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
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// Register inserts a new account, translating the unique email constraint
// into the conflict error so racing registrations and pre-checked ones look
// the same to callers.
func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	prepareUserDefaults(user)

	created, err := a.Repository.CreateTx(ctx, a.db, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to register user")
	}

	return created, nil
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
			return nil, NewNotFound("user")
		}
		return nil, err
	}
	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("LOWER(?TableAlias.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
			return nil, NewNotFound("user")
		}
		return nil, err
	}
	return record, nil
}

// UpdateProfile merges only the provided fields into the stored record and
// refreshes updated_at.
func (a *users) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*User, error) {
	user, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.applyTo(user)
	now := time.Now()
	user.UpdatedAt = &now

	if _, err := a.db.NewUpdate().Model(user).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update profile")
	}

	return user, nil
}

func (a *users) DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	// Applications the user filed.
	if _, err := tx.NewDelete().
		Model((*Application)(nil)).
		Where("applicant_id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user's applications")
	}

	// Applications received by jobs the user owns.
	if _, err := tx.NewDelete().
		Model((*Application)(nil)).
		Where("job_id IN (SELECT id FROM jobs WHERE employer_id = ?)", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete applications for user's jobs")
	}

	if _, err := tx.NewDelete().
		Model((*Job)(nil)).
		Where("employer_id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user's jobs")
	}

	res, err := tx.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewNotFound("user")
	}

	return nil
}

func prepareUserDefaults(user *User) {
	if user == nil {
		return
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	now := time.Now()
	if user.CreatedAt == nil {
		user.CreatedAt = &now
	}
	if user.UpdatedAt == nil {
		user.UpdatedAt = &now
	}
}
