package jobboard

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager bundles the three record collections behind one
// transactional boundary.
type RepositoryManager interface {
	Users() Users
	Jobs() Jobs
	Applications() Applications
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
}

type mngr struct {
	db           *bun.DB
	users        Users
	jobs         Jobs
	applications Applications
}

// NewRepositoryManager wires the collections over one DB handle. The
// config's default page size governs listings whose callers do not set one;
// a nil config keeps the package defaults.
func NewRepositoryManager(db *bun.DB, opts Config) RepositoryManager {
	pageSize := DefaultPageSize
	if opts != nil {
		pageSize = opts.GetDefaultPageSize()
	}

	return &mngr{
		db:           db,
		users:        NewUsersRepository(db),
		jobs:         NewJobsRepository(db, pageSize),
		applications: NewApplicationsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized", errors.CategoryInternal)
	}

	if m.jobs == nil {
		return errors.New("repository jobs should be initialized", errors.CategoryInternal)
	}

	if m.applications == nil {
		return errors.New("repository applications should be initialized", errors.CategoryInternal)
	}

	return nil
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Jobs() Jobs {
	return m.jobs
}

func (m mngr) Applications() Applications {
	return m.applications
}

// isUniqueViolation detects a storage-level uniqueness failure. Matching on
// the driver message keeps the same conflict taxonomy whether the duplicate
// was caught by a pre-check or by the constraint under a concurrent race.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE=23505")
}
