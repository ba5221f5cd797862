package jobboard

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CreateSchema creates the three record collections with their foreign keys
// and unique constraints. The composite unique index on
// (job_id, applicant_id) is what makes concurrent duplicate applications
// impossible; the engine's pre-check only exists to fail fast.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Job)(nil),
		(*Application)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create table")
		}
	}

	indexes := []*bun.CreateIndexQuery{
		db.NewCreateIndex().
			Model((*Job)(nil)).
			Index("ix_jobs_employer_id").
			Column("employer_id").
			IfNotExists(),
		db.NewCreateIndex().
			Model((*Application)(nil)).
			Index("ix_applications_job_id").
			Column("job_id").
			IfNotExists(),
		db.NewCreateIndex().
			Model((*Application)(nil)).
			Index("ix_applications_applicant_id").
			Column("applicant_id").
			IfNotExists(),
	}

	for _, idx := range indexes {
		if _, err := idx.Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create index")
		}
	}

	return nil
}
