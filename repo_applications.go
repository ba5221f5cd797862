package jobboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Applications is the application record collection.
type Applications interface {
	// Create inserts a new application. The storage-level unique
	// (job_id, applicant_id) constraint is the authority on duplicates; a
	// violation surfaces as the same conflict error the engine's pre-check
	// produces, so concurrent racing creates resolve to exactly one row.
	Create(ctx context.Context, app *Application) (*Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	GetOwned(ctx context.Context, id, applicantID uuid.UUID) (*Application, error)
	ExistsForPair(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	Save(ctx context.Context, app *Application) (*Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error)
	// ListByJobIDs filters by membership in the caller-resolved job id set.
	// Employers list through their own job ids, never through a join that
	// could pull another tenant's rows.
	ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]*Application, error)
}

type applications struct {
	db *bun.DB
}

var _ Applications = (*applications)(nil)

func NewApplicationsRepository(db *bun.DB) Applications {
	return &applications{db: db}
}

func (r *applications) Create(ctx context.Context, app *Application) (*Application, error) {
	prepareApplicationDefaults(app)

	if _, err := r.db.NewInsert().Model(app).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create application")
	}

	return app, nil
}

func (r *applications) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	record := &Application{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Job").
		Relation("Applicant").
		Where("app.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("application")
		}
		return nil, err
	}
	return record, nil
}

func (r *applications) GetOwned(ctx context.Context, id, applicantID uuid.UUID) (*Application, error) {
	record := &Application{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Job").
		Where("app.id = ? AND app.applicant_id = ?", id, applicantID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("application")
		}
		return nil, err
	}
	return record, nil
}

func (r *applications) ExistsForPair(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*Application)(nil)).
		Where("app.job_id = ? AND app.applicant_id = ?", jobID, applicantID).
		Exists(ctx)
}

func (r *applications) Save(ctx context.Context, app *Application) (*Application, error) {
	now := time.Now()
	app.UpdatedAt = &now

	if _, err := r.db.NewUpdate().Model(app).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update application")
	}

	return app, nil
}

func (r *applications) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Application)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete application")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewNotFound("application")
	}
	return nil
}

func (r *applications) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error) {
	var records []*Application
	err := r.db.NewSelect().
		Model(&records).
		Relation("Job").
		Where("app.applicant_id = ?", applicantID).
		OrderExpr("app.applied_at DESC, app.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *applications) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error) {
	var records []*Application
	err := r.db.NewSelect().
		Model(&records).
		Relation("Applicant").
		Where("app.job_id = ?", jobID).
		OrderExpr("app.applied_at DESC, app.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *applications) ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]*Application, error) {
	if len(jobIDs) == 0 {
		return []*Application{}, nil
	}

	var records []*Application
	err := r.db.NewSelect().
		Model(&records).
		Relation("Job").
		Relation("Applicant").
		Where("app.job_id IN (?)", bun.In(jobIDs)).
		OrderExpr("app.applied_at DESC, app.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func prepareApplicationDefaults(app *Application) {
	if app == nil {
		return
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.Status == "" {
		app.Status = ApplicationStatusPending
	}
	now := time.Now()
	if app.AppliedAt == nil {
		app.AppliedAt = &now
	}
	if app.UpdatedAt == nil {
		app.UpdatedAt = &now
	}
}
