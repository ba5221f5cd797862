package jobboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Jobs is the posting record collection. Owner-scoped lookups take the
// employer id in the query itself, so "exists but not yours" is
// indistinguishable from "does not exist".
type Jobs interface {
	Create(ctx context.Context, job *Job) (*Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	GetOwned(ctx context.Context, id, employerID uuid.UUID) (*Job, error)
	Save(ctx context.Context, job *Job) (*Job, error)
	DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*Job, error)
	ListActive(ctx context.Context) ([]*Job, error)
	IDsByEmployer(ctx context.Context, employerID uuid.UUID) ([]uuid.UUID, error)
	Search(ctx context.Context, filter JobFilter, page Pagination) (*Page[*Job], error)
}

type jobs struct {
	db       *bun.DB
	pageSize int
}

var _ Jobs = (*jobs)(nil)

func NewJobsRepository(db *bun.DB, pageSize int) Jobs {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &jobs{db: db, pageSize: pageSize}
}

func (r *jobs) Create(ctx context.Context, job *Job) (*Job, error) {
	prepareJobDefaults(job)

	if _, err := r.db.NewInsert().Model(job).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create job")
	}

	return job, nil
}

// GetByID returns the job regardless of status; public listings are the
// ones that filter to active.
func (r *jobs) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	record := &Job{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Employer").
		Where("job.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("job")
		}
		return nil, err
	}
	return record, nil
}

func (r *jobs) GetOwned(ctx context.Context, id, employerID uuid.UUID) (*Job, error) {
	record := &Job{}
	err := r.db.NewSelect().
		Model(record).
		Where("job.id = ? AND job.employer_id = ?", id, employerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("job")
		}
		return nil, err
	}
	return record, nil
}

func (r *jobs) Save(ctx context.Context, job *Job) (*Job, error) {
	now := time.Now()
	job.UpdatedAt = &now

	if _, err := r.db.NewUpdate().Model(job).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update job")
	}

	return job, nil
}

func (r *jobs) DeleteCascadeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*Application)(nil)).
		Where("job_id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete job applications")
	}

	res, err := tx.NewDelete().
		Model((*Job)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete job")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewNotFound("job")
	}

	return nil
}

func (r *jobs) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*Job, error) {
	var records []*Job
	err := r.db.NewSelect().
		Model(&records).
		Where("job.employer_id = ?", employerID).
		OrderExpr("job.created_at DESC, job.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *jobs) ListActive(ctx context.Context) ([]*Job, error) {
	var records []*Job
	err := r.db.NewSelect().
		Model(&records).
		Relation("Employer").
		Where("job.status = ?", JobStatusActive).
		OrderExpr("job.created_at DESC, job.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *jobs) IDsByEmployer(ctx context.Context, employerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.NewSelect().
		Model((*Job)(nil)).
		Column("job.id").
		Where("job.employer_id = ?", employerID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Search returns one page of active jobs matching the filter, newest first
// with id as the tie-break so equal timestamps page deterministically.
func (r *jobs) Search(ctx context.Context, filter JobFilter, page Pagination) (*Page[*Job], error) {
	page = page.normalize(r.pageSize)

	var records []*Job
	q := r.db.NewSelect().
		Model(&records).
		Relation("Employer").
		Where("job.status = ?", JobStatusActive)

	q = filter.Apply(q)

	total, err := q.
		OrderExpr("job.created_at DESC, job.id DESC").
		Limit(page.PerPage).
		Offset(page.offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "job search failed")
	}

	return &Page[*Job]{
		Items:   records,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   pageCount(total, page.PerPage),
	}, nil
}

func prepareJobDefaults(job *Job) {
	if job == nil {
		return
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = JobStatusActive
	}
	now := time.Now()
	if job.CreatedAt == nil {
		job.CreatedAt = &now
	}
	if job.UpdatedAt == nil {
		job.UpdatedAt = &now
	}
}
