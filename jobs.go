package jobboard

import (
	"context"
	"database/sql"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// JobService owns posting CRUD and the public search surface.
type JobService struct {
	repos  RepositoryManager
	logger Logger
}

func NewJobService(repos RepositoryManager) *JobService {
	return &JobService{
		repos:  repos,
		logger: defLogger{},
	}
}

func (s *JobService) WithLogger(logger Logger) *JobService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// JobDraft is the payload for creating a posting.
type JobDraft struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements,omitempty"`
	Location        string    `json:"location"`
	Category        string    `json:"category,omitempty"`
	EmploymentType  string    `json:"employment_type,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	RemoteType      string    `json:"remote_type,omitempty"`
	Skills          string    `json:"skills,omitempty"`
	SalaryMin       *int      `json:"salary_min,omitempty"`
	SalaryMax       *int      `json:"salary_max,omitempty"`
	Status          JobStatus `json:"status,omitempty"`
}

func (d JobDraft) Validate() error {
	if err := validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&d.Description, validation.Required),
		validation.Field(&d.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&d.Status, validation.In(JobStatusActive, JobStatusClosed, JobStatusDraft)),
	); err != nil {
		return err
	}
	return ValidateSalaryRange(d.SalaryMin, d.SalaryMax)
}

// JobPatch is a partial posting update; only non-nil fields are written.
type JobPatch struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Requirements    *string    `json:"requirements,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Category        *string    `json:"category,omitempty"`
	EmploymentType  *string    `json:"employment_type,omitempty"`
	ExperienceLevel *string    `json:"experience_level,omitempty"`
	RemoteType      *string    `json:"remote_type,omitempty"`
	Skills          *string    `json:"skills,omitempty"`
	SalaryMin       *int       `json:"salary_min,omitempty"`
	SalaryMax       *int       `json:"salary_max,omitempty"`
	Status          *JobStatus `json:"status,omitempty"`
}

func (p JobPatch) applyTo(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Requirements != nil {
		job.Requirements = *p.Requirements
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.Category != nil {
		job.Category = *p.Category
	}
	if p.EmploymentType != nil {
		job.EmploymentType = *p.EmploymentType
	}
	if p.ExperienceLevel != nil {
		job.ExperienceLevel = *p.ExperienceLevel
	}
	if p.RemoteType != nil {
		job.RemoteType = *p.RemoteType
	}
	if p.Skills != nil {
		job.Skills = *p.Skills
	}
	if p.SalaryMin != nil {
		job.SalaryMin = p.SalaryMin
	}
	if p.SalaryMax != nil {
		job.SalaryMax = p.SalaryMax
	}
	if p.Status != nil {
		job.Status = *p.Status
	}
}

// Create posts a new job owned by the calling employer.
func (s *JobService) Create(ctx context.Context, principal *Principal, draft JobDraft) (*Job, error) {
	if err := RequireEmployer(principal); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, NewValidation(err, "invalid job posting")
	}

	job := &Job{
		EmployerID:      principal.ID,
		Title:           draft.Title,
		Description:     draft.Description,
		Requirements:    draft.Requirements,
		Location:        draft.Location,
		Category:        draft.Category,
		EmploymentType:  draft.EmploymentType,
		ExperienceLevel: draft.ExperienceLevel,
		RemoteType:      draft.RemoteType,
		Skills:          draft.Skills,
		SalaryMin:       draft.SalaryMin,
		SalaryMax:       draft.SalaryMax,
		Status:          draft.Status,
	}

	created, err := s.repos.Jobs().Create(ctx, job)
	if err != nil {
		s.logger.Error("Create job failed: %v", err)
		return nil, err
	}

	return created, nil
}

// Get fetches a single posting. Open to everyone, including anonymous
// callers; any status is visible by direct id.
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.repos.Jobs().GetByID(ctx, id)
}

// Update merges the patch into a posting the caller owns. Admins can update
// any posting. A posting owned by someone else looks like it does not exist.
func (s *JobService) Update(ctx context.Context, principal *Principal, id uuid.UUID, patch JobPatch) (*Job, error) {
	if err := RequireEmployer(principal); err != nil {
		return nil, err
	}

	job, err := s.loadForOwner(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	patch.applyTo(job)

	if !job.Status.IsValid() {
		return nil, NewValidation(nil, "invalid job status")
	}
	if err := ValidateSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, NewValidation(err, "invalid job posting")
	}

	return s.repos.Jobs().Save(ctx, job)
}

// Delete removes a posting and its applications in one transaction.
func (s *JobService) Delete(ctx context.Context, principal *Principal, id uuid.UUID) error {
	if err := RequireEmployer(principal); err != nil {
		return err
	}

	job, err := s.loadForOwner(ctx, principal, id)
	if err != nil {
		return err
	}

	return s.repos.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return s.repos.Jobs().DeleteCascadeTx(ctx, tx, job.ID)
	})
}

// ListOwned returns the caller's own postings, drafts and closed ones
// included.
func (s *JobService) ListOwned(ctx context.Context, principal *Principal) ([]*Job, error) {
	if err := RequireEmployer(principal); err != nil {
		return nil, err
	}
	return s.repos.Jobs().ListByEmployer(ctx, principal.ID)
}

// ListPublic returns the active postings in the redacted projection. This
// is the only listing anonymous callers and seekers get; raw employer ids
// never leave it.
func (s *JobService) ListPublic(ctx context.Context) ([]*PublicJob, error) {
	records, err := s.repos.Jobs().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*PublicJob, len(records))
	for i, job := range records {
		views[i] = NewPublicJob(job)
	}
	return views, nil
}

// Search runs the public filtered search over active postings. Results are
// redacted: employer ids never leave this method.
func (s *JobService) Search(ctx context.Context, filter JobFilter, page Pagination) (*Page[*PublicJob], error) {
	result, err := s.repos.Jobs().Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return MapPage(result, NewPublicJob), nil
}

// ListApplications returns the applications filed against one of the
// caller's postings.
func (s *JobService) ListApplications(ctx context.Context, principal *Principal, jobID uuid.UUID) ([]*Application, error) {
	if err := RequireEmployer(principal); err != nil {
		return nil, err
	}

	job, err := s.loadForOwner(ctx, principal, jobID)
	if err != nil {
		return nil, err
	}

	return s.repos.Applications().ListByJob(ctx, job.ID)
}

func (s *JobService) loadForOwner(ctx context.Context, principal *Principal, id uuid.UUID) (*Job, error) {
	if principal.IsAdmin() {
		return s.repos.Jobs().GetByID(ctx, id)
	}
	return s.repos.Jobs().GetOwned(ctx, id, principal.ID)
}
