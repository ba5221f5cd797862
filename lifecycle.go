package jobboard

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// ApplicationEngine owns the application lifecycle: filing, content edits,
// employer review, and withdrawal.
type ApplicationEngine struct {
	repos  RepositoryManager
	logger Logger
}

func NewApplicationEngine(repos RepositoryManager) *ApplicationEngine {
	return &ApplicationEngine{
		repos:  repos,
		logger: defLogger{},
	}
}

func (e *ApplicationEngine) WithLogger(logger Logger) *ApplicationEngine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// ApplicationDraft is the payload for filing an application. ResumeURL
// defaults to the applicant's stored resume when left empty.
type ApplicationDraft struct {
	CoverLetter string `json:"cover_letter,omitempty"`
	ResumeURL   string `json:"resume_url,omitempty"`
}

func (d ApplicationDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.CoverLetter, validation.Length(0, 5000)),
		validation.Field(&d.ResumeURL, is.URL),
	)
}

// ApplicationPatch is a partial content update; only non-nil fields are
// written. Status is not content and moves through SetStatus.
type ApplicationPatch struct {
	CoverLetter *string `json:"cover_letter,omitempty"`
	ResumeURL   *string `json:"resume_url,omitempty"`
}

func (p ApplicationPatch) Validate() error {
	if p.CoverLetter != nil {
		if err := validation.Validate(*p.CoverLetter, validation.Length(0, 5000)); err != nil {
			return err
		}
	}
	if p.ResumeURL != nil {
		if err := validation.Validate(*p.ResumeURL, is.URL); err != nil {
			return err
		}
	}
	return nil
}

func (p ApplicationPatch) applyTo(app *Application) {
	if p.CoverLetter != nil {
		app.CoverLetter = *p.CoverLetter
	}
	if p.ResumeURL != nil {
		app.ResumeURL = *p.ResumeURL
	}
}

// StatusChange is an employer's review decision, with optional notes that
// merge into the record.
type StatusChange struct {
	Status ApplicationStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}

// Apply files an application for the calling seeker. The job must be
// active, and each (job, applicant) pair can hold at most one application;
// the pre-check catches the common case and the storage constraint settles
// any race.
func (e *ApplicationEngine) Apply(ctx context.Context, principal *Principal, jobID uuid.UUID, draft ApplicationDraft) (*Application, error) {
	if err := RequireSeeker(principal); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, NewValidation(err, "invalid application")
	}

	job, err := e.repos.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != JobStatusActive {
		return nil, ErrJobNotAcceptingApplications
	}

	exists, err := e.repos.Applications().ExistsForPair(ctx, job.ID, principal.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	resume := draft.ResumeURL
	if resume == "" && principal.User != nil {
		resume = principal.User.ResumeURL
	}

	app := &Application{
		JobID:       job.ID,
		ApplicantID: principal.ID,
		CoverLetter: draft.CoverLetter,
		ResumeURL:   resume,
		Status:      ApplicationStatusPending,
	}

	created, err := e.repos.Applications().Create(ctx, app)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Application %s filed for job %s", created.ID, job.ID)

	return created, nil
}

// Get returns an application visible to the caller: the applicant who filed
// it, the employer who owns its job, or an admin. Anyone else sees
// not-found, never forbidden.
func (e *ApplicationEngine) Get(ctx context.Context, principal *Principal, id uuid.UUID) (*Application, error) {
	if err := RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	app, err := e.repos.Applications().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if OwnsApplicationAsApplicant(principal, app) || CanActAsAdmin(principal) {
		return app, nil
	}

	if CanActAsEmployer(principal) {
		job, err := e.repos.Jobs().GetByID(ctx, app.JobID)
		if err != nil {
			// A dangling job id reads as not-found below; anything else is
			// a storage fault and must surface as one.
			if !IsNotFound(err) {
				return nil, err
			}
		} else if OwnsApplicationAsEmployer(principal, app, job) {
			return app, nil
		}
	}

	return nil, NewNotFound("application")
}

// EditContent updates cover letter and resume on a pending application. The
// filing seeker is the only editor, and only while the employer has not
// moved the application out of pending.
func (e *ApplicationEngine) EditContent(ctx context.Context, principal *Principal, id uuid.UUID, patch ApplicationPatch) (*Application, error) {
	if err := RequireSeeker(principal); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, NewValidation(err, "invalid application update")
	}

	app, err := e.repos.Applications().GetOwned(ctx, id, principal.ID)
	if err != nil {
		return nil, err
	}

	if app.Status != ApplicationStatusPending {
		return nil, ErrApplicationNotEditable
	}

	patch.applyTo(app)

	return e.repos.Applications().Save(ctx, app)
}

// SetStatus records an employer's review decision. Any status can move to
// any other status; there is no terminal state. The application is loaded
// unscoped first, so an employer poking at another tenant's application
// gets forbidden rather than not-found.
func (e *ApplicationEngine) SetStatus(ctx context.Context, principal *Principal, id uuid.UUID, change StatusChange) (*Application, error) {
	if err := RequireEmployer(principal); err != nil {
		return nil, err
	}
	if !change.Status.IsValid() {
		return nil, NewValidation(nil, "invalid application status")
	}

	app, err := e.repos.Applications().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job, err := e.repos.Jobs().GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	if !OwnsApplicationAsEmployer(principal, app, job) && !CanActAsAdmin(principal) {
		return nil, ErrForbidden
	}

	app.Status = change.Status
	if change.Notes != nil {
		app.Notes = *change.Notes
	}

	updated, err := e.repos.Applications().Save(ctx, app)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Application %s moved to %s", updated.ID, updated.Status)

	return updated, nil
}

// Withdraw deletes the caller's own application. Allowed at any status; an
// accepted application withdrawn simply disappears from the employer's
// list.
func (e *ApplicationEngine) Withdraw(ctx context.Context, principal *Principal, id uuid.UUID) error {
	if err := RequireSeeker(principal); err != nil {
		return err
	}

	app, err := e.repos.Applications().GetOwned(ctx, id, principal.ID)
	if err != nil {
		return err
	}

	return e.repos.Applications().Delete(ctx, app.ID)
}

// ListForPrincipal returns the caller's slice of the application table:
// seekers see what they filed, employers see what came in against their
// own postings, admins see everything a seeker or employer union would.
func (e *ApplicationEngine) ListForPrincipal(ctx context.Context, principal *Principal) ([]*Application, error) {
	if err := RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	switch principal.Role {
	case RoleEmployer:
		jobIDs, err := e.repos.Jobs().IDsByEmployer(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return e.repos.Applications().ListByJobIDs(ctx, jobIDs)
	case RoleAdmin:
		jobIDs, err := e.repos.Jobs().IDsByEmployer(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		own, err := e.repos.Applications().ListByApplicant(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		received, err := e.repos.Applications().ListByJobIDs(ctx, jobIDs)
		if err != nil {
			return nil, err
		}
		return append(own, received...), nil
	default:
		return e.repos.Applications().ListByApplicant(ctx, principal.ID)
	}
}
