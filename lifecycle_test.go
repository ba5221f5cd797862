package jobboard_test

import (
	"context"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/recruitconnect/go-jobboard"
)

func TestApply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "apply-employer@example.com")
	job := postJob(t, env, employer, "Backend Engineer", jobboard.JobStatusActive)

	t.Run("seeker applies to an active job", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "apply-ok@example.com")

		app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{
			CoverLetter: "I would love to work on this.",
			ResumeURL:   "https://example.com/resume.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, jobboard.ApplicationStatusPending, app.Status)
		assert.Equal(t, job.ID, app.JobID)
		assert.Equal(t, seeker.ID, app.ApplicantID)
	})

	t.Run("resume defaults to the stored profile resume", func(t *testing.T) {
		result, err := env.auther.Register(ctx, jobboard.RegisterPayload{
			Email:     "stored-resume@example.com",
			Password:  "password123",
			FirstName: "Res",
			LastName:  "Ume",
			Role:      jobboard.RoleJobSeeker,
			ResumeURL: "https://example.com/stored.pdf",
		})
		require.NoError(t, err)

		app, err := env.engine.Apply(ctx, principalFor(result.User), job.ID, jobboard.ApplicationDraft{})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/stored.pdf", app.ResumeURL)
	})

	t.Run("closed job rejects applications", func(t *testing.T) {
		closed := postJob(t, env, employer, "Closed Role", jobboard.JobStatusClosed)
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "apply-closed@example.com")

		_, err := env.engine.Apply(ctx, principalFor(seeker), closed.ID, jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsInvalidState(err))
	})

	t.Run("draft job rejects applications", func(t *testing.T) {
		draft := postJob(t, env, employer, "Draft Role", jobboard.JobStatusDraft)
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "apply-draft@example.com")

		_, err := env.engine.Apply(ctx, principalFor(seeker), draft.ID, jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsInvalidState(err))
	})

	t.Run("second application is a conflict", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "apply-twice@example.com")

		_, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
		require.NoError(t, err)

		_, err = env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsConflict(err))
	})

	t.Run("unknown job is not found", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "apply-nojob@example.com")

		_, err := env.engine.Apply(ctx, principalFor(seeker), uuid.New(), jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsNotFound(err))
	})

	t.Run("employer cannot apply", func(t *testing.T) {
		_, err := env.engine.Apply(ctx, principalFor(employer), job.ID, jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsForbidden(err))
	})

	t.Run("anonymous cannot apply", func(t *testing.T) {
		_, err := env.engine.Apply(ctx, nil, job.ID, jobboard.ApplicationDraft{})
		require.Error(t, err)
		assert.True(t, jobboard.IsUnauthenticated(err))
	})
}

// The unique (job_id, applicant_id) constraint is the authority on
// duplicates: two inserts racing past the existence pre-check still resolve
// to one row and one conflict.
func TestApplyRaceResolvesToOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "race-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "race-seeker@example.com")
	job := postJob(t, env, employer, "Contended Role", jobboard.JobStatusActive)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.repos.Applications().Create(ctx, &jobboard.Application{
				JobID:       job.ID,
				ApplicantID: seeker.ID,
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, jobboard.IsConflict(err))
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	apps, err := env.repos.Applications().ListByApplicant(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestEditContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "edit-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "edit-seeker@example.com")
	job := postJob(t, env, employer, "Editable Role", jobboard.JobStatusActive)

	app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{
		CoverLetter: "first draft",
	})
	require.NoError(t, err)

	cover := "second draft"

	t.Run("pending application accepts edits", func(t *testing.T) {
		updated, err := env.engine.EditContent(ctx, principalFor(seeker), app.ID, jobboard.ApplicationPatch{
			CoverLetter: &cover,
		})
		require.NoError(t, err)
		assert.Equal(t, "second draft", updated.CoverLetter)
		assert.Equal(t, jobboard.ApplicationStatusPending, updated.Status)
	})

	t.Run("someone else's application reads as not found", func(t *testing.T) {
		other := registerUser(t, env, jobboard.RoleJobSeeker, "edit-other@example.com")

		_, err := env.engine.EditContent(ctx, principalFor(other), app.ID, jobboard.ApplicationPatch{
			CoverLetter: &cover,
		})
		require.Error(t, err)
		assert.True(t, jobboard.IsNotFound(err))
		assert.False(t, jobboard.IsForbidden(err))
	})

	t.Run("reviewed application is frozen", func(t *testing.T) {
		_, err := env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusReviewed,
		})
		require.NoError(t, err)

		_, err = env.engine.EditContent(ctx, principalFor(seeker), app.ID, jobboard.ApplicationPatch{
			CoverLetter: &cover,
		})
		require.Error(t, err)
		assert.True(t, jobboard.IsInvalidState(err))
	})
}

func TestSetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "status-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "status-seeker@example.com")
	job := postJob(t, env, employer, "Reviewed Role", jobboard.JobStatusActive)

	app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)

	t.Run("owning employer moves pending to accepted", func(t *testing.T) {
		notes := "strong take-home"
		updated, err := env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusAccepted,
			Notes:  &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, jobboard.ApplicationStatusAccepted, updated.Status)
		assert.Equal(t, "strong take-home", updated.Notes)
	})

	t.Run("any status can move to any other", func(t *testing.T) {
		updated, err := env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusRejected,
		})
		require.NoError(t, err)
		assert.Equal(t, jobboard.ApplicationStatusRejected, updated.Status)

		updated, err = env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusPending,
		})
		require.NoError(t, err)
		assert.Equal(t, jobboard.ApplicationStatusPending, updated.Status)
	})

	t.Run("notes persist when omitted", func(t *testing.T) {
		updated, err := env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusReviewed,
		})
		require.NoError(t, err)
		assert.Equal(t, "strong take-home", updated.Notes)
	})

	t.Run("another employer is forbidden", func(t *testing.T) {
		rival := registerUser(t, env, jobboard.RoleEmployer, "status-rival@example.com")

		_, err := env.engine.SetStatus(ctx, principalFor(rival), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusAccepted,
		})
		require.Error(t, err)
		assert.True(t, jobboard.IsForbidden(err))
	})

	t.Run("seeker is forbidden", func(t *testing.T) {
		_, err := env.engine.SetStatus(ctx, principalFor(seeker), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusAccepted,
		})
		require.Error(t, err)
		assert.True(t, jobboard.IsForbidden(err))
	})

	t.Run("admin can act on any application", func(t *testing.T) {
		admin := seedAdmin(t, env, "status-admin@example.com")

		updated, err := env.engine.SetStatus(ctx, principalFor(admin), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusAccepted,
		})
		require.NoError(t, err)
		assert.Equal(t, jobboard.ApplicationStatusAccepted, updated.Status)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		_, err := env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatus("archived"),
		})
		require.Error(t, err)
		assert.True(t, jobboard.IsValidation(err))
	})
}

func TestWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "withdraw-employer@example.com")
	job := postJob(t, env, employer, "Withdrawable Role", jobboard.JobStatusActive)

	t.Run("applicant withdraws a pending application", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "withdraw-pending@example.com")
		app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
		require.NoError(t, err)

		require.NoError(t, env.engine.Withdraw(ctx, principalFor(seeker), app.ID))

		apps, err := env.engine.ListForPrincipal(ctx, principalFor(seeker))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("withdraw is allowed even after acceptance", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "withdraw-accepted@example.com")
		app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
		require.NoError(t, err)

		_, err = env.engine.SetStatus(ctx, principalFor(employer), app.ID, jobboard.StatusChange{
			Status: jobboard.ApplicationStatusAccepted,
		})
		require.NoError(t, err)

		require.NoError(t, env.engine.Withdraw(ctx, principalFor(seeker), app.ID))
	})

	t.Run("someone else's application reads as not found", func(t *testing.T) {
		seeker := registerUser(t, env, jobboard.RoleJobSeeker, "withdraw-owner@example.com")
		other := registerUser(t, env, jobboard.RoleJobSeeker, "withdraw-other@example.com")
		app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
		require.NoError(t, err)

		err = env.engine.Withdraw(ctx, principalFor(other), app.ID)
		require.Error(t, err)
		assert.True(t, jobboard.IsNotFound(err))
	})
}

func TestGetApplicationVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "view-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "view-seeker@example.com")
	job := postJob(t, env, employer, "Visible Role", jobboard.JobStatusActive)

	app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)

	t.Run("applicant sees it", func(t *testing.T) {
		got, err := env.engine.Get(ctx, principalFor(seeker), app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})

	t.Run("owning employer sees it", func(t *testing.T) {
		got, err := env.engine.Get(ctx, principalFor(employer), app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})

	t.Run("admin sees it", func(t *testing.T) {
		admin := seedAdmin(t, env, "view-admin@example.com")
		got, err := env.engine.Get(ctx, principalFor(admin), app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})

	t.Run("unrelated employer gets not found", func(t *testing.T) {
		rival := registerUser(t, env, jobboard.RoleEmployer, "view-rival@example.com")
		_, err := env.engine.Get(ctx, principalFor(rival), app.ID)
		require.Error(t, err)
		assert.True(t, jobboard.IsNotFound(err))
		assert.False(t, jobboard.IsForbidden(err))
	})

	t.Run("unrelated seeker gets not found", func(t *testing.T) {
		stranger := registerUser(t, env, jobboard.RoleJobSeeker, "view-stranger@example.com")
		_, err := env.engine.Get(ctx, principalFor(stranger), app.ID)
		require.Error(t, err)
		assert.True(t, jobboard.IsNotFound(err))
	})
}

type brokenJobsRepos struct {
	jobboard.RepositoryManager
}

func (r brokenJobsRepos) Jobs() jobboard.Jobs {
	return brokenJobs{}
}

type brokenJobs struct {
	jobboard.Jobs
}

func (brokenJobs) GetByID(ctx context.Context, id uuid.UUID) (*jobboard.Job, error) {
	return nil, goerrors.New("jobs storage offline", goerrors.CategoryInternal)
}

// A storage fault while checking employer ownership must surface as the
// fault, not masquerade as the deliberate visibility not-found.
func TestGetApplicationSurfacesStorageFaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "fault-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "fault-seeker@example.com")
	job := postJob(t, env, employer, "Faulty Role", jobboard.JobStatusActive)

	app, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)

	broken := jobboard.NewApplicationEngine(brokenJobsRepos{env.repos})

	_, err = broken.Get(ctx, principalFor(employer), app.ID)
	require.Error(t, err)
	assert.False(t, jobboard.IsNotFound(err))
}

// Employers list applications through the set of their own job ids. Two
// employers on the same board never see each other's inbox.
func TestListForPrincipalTenantDisjoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alpha := registerUser(t, env, jobboard.RoleEmployer, "alpha@example.com")
	beta := registerUser(t, env, jobboard.RoleEmployer, "beta@example.com")
	alphaJob := postJob(t, env, alpha, "Alpha Role", jobboard.JobStatusActive)
	betaJob := postJob(t, env, beta, "Beta Role", jobboard.JobStatusActive)

	one := registerUser(t, env, jobboard.RoleJobSeeker, "list-one@example.com")
	two := registerUser(t, env, jobboard.RoleJobSeeker, "list-two@example.com")

	_, err := env.engine.Apply(ctx, principalFor(one), alphaJob.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)
	_, err = env.engine.Apply(ctx, principalFor(two), alphaJob.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)
	_, err = env.engine.Apply(ctx, principalFor(one), betaJob.ID, jobboard.ApplicationDraft{})
	require.NoError(t, err)

	t.Run("each employer sees only their own inbox", func(t *testing.T) {
		alphaApps, err := env.engine.ListForPrincipal(ctx, principalFor(alpha))
		require.NoError(t, err)
		require.Len(t, alphaApps, 2)
		for _, app := range alphaApps {
			assert.Equal(t, alphaJob.ID, app.JobID)
		}

		betaApps, err := env.engine.ListForPrincipal(ctx, principalFor(beta))
		require.NoError(t, err)
		require.Len(t, betaApps, 1)
		assert.Equal(t, betaJob.ID, betaApps[0].JobID)
	})

	t.Run("employer with no jobs sees nothing", func(t *testing.T) {
		idle := registerUser(t, env, jobboard.RoleEmployer, "idle@example.com")
		apps, err := env.engine.ListForPrincipal(ctx, principalFor(idle))
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("seeker sees only what they filed", func(t *testing.T) {
		apps, err := env.engine.ListForPrincipal(ctx, principalFor(one))
		require.NoError(t, err)
		assert.Len(t, apps, 2)
		for _, app := range apps {
			assert.Equal(t, one.ID, app.ApplicantID)
		}
	})
}
