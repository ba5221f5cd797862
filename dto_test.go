package jobboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/recruitconnect/go-jobboard"
)

func TestApplicationView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	employer := registerUser(t, env, jobboard.RoleEmployer, "dto-employer@example.com")
	seeker := registerUser(t, env, jobboard.RoleJobSeeker, "dto-seeker@example.com")
	job := postJob(t, env, employer, "Viewable Role", jobboard.JobStatusActive)

	filed, err := env.engine.Apply(ctx, principalFor(seeker), job.ID, jobboard.ApplicationDraft{
		CoverLetter: "Hi there.",
	})
	require.NoError(t, err)

	// Get reloads with the job and applicant relations attached.
	app, err := env.engine.Get(ctx, principalFor(seeker), filed.ID)
	require.NoError(t, err)

	view := jobboard.NewApplicationView(app)
	assert.Equal(t, app.ID, view.ID)
	assert.Equal(t, "Viewable Role", view.JobTitle)
	assert.NotEmpty(t, view.ApplicantName)
	assert.Equal(t, "Hi there.", view.CoverLetter)
	assert.Equal(t, jobboard.ApplicationStatusPending, view.Status)
}

func TestProfileView(t *testing.T) {
	user := &jobboard.User{
		Email:        "profile-view@example.com",
		Role:         jobboard.RoleJobSeeker,
		PasswordHash: "$2a$14$secret",
		FirstName:    "Paula",
		LastName:     "Profile",
		ResumeURL:    "https://example.com/resume.pdf",
	}

	view := jobboard.NewProfileView(user)
	assert.Equal(t, user.Email, view.Email)
	assert.Equal(t, user.ResumeURL, view.ResumeURL)
	assert.Equal(t, "Paula", view.FirstName)
}
