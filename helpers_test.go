package jobboard_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	jobboard "github.com/recruitconnect/go-jobboard"

	_ "github.com/mattn/go-sqlite3"
)

type testEnv struct {
	db     *bun.DB
	repos  jobboard.RepositoryManager
	tokens *jobboard.TokenServiceImpl
	auther *jobboard.Auther
	jobs   *jobboard.JobService
	engine *jobboard.ApplicationEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, jobboard.CreateSchema(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})

	cfg := jobboard.StaticConfig{
		SigningKey: "test-signing-key",
		Issuer:     "test-issuer",
		Audience:   []string{"test:audience"},
	}

	repos := jobboard.NewRepositoryManager(db, cfg)
	require.NoError(t, repos.Validate())
	tokens := jobboard.NewTokenService(cfg)

	return &testEnv{
		db:     db,
		repos:  repos,
		tokens: tokens,
		auther: jobboard.NewAuthenticator(repos, tokens),
		jobs:   jobboard.NewJobService(repos),
		engine: jobboard.NewApplicationEngine(repos),
	}
}

var userSeq int

func registerUser(t *testing.T, env *testEnv, role jobboard.UserRole, email string) *jobboard.User {
	t.Helper()

	userSeq++
	payload := jobboard.RegisterPayload{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", userSeq),
		Role:      role,
	}
	if role == jobboard.RoleEmployer {
		payload.CompanyName = "Acme Corp"
	}

	result, err := env.auther.Register(context.Background(), payload)
	require.NoError(t, err)

	return result.User
}

func seedAdmin(t *testing.T, env *testEnv, email string) *jobboard.User {
	t.Helper()

	hash, err := jobboard.HashPassword("password123")
	require.NoError(t, err)

	user, err := env.repos.Users().Register(context.Background(), &jobboard.User{
		Role:         jobboard.RoleAdmin,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Site",
		LastName:     "Admin",
	})
	require.NoError(t, err)

	return user
}

func principalFor(user *jobboard.User) *jobboard.Principal {
	return &jobboard.Principal{
		ID:    user.ID,
		Role:  user.Role,
		Email: user.Email,
		User:  user,
	}
}

func postJob(t *testing.T, env *testEnv, employer *jobboard.User, title string, status jobboard.JobStatus) *jobboard.Job {
	t.Helper()

	job, err := env.jobs.Create(context.Background(), principalFor(employer), jobboard.JobDraft{
		Title:       title,
		Description: "Build and run backend services.",
		Location:    "Remote",
		Status:      status,
	})
	require.NoError(t, err)

	return job
}
