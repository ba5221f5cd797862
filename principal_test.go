package jobboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/recruitconnect/go-jobboard"
)

func TestResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resolver := jobboard.NewResolver(env.tokens, env.repos.Users())

	user := registerUser(t, env, jobboard.RoleJobSeeker, "resolve@example.com")
	access, err := env.tokens.IssueAccess(jobboard.NewIdentityFromUser(user))
	require.NoError(t, err)

	t.Run("valid access token resolves the principal", func(t *testing.T) {
		principal, err := resolver.Resolve(ctx, access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.ID)
		assert.Equal(t, jobboard.RoleJobSeeker, principal.Role)
		require.NotNil(t, principal.User)
		assert.Equal(t, "resolve@example.com", principal.User.Email)
	})

	t.Run("empty token is unauthenticated", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "")
		require.Error(t, err)
		assert.True(t, jobboard.IsUnauthenticated(err))
	})

	t.Run("refresh token does not authenticate", func(t *testing.T) {
		refresh, err := env.tokens.IssueRefresh(jobboard.NewIdentityFromUser(user))
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, refresh)
		require.Error(t, err)
		assert.True(t, jobboard.IsUnauthenticated(err))
	})

	t.Run("vanished subject is unauthenticated not not-found", func(t *testing.T) {
		doomed := registerUser(t, env, jobboard.RoleJobSeeker, "doomed@example.com")
		token, err := env.tokens.IssueAccess(jobboard.NewIdentityFromUser(doomed))
		require.NoError(t, err)

		admin := seedAdmin(t, env, "admin-resolve@example.com")
		require.NoError(t, env.auther.DeleteUser(ctx, principalFor(admin), doomed.ID))

		_, err = resolver.Resolve(ctx, token)
		require.Error(t, err)
		assert.True(t, jobboard.IsUnauthenticated(err))
		assert.False(t, jobboard.IsNotFound(err))
	})
}

func TestResolveOptional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resolver := jobboard.NewResolver(env.tokens, env.repos.Users())

	t.Run("empty token yields anonymous", func(t *testing.T) {
		principal, err := resolver.ResolveOptional(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, principal)
	})

	t.Run("bad token yields anonymous", func(t *testing.T) {
		principal, err := resolver.ResolveOptional(ctx, "not.a.token")
		require.NoError(t, err)
		assert.Nil(t, principal)
	})

	t.Run("valid token yields the principal", func(t *testing.T) {
		user := registerUser(t, env, jobboard.RoleEmployer, "optional@example.com")
		token, err := env.tokens.IssueAccess(jobboard.NewIdentityFromUser(user))
		require.NoError(t, err)

		principal, err := resolver.ResolveOptional(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, principal)
		assert.Equal(t, user.ID, principal.ID)
	})
}

func TestPrincipalContext(t *testing.T) {
	principal := &jobboard.Principal{Role: jobboard.RoleAdmin}

	ctx := jobboard.WithPrincipal(context.Background(), principal)
	got, ok := jobboard.PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, principal, got)

	_, ok = jobboard.PrincipalFromContext(context.Background())
	assert.False(t, ok)
}
