package jobboard

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Principal is the resolved, authenticated actor behind a request. A nil
// *Principal is the anonymous caller.
type Principal struct {
	ID    uuid.UUID
	Role  UserRole
	Email string
	User  *User
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Resolver maps a verified access token to a live user record. It performs
// no writes.
type Resolver struct {
	tokens TokenService
	users  Users
	logger Logger
}

// NewResolver returns a new Resolver
func NewResolver(tokens TokenService, users Users) *Resolver {
	return &Resolver{
		tokens: tokens,
		users:  users,
		logger: defLogger{},
	}
}

func (r *Resolver) WithLogger(logger Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Resolve turns a bearer token into a Principal. Absent, malformed, expired,
// or wrong-kind tokens fail as unauthenticated, and so does a verified token
// whose subject no longer exists. The latter is deliberate: a not-found here
// would leak whether an account ever existed.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := r.tokens.Validate(token, TokenKindAccess)
	if err != nil {
		return nil, err
	}

	return r.principalFromClaims(ctx, claims)
}

// ResolveOptional is Resolve for endpoints that declare auth optional: any
// failure to produce a principal yields the anonymous caller instead of an
// error.
func (r *Resolver) ResolveOptional(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, nil
	}

	principal, err := r.Resolve(ctx, token)
	if err != nil {
		if IsUnauthenticated(err) {
			return nil, nil
		}
		return nil, err
	}

	return principal, nil
}

func (r *Resolver) principalFromClaims(ctx context.Context, claims *JWTClaims) (*Principal, error) {
	subject, err := uuid.Parse(claims.UserID())
	if err != nil {
		r.logger.Warn("Resolver received token with non-uuid subject %q", claims.UserID())
		return nil, ErrUnauthenticated
	}

	user, err := r.users.GetByID(ctx, subject)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load token subject")
	}

	return &Principal{
		ID:    user.ID,
		Role:  user.Role,
		Email: user.Email,
		User:  user,
	}, nil
}
