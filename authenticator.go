package jobboard

import (
	"context"
	"database/sql"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Auther owns credential verification and token issuance.
type Auther struct {
	repos  RepositoryManager
	tokens TokenService
	logger Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(repos RepositoryManager, tokens TokenService) *Auther {
	return &Auther{
		repos:  repos,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// RegisterPayload carries a self-service registration request.
type RegisterPayload struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Role        UserRole `json:"role"`
	CompanyName string   `json:"company_name,omitempty"`
	Phone       string   `json:"phone_number,omitempty"`
	ResumeURL   string   `json:"resume_url,omitempty"`
	LinkedinURL string   `json:"linkedin_url,omitempty"`
}

// Validate rejects structurally bad registrations. Only seeker and employer
// are self-assignable; admin accounts are provisioned out of band.
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Role, validation.Required, validation.In(RoleJobSeeker, RoleEmployer)),
		validation.Field(&r.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&r.ResumeURL, is.URL),
		validation.Field(&r.LinkedinURL, is.URL),
	)
}

// ProfilePatch is a partial profile update; only non-nil fields are written.
type ProfilePatch struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Phone       *string `json:"phone_number,omitempty"`
	ResumeURL   *string `json:"resume_url,omitempty"`
	LinkedinURL *string `json:"linkedin_url,omitempty"`
}

func (p ProfilePatch) Validate() error {
	if p.FirstName != nil {
		if err := validation.Validate(*p.FirstName, validation.Required, validation.Length(1, 100)); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := validation.Validate(*p.LastName, validation.Required, validation.Length(1, 100)); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		if err := ValidatePhoneNumber(*p.Phone); err != nil {
			return err
		}
	}
	if p.ResumeURL != nil {
		if err := validation.Validate(*p.ResumeURL, is.URL); err != nil {
			return err
		}
	}
	if p.LinkedinURL != nil {
		if err := validation.Validate(*p.LinkedinURL, is.URL); err != nil {
			return err
		}
	}
	return nil
}

func (p ProfilePatch) applyTo(user *User) {
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}
	if p.CompanyName != nil {
		user.CompanyName = *p.CompanyName
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.ResumeURL != nil {
		user.ResumeURL = *p.ResumeURL
	}
	if p.LinkedinURL != nil {
		user.LinkedinURL = *p.LinkedinURL
	}
}

// AuthResult is what register and login hand back.
type AuthResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// Register creates an account and signs it in. A duplicate email surfaces
// as the conflict error regardless of whether the pre-insert existence
// check or the unique constraint caught it.
func (s *Auther) Register(ctx context.Context, payload RegisterPayload) (*AuthResult, error) {
	if err := payload.Validate(); err != nil {
		return nil, NewValidation(err, "invalid registration payload")
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Role:         payload.Role,
		Email:        payload.Email,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		CompanyName:  payload.CompanyName,
		Phone:        payload.Phone,
		ResumeURL:    payload.ResumeURL,
		LinkedinURL:  payload.LinkedinURL,
	}

	created, err := s.repos.Users().Register(ctx, user)
	if err != nil {
		if IsConflict(err) {
			return nil, err
		}
		s.logger.Error("Register failed to persist user: %v", err)
		return nil, err
	}

	tokens, err := s.issuePair(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registered user %s as %s", created.ID, created.Role)

	return &AuthResult{User: created, Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. Unknown email and bad
// password produce the same error.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.repos.Users().GetByEmail(ctx, identifier)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login failed to load user: %v", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	tokens, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new access token. A vanished
// subject fails as unauthenticated, not as not-found.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Validate(refreshToken, TokenKindRefresh)
	if err != nil {
		return "", err
	}

	subject, err := uuid.Parse(claims.UserID())
	if err != nil {
		return "", ErrUnauthenticated
	}

	user, err := s.repos.Users().GetByID(ctx, subject)
	if err != nil {
		if IsNotFound(err) {
			return "", ErrUnauthenticated
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to load refresh subject")
	}

	return s.tokens.IssueAccess(NewIdentityFromUser(user))
}

// CurrentUser reloads the principal's record.
func (s *Auther) CurrentUser(ctx context.Context, principal *Principal) (*User, error) {
	if err := RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	return s.repos.Users().GetByID(ctx, principal.ID)
}

// UpdateProfile merges the provided fields into the principal's own record.
func (s *Auther) UpdateProfile(ctx context.Context, principal *Principal, patch ProfilePatch) (*User, error) {
	if err := RequireAuthenticated(principal); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, NewValidation(err, "invalid profile update")
	}
	return s.repos.Users().UpdateProfile(ctx, principal.ID, patch)
}

// DeleteUser removes an account and everything it owns: jobs, applications
// filed, applications received. Admin only, all-or-nothing.
func (s *Auther) DeleteUser(ctx context.Context, principal *Principal, id uuid.UUID) error {
	if err := RequireAdmin(principal); err != nil {
		return err
	}

	return s.repos.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return s.repos.Users().DeleteCascadeTx(ctx, tx, id)
	})
}

func (s *Auther) issuePair(user *User) (TokenPair, error) {
	identity := NewIdentityFromUser(user)

	access, err := s.tokens.IssueAccess(identity)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.tokens.IssueRefresh(identity)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
