package jobboard

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeWrongTokenKind  = "WRONG_TOKEN_KIND"
	TextCodeUnauthenticated = "UNAUTHENTICATED"
	TextCodeForbidden       = "FORBIDDEN"
	TextCodeNotFound        = "NOT_FOUND"
	TextCodeConflict        = "CONFLICT"
	TextCodeInvalidState    = "INVALID_STATE"
	TextCodeValidation      = "VALIDATION_FAILED"
)

// ErrTokenExpired is returned when a token's exp claim is in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed or verified.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrWrongTokenKind is returned when a refresh token is presented where an
// access token is required, or the other way around.
var ErrWrongTokenKind = errors.New("token kind not valid for this operation", errors.CategoryAuth).
	WithTextCode(TextCodeWrongTokenKind).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned when an operation requires a principal and
// none could be resolved. A valid token whose subject no longer exists maps
// here too, so callers cannot probe for historical accounts.
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on a failed login. Unknown identifier and
// wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when the principal is authenticated but fails a
// role or ownership check.
var ErrForbidden = errors.New("operation not permitted for this principal", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrEmailTaken is returned when registration hits the unique email
// constraint.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeConflict).
	WithCode(errors.CodeConflict)

// ErrAlreadyApplied is returned when the (job, applicant) pair already has an
// application, whether caught by the pre-check or by the storage constraint.
var ErrAlreadyApplied = errors.New("an application for this job already exists", errors.CategoryConflict).
	WithTextCode(TextCodeConflict).
	WithCode(errors.CodeConflict)

// ErrJobNotAcceptingApplications is returned when applying against a job
// whose status is not active.
var ErrJobNotAcceptingApplications = errors.New("job is not accepting applications", errors.CategoryConflict).
	WithTextCode(TextCodeInvalidState).
	WithCode(errors.CodeConflict)

// ErrApplicationNotEditable is returned when the applicant edits content
// after an employer has acted on the application.
var ErrApplicationNotEditable = errors.New("application can no longer be edited", errors.CategoryConflict).
	WithTextCode(TextCodeInvalidState).
	WithCode(errors.CodeConflict)

// NewNotFound builds a not-found error for the named resource. Owner-scoped
// lookups also use it for records that exist but belong to someone else.
func NewNotFound(resource string) *errors.Error {
	return errors.New(resource+" not found", errors.CategoryNotFound).
		WithTextCode(TextCodeNotFound).
		WithCode(errors.CodeNotFound)
}

// NewValidation builds a validation error with the underlying cause attached.
func NewValidation(err error, message string) *errors.Error {
	if err == nil {
		return errors.New(message, errors.CategoryValidation).
			WithTextCode(TextCodeValidation).
			WithCode(errors.CodeBadRequest)
	}
	return errors.Wrap(err, errors.CategoryValidation, message).
		WithTextCode(TextCodeValidation).
		WithCode(errors.CodeBadRequest)
}

// IsUnauthenticated reports whether err belongs to the auth category.
func IsUnauthenticated(err error) bool {
	return hasCategory(err, errors.CategoryAuth)
}

// IsForbidden reports whether err belongs to the authz category.
func IsForbidden(err error) bool {
	return hasCategory(err, errors.CategoryAuthz)
}

// IsNotFound reports whether err represents a missing (or hidden) resource.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err) || hasCategory(err, errors.CategoryNotFound)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return hasTextCode(err, TextCodeConflict)
}

// IsInvalidState reports whether err is a lifecycle-state violation.
func IsInvalidState(err error) bool {
	return hasTextCode(err, TextCodeInvalidState)
}

// IsValidation reports whether err is a locally detectable input problem.
func IsValidation(err error) bool {
	return hasCategory(err, errors.CategoryValidation)
}

func hasCategory(err error, category errors.Category) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.Category == category
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}
