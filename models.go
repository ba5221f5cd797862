package jobboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// JobStatus gates whether a posting accepts new applications.
type JobStatus string

const (
	// JobStatusActive accepts applications and shows up in public listings.
	JobStatusActive JobStatus = "active"
	// JobStatusClosed is visible to its owner but accepts no applications.
	JobStatusClosed JobStatus = "closed"
	// JobStatusDraft has not been published yet.
	JobStatusDraft JobStatus = "draft"
)

// IsValid checks if the status is one of the predefined job statuses
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	default:
		return false
	}
}

// ApplicationStatus is the lifecycle state of a single application.
type ApplicationStatus string

const (
	// ApplicationStatusPending is the initial state; content is editable.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusReviewed means the employer has looked at it.
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	// ApplicationStatusAccepted is an employer decision.
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	// ApplicationStatusRejected is an employer decision.
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsValid checks if the status is one of the predefined application statuses
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// User is the account model for seekers, employers, and admins
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"role,notnull" json:"role,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	CompanyName   string     `bun:"company_name" json:"company_name,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	ResumeURL     string     `bun:"resume_url" json:"resume_url,omitempty"`
	LinkedinURL   string     `bun:"linkedin_url" json:"linkedin_url,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// DisplayName is the name shown to other parties: company name for
// employers when present, otherwise the personal name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Role == RoleEmployer && u.CompanyName != "" {
		return u.CompanyName
	}
	return u.FirstName + " " + u.LastName
}

// Job is a posting owned by exactly one employer
type Job struct {
	bun.BaseModel   `bun:"table:jobs,alias:job"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	EmployerID      uuid.UUID  `bun:"employer_id,notnull,type:uuid" json:"employer_id,omitempty"`
	Employer        *User      `bun:"rel:belongs-to,join:employer_id=id" json:"employer,omitempty"`
	Title           string     `bun:"title,notnull" json:"title,omitempty"`
	Description     string     `bun:"description,notnull" json:"description,omitempty"`
	Requirements    string     `bun:"requirements" json:"requirements,omitempty"`
	Location        string     `bun:"location,notnull" json:"location,omitempty"`
	Category        string     `bun:"category" json:"category,omitempty"`
	EmploymentType  string     `bun:"employment_type" json:"employment_type,omitempty"`
	ExperienceLevel string     `bun:"experience_level" json:"experience_level,omitempty"`
	RemoteType      string     `bun:"remote_type" json:"remote_type,omitempty"`
	Skills          string     `bun:"skills_required" json:"skills_required,omitempty"`
	SalaryMin       *int       `bun:"salary_min" json:"salary_min,omitempty"`
	SalaryMax       *int       `bun:"salary_max" json:"salary_max,omitempty"`
	Status          JobStatus  `bun:"status,notnull,default:'active'" json:"status,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Application ties one applicant to one job. The (job_id, applicant_id)
// pair is unique at the storage level; see CreateSchema.
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:app"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	JobID         uuid.UUID         `bun:"job_id,notnull,type:uuid,unique:job_applicant" json:"job_id,omitempty"`
	Job           *Job              `bun:"rel:belongs-to,join:job_id=id" json:"job,omitempty"`
	ApplicantID   uuid.UUID         `bun:"applicant_id,notnull,type:uuid,unique:job_applicant" json:"applicant_id,omitempty"`
	Applicant     *User             `bun:"rel:belongs-to,join:applicant_id=id" json:"applicant,omitempty"`
	CoverLetter   string            `bun:"cover_letter" json:"cover_letter,omitempty"`
	ResumeURL     string            `bun:"resume_url" json:"resume_url,omitempty"`
	Status        ApplicationStatus `bun:"status,notnull,default:'pending'" json:"status,omitempty"`
	Notes         string            `bun:"notes" json:"notes,omitempty"`
	AppliedAt     *time.Time        `bun:"applied_at,nullzero,default:current_timestamp" json:"applied_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
