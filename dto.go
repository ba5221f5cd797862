package jobboard

import (
	"time"

	"github.com/google/uuid"
)

// PublicJob is the search-surface projection of a posting. It carries the
// employer's display name but never the employer's id.
type PublicJob struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    string     `json:"requirements,omitempty"`
	Location        string     `json:"location"`
	Category        string     `json:"category,omitempty"`
	EmploymentType  string     `json:"employment_type,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	RemoteType      string     `json:"remote_type,omitempty"`
	Skills          string     `json:"skills,omitempty"`
	SalaryMin       *int       `json:"salary_min,omitempty"`
	SalaryMax       *int       `json:"salary_max,omitempty"`
	EmployerName    string     `json:"employer_name,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

func NewPublicJob(job *Job) *PublicJob {
	view := &PublicJob{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Location:        job.Location,
		Category:        job.Category,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ExperienceLevel,
		RemoteType:      job.RemoteType,
		Skills:          job.Skills,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		CreatedAt:       job.CreatedAt,
	}
	if job.Employer != nil {
		view.EmployerName = job.Employer.DisplayName()
	}
	return view
}

// ApplicationView decorates an application with the joined job title and
// applicant name when the relations were loaded.
type ApplicationView struct {
	ID            uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"job_id"`
	JobTitle      string            `json:"job_title,omitempty"`
	ApplicantName string            `json:"applicant_name,omitempty"`
	CoverLetter   string            `json:"cover_letter,omitempty"`
	ResumeURL     string            `json:"resume_url,omitempty"`
	Status        ApplicationStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	AppliedAt     *time.Time        `json:"applied_at,omitempty"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

func NewApplicationView(app *Application) *ApplicationView {
	view := &ApplicationView{
		ID:          app.ID,
		JobID:       app.JobID,
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
		Status:      app.Status,
		Notes:       app.Notes,
		AppliedAt:   app.AppliedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Job != nil {
		view.JobTitle = app.Job.Title
	}
	if app.Applicant != nil {
		view.ApplicantName = app.Applicant.DisplayName()
	}
	return view
}

// ProfileView is a user record safe to hand back to its owner.
type ProfileView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        UserRole   `json:"role"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	CompanyName string     `json:"company_name,omitempty"`
	Phone       string     `json:"phone_number,omitempty"`
	ResumeURL   string     `json:"resume_url,omitempty"`
	LinkedinURL string     `json:"linkedin_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func NewProfileView(user *User) *ProfileView {
	return &ProfileView{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		CompanyName: user.CompanyName,
		Phone:       user.Phone,
		ResumeURL:   user.ResumeURL,
		LinkedinURL: user.LinkedinURL,
		CreatedAt:   user.CreatedAt,
	}
}
