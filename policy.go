package jobboard

// Authorization policy: pure decision functions over a resolved principal.
// Decisions are computed fresh on every call; ownership facts are never
// cached across requests. The boolean deciders never error; the Require*
// gates translate a denial into the taxonomy (unauthenticated for the
// anonymous caller, forbidden for an authenticated one). Services that look
// resources up by owner fold "exists but not yours" into not-found instead,
// so a denial never confirms that a hidden resource exists.

// CanActAsSeeker reports whether the principal passes a job-seeker gate.
func CanActAsSeeker(p *Principal) bool {
	return p != nil && p.Role.Satisfies(RoleJobSeeker)
}

// CanActAsEmployer reports whether the principal passes an employer gate.
func CanActAsEmployer(p *Principal) bool {
	return p != nil && p.Role.Satisfies(RoleEmployer)
}

// CanActAsAdmin reports whether the principal passes an admin-only gate.
func CanActAsAdmin(p *Principal) bool {
	return p != nil && p.Role == RoleAdmin
}

// OwnsJob reports whether the principal may mutate the given job.
func OwnsJob(p *Principal, job *Job) bool {
	if p == nil || job == nil {
		return false
	}
	if !p.Role.Satisfies(RoleEmployer) {
		return false
	}
	return p.Role == RoleAdmin || job.EmployerID == p.ID
}

// OwnsApplicationAsApplicant reports whether the principal is the applicant
// behind the application.
func OwnsApplicationAsApplicant(p *Principal, app *Application) bool {
	if p == nil || app == nil {
		return false
	}
	return app.ApplicantID == p.ID
}

// OwnsApplicationAsEmployer reports whether the principal owns the job the
// application targets.
func OwnsApplicationAsEmployer(p *Principal, app *Application, job *Job) bool {
	if p == nil || app == nil || job == nil {
		return false
	}
	if job.ID != app.JobID {
		return false
	}
	return p.Role == RoleAdmin || job.EmployerID == p.ID
}

// RequireSeeker gates an operation on the job-seeker role.
func RequireSeeker(p *Principal) error {
	return requireRole(p, RoleJobSeeker)
}

// RequireEmployer gates an operation on the employer role.
func RequireEmployer(p *Principal) error {
	return requireRole(p, RoleEmployer)
}

// RequireAdmin gates an operation on the admin role.
func RequireAdmin(p *Principal) error {
	return requireRole(p, RoleAdmin)
}

// RequireAuthenticated gates an operation on having any principal at all.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	return nil
}

func requireRole(p *Principal, required UserRole) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !p.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}
