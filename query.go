package jobboard

import (
	"strings"

	"github.com/uptrace/bun"
)

// JobFilter narrows a job search. All set filters apply conjunctively.
type JobFilter struct {
	// Keyword matches title, description, or the employer's company name,
	// case-insensitive substring.
	Keyword string
	// Category is an exact match.
	Category string
	// ExperienceLevel is an exact match.
	ExperienceLevel string
	// Location is a case-insensitive substring match.
	Location string
	// MinSalary keeps jobs whose salary_min is at least this value.
	MinSalary *int
	// MaxSalary keeps jobs whose salary_max is at most this value.
	MaxSalary *int
}

// Apply adds the filter's conditions to a jobs select query. The query must
// join the employer relation under the "employer" alias for the keyword
// filter to see company names.
func (f JobFilter) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.Keyword != "" {
		pattern := substringPattern(f.Keyword)
		q = q.Where(
			"(LOWER(job.title) LIKE ? OR LOWER(job.description) LIKE ? OR LOWER(COALESCE(employer.company_name, '')) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if f.Category != "" {
		q = q.Where("job.category = ?", f.Category)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("job.experience_level = ?", f.ExperienceLevel)
	}
	if f.Location != "" {
		q = q.Where("LOWER(job.location) LIKE ?", substringPattern(f.Location))
	}
	if f.MinSalary != nil {
		q = q.Where("job.salary_min >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("job.salary_max <= ?", *f.MaxSalary)
	}
	return q
}

func substringPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// Pagination selects a 1-indexed page of a result set.
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) normalize(defaultSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultSize
	}
	return p
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of a listing plus the totals callers need to render
// pagination controls. An out-of-range page has empty Items, not an error.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// MapPage converts a page's items while keeping its counters.
func MapPage[T, U any](page *Page[T], fn func(T) U) *Page[U] {
	out := &Page[U]{
		Items:   make([]U, len(page.Items)),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages,
	}
	for i, item := range page.Items {
		out.Items[i] = fn(item)
	}
	return out
}

func pageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
