package models

import "time"

// Source tells where a listing came from. Listings fetched from the boards
// API are ephemeral per session; user-posted listings are durable.
type Source string

const (
	SourceAPI  Source = "api"
	SourceUser Source = "user"
	SourceMock Source = "mock"
)

// Job is a canonical listing. Every Job held by the store has passed
// normalization; raw upstream shapes never leave the boards client.
type Job struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	SalaryFrom          *int       `json:"salary_from"`
	SalaryTo            *int       `json:"salary_to"`
	EmploymentType      string     `json:"employment_type"`
	JobCategory         string     `json:"job_category"`
	IsRemoteWork        bool       `json:"is_remote_work"`
	NumberOfOpenings    int        `json:"number_of_opening"`
	Qualifications      []string   `json:"qualifications"`
	Contact             string     `json:"contact"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Source              Source     `json:"source"`
}

// AverageSalary returns the midpoint of the salary range. The second return
// value is false when either bound is unspecified.
func (j Job) AverageSalary() (float64, bool) {
	if j.SalaryFrom == nil || j.SalaryTo == nil {
		return 0, false
	}
	return float64(*j.SalaryFrom+*j.SalaryTo) / 2, true
}

// JobDraft carries the recruiter-supplied fields of a new listing. The store
// fills in ID, timestamps and Source.
type JobDraft struct {
	Title               string
	Description         string
	Company             string
	Location            string
	SalaryFrom          *int
	SalaryTo            *int
	EmploymentType      string
	JobCategory         string
	IsRemoteWork        bool
	NumberOfOpenings    int
	Qualifications      []string
	Contact             string
	ApplicationDeadline *time.Time
}

// JobPatch is a partial update for an existing listing. Nil fields are left
// untouched; a nil Qualifications slice means "keep", an empty one clears.
type JobPatch struct {
	Title               *string
	Description         *string
	Company             *string
	Location            *string
	SalaryFrom          *int
	SalaryTo            *int
	EmploymentType      *string
	JobCategory         *string
	IsRemoteWork        *bool
	NumberOfOpenings    *int
	Qualifications      []string
	Contact             *string
	ApplicationDeadline *time.Time
}

func (p JobPatch) ApplyTo(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Company != nil {
		job.Company = *p.Company
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.SalaryFrom != nil {
		job.SalaryFrom = p.SalaryFrom
	}
	if p.SalaryTo != nil {
		job.SalaryTo = p.SalaryTo
	}
	if p.EmploymentType != nil {
		job.EmploymentType = *p.EmploymentType
	}
	if p.JobCategory != nil {
		job.JobCategory = *p.JobCategory
	}
	if p.IsRemoteWork != nil {
		job.IsRemoteWork = *p.IsRemoteWork
	}
	if p.NumberOfOpenings != nil {
		job.NumberOfOpenings = *p.NumberOfOpenings
	}
	if p.Qualifications != nil {
		job.Qualifications = p.Qualifications
	}
	if p.Contact != nil {
		job.Contact = *p.Contact
	}
	if p.ApplicationDeadline != nil {
		job.ApplicationDeadline = p.ApplicationDeadline
	}
}
