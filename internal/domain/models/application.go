package models

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "pending"
	StatusReviewed     ApplicationStatus = "reviewed"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusHired        ApplicationStatus = "hired"
	StatusRejected     ApplicationStatus = "rejected"
)

func ToApplicationStatus(s string) (ApplicationStatus, error) {
	switch s {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusReviewed):
		return StatusReviewed, nil
	case string(StatusInterviewing):
		return StatusInterviewing, nil
	case string(StatusHired):
		return StatusHired, nil
	case string(StatusRejected):
		return StatusRejected, nil
	default:
		return "", errors.New("invalid application status")
	}
}

// ApplicantDetails is the seeker-supplied part of an application.
type ApplicantDetails struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"coverLetter"`
}

// Application is a seeker's submission for a listing. JobTitle and Company
// are snapshots taken at apply time and do not track later listing edits.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	JobTitle    string            `json:"jobTitle"`
	Company     string            `json:"company"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	AppliedAt   time.Time         `json:"appliedAt"`
	Status      ApplicationStatus `json:"status"`
}
