package store

import "github.com/pkg/errors"

// Caller-correctable misuse. These are the only errors mutation methods
// return; everything else is resolved internally and logged.
var (
	ErrDuplicateApplication = errors.New("an application for this job already exists")
	ErrJobNotFound          = errors.New("job not found")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidApplicant     = errors.New("invalid applicant details")
)
