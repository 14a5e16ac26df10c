package models

import (
	"errors"
	"time"
)

type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
)

func ToRole(s string) (Role, error) {
	switch s {
	case string(RoleSeeker):
		return RoleSeeker, nil
	case string(RoleRecruiter):
		return RoleRecruiter, nil
	default:
		return "", errors.New("invalid role")
	}
}

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortSalaryHigh SortKey = "salary_high"
	SortSalaryLow  SortKey = "salary_low"
)

// FilterState is the single active set of browse filters. Empty Category and
// Location mean "any".
type FilterState struct {
	Search     string  `json:"search"`
	Sort       SortKey `json:"sort"`
	RemoteOnly bool    `json:"remoteOnly"`
	Category   string  `json:"category"`
	Location   string  `json:"location"`
}

func DefaultFilters() FilterState {
	return FilterState{Sort: SortNewest}
}

// FilterPatch is a partial filter update; nil fields keep the current value.
type FilterPatch struct {
	Search     *string
	Sort       *SortKey
	RemoteOnly *bool
	Category   *string
	Location   *string
}

func (p FilterPatch) ApplyTo(f *FilterState) {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Sort != nil {
		f.Sort = *p.Sort
	}
	if p.RemoteOnly != nil {
		f.RemoteOnly = *p.RemoteOnly
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
}

type PaginationInfo struct {
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalItems   int  `json:"totalItems"`
	TotalPages   int  `json:"totalPages"`
	HasPrevPage  bool `json:"hasPrevPage"`
	HasNextPage  bool `json:"hasNextPage"`
}

type Stats struct {
	TotalJobs         int `json:"totalJobs"`
	FilteredJobs      int `json:"filteredJobs"`
	TotalApplications int `json:"totalApplications"`
	UserJobs          int `json:"userJobs"`
	SavedJobs         int `json:"savedJobs"`
}

// Snapshot is the full durable-state record written on export and expected
// on import.
type Snapshot struct {
	UserRole     Role          `json:"userRole"`
	Applications []Application `json:"applications"`
	UserJobs     []Job         `json:"userJobs"`
	SavedJobs    []string      `json:"savedJobs"`
	Theme        string        `json:"theme"`
	Filters      FilterState   `json:"filters"`
	ExportedAt   time.Time     `json:"exportedAt"`
}
