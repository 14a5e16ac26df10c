package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/events"
	"github.com/careerdesk/jobboard/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Store owns every board collection and is their only writer. The view
// layer mutates through the methods below and re-renders off the bus; no
// collection ever leaves the store by reference.
//
// Mutations run to completion (mutate, persist, recompute, notify) under the
// lock; events are published after the lock is released so subscribers can
// re-enter query methods.
type Store struct {
	mu       sync.Mutex
	bus      EventBus.Bus
	persist  *Persistence
	validate *validator.Validate

	itemsPerPage int

	jobs         []models.Job
	userJobs     []models.Job
	applications []models.Application
	savedJobIDs  []string
	filtered     []models.Job
	filters      models.FilterState
	page         int
	role         models.Role
	theme        string
}

// New builds a store and restores the durable collections. A missing or
// corrupt entry falls back to its default without affecting the others.
func New(bus EventBus.Bus, persist *Persistence, itemsPerPage int) *Store {

	s := &Store{
		bus:          bus,
		persist:      persist,
		validate:     validator.New(),
		itemsPerPage: itemsPerPage,
		filters:      models.DefaultFilters(),
		page:         1,
		theme:        "light",
	}

	persist.read(keyUserRole, &s.role)
	persist.read(keyApplications, &s.applications)
	persist.read(keyUserJobs, &s.userJobs)
	persist.read(keySavedJobs, &s.savedJobIDs)
	persist.read(keyTheme, &s.theme)
	persist.read(keyFilters, &s.filters)

	s.jobs = append([]models.Job{}, s.userJobs...)
	s.recompute()
	return s
}

// SetAllJobs replaces the fetched portion of the canonical collection and
// keeps user-posted listings browsable alongside it.
func (s *Store) SetAllJobs(jobs []models.Job) {
	s.mu.Lock()
	s.jobs = append(append([]models.Job{}, jobs...), s.userJobs...)
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("set_all_jobs").Inc()
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
}

// AddJob registers a recruiter-posted listing. Field presence is the
// caller's concern; the store assigns identity and timestamps.
func (s *Store) AddJob(draft models.JobDraft) models.Job {

	now := time.Now().UTC()
	job := models.Job{
		ID:                  newID(string(models.SourceUser)),
		Title:               draft.Title,
		Description:         draft.Description,
		Company:             draft.Company,
		Location:            draft.Location,
		SalaryFrom:          draft.SalaryFrom,
		SalaryTo:            draft.SalaryTo,
		EmploymentType:      draft.EmploymentType,
		JobCategory:         draft.JobCategory,
		IsRemoteWork:        draft.IsRemoteWork,
		NumberOfOpenings:    draft.NumberOfOpenings,
		Qualifications:      draft.Qualifications,
		Contact:             draft.Contact,
		ApplicationDeadline: draft.ApplicationDeadline,
		CreatedAt:           now,
		UpdatedAt:           now,
		Source:              models.SourceUser,
	}
	if job.NumberOfOpenings < 1 {
		job.NumberOfOpenings = 1
	}
	if job.Qualifications == nil {
		job.Qualifications = []string{}
	}

	s.mu.Lock()
	s.userJobs = append(s.userJobs, job)
	s.jobs = append(s.jobs, job)
	s.persist.write(keyUserJobs, s.userJobs)
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("add_job").Inc()
	s.bus.Publish(events.JobAddedTopic, job)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
	return job
}

// UpdateJob merges patch into the listing in both collections. An unknown id
// is a silent no-op; at least one caller path relies on that.
func (s *Store) UpdateJob(id string, patch models.JobPatch) {

	now := time.Now().UTC()
	s.mu.Lock()

	var updated *models.Job
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			patch.ApplyTo(&s.jobs[i])
			s.jobs[i].UpdatedAt = now
			updated = &s.jobs[i]
			break
		}
	}
	inUserJobs := false
	for i := range s.userJobs {
		if s.userJobs[i].ID == id {
			patch.ApplyTo(&s.userJobs[i])
			s.userJobs[i].UpdatedAt = now
			if updated == nil {
				updated = &s.userJobs[i]
			}
			inUserJobs = true
			break
		}
	}

	if updated == nil {
		s.mu.Unlock()
		return
	}

	job := *updated
	if inUserJobs {
		s.persist.write(keyUserJobs, s.userJobs)
	}
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("update_job").Inc()
	s.bus.Publish(events.JobUpdatedTopic, job)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
}

// DeleteJob removes the listing from both collections unconditionally.
func (s *Store) DeleteJob(id string) {

	s.mu.Lock()
	s.jobs = deleteByID(s.jobs, id)
	if removed := deleteByID(s.userJobs, id); len(removed) != len(s.userJobs) {
		s.userJobs = removed
		s.persist.write(keyUserJobs, s.userJobs)
	}
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("delete_job").Inc()
	s.bus.Publish(events.JobDeletedTopic, id)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
}

// ApplyForJob creates an application with a snapshot of the listing's title
// and company. At most one application per job per session.
func (s *Store) ApplyForJob(jobID string, details models.ApplicantDetails) (*models.Application, error) {

	if err := s.validate.Struct(details); err != nil {
		return nil, errors.Wrapf(ErrInvalidApplicant, "%v", err)
	}

	s.mu.Lock()

	for _, app := range s.applications {
		if app.JobID == jobID {
			s.mu.Unlock()
			return nil, errors.Wrapf(ErrDuplicateApplication, "job %v", jobID)
		}
	}

	job, found := s.jobByID(jobID)
	if !found {
		s.mu.Unlock()
		return nil, errors.Wrapf(ErrJobNotFound, "job %v", jobID)
	}

	application := models.Application{
		ID:          newID("app"),
		JobID:       jobID,
		JobTitle:    job.Title,
		Company:     job.Company,
		Name:        details.Name,
		Email:       details.Email,
		CoverLetter: details.CoverLetter,
		AppliedAt:   time.Now().UTC(),
		Status:      models.StatusPending,
	}
	s.applications = append(s.applications, application)
	s.persist.write(keyApplications, s.applications)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("apply_for_job").Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, application)
	return &application, nil
}

// UpdateApplicationStatus is a no-op for an unknown application id.
func (s *Store) UpdateApplicationStatus(appID string, status models.ApplicationStatus) {

	s.mu.Lock()
	var updated *models.Application
	for i := range s.applications {
		if s.applications[i].ID == appID {
			s.applications[i].Status = status
			updated = &s.applications[i]
			break
		}
	}
	if updated == nil {
		s.mu.Unlock()
		return
	}
	application := *updated
	s.persist.write(keyApplications, s.applications)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("update_application").Inc()
	s.bus.Publish(events.ApplicationUpdatedTopic, application)
}

// SaveJob bookmarks a listing. Saving an already-saved job changes nothing
// and fires no event.
func (s *Store) SaveJob(id string) {

	s.mu.Lock()
	for _, saved := range s.savedJobIDs {
		if saved == id {
			s.mu.Unlock()
			return
		}
	}
	s.savedJobIDs = append(s.savedJobIDs, id)
	s.persist.write(keySavedJobs, s.savedJobIDs)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("save_job").Inc()
	s.bus.Publish(events.JobSavedTopic, id)
}

func (s *Store) UnsaveJob(id string) {

	s.mu.Lock()
	index := -1
	for i, saved := range s.savedJobIDs {
		if saved == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return
	}
	s.savedJobIDs = append(s.savedJobIDs[:index], s.savedJobIDs[index+1:]...)
	s.persist.write(keySavedJobs, s.savedJobIDs)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("unsave_job").Inc()
	s.bus.Publish(events.JobUnsavedTopic, id)
}

// SetFilters merges a partial filter update and resets to the first page.
func (s *Store) SetFilters(patch models.FilterPatch) {

	s.mu.Lock()
	patch.ApplyTo(&s.filters)
	s.page = 1
	s.persist.write(keyFilters, s.filters)
	s.recompute()
	filters := s.filters
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("set_filters").Inc()
	s.bus.Publish(events.FiltersChangedTopic, filters)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
}

func (s *Store) SetRole(role models.Role) error {

	if _, err := models.ToRole(string(role)); err != nil {
		return errors.Wrapf(ErrInvalidRole, "%v", role)
	}

	s.mu.Lock()
	s.role = role
	s.persist.write(keyUserRole, s.role)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("set_role").Inc()
	s.bus.Publish(events.RoleChangedTopic, role)
	return nil
}

func (s *Store) SetTheme(theme string) {

	s.mu.Lock()
	s.theme = theme
	s.persist.write(keyTheme, s.theme)
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("set_theme").Inc()
	s.bus.Publish(events.ThemeChangedTopic, theme)
}

// RemoveExpiredListings drops fetched listings whose application deadline
// has passed. User-posted listings are left alone. Returns the number of
// removed listings.
func (s *Store) RemoveExpiredListings(now time.Time) int {

	s.mu.Lock()
	kept := s.jobs[:0:0]
	for _, job := range s.jobs {
		expired := job.Source == models.SourceAPI &&
			job.ApplicationDeadline != nil && job.ApplicationDeadline.Before(now)
		if !expired {
			kept = append(kept, job)
		}
	}
	removed := len(s.jobs) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.jobs = kept
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("remove_expired").Inc()
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
	return removed
}

func (s *Store) GetAllJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Job{}, s.jobs...)
}

// GetFilteredJobs returns the full filtered, sorted view without pagination.
func (s *Store) GetFilteredJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredCopy()
}

func (s *Store) GetJobByID(id string) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobByID(id)
}

func (s *Store) GetApplications() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Application{}, s.applications...)
}

func (s *Store) GetApplicationsForJob(jobID string) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Application
	for _, app := range s.applications {
		if app.JobID == jobID {
			result = append(result, app)
		}
	}
	return result
}

func (s *Store) GetUserJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Job{}, s.userJobs...)
}

// GetSavedJobs hydrates bookmarks into Job records, most recently saved
// first. Bookmarks whose listing is gone are skipped.
func (s *Store) GetSavedJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Job
	for i := len(s.savedJobIDs) - 1; i >= 0; i-- {
		if job, found := s.jobByID(s.savedJobIDs[i]); found {
			result = append(result, job)
		}
	}
	return result
}

func (s *Store) IsJobSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, saved := range s.savedJobIDs {
		if saved == id {
			return true
		}
	}
	return false
}

func (s *Store) HasApplied(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.applications {
		if app.JobID == jobID {
			return true
		}
	}
	return false
}

func (s *Store) GetFilters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) GetRole() models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Store) GetTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) jobByID(id string) (models.Job, bool) {
	for _, job := range s.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// recompute refreshes the filtered view and pulls the current page back into
// range when the view shrinks. Callers hold the lock.
func (s *Store) recompute() {
	s.filtered = applyFilters(s.jobs, s.filters)
	s.page = clampPage(s.page, s.totalPages())
}

func (s *Store) filteredCopy() []models.Job {
	return append([]models.Job{}, s.filtered...)
}

func deleteByID(jobs []models.Job, id string) []models.Job {
	for i, job := range jobs {
		if job.ID == id {
			return append(jobs[:i], jobs[i+1:]...)
		}
	}
	return jobs
}

func newID(prefix string) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}
