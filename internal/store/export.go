package store

import (
	"encoding/json"
	"time"

	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/events"
	"github.com/careerdesk/jobboard/internal/logger"
	"github.com/careerdesk/jobboard/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

func (s *Store) GetStats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Stats{
		TotalJobs:         len(s.jobs),
		FilteredJobs:      len(s.filtered),
		TotalApplications: len(s.applications),
		UserJobs:          len(s.userJobs),
		SavedJobs:         len(s.savedJobIDs),
	}
}

// ExportData captures the full durable state for backup.
func (s *Store) ExportData() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		UserRole:     s.role,
		Applications: append([]models.Application{}, s.applications...),
		UserJobs:     append([]models.Job{}, s.userJobs...),
		SavedJobs:    append([]string{}, s.savedJobIDs...),
		Theme:        s.theme,
		Filters:      s.filters,
		ExportedAt:   time.Now().UTC(),
	}
}

// importPayload mirrors models.Snapshot with pointer fields so absent keys
// can be told apart from present-but-zero ones.
type importPayload struct {
	UserRole     *models.Role          `json:"userRole"`
	Applications *[]models.Application `json:"applications"`
	UserJobs     *[]models.Job         `json:"userJobs"`
	SavedJobs    *[]string             `json:"savedJobs"`
	Theme        *string               `json:"theme"`
	Filters      *models.FilterState   `json:"filters"`
}

// ImportData restores a backup. Each present top-level field is applied
// independently; absent fields keep their current value. Any failure aborts
// the import and is reported through the returned error.
func (s *Store) ImportData(raw []byte) error {

	var payload importPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).Errorf("import failed: %v", err)
		return errors.Wrap(err, "malformed backup")
	}

	if payload.UserRole != nil && *payload.UserRole != "" {
		if _, err := models.ToRole(string(*payload.UserRole)); err != nil {
			return errors.Wrapf(ErrInvalidRole, "%v", *payload.UserRole)
		}
	}

	s.mu.Lock()
	if payload.UserRole != nil {
		s.role = *payload.UserRole
		s.persist.write(keyUserRole, s.role)
	}
	if payload.Applications != nil {
		s.applications = *payload.Applications
		s.persist.write(keyApplications, s.applications)
	}
	if payload.UserJobs != nil {
		s.userJobs = *payload.UserJobs
		fetched := lo.Filter(s.jobs, func(job models.Job, _ int) bool {
			return job.Source != models.SourceUser
		})
		s.jobs = append(fetched, s.userJobs...)
		s.persist.write(keyUserJobs, s.userJobs)
	}
	if payload.SavedJobs != nil {
		s.savedJobIDs = *payload.SavedJobs
		s.persist.write(keySavedJobs, s.savedJobIDs)
	}
	if payload.Theme != nil {
		s.theme = *payload.Theme
		s.persist.write(keyTheme, s.theme)
	}
	if payload.Filters != nil {
		s.filters = *payload.Filters
		s.page = 1
		s.persist.write(keyFilters, s.filters)
	}
	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("import_data").Inc()
	s.bus.Publish(events.DataImportedTopic, raw)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
	return nil
}

// ClearData wipes all durable state and resets filters and pagination.
// Fetched listings stay until the next refresh replaces them.
func (s *Store) ClearData() {

	s.mu.Lock()
	s.role = ""
	s.applications = nil
	s.savedJobIDs = nil
	s.theme = "light"
	s.filters = models.DefaultFilters()
	s.page = 1
	s.userJobs = nil
	s.jobs = lo.Filter(s.jobs, func(job models.Job, _ int) bool {
		return job.Source != models.SourceUser
	})

	for _, key := range []string{keyUserRole, keyApplications, keyUserJobs, keySavedJobs, keyTheme, keyFilters} {
		s.persist.remove(key)
	}

	s.recompute()
	filtered := s.filteredCopy()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("clear_data").Inc()
	s.bus.Publish(events.DataClearedTopic)
	s.bus.Publish(events.JobsUpdatedTopic, filtered)
}
