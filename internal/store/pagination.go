package store

import (
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/events"
	"github.com/careerdesk/jobboard/internal/metrics"
)

// SetPage clamps n into [1, totalPages]. When the clamped value equals the
// current page nothing changes and no event fires.
func (s *Store) SetPage(n int) {

	s.mu.Lock()
	clamped := clampPage(n, s.totalPages())
	if clamped == s.page {
		s.mu.Unlock()
		return
	}
	s.page = clamped
	info := s.paginationInfo()
	s.mu.Unlock()

	metrics.StoreMutationsCounter.WithLabelValues("set_page").Inc()
	s.bus.Publish(events.PageChangedTopic, info)
}

// GetPaginatedJobs returns the current page slice of the filtered view.
func (s *Store) GetPaginatedJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := (s.page - 1) * s.itemsPerPage
	if start >= len(s.filtered) {
		return []models.Job{}
	}
	end := start + s.itemsPerPage
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	return append([]models.Job{}, s.filtered[start:end]...)
}

func (s *Store) GetPaginationInfo() models.PaginationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginationInfo()
}

func (s *Store) paginationInfo() models.PaginationInfo {
	totalPages := s.totalPages()
	return models.PaginationInfo{
		CurrentPage:  s.page,
		ItemsPerPage: s.itemsPerPage,
		TotalItems:   len(s.filtered),
		TotalPages:   totalPages,
		HasPrevPage:  s.page > 1,
		HasNextPage:  s.page < totalPages,
	}
}

// totalPages is never below 1, so page 1 of an empty view stays valid.
func (s *Store) totalPages() int {
	pages := (len(s.filtered) + s.itemsPerPage - 1) / s.itemsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func clampPage(n, totalPages int) int {
	if n < 1 {
		return 1
	}
	if n > totalPages {
		return totalPages
	}
	return n
}
