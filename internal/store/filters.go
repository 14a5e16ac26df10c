package store

import (
	"math"
	"sort"
	"strings"

	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/samber/lo"
)

// applyFilters produces the filtered, sorted view of jobs. Filters are
// conjunctive and the sort is stable, so equal-key jobs keep their
// canonical order.
func applyFilters(jobs []models.Job, f models.FilterState) []models.Job {

	search := strings.ToLower(strings.TrimSpace(f.Search))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	filtered := lo.Filter(jobs, func(job models.Job, _ int) bool {
		if search != "" && !matchesSearch(job, search) {
			return false
		}
		if f.RemoteOnly && !job.IsRemoteWork {
			return false
		}
		if f.Category != "" && job.JobCategory != f.Category {
			return false
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			return false
		}
		return true
	})

	sortJobs(filtered, f.Sort)
	return filtered
}

func matchesSearch(job models.Job, search string) bool {
	return strings.Contains(strings.ToLower(job.Title), search) ||
		strings.Contains(strings.ToLower(job.Company), search) ||
		strings.Contains(strings.ToLower(job.Description), search)
}

// Jobs without a full salary range sink to the bottom in both directions:
// their average counts as 0 under salary_high and +Inf under salary_low.
// The asymmetry is observed upstream behavior and is kept as is.
func sortJobs(jobs []models.Job, key models.SortKey) {
	switch key {
	case models.SortOldest:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
		})
	case models.SortSalaryHigh:
		sort.SliceStable(jobs, func(i, j int) bool {
			return salaryOrDefault(jobs[i], 0) > salaryOrDefault(jobs[j], 0)
		})
	case models.SortSalaryLow:
		sort.SliceStable(jobs, func(i, j int) bool {
			return salaryOrDefault(jobs[i], math.Inf(1)) < salaryOrDefault(jobs[j], math.Inf(1))
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		})
	}
}

func salaryOrDefault(job models.Job, missing float64) float64 {
	if avg, ok := job.AverageSalary(); ok {
		return avg
	}
	return missing
}
