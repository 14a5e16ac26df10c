package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/careerdesk/jobboard/internal/clients/boards"
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	defaultTitle          = "Untitled Position"
	defaultCompany        = "Unknown Company"
	defaultLocation       = "Remote"
	defaultEmploymentType = "Full-time"
	defaultCategory       = "Other"
)

// Formats seen in upstream feeds, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// Normalizer is the only conversion boundary between raw upstream records
// and canonical jobs. Malformed fields resolve to safe defaults; a record
// that cannot be salvaged at all is dropped, never surfaced.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeBatch converts a fetched batch, dropping records that fail to
// decode. It never returns an error; the result may be shorter than the
// input.
func (n *Normalizer) NormalizeBatch(raws []json.RawMessage) []models.Job {

	jobs := make([]models.Job, 0, len(raws))
	for _, raw := range raws {
		job, ok := n.normalizeOne(raw)
		if !ok {
			metrics.DroppedRecordsCounter.Inc()
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func (n *Normalizer) normalizeOne(raw json.RawMessage) (job models.Job, ok bool) {

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("dropping upstream record after panic: %v", r)
			ok = false
		}
	}()

	var record boards.RawJob
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Errorf("dropping undecodable upstream record: %v", err)
		return models.Job{}, false
	}

	return n.Normalize(record), true
}

// Normalize maps one raw record onto the canonical schema. Every field ends
// up non-null: strings get named defaults, timestamps fall back to now (or
// nil for the deadline), numbers to nil or 1.
func (n *Normalizer) Normalize(raw boards.RawJob) models.Job {

	now := time.Now().UTC()

	job := models.Job{
		ID:                  coerceID(raw.ID),
		Title:               stringOrDefault(raw.Title, defaultTitle),
		Description:         strings.TrimSpace(raw.Description),
		Company:             stringOrDefault(raw.Company, defaultCompany),
		Location:            stringOrDefault(raw.Location, defaultLocation),
		SalaryFrom:          coerceSalary(raw.SalaryFrom),
		SalaryTo:            coerceSalary(raw.SalaryTo),
		EmploymentType:      stringOrDefault(raw.EmploymentType, defaultEmploymentType),
		JobCategory:         stringOrDefault(raw.JobCategory, defaultCategory),
		IsRemoteWork:        coerceBool(raw.IsRemoteWork),
		NumberOfOpenings:    coerceOpenings(raw.NumberOfOpenings),
		Qualifications:      coerceQualifications(raw.Qualifications),
		Contact:             strings.TrimSpace(raw.Contact),
		ApplicationDeadline: coerceTime(raw.ApplicationDeadline),
		CreatedAt:           timeOrDefault(raw.CreatedAt, now),
		UpdatedAt:           timeOrDefault(raw.UpdatedAt, now),
		Source:              models.SourceAPI,
	}

	if job.ID == "" {
		job.ID = newListingID(models.SourceAPI)
	}
	return job
}

func stringOrDefault(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

// coerceID accepts upstream ids that arrive as strings or numbers.
func coerceID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var num int64
	if err := json.Unmarshal(raw, &num); err == nil {
		return strconv.FormatInt(num, 10)
	}
	return ""
}

func coerceInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v, true
		}
	}
	return 0, false
}

func coerceSalary(raw json.RawMessage) *int {
	v, ok := coerceInt(raw)
	if !ok || v < 0 {
		return nil
	}
	return &v
}

func coerceOpenings(raw json.RawMessage) int {
	v, ok := coerceInt(raw)
	if !ok || v < 1 {
		return 1
	}
	return v
}

func coerceBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

// coerceQualifications accepts a JSON array of strings, or a string whose
// contents are such an array. Anything else normalizes to an empty list.
func coerceQualifications(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return compactStrings(list)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return compactStrings(list)
		}
	}
	return []string{}
}

func compactStrings(list []string) []string {
	result := lo.Filter(list, func(item string, _ int) bool {
		return strings.TrimSpace(item) != ""
	})
	if result == nil {
		return []string{}
	}
	return result
}

func coerceTime(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return &t
		}
	}
	return nil
}

func timeOrDefault(raw json.RawMessage, fallback time.Time) time.Time {
	if t := coerceTime(raw); t != nil {
		return *t
	}
	return fallback
}

func newListingID(source models.Source) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%d_%s", source, time.Now().UnixMilli(), hex.EncodeToString(buf))
}
