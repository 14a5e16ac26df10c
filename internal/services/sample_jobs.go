package services

import (
	"time"

	"github.com/careerdesk/jobboard/internal/domain/models"
)

// sampleJobs is the built-in fallback batch used when the boards API is
// unreachable.
func sampleJobs() []models.Job {

	now := time.Now().UTC()
	days := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	return []models.Job{
		{
			ID:               "mock_1",
			Title:            "Backend Engineer",
			Description:      "Design and operate Go services for a high-traffic marketplace.",
			Company:          "Northwind Labs",
			Location:         "Berlin",
			SalaryFrom:       intPtr(65000),
			SalaryTo:         intPtr(85000),
			EmploymentType:   "Full-time",
			JobCategory:      "Engineering",
			IsRemoteWork:     true,
			NumberOfOpenings: 2,
			Qualifications:   []string{"Go", "PostgreSQL", "Kubernetes"},
			Contact:          "jobs@northwindlabs.example",
			CreatedAt:        days(1),
			UpdatedAt:        days(1),
			Source:           models.SourceMock,
		},
		{
			ID:               "mock_2",
			Title:            "Frontend Developer",
			Description:      "Build accessible interfaces for our hiring platform.",
			Company:          "Brighthire",
			Location:         "Amsterdam",
			SalaryFrom:       intPtr(52000),
			SalaryTo:         intPtr(68000),
			EmploymentType:   "Full-time",
			JobCategory:      "Engineering",
			IsRemoteWork:     false,
			NumberOfOpenings: 1,
			Qualifications:   []string{"TypeScript", "React"},
			Contact:          "talent@brighthire.example",
			CreatedAt:        days(2),
			UpdatedAt:        days(2),
			Source:           models.SourceMock,
		},
		{
			ID:               "mock_3",
			Title:            "Product Designer",
			Description:      "Own the end-to-end design of seeker-facing flows.",
			Company:          "Crafted",
			Location:         "Remote",
			EmploymentType:   "Contract",
			JobCategory:      "Design",
			IsRemoteWork:     true,
			NumberOfOpenings: 1,
			Qualifications:   []string{"Figma", "Prototyping"},
			Contact:          "hello@crafted.example",
			CreatedAt:        days(3),
			UpdatedAt:        days(3),
			Source:           models.SourceMock,
		},
		{
			ID:               "mock_4",
			Title:            "Data Analyst",
			Description:      "Turn hiring-funnel data into decisions.",
			Company:          "Metricful",
			Location:         "London",
			SalaryFrom:       intPtr(48000),
			SalaryTo:         intPtr(60000),
			EmploymentType:   "Full-time",
			JobCategory:      "Data",
			IsRemoteWork:     false,
			NumberOfOpenings: 1,
			Qualifications:   []string{"SQL", "Python", "dbt"},
			Contact:          "careers@metricful.example",
			CreatedAt:        days(5),
			UpdatedAt:        days(4),
			Source:           models.SourceMock,
		},
		{
			ID:               "mock_5",
			Title:            "Engineering Manager",
			Description:      "Lead a team of six building recruiter tooling.",
			Company:          "Northwind Labs",
			Location:         "Berlin",
			SalaryFrom:       intPtr(95000),
			SalaryTo:         intPtr(115000),
			EmploymentType:   "Full-time",
			JobCategory:      "Engineering",
			IsRemoteWork:     true,
			NumberOfOpenings: 1,
			Qualifications:   []string{"People management", "Go", "Agile delivery"},
			Contact:          "jobs@northwindlabs.example",
			CreatedAt:        days(7),
			UpdatedAt:        days(6),
			Source:           models.SourceMock,
		},
	}
}

func intPtr(v int) *int {
	return &v
}
