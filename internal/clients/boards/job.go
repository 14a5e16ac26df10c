package boards

import "encoding/json"

// RawJob is the wire shape of one upstream listing. The upstream feed is not
// consistent about field types, so everything that has been observed as
// string-or-number-or-garbage is kept as raw JSON and coerced by the
// normalizer. No RawJob ever reaches the store un-normalized.
type RawJob struct {
	ID                  json.RawMessage `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Company             string          `json:"company"`
	Location            string          `json:"location"`
	SalaryFrom          json.RawMessage `json:"salary_from"`
	SalaryTo            json.RawMessage `json:"salary_to"`
	EmploymentType      string          `json:"employment_type"`
	JobCategory         string          `json:"job_category"`
	IsRemoteWork        json.RawMessage `json:"is_remote_work"`
	NumberOfOpenings    json.RawMessage `json:"number_of_opening"`
	Qualifications      json.RawMessage `json:"qualifications"`
	Contact             string          `json:"contact"`
	ApplicationDeadline json.RawMessage `json:"application_deadline"`
	CreatedAt           json.RawMessage `json:"created_at"`
	UpdatedAt           json.RawMessage `json:"updated_at"`
}
