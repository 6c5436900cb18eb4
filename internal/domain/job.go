package domain

import "time"

// RawJobPosting is one posting exactly as a connector saw it. Immutable
// input to the builder; required keys are Source, SourceJobID, CompanyID
// and LocationRaw.
type RawJobPosting struct {
	Source         string // greenhouse/lever
	SourceJobID    string
	Title          string
	Description    string
	LocationRaw    string
	Department     string
	EmploymentType string
	DatePosted     *time.Time
	CompanyName    string
	CompanyID      string
	JobURL         string
}

// CanonicalJobRecord is the normalized, enriched, US-accepted form of one
// posting. Every record in a canonical partition passed the US location
// predicate.
type CanonicalJobRecord struct {
	Source         string     `json:"source"`
	SourceJobID    string     `json:"source_job_id"`
	JobURL         string     `json:"job_url"`
	CompanyName    string     `json:"company_name"`
	CompanyID      string     `json:"company_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Department     string     `json:"department,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	LocationRaw    string     `json:"location_raw"`
	City           string     `json:"city,omitempty"`
	State          string     `json:"state,omitempty"` // 2-letter code
	PostalCode     string     `json:"postal_code,omitempty"`
	MSA            string     `json:"msa,omitempty"`
	IsRemote       bool       `json:"is_remote"`
	Country        string     `json:"country"` // always "US"
	DatePosted     *time.Time `json:"date_posted,omitempty"`
	ScrapeTS       time.Time  `json:"scrape_ts"`
	RoleFamily     string     `json:"role_family,omitempty"`
	Skills         []string   `json:"skills"`
	IndustryTag    string     `json:"industry_tag,omitempty"`
	RunDate        string     `json:"run_date"` // YYYY-MM-DD partition key
	JobKey         string     `json:"job_key"`
}

// Reject reason codes. Every rejected posting carries exactly one.
const (
	ReasonNonUS           = "non-US"
	ReasonAmbiguous       = "ambiguous"
	ReasonMissingRequired = "missing-required"
	ReasonTransformError  = "transform-error"
)

// RejectRecord is the audit trail for a posting that was not canonicalized.
// Rejects are written alongside partitions, never merged into them.
type RejectRecord struct {
	Source      string `json:"source"`
	SourceJobID string `json:"source_job_id"`
	CompanyName string `json:"company_name"`
	LocationRaw string `json:"location_raw"`
	Reason      string `json:"reason"`
	Detail      string `json:"detail,omitempty"`
	RunDate     string `json:"run_date"`
}
