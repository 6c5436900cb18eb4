package domain

import "time"

// CompanySeed is one row of the seed list that drives targeted ingestion.
type CompanySeed struct {
	CompanyName string `yaml:"company_name"`
	CareersURL  string `yaml:"careers_url,omitempty"`
	ATSType     string `yaml:"ats_type"` // greenhouse/lever
	Slug        string `yaml:"slug"`
	IsPortfolio bool   `yaml:"is_portfolio,omitempty"`
}

// DiscoveredCompany is a board found by probing a careers page or domain.
type DiscoveredCompany struct {
	CompanyName     string
	CompanyDomain   string
	CareersURL      string
	ATSType         string // greenhouse/lever
	Slug            string
	DiscoveryMethod string // url_pattern/page_link
	DiscoveredAt    time.Time
}
