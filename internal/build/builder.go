// Package build turns raw postings into canonical records. The builder is
// a pure function of (posting, rule tables, run date, clock): no record is
// emitted for a rejected posting, and duplicate job identities within a
// batch collapse to their first occurrence.
package build

import (
	"fmt"
	"log"
	"strings"
	"time"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/enrich"
	"jobintel-engine/internal/hashing"
	"jobintel-engine/internal/rules"
	"jobintel-engine/internal/util"
)

type Builder struct {
	Taxonomy rules.Taxonomy
	Lexicon  rules.Lexicon
	Industry rules.IndustryRules
	Now      func() time.Time // defaults to time.Now

	// AcceptAmbiguous treats location-ambiguous postings ("Remote" with no
	// country signal) as US instead of rejecting them. Off by default;
	// explicit non-US signals are rejected either way.
	AcceptAmbiguous bool
}

func (b Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now().UTC()
}

// Build canonicalizes one posting. Exactly one of the returns is set: a
// record when the posting is accepted, a reject (with reason code) when it
// is not. Location is classified first so no enrichment is wasted on
// non-US postings. A missing company_id is derived from the company name;
// only a posting lacking both is rejected as missing-required, since the
// derivation is the same one connectors use.
func (b Builder) Build(p domain.RawJobPosting, runDate string) (domain.CanonicalJobRecord, *domain.RejectRecord) {
	if reason := missingRequired(p); reason != "" {
		return domain.CanonicalJobRecord{}, &domain.RejectRecord{
			Source:      p.Source,
			SourceJobID: p.SourceJobID,
			CompanyName: p.CompanyName,
			LocationRaw: p.LocationRaw,
			Reason:      domain.ReasonMissingRequired,
			Detail:      reason,
			RunDate:     runDate,
		}
	}

	loc := enrich.ClassifyLocation(p.LocationRaw)
	if !loc.Accepted && b.AcceptAmbiguous && loc.Reason == domain.ReasonAmbiguous {
		loc.Accepted = true
		loc.Country = "US"
		loc.Reason = ""
	}
	if !loc.Accepted {
		return domain.CanonicalJobRecord{}, &domain.RejectRecord{
			Source:      p.Source,
			SourceJobID: p.SourceJobID,
			CompanyName: p.CompanyName,
			LocationRaw: p.LocationRaw,
			Reason:      loc.Reason,
			RunDate:     runDate,
		}
	}

	companyID := p.CompanyID
	if companyID == "" {
		companyID = hashing.CompanyID(p.CompanyName, "")
	}

	desc := util.CleanText(p.Description)
	return domain.CanonicalJobRecord{
		Source:         p.Source,
		SourceJobID:    p.SourceJobID,
		JobURL:         p.JobURL,
		CompanyName:    p.CompanyName,
		CompanyID:      companyID,
		Title:          util.CleanText(p.Title),
		Description:    desc,
		Department:     p.Department,
		EmploymentType: p.EmploymentType,
		LocationRaw:    p.LocationRaw,
		City:           loc.City,
		State:          loc.State,
		PostalCode:     loc.PostalCode,
		MSA:            loc.MSA,
		IsRemote:       loc.IsRemote,
		Country:        "US",
		DatePosted:     p.DatePosted,
		ScrapeTS:       b.now(),
		RoleFamily:     enrich.ClassifyRole(p.Title, desc, b.Taxonomy),
		Skills:         enrich.ExtractSkills(p.Title, desc, b.Lexicon),
		IndustryTag:    enrich.TagIndustry(p.CompanyName, desc, b.Industry),
		RunDate:        runDate,
		JobKey:         hashing.JobKey(p.Source, p.SourceJobID, companyID),
	}, nil
}

// BuildAll canonicalizes a batch. A failure in one posting never aborts the
// batch: panics are recovered and recorded as transform-error rejects.
// Records sharing a job_key within the batch collapse to the first
// occurrence, so a posting a connector delivered twice is stored once.
func (b Builder) BuildAll(postings []domain.RawJobPosting, runDate string) (records []domain.CanonicalJobRecord, rejects []domain.RejectRecord) {
	seen := make(map[string]bool, len(postings))
	duplicates := 0
	for _, p := range postings {
		rec, rej := b.buildSafe(p, runDate)
		if rej != nil {
			if rej.Reason == domain.ReasonTransformError {
				log.Printf("[build:%s] transform error id=%q: %s", p.Source, p.SourceJobID, rej.Detail)
			}
			rejects = append(rejects, *rej)
			continue
		}
		if seen[rec.JobKey] {
			duplicates++
			continue
		}
		seen[rec.JobKey] = true
		records = append(records, rec)
	}
	if duplicates > 0 {
		log.Printf("[build] dropped %d duplicate job_key postings, %d unique remain", duplicates, len(records))
	}
	return records, rejects
}

func (b Builder) buildSafe(p domain.RawJobPosting, runDate string) (rec domain.CanonicalJobRecord, rej *domain.RejectRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = domain.CanonicalJobRecord{}
			rej = &domain.RejectRecord{
				Source:      p.Source,
				SourceJobID: p.SourceJobID,
				CompanyName: p.CompanyName,
				LocationRaw: p.LocationRaw,
				Reason:      domain.ReasonTransformError,
				Detail:      fmt.Sprint(r),
				RunDate:     runDate,
			}
		}
	}()
	return b.Build(p, runDate)
}

func missingRequired(p domain.RawJobPosting) string {
	var missing []string
	if strings.TrimSpace(p.Source) == "" {
		missing = append(missing, "source")
	}
	if strings.TrimSpace(p.SourceJobID) == "" {
		missing = append(missing, "source_job_id")
	}
	if strings.TrimSpace(p.CompanyID) == "" && strings.TrimSpace(p.CompanyName) == "" {
		missing = append(missing, "company_id")
	}
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.LocationRaw) == "" {
		missing = append(missing, "location_raw")
	}
	if len(missing) == 0 {
		return ""
	}
	return "missing " + strings.Join(missing, ", ")
}
