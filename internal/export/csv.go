// Package export writes the dataset views to CSV for BI consumption.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/store"
)

func WriteJobsCSV(path string, records []domain.CanonicalJobRecord) error {
	w, f, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{
		"job_key", "run_date", "source", "source_job_id", "job_url",
		"company_name", "company_id", "title", "department",
		"employment_type", "location_raw", "city", "state", "postal_code",
		"msa", "is_remote", "country", "date_posted", "scrape_ts",
		"role_family", "skills", "industry_tag",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		datePosted := ""
		if r.DatePosted != nil {
			datePosted = r.DatePosted.UTC().Format("2006-01-02")
		}
		row := []string{
			r.JobKey, r.RunDate, r.Source, r.SourceJobID, r.JobURL,
			r.CompanyName, r.CompanyID, r.Title, r.Department,
			r.EmploymentType, r.LocationRaw, r.City, r.State, r.PostalCode,
			r.MSA, strconv.FormatBool(r.IsRemote), r.Country, datePosted,
			r.ScrapeTS.UTC().Format(time.RFC3339),
			r.RoleFamily, strings.Join(r.Skills, ";"), r.IndustryTag,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteRejectsCSV(path string, rejects []domain.RejectRecord) error {
	w, f, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{"run_date", "source", "source_job_id", "company_name", "location_raw", "reason", "detail"}); err != nil {
		return err
	}
	for _, r := range rejects {
		if err := w.Write([]string{r.RunDate, r.Source, r.SourceJobID, r.CompanyName, r.LocationRaw, r.Reason, r.Detail}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteCountsCSV(path, labelHeader string, rows []store.CountRow) error {
	w, f, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{labelHeader, "jobs"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Label, strconv.Itoa(r.Jobs)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WritePairCountsCSV(path, groupHeader, labelHeader string, rows []store.PairCountRow) error {
	w, f, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{groupHeader, labelHeader, "jobs"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Group, r.Label, strconv.Itoa(r.Jobs)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func openCSV(path string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return csv.NewWriter(f), f, nil
}
