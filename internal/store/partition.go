package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobintel-engine/internal/domain"
)

// Partitions are idempotent-overwrite: writing the same (run_date, source)
// twice leaves exactly the second write's rows, never duplicates. Each
// replace is one transaction, so an interrupted run leaves the prior
// partition contents intact.

type Partition struct {
	RunDate string `json:"run_date"`
	Source  string `json:"source"`
	Jobs    int    `json:"jobs"`
}

func (d *DB) ReplacePartition(ctx context.Context, runDate, source string, records []domain.CanonicalJobRecord) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM jobs WHERE run_date = ? AND source = ?;`,
		runDate, source,
	); err != nil {
		return fmt.Errorf("clear partition %s/%s: %w", runDate, source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs (
  run_date, source, source_job_id, job_url, company_name, company_id,
  title, description, department, employment_type, location_raw,
  city, state, postal_code, msa, is_remote, country,
  date_posted, scrape_ts, role_family, skills, industry_tag, job_key
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		skillsJSON, _ := json.Marshal(r.Skills)
		if r.Skills == nil {
			skillsJSON = []byte("[]")
		}
		var datePosted any
		if r.DatePosted != nil {
			datePosted = r.DatePosted.UTC().Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			runDate, source, r.SourceJobID, r.JobURL, r.CompanyName, r.CompanyID,
			r.Title, r.Description, r.Department, r.EmploymentType, r.LocationRaw,
			r.City, r.State, r.PostalCode, r.MSA, boolInt(r.IsRemote), r.Country,
			datePosted, r.ScrapeTS.UTC().Format(time.RFC3339Nano),
			r.RoleFamily, string(skillsJSON), r.IndustryTag, r.JobKey,
		); err != nil {
			return fmt.Errorf("insert job %s: %w", r.JobKey, err)
		}
	}

	return tx.Commit()
}

// ReplaceRejects overwrites the reject audit rows for one (run_date,
// source), mirroring the canonical partition discipline.
func (d *DB) ReplaceRejects(ctx context.Context, runDate, source string, rejects []domain.RejectRecord) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rejects WHERE run_date = ? AND source = ?;`,
		runDate, source,
	); err != nil {
		return fmt.Errorf("clear rejects %s/%s: %w", runDate, source, err)
	}

	for _, r := range rejects {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO rejects (run_date, source, source_job_id, company_name, location_raw, reason, detail)
VALUES (?,?,?,?,?,?,?);`,
			runDate, source, r.SourceJobID, r.CompanyName, r.LocationRaw, r.Reason, r.Detail,
		); err != nil {
			return fmt.Errorf("insert reject %s: %w", r.SourceJobID, err)
		}
	}

	return tx.Commit()
}

func (d *DB) ListPartitions(ctx context.Context) ([]Partition, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT run_date, source, COUNT(*)
FROM jobs
GROUP BY run_date, source
ORDER BY run_date, source;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Partition
	for rows.Next() {
		var p Partition
		if err := rows.Scan(&p.RunDate, &p.Source, &p.Jobs); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) Rejects(ctx context.Context, runDate string) ([]domain.RejectRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT run_date, source, source_job_id, company_name, location_raw, reason, detail
FROM rejects
WHERE run_date = ?
ORDER BY source, source_job_id;`, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RejectRecord
	for rows.Next() {
		var r domain.RejectRecord
		if err := rows.Scan(&r.RunDate, &r.Source, &r.SourceJobID, &r.CompanyName, &r.LocationRaw, &r.Reason, &r.Detail); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanJob(rows *sql.Rows) (domain.CanonicalJobRecord, error) {
	var (
		r          domain.CanonicalJobRecord
		isRemote   int
		datePosted sql.NullString
		scrapeTS   string
		skillsJSON string
	)
	if err := rows.Scan(
		&r.RunDate, &r.Source, &r.SourceJobID, &r.JobURL, &r.CompanyName, &r.CompanyID,
		&r.Title, &r.Description, &r.Department, &r.EmploymentType, &r.LocationRaw,
		&r.City, &r.State, &r.PostalCode, &r.MSA, &isRemote, &r.Country,
		&datePosted, &scrapeTS, &r.RoleFamily, &skillsJSON, &r.IndustryTag, &r.JobKey,
	); err != nil {
		return r, err
	}
	r.IsRemote = isRemote != 0
	if datePosted.Valid {
		if t, err := time.Parse(time.RFC3339, datePosted.String); err == nil {
			r.DatePosted = &t
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, scrapeTS); err == nil {
		r.ScrapeTS = t
	}
	_ = json.Unmarshal([]byte(skillsJSON), &r.Skills)
	return r, nil
}

const jobColumns = `
run_date, source, source_job_id, job_url, company_name, company_id,
title, description, department, employment_type, location_raw,
city, state, postal_code, msa, is_remote, country,
date_posted, scrape_ts, role_family, skills, industry_tag, job_key`
