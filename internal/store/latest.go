package store

import (
	"context"
	"fmt"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/snapshot"
)

// ScanByJobKey streams every canonical row in job_key order into fn. The
// secondary ordering (run_date desc, scrape_ts desc, job_url asc) matches
// the snapshot tie-break so a merger fed from this scan sees each group's
// winner first; correctness does not depend on it, only determinism does.
func (d *DB) ScanByJobKey(ctx context.Context, fn func(domain.CanonicalJobRecord) error) error {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
ORDER BY job_key ASC, run_date DESC, scrape_ts DESC, job_url ASC;`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LatestSnapshot reduces the full history to one record per job_key,
// keeping the most recent observation. Recomputed from scratch on every
// call; cost is O(total historical records).
func (d *DB) LatestSnapshot(ctx context.Context) ([]domain.CanonicalJobRecord, error) {
	var out []domain.CanonicalJobRecord
	m := snapshot.NewMerger(func(rec domain.CanonicalJobRecord) error {
		out = append(out, rec)
		return nil
	})

	if err := d.ScanByJobKey(ctx, m.Add); err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	if err := m.Flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// Partition returns the canonical records of one (run_date, source).
func (d *DB) Partition(ctx context.Context, runDate, source string) ([]domain.CanonicalJobRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE run_date = ? AND source = ?
ORDER BY job_key;`, runDate, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CanonicalJobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
