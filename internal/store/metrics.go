package store

import "context"

// Aggregations for the per-run insight exports. Skills are stored as a
// JSON array per row and exploded with json_each.

type CountRow struct {
	Label string `json:"label"`
	Jobs  int    `json:"jobs"`
}

type PairCountRow struct {
	Group string `json:"group"`
	Label string `json:"label"`
	Jobs  int    `json:"jobs"`
}

type SummaryStats struct {
	RunDate      string `json:"run_date"`
	Jobs         int    `json:"jobs"`
	Companies    int    `json:"companies"`
	RemoteJobs   int    `json:"remote_jobs"`
	Rejects      int    `json:"rejects"`
	DistinctKeys int    `json:"distinct_keys"`
}

func (d *DB) TopSkills(ctx context.Context, runDate string, limit int) ([]CountRow, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT je.value, COUNT(*) AS n
FROM jobs, json_each(jobs.skills) AS je
WHERE run_date = ?
GROUP BY je.value
ORDER BY n DESC, je.value ASC
LIMIT ?;`, runDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCounts(rows)
}

func (d *DB) JobsByState(ctx context.Context, runDate string) ([]CountRow, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT state, COUNT(*) AS n
FROM jobs
WHERE run_date = ? AND state != ''
GROUP BY state
ORDER BY n DESC, state ASC;`, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCounts(rows)
}

func (d *DB) SkillsByRoleFamily(ctx context.Context, runDate string) ([]PairCountRow, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT role_family, je.value, COUNT(*) AS n
FROM jobs, json_each(jobs.skills) AS je
WHERE run_date = ? AND role_family != ''
GROUP BY role_family, je.value
ORDER BY role_family ASC, n DESC, je.value ASC;`, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairCounts(rows)
}

func (d *DB) RoleMixByIndustry(ctx context.Context, runDate string) ([]PairCountRow, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT industry_tag, role_family, COUNT(*) AS n
FROM jobs
WHERE run_date = ? AND industry_tag != '' AND role_family != ''
GROUP BY industry_tag, role_family
ORDER BY industry_tag ASC, n DESC, role_family ASC;`, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairCounts(rows)
}

func (d *DB) Summary(ctx context.Context, runDate string) (SummaryStats, error) {
	s := SummaryStats{RunDate: runDate}

	err := d.Pool.QueryRowContext(ctx, `
SELECT COUNT(*), COUNT(DISTINCT company_id), COALESCE(SUM(is_remote), 0), COUNT(DISTINCT job_key)
FROM jobs
WHERE run_date = ?;`, runDate).Scan(&s.Jobs, &s.Companies, &s.RemoteJobs, &s.DistinctKeys)
	if err != nil {
		return s, err
	}

	err = d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rejects WHERE run_date = ?;`, runDate,
	).Scan(&s.Rejects)
	return s, err
}

func scanCounts(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]CountRow, error) {
	var out []CountRow
	for rows.Next() {
		var r CountRow
		if err := rows.Scan(&r.Label, &r.Jobs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanPairCounts(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]PairCountRow, error) {
	var out []PairCountRow
	for rows.Next() {
		var r PairCountRow
		if err := rows.Scan(&r.Group, &r.Label, &r.Jobs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
