package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteJobsCSV(t *testing.T) {
	posted := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	rec := domain.CanonicalJobRecord{
		Source:      "greenhouse",
		SourceJobID: "1",
		CompanyName: "Acme",
		Title:       "Engineer",
		LocationRaw: "Austin, TX",
		City:        "Austin",
		State:       "TX",
		IsRemote:    true,
		Country:     "US",
		DatePosted:  &posted,
		ScrapeTS:    time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		Skills:      []string{"Go", "Kubernetes"},
		RunDate:     "2026-08-20",
		JobKey:      "greenhouse_aaaa",
	}

	path := filepath.Join(t.TempDir(), "exports", "jobs.csv")
	require.NoError(t, WriteJobsCSV(path, []domain.CanonicalJobRecord{rec}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 22)
	assert.Equal(t, "job_key", rows[0][0])

	row := rows[1]
	assert.Equal(t, "greenhouse_aaaa", row[0])
	assert.Equal(t, "Go;Kubernetes", row[20])
	assert.Equal(t, "true", row[15])
	assert.Equal(t, "2026-08-18", row[17])
}

func TestWriteJobsCSVEmptyOptionalFields(t *testing.T) {
	rec := domain.CanonicalJobRecord{JobKey: "k", RunDate: "2026-08-20"}

	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, WriteJobsCSV(path, []domain.CanonicalJobRecord{rec}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][17], "nil date_posted writes an empty cell")
	assert.Equal(t, "", rows[1][20], "no skills writes an empty cell")
}

func TestWriteRejectsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rejects.csv")
	require.NoError(t, WriteRejectsCSV(path, []domain.RejectRecord{
		{Source: "lever", SourceJobID: "1", Reason: domain.ReasonAmbiguous,
			LocationRaw: "Remote", RunDate: "2026-08-20"},
	}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"run_date", "source", "source_job_id", "company_name", "location_raw", "reason", "detail"}, rows[0])
	assert.Equal(t, domain.ReasonAmbiguous, rows[1][5])
}

func TestWriteCountsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.csv")
	require.NoError(t, WriteCountsCSV(path, "skill", []store.CountRow{
		{Label: "Go", Jobs: 3},
		{Label: "Python", Jobs: 2},
	}))

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"skill", "jobs"},
		{"Go", "3"},
		{"Python", "2"},
	}, rows)
}

func TestWritePairCountsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	require.NoError(t, WritePairCountsCSV(path, "industry_tag", "role_family", []store.PairCountRow{
		{Group: "Technology", Label: "Tech/Engineering", Jobs: 5},
	}))

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"industry_tag", "role_family", "jobs"},
		{"Technology", "Tech/Engineering", "5"},
	}, rows)
}
