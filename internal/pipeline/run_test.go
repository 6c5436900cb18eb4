package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jobintel-engine/internal/config"
	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/ingest"
	"jobintel-engine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	name     string
	postings []domain.RawJobPosting
	err      error
}

func (s stubFetcher) Name() string { return s.name }
func (s stubFetcher) Fetch(ctx context.Context) (ingest.Result, error) {
	if s.err != nil {
		return ingest.Result{}, s.err
	}
	return ingest.Result{Source: s.name, Postings: s.postings}, nil
}

func testRunner(t *testing.T, fetchers ...ingest.Fetcher) *Runner {
	t.Helper()
	dataDir := t.TempDir()

	var cfg config.Config
	cfg.App.DataDir = dataDir
	// rule files absent: built-in defaults
	cfg.Rules.TaxonomyFile = filepath.Join(dataDir, "none.yml")
	cfg.Rules.SkillsFile = filepath.Join(dataDir, "none.yml")
	cfg.Rules.IndustryFile = filepath.Join(dataDir, "none.yml")
	cfg, _ = config.NormalizeAndValidate(cfg)

	db, err := store.Open(filepath.Join(dataDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r, err := NewRunner(db, cfg)
	require.NoError(t, err)
	r.Fetchers = fetchers
	return r
}

func TestRunOnce(t *testing.T) {
	r := testRunner(t, stubFetcher{name: "greenhouse", postings: []domain.RawJobPosting{
		{
			Source:      "greenhouse",
			SourceJobID: "1",
			Title:       "Software Engineer",
			Description: "Go services.",
			LocationRaw: "Austin, TX",
			CompanyName: "Acme",
		},
		{
			Source:      "greenhouse",
			SourceJobID: "2",
			Title:       "Software Engineer",
			LocationRaw: "London, UK",
			CompanyName: "Acme",
		},
	}})

	stats, err := r.RunOnce(context.Background(), "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected)

	jobs, err := r.DB.Partition(context.Background(), "2026-08-20", "greenhouse")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "TX", jobs[0].State)

	rejects, err := r.DB.Rejects(context.Background(), "2026-08-20")
	require.NoError(t, err)
	require.Len(t, rejects, 1)
	assert.Equal(t, domain.ReasonNonUS, rejects[0].Reason)
}

func TestRunOnceRetrySameDateOverwrites(t *testing.T) {
	posting := domain.RawJobPosting{
		Source:      "greenhouse",
		SourceJobID: "1",
		Title:       "Software Engineer",
		LocationRaw: "Austin, TX",
		CompanyName: "Acme",
	}
	r := testRunner(t, stubFetcher{name: "greenhouse", postings: []domain.RawJobPosting{posting}})

	_, err := r.RunOnce(context.Background(), "2026-08-20")
	require.NoError(t, err)
	_, err = r.RunOnce(context.Background(), "2026-08-20")
	require.NoError(t, err)

	jobs, err := r.DB.Partition(context.Background(), "2026-08-20", "greenhouse")
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "a retried run must not duplicate its partition")
}

func TestRunOnceDedupesWithinPartition(t *testing.T) {
	posting := domain.RawJobPosting{
		Source:      "greenhouse",
		SourceJobID: "1",
		Title:       "Software Engineer",
		LocationRaw: "Austin, TX",
		CompanyName: "Acme",
	}
	r := testRunner(t, stubFetcher{name: "greenhouse",
		postings: []domain.RawJobPosting{posting, posting}})

	stats, err := r.RunOnce(context.Background(), "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 1, stats.Accepted)

	jobs, err := r.DB.Partition(context.Background(), "2026-08-20", "greenhouse")
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "a twice-delivered posting lands in its partition once")
}

func TestRunOnceBestEffortAcrossSources(t *testing.T) {
	r := testRunner(t,
		stubFetcher{name: "greenhouse", err: errors.New("boom")},
		stubFetcher{name: "lever", postings: []domain.RawJobPosting{{
			Source:      "lever",
			SourceJobID: "abc",
			Title:       "Data Scientist",
			LocationRaw: "New York, NY",
			CompanyName: "Globex",
		}}},
	)

	stats, err := r.RunOnce(context.Background(), "2026-08-20")
	require.NoError(t, err, "one failing source never aborts the run")
	assert.Equal(t, 1, stats.Accepted)

	parts, err := r.DB.ListPartitions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.Partition{
		{RunDate: "2026-08-20", Source: "lever", Jobs: 1},
	}, parts)
}

func TestRunOnceBadDate(t *testing.T) {
	r := testRunner(t)

	_, err := r.RunOnce(context.Background(), "08/20/2026")
	require.Error(t, err)
}
