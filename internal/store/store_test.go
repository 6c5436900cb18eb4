package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobintel-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRecord(jobKey, runDate string) domain.CanonicalJobRecord {
	posted := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	return domain.CanonicalJobRecord{
		Source:         "greenhouse",
		SourceJobID:    "id-" + jobKey,
		JobURL:         "https://boards.greenhouse.io/acme/jobs/" + jobKey,
		CompanyName:    "Acme Payments",
		CompanyID:      "abcd1234abcd1234",
		Title:          "Senior Software Engineer",
		Description:    "Build Go services.",
		Department:     "Engineering",
		EmploymentType: "Full-time",
		LocationRaw:    "Austin, TX",
		City:           "Austin",
		State:          "TX",
		PostalCode:     "78701",
		MSA:            "Austin-Round Rock, TX",
		IsRemote:       true,
		Country:        "US",
		DatePosted:     &posted,
		ScrapeTS:       time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		RoleFamily:     "Tech/Engineering",
		Skills:         []string{"Go", "Kubernetes"},
		IndustryTag:    "Financial Services",
		RunDate:        runDate,
		JobKey:         jobKey,
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := testRecord("greenhouse_aaaa", "2026-08-20")
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse",
		[]domain.CanonicalJobRecord{want}))

	got, err := db.Partition(ctx, "2026-08-20", "greenhouse")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestReplacePartitionIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	recs := []domain.CanonicalJobRecord{
		testRecord("greenhouse_aaaa", "2026-08-20"),
		testRecord("greenhouse_bbbb", "2026-08-20"),
	}
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse", recs))
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse", recs))

	got, err := db.Partition(ctx, "2026-08-20", "greenhouse")
	require.NoError(t, err)
	assert.Len(t, got, 2, "rewriting a partition must not duplicate rows")

	// shrinking a partition drops the stale rows
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse",
		recs[:1]))
	got, err = db.Partition(ctx, "2026-08-20", "greenhouse")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "greenhouse_aaaa", got[0].JobKey)
}

func TestReplacePartitionLeavesOthersIntact(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	lever := testRecord("lever_cccc", "2026-08-20")
	lever.Source = "lever"
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "lever",
		[]domain.CanonicalJobRecord{lever}))
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-19", "greenhouse",
		[]domain.CanonicalJobRecord{testRecord("greenhouse_aaaa", "2026-08-19")}))

	// overwriting today's greenhouse partition touches neither of the above
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse", nil))

	parts, err := db.ListPartitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Partition{
		{RunDate: "2026-08-19", Source: "greenhouse", Jobs: 1},
		{RunDate: "2026-08-20", Source: "lever", Jobs: 1},
	}, parts)
}

func TestLatestSnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	old := testRecord("greenhouse_aaaa", "2026-08-19")
	old.Title = "Software Engineer"
	old.ScrapeTS = time.Date(2026, 8, 19, 14, 30, 0, 0, time.UTC)
	newer := testRecord("greenhouse_aaaa", "2026-08-20")
	other := testRecord("greenhouse_bbbb", "2026-08-19")

	require.NoError(t, db.ReplacePartition(ctx, "2026-08-19", "greenhouse",
		[]domain.CanonicalJobRecord{old, other}))
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse",
		[]domain.CanonicalJobRecord{newer}))

	snap, err := db.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "greenhouse_aaaa", snap[0].JobKey)
	assert.Equal(t, "2026-08-20", snap[0].RunDate)
	assert.Equal(t, "Senior Software Engineer", snap[0].Title)
	assert.Equal(t, "greenhouse_bbbb", snap[1].JobKey)
	assert.Equal(t, "2026-08-19", snap[1].RunDate)
}

func TestLatestSnapshotEmpty(t *testing.T) {
	db := openTestDB(t)

	snap, err := db.LatestSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestRejects(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rejects := []domain.RejectRecord{
		{Source: "greenhouse", SourceJobID: "1", CompanyName: "Acme",
			LocationRaw: "London, UK", Reason: domain.ReasonNonUS, RunDate: "2026-08-20"},
		{Source: "greenhouse", SourceJobID: "2", CompanyName: "Acme",
			LocationRaw: "Remote", Reason: domain.ReasonAmbiguous, RunDate: "2026-08-20"},
	}
	require.NoError(t, db.ReplaceRejects(ctx, "2026-08-20", "greenhouse", rejects))
	require.NoError(t, db.ReplaceRejects(ctx, "2026-08-20", "greenhouse", rejects))

	got, err := db.Rejects(ctx, "2026-08-20")
	require.NoError(t, err)
	require.Len(t, got, 2, "rewriting rejects must not duplicate rows")
	assert.Equal(t, domain.ReasonNonUS, got[0].Reason)
	assert.Equal(t, "London, UK", got[0].LocationRaw)
}

func TestMetrics(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a := testRecord("greenhouse_aaaa", "2026-08-20") // Go, Kubernetes; TX; remote
	b := testRecord("greenhouse_bbbb", "2026-08-20")
	b.Skills = []string{"Go", "Python"}
	b.State = "CA"
	b.IsRemote = false
	require.NoError(t, db.ReplacePartition(ctx, "2026-08-20", "greenhouse",
		[]domain.CanonicalJobRecord{a, b}))
	require.NoError(t, db.ReplaceRejects(ctx, "2026-08-20", "greenhouse",
		[]domain.RejectRecord{{Source: "greenhouse", Reason: domain.ReasonNonUS, RunDate: "2026-08-20"}}))

	skills, err := db.TopSkills(ctx, "2026-08-20", 10)
	require.NoError(t, err)
	require.NotEmpty(t, skills)
	assert.Equal(t, CountRow{Label: "Go", Jobs: 2}, skills[0])

	states, err := db.JobsByState(ctx, "2026-08-20")
	require.NoError(t, err)
	assert.ElementsMatch(t, []CountRow{
		{Label: "TX", Jobs: 1},
		{Label: "CA", Jobs: 1},
	}, states)

	byFamily, err := db.SkillsByRoleFamily(ctx, "2026-08-20")
	require.NoError(t, err)
	require.NotEmpty(t, byFamily)
	assert.Equal(t, "Tech/Engineering", byFamily[0].Group)

	mix, err := db.RoleMixByIndustry(ctx, "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, []PairCountRow{
		{Group: "Financial Services", Label: "Tech/Engineering", Jobs: 2},
	}, mix)

	sum, err := db.Summary(ctx, "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, SummaryStats{
		RunDate:      "2026-08-20",
		Jobs:         2,
		Companies:    1,
		RemoteJobs:   1,
		Rejects:      1,
		DistinctKeys: 2,
	}, sum)
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)

	// Open already migrated; a second pass is a no-op
	require.NoError(t, Migrate(db.Pool))
	assert.NoError(t, Migrate(db.Pool))
}
