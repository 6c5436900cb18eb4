// Package pipeline wires connectors, builder and store into one batch run
// keyed by a run date. A run is safe to retry: partition writes are
// idempotent overwrites and an interrupted run leaves prior partitions
// untouched.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"jobintel-engine/internal/build"
	"jobintel-engine/internal/config"
	"jobintel-engine/internal/ingest"
	"jobintel-engine/internal/ingest/greenhouse"
	"jobintel-engine/internal/ingest/lever"
	"jobintel-engine/internal/rules"
	"jobintel-engine/internal/store"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	DB       *store.DB
	Cfg      config.Config
	Builder  build.Builder
	Fetchers []ingest.Fetcher
	lockPath string
}

type RunStats struct {
	RunDate  string
	Fetched  int
	Accepted int
	Rejected int
}

// NewRunner loads the rule tables (fatal on malformed files, before any
// posting is touched) and builds the enabled connectors.
func NewRunner(db *store.DB, cfg config.Config) (*Runner, error) {
	tax, err := rules.LoadTaxonomy(cfg.Rules.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	lex, err := rules.LoadLexicon(cfg.Rules.SkillsFile)
	if err != nil {
		return nil, err
	}
	ind, err := rules.LoadIndustryRules(cfg.Rules.IndustryFile)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	limiter := ingest.NewHostLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst)

	var fetchers []ingest.Fetcher
	if cfg.Sources.Greenhouse.Enabled {
		fetchers = append(fetchers, greenhouse.New(cfg.Sources.Greenhouse.Companies, cfg.Pipeline.Workers, timeout, limiter))
	}
	if cfg.Sources.Lever.Enabled {
		fetchers = append(fetchers, lever.New(cfg.Sources.Lever.Companies, cfg.Pipeline.Workers, timeout, limiter))
	}

	return &Runner{
		DB:       db,
		Cfg:      cfg,
		Builder: build.Builder{
			Taxonomy:        tax,
			Lexicon:         lex,
			Industry:        ind,
			AcceptAmbiguous: cfg.Pipeline.AcceptAmbiguousLocations,
		},
		Fetchers: fetchers,
		lockPath: filepath.Join(cfg.App.DataDir, "run.lock"),
	}, nil
}

// RunOnce executes one batch for runDate (YYYY-MM-DD): fetch all enabled
// sources in parallel, canonicalize, and overwrite each (run_date, source)
// partition plus its reject audit. Partition writes happen on the
// collecting goroutine, so no two writers ever target the same key.
// A file lock on the data dir keeps a run and a snapshot read from
// interleaving.
func (r *Runner) RunOnce(ctx context.Context, runDate string) (RunStats, error) {
	stats := RunStats{RunDate: runDate}

	if _, err := time.Parse("2006-01-02", runDate); err != nil {
		return stats, fmt.Errorf("bad run date %q: %w", runDate, err)
	}

	lock := flock.New(r.lockPath)
	locked, err := lock.TryLockContext(ctx, 500*time.Millisecond)
	if err != nil {
		return stats, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return stats, fmt.Errorf("another run holds %s", r.lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	var g errgroup.Group
	results := make(chan ingest.Result, len(r.Fetchers))

	for _, f := range r.Fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, time.Duration(r.Cfg.Pipeline.SourceTimeoutSeconds)*time.Second)
			defer cancel()

			log.Printf("[pipeline:%s] fetching...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[pipeline:%s] fetch error: %v", f.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	for res := range results {
		stats.Fetched += len(res.Postings)

		records, rejects := r.Builder.BuildAll(res.Postings, runDate)
		stats.Accepted += len(records)
		stats.Rejected += len(rejects)

		if err := r.DB.ReplacePartition(ctx, runDate, res.Source, records); err != nil {
			return stats, fmt.Errorf("write partition %s/%s: %w", runDate, res.Source, err)
		}
		if err := r.DB.ReplaceRejects(ctx, runDate, res.Source, rejects); err != nil {
			return stats, fmt.Errorf("write rejects %s/%s: %w", runDate, res.Source, err)
		}

		log.Printf("[pipeline:%s] run_date=%s accepted=%d rejected=%d",
			res.Source, runDate, len(records), len(rejects))
	}

	return stats, nil
}
