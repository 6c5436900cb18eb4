package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobintel-engine/internal/config"
	"jobintel-engine/internal/export"
	"jobintel-engine/internal/httpapi"
	"jobintel-engine/internal/ingest"
	"jobintel-engine/internal/ingest/discovery"
	"jobintel-engine/internal/pipeline"
	"jobintel-engine/internal/store"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "jobintel",
		Short:         "US job market intelligence pipeline (Greenhouse & Lever)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "config/config.yml", "engine config file")

	root.AddCommand(
		buildRunCommand(),
		buildLatestCommand(),
		buildMetricsCommand(),
		buildDiscoverCommand(),
		buildServeCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openEngine loads + validates config and opens the partition store.
func openEngine(cmd *cobra.Command) (config.Config, *store.DB, error) {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		return cfg, nil, fmt.Errorf("invalid config: %v", res.Errors)
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return cfg, nil, err
	}
	if userPath, created, err := config.EnsureUserConfig(cfg.App.DataDir, cfgPath); err == nil && created {
		log.Printf("[config] editable copy created at %s", userPath)
	}
	db, err := store.Open(filepath.Join(cfg.App.DataDir, "jobintel.db"))
	if err != nil {
		return cfg, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, db, nil
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch all enabled sources and rebuild the partitions for one run date",
		RunE: func(cmd *cobra.Command, args []string) error {
			runDate, _ := cmd.Flags().GetString("date")

			cfg, db, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			runner, err := pipeline.NewRunner(db, cfg)
			if err != nil {
				return err // malformed rule tables abort before processing
			}

			stats, err := runner.RunOnce(cmd.Context(), runDate)
			if err != nil {
				return err
			}
			log.Printf("[run] date=%s fetched=%d accepted=%d rejected=%d",
				stats.RunDate, stats.Fetched, stats.Accepted, stats.Rejected)
			return nil
		},
	}
	cmd.Flags().String("date", time.Now().UTC().Format("2006-01-02"), "run date (YYYY-MM-DD)")
	return cmd
}

func buildLatestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Rebuild the latest snapshot and export it to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			cfg, db, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := db.LatestSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(cfg.App.DataDir, "exports", "jobs_latest.csv")
			}
			if err := export.WriteJobsCSV(out, records); err != nil {
				return err
			}
			log.Printf("[latest] %d unique jobs -> %s", len(records), out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "output CSV path")
	return cmd
}

func buildMetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Export per-run insight CSVs (top skills, jobs by state, role mix, rejects)",
		RunE: func(cmd *cobra.Command, args []string) error {
			runDate, _ := cmd.Flags().GetString("date")

			cfg, db, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			outDir := filepath.Join(cfg.App.DataDir, "exports")

			skills, err := db.TopSkills(ctx, runDate, 50)
			if err != nil {
				return err
			}
			if err := export.WriteCountsCSV(filepath.Join(outDir, "top_skills_"+runDate+".csv"), "skill", skills); err != nil {
				return err
			}

			states, err := db.JobsByState(ctx, runDate)
			if err != nil {
				return err
			}
			if err := export.WriteCountsCSV(filepath.Join(outDir, "jobs_by_state_"+runDate+".csv"), "state", states); err != nil {
				return err
			}

			roleMix, err := db.RoleMixByIndustry(ctx, runDate)
			if err != nil {
				return err
			}
			if err := export.WritePairCountsCSV(filepath.Join(outDir, "role_mix_by_industry_"+runDate+".csv"), "industry_tag", "role_family", roleMix); err != nil {
				return err
			}

			skillsByRole, err := db.SkillsByRoleFamily(ctx, runDate)
			if err != nil {
				return err
			}
			if err := export.WritePairCountsCSV(filepath.Join(outDir, "skills_by_role_family_"+runDate+".csv"), "role_family", "skill", skillsByRole); err != nil {
				return err
			}

			rejects, err := db.Rejects(ctx, runDate)
			if err != nil {
				return err
			}
			if err := export.WriteRejectsCSV(filepath.Join(outDir, "rejects_"+runDate+".csv"), rejects); err != nil {
				return err
			}

			stats, err := db.Summary(ctx, runDate)
			if err != nil {
				return err
			}
			log.Printf("[metrics] date=%s jobs=%d companies=%d remote=%d rejects=%d -> %s",
				runDate, stats.Jobs, stats.Companies, stats.RemoteJobs, stats.Rejects, outDir)
			return nil
		},
	}
	cmd.Flags().String("date", time.Now().UTC().Format("2006-01-02"), "run date (YYYY-MM-DD)")
	return cmd
}

func buildDiscoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Probe careers URLs from a seed file for Greenhouse/Lever boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			seedFile, _ := cmd.Flags().GetString("seed-file")
			out, _ := cmd.Flags().GetString("out")

			cfg, err := loadConfigOnly(cmd)
			if err != nil {
				return err
			}

			seeds, err := loadSeeds(seedFile)
			if err != nil {
				return err
			}

			limiter := ingest.NewHostLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst)
			prober := discovery.New(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second, limiter)

			discovered := runDiscovery(cmd.Context(), prober, seeds)
			if out == "" {
				out = filepath.Join(cfg.App.DataDir, "exports", "discovered_companies.csv")
			}
			if err := writeDiscoveredCSV(out, discovered); err != nil {
				return err
			}
			log.Printf("[discover] %d/%d boards identified -> %s", len(discovered), len(seeds), out)
			return nil
		},
	}
	cmd.Flags().String("seed-file", "config/discovery_seeds.yml", "seed YAML with careers URLs")
	cmd.Flags().String("out", "", "output CSV path")
	return cmd
}

func buildServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset read-only over HTTP (latest, partitions, metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			cfg, db, err := openEngine(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if addr == "" {
				addr = cfg.App.Addr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewMux(httpapi.Deps{DB: db}),
				ReadHeaderTimeout: 5 * time.Second,
			}
			log.Printf("[serve] dataset API on http://%s", addr)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().String("addr", "", "bind address (defaults to app.addr)")
	return cmd
}
