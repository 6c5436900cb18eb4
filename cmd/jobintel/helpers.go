package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"jobintel-engine/internal/config"
	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/ingest/discovery"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadConfigOnly loads and validates config without opening the store, for
// commands that never touch the dataset. Same refusal rules as openEngine.
func loadConfigOnly(cmd *cobra.Command) (config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		return cfg, fmt.Errorf("invalid config: %v", res.Errors)
	}
	return cfg, nil
}

type seedFile struct {
	Companies []domain.CompanySeed `yaml:"companies"`
}

func loadSeeds(path string) ([]domain.CompanySeed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seeds %s: %w", path, err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("parse seeds %s: %w", path, err)
	}
	if len(sf.Companies) == 0 {
		return nil, fmt.Errorf("seed file %s has no companies", path)
	}
	return sf.Companies, nil
}

func runDiscovery(ctx context.Context, prober *discovery.Prober, seeds []domain.CompanySeed) []domain.DiscoveredCompany {
	var out []domain.DiscoveredCompany
	for _, s := range seeds {
		if s.CareersURL == "" {
			continue
		}
		d, err := prober.Discover(ctx, s.CompanyName, s.CareersURL)
		if err != nil {
			log.Printf("[discover] company=%q url=%q err=%v", s.CompanyName, s.CareersURL, err)
			continue
		}
		out = append(out, *d)
	}
	return out
}

func writeDiscoveredCSV(path string, discovered []domain.DiscoveredCompany) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"company_name", "company_domain", "careers_url", "ats_type", "slug", "discovery_method", "discovered_at"}); err != nil {
		return err
	}
	for _, d := range discovered {
		if err := w.Write([]string{
			d.CompanyName, d.CompanyDomain, d.CareersURL, d.ATSType,
			d.Slug, d.DiscoveryMethod, d.DiscoveredAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
