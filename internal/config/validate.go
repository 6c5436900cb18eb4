package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults and returns a normalized copy plus
// everything a run should refuse to start over.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if strings.TrimSpace(out.App.DataDir) == "" {
		out.App.DataDir = "data"
	}
	if strings.TrimSpace(out.App.Addr) == "" {
		out.App.Addr = "127.0.0.1:8750"
	}

	if out.HTTP.TimeoutSeconds <= 0 {
		out.HTTP.TimeoutSeconds = 20
	}
	if out.HTTP.RequestsPerSecond <= 0 {
		out.HTTP.RequestsPerSecond = 2
	}
	if out.HTTP.Burst <= 0 {
		out.HTTP.Burst = 4
	}
	if out.Pipeline.SourceTimeoutSeconds <= 0 {
		out.Pipeline.SourceTimeoutSeconds = 300
	}
	if out.Pipeline.Workers <= 0 {
		out.Pipeline.Workers = 8
	}

	out.Sources.Greenhouse.Companies = dedupeCompanies(out.Sources.Greenhouse.Companies, &res, "greenhouse")
	out.Sources.Lever.Companies = dedupeCompanies(out.Sources.Lever.Companies, &res, "lever")

	if !out.Sources.Greenhouse.Enabled && !out.Sources.Lever.Enabled {
		res.addWarn("no sources enabled; a run will produce empty partitions")
	}
	if out.Sources.Greenhouse.Enabled && len(out.Sources.Greenhouse.Companies) == 0 {
		res.addErr("sources.greenhouse enabled but has no companies")
	}
	if out.Sources.Lever.Enabled && len(out.Sources.Lever.Companies) == 0 {
		res.addErr("sources.lever enabled but has no companies")
	}
	if out.HTTP.RequestsPerSecond > 10 {
		res.addWarn("http.requests_per_second is high (%.0f); public ATS APIs may rate-limit", out.HTTP.RequestsPerSecond)
	}

	return out, res
}

func dedupeCompanies(in []Company, res *Validation, source string) []Company {
	seen := map[string]bool{}
	var out []Company
	for _, c := range in {
		c.Slug = strings.TrimSpace(c.Slug)
		c.Name = strings.TrimSpace(c.Name)
		if c.Slug == "" {
			res.addErr("sources.%s: company %q has empty slug", source, c.Name)
			continue
		}
		key := strings.ToLower(c.Slug)
		if seen[key] {
			res.addWarn("sources.%s: duplicate slug %q", source, c.Slug)
			continue
		}
		seen[key] = true
		if c.Name == "" {
			c.Name = c.Slug
		}
		out = append(out, c)
	}
	return out
}
