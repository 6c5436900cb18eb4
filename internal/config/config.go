package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Company struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

type Source struct {
	Enabled   bool      `yaml:"enabled"`
	Companies []Company `yaml:"companies"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		Addr    string `yaml:"addr"` // read-only dataset API bind address
	} `yaml:"app"`

	HTTP struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"http"`

	Pipeline struct {
		SourceTimeoutSeconds int `yaml:"source_timeout_seconds"`
		Workers              int `yaml:"workers"`
		// AcceptAmbiguousLocations keeps location-ambiguous postings
		// ("Remote" with no country) as US instead of rejecting them.
		AcceptAmbiguousLocations bool `yaml:"accept_ambiguous_locations"`
	} `yaml:"pipeline"`

	Rules struct {
		TaxonomyFile string `yaml:"taxonomy_file"`
		SkillsFile   string `yaml:"skills_file"`
		IndustryFile string `yaml:"industry_file"`
	} `yaml:"rules"`

	Sources struct {
		Greenhouse Source `yaml:"greenhouse"`
		Lever      Source `yaml:"lever"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
