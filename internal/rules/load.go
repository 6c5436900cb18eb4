package rules

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// A malformed rule file is fatal for the run: it would silently corrupt
// every downstream classification, so loaders fail hard before any posting
// is processed. A missing file falls back to the built-in defaults with a
// warning, so a fresh checkout works out of the box.

func LoadTaxonomy(path string) (Taxonomy, error) {
	var t Taxonomy
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[rules] taxonomy file not found (%s), using defaults", path)
		return DefaultTaxonomy(), nil
	}
	if err != nil {
		return t, fmt.Errorf("read taxonomy: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("invalid taxonomy %s: %w", path, err)
	}
	return t, nil
}

func LoadLexicon(path string) (Lexicon, error) {
	var l Lexicon
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[rules] skills file not found (%s), using defaults", path)
		return DefaultLexicon(), nil
	}
	if err != nil {
		return l, fmt.Errorf("read skills: %w", err)
	}
	if err := yaml.Unmarshal(b, &l); err != nil {
		return l, fmt.Errorf("parse skills %s: %w", path, err)
	}
	if err := l.validate(); err != nil {
		return l, fmt.Errorf("invalid skills %s: %w", path, err)
	}
	return l, nil
}

func LoadIndustryRules(path string) (IndustryRules, error) {
	var r IndustryRules
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[rules] industry mapping not found (%s), using defaults", path)
		return DefaultIndustryRules(), nil
	}
	if err != nil {
		return r, fmt.Errorf("read industry mapping: %w", err)
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("parse industry mapping %s: %w", path, err)
	}
	if err := r.validate(); err != nil {
		return r, fmt.Errorf("invalid industry mapping %s: %w", path, err)
	}
	return r, nil
}
