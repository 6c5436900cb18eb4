package rules

import (
	"fmt"
	"strings"
)

// Rule order is semantically significant everywhere in this package: the
// classifiers scan rules in declared order and the first match wins, so the
// tables are slices, never maps.

// RoleRule maps a role family to its trigger phrases.
type RoleRule struct {
	Family string   `yaml:"family"`
	Any    []string `yaml:"any"`
}

// Taxonomy is the ordered role-family rule list. Loaded once per run and
// shared read-only across all classification calls.
type Taxonomy struct {
	Rules []RoleRule `yaml:"role_families"`
}

// Skill maps a canonical skill name to its surface forms. Empty Any means
// the name itself is the only surface form.
type Skill struct {
	Name string   `yaml:"name"`
	Any  []string `yaml:"any,omitempty"`
}

// Lexicon is the ordered skill list; extraction output follows this order.
type Lexicon struct {
	Skills []Skill `yaml:"skills"`
}

// IndustryRule maps an industry tag to its trigger phrases.
type IndustryRule struct {
	Tag string   `yaml:"tag"`
	Any []string `yaml:"any"`
}

// IndustryRules is the ordered industry rule list.
type IndustryRules struct {
	Rules []IndustryRule `yaml:"industries"`
}

// Patterns returns the surface forms to match for a skill.
func (s Skill) Patterns() []string {
	if len(s.Any) > 0 {
		return s.Any
	}
	return []string{s.Name}
}

func (t Taxonomy) validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("taxonomy has no role_families")
	}
	seen := map[string]bool{}
	for i, r := range t.Rules {
		if strings.TrimSpace(r.Family) == "" {
			return fmt.Errorf("taxonomy rule %d: empty family", i)
		}
		if seen[r.Family] {
			return fmt.Errorf("taxonomy rule %d: duplicate family %q", i, r.Family)
		}
		seen[r.Family] = true
		if len(trimList(r.Any)) == 0 {
			return fmt.Errorf("taxonomy family %q: no patterns", r.Family)
		}
	}
	return nil
}

func (l Lexicon) validate() error {
	if len(l.Skills) == 0 {
		return fmt.Errorf("lexicon has no skills")
	}
	seen := map[string]bool{}
	for i, s := range l.Skills {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("lexicon entry %d: empty name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("lexicon entry %d: duplicate skill %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (r IndustryRules) validate() error {
	if len(r.Rules) == 0 {
		return fmt.Errorf("industry mapping has no industries")
	}
	seen := map[string]bool{}
	for i, ir := range r.Rules {
		if strings.TrimSpace(ir.Tag) == "" {
			return fmt.Errorf("industry rule %d: empty tag", i)
		}
		if seen[ir.Tag] {
			return fmt.Errorf("industry rule %d: duplicate tag %q", i, ir.Tag)
		}
		seen[ir.Tag] = true
		if len(trimList(ir.Any)) == 0 {
			return fmt.Errorf("industry tag %q: no patterns", ir.Tag)
		}
	}
	return nil
}

func trimList(xs []string) []string {
	var ys []string
	for _, x := range xs {
		if strings.TrimSpace(x) != "" {
			ys = append(ys, x)
		}
	}
	return ys
}
