package enrich

import (
	"strings"

	"jobintel-engine/internal/rules"
)

// ClassifyRole maps a posting to a role family by scanning the taxonomy in
// declared order. Title matches beat description-only matches regardless of
// rule order, so a "Staff Software Engineer" posting whose boilerplate
// mentions "sales" still lands in engineering. Returns "" when nothing
// matches.
func ClassifyRole(title, description string, tax rules.Taxonomy) string {
	titleLow := strings.ToLower(title)
	descLow := strings.ToLower(description)

	// pass 1: title only
	for _, r := range tax.Rules {
		for _, p := range r.Any {
			if p = strings.ToLower(strings.TrimSpace(p)); p == "" {
				continue
			}
			if strings.Contains(titleLow, p) {
				return r.Family
			}
		}
	}

	// pass 2: description
	for _, r := range tax.Rules {
		for _, p := range r.Any {
			if p = strings.ToLower(strings.TrimSpace(p)); p == "" {
				continue
			}
			if strings.Contains(descLow, p) {
				return r.Family
			}
		}
	}

	return ""
}
