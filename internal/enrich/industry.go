package enrich

import (
	"strings"

	"jobintel-engine/internal/rules"
)

// TagIndustry maps a company to an industry tag: ordered scan over the
// rule list, first rule with a hit in company name or description wins.
// Returns "" when nothing matches.
func TagIndustry(companyName, description string, ind rules.IndustryRules) string {
	text := strings.ToLower(companyName + " " + description)

	for _, r := range ind.Rules {
		for _, p := range r.Any {
			if p = strings.ToLower(strings.TrimSpace(p)); p == "" {
				continue
			}
			if strings.Contains(text, p) {
				return r.Tag
			}
		}
	}
	return ""
}
