package enrich

import (
	"regexp"
	"strings"
	"sync"

	"jobintel-engine/internal/rules"
	"jobintel-engine/internal/util"
)

// Surface forms are matched case-insensitively at word boundaries, so
// "Go" never matches inside "Google". Patterns ending in a non-word rune
// ("C++", "C#") anchor only on the leading boundary.
var skillPatternCache sync.Map // pattern string -> *regexp.Regexp

func skillRegexp(pattern string) *regexp.Regexp {
	if re, ok := skillPatternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	expr := `(?i)\b` + regexp.QuoteMeta(pattern)
	if isWordByte(pattern[len(pattern)-1] | 0x20) {
		expr += `\b`
	}
	re := regexp.MustCompile(expr)
	skillPatternCache.Store(pattern, re)
	return re
}

// ExtractSkills scans title+description against the lexicon and returns the
// matched skill names, deduplicated, ordered by lexicon declaration order
// (not occurrence order) so repeated runs over the same text are stable.
func ExtractSkills(title, description string, lex rules.Lexicon) []string {
	text := util.CleanText(title + " " + description)
	if text == "" {
		return nil
	}

	var found []string
	for _, s := range lex.Skills {
		for _, p := range s.Patterns() {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if skillRegexp(p).MatchString(text) {
				found = append(found, s.Name)
				break
			}
		}
	}
	return found
}
