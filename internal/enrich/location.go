package enrich

import (
	"regexp"
	"sort"
	"strings"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/util"
)

// Location is the result of classifying one free-text location string.
// When Accepted is false, Reason holds the reject reason code and the
// extraction fields are empty.
type Location struct {
	Country    string
	State      string // 2-letter code
	City       string
	PostalCode string
	MSA        string
	IsRemote   bool
	Accepted   bool
	Reason     string
}

var (
	// "San Francisco, CA" / "Boston, MA 02101" / "Austin, TX (Remote)".
	// The trailing context (comma, separator, paren, end) keeps plain
	// uppercase words like "IN" from reading as state codes.
	stateCodeRe  = regexp.MustCompile(`\b([A-Z]{2})\b(?:\s+\d{5})?\s*(?:[,()/|-]|$)`)
	postalCodeRe = regexp.MustCompile(`\b(\d{5})\b`)
	cityPrefixRe = regexp.MustCompile(`(?i)^(greater|metro)\s+`)
	// work-mode markers glued onto the city part ("Remote - Austin")
	modePrefixRe = regexp.MustCompile(`(?i)^(remote|hybrid|onsite|on-site)[\s:,/–—-]+`)
)

// ClassifyLocation decides whether a raw location string is a US location
// and extracts its components. The policy is an ordered scan, first match
// wins:
//
//  1. a known 2-letter state code in "City, ST"-like position -> accept
//  2. a full US state name -> accept
//  3. an explicit "United States"/"USA" token -> accept, state unknown
//  4. an explicit non-US country/city token -> reject non-US
//     (this beats a remote marker: "Remote - UK" is non-US, not ambiguous)
//  5. a remote-only or multi-location phrase with no geographic signal
//     -> reject ambiguous
//  6. anything else -> reject non-US
//
// Postal code and MSA are best-effort and never affect the decision.
func ClassifyLocation(raw string) Location {
	loc := Location{}
	text := util.NormalizeLocation(raw)
	if text == "" {
		loc.Reason = domain.ReasonAmbiguous
		return loc
	}

	lowText := strings.ToLower(text)
	loc.IsRemote = containsAny(lowText, remoteKeywords)

	// 1) state code
	if code := extractStateCode(text); code != "" {
		loc.Accepted = true
		loc.Country = "US"
		loc.State = code
		loc.City = extractCity(text, code)
		loc.PostalCode = extractPostalCode(text)
		loc.MSA = lookupMSA(loc.City, code)
		return loc
	}

	// 2) full state name
	for _, name := range stateNamesByLength {
		if strings.Contains(lowText, name) {
			loc.Accepted = true
			loc.Country = "US"
			loc.State = stateNameToCode[name]
			loc.City = extractCity(text, "")
			loc.PostalCode = extractPostalCode(text)
			loc.MSA = lookupMSA(loc.City, loc.State)
			return loc
		}
	}

	// 3) explicit US with no state
	if containsWord(lowText, "united states") || containsWord(lowText, "usa") ||
		containsWord(lowText, "us") || strings.Contains(lowText, "u.s.") {
		loc.Accepted = true
		loc.Country = "US"
		return loc
	}

	// 4) explicit non-US signal; wins over remote markers
	if hasNonUSSignal(lowText) {
		loc.Reason = domain.ReasonNonUS
		return loc
	}

	// 5) remote/multi-location with no geographic signal at all
	if loc.IsRemote || containsAny(lowText, multiLocationKeywords) {
		loc.Reason = domain.ReasonAmbiguous
		return loc
	}

	// 6) no US signal
	loc.Reason = domain.ReasonNonUS
	return loc
}

func extractStateCode(text string) string {
	for _, m := range stateCodeRe.FindAllStringSubmatch(strings.ToUpper(text), -1) {
		if _, ok := usStates[m[1]]; ok {
			return m[1]
		}
	}
	return ""
}

func extractCity(text, stateCode string) string {
	if stateCode != "" {
		// text before the state code, e.g. "Austin, TX" -> "Austin"
		re := regexp.MustCompile(`(?i)^(.+?),\s*` + stateCode + `\b`)
		if m := re.FindStringSubmatch(text); m != nil {
			return cleanCity(m[1])
		}
	}
	parts := strings.Split(text, ",")
	city := util.CleanText(parts[0])
	if city == "" {
		return ""
	}
	if _, isState := usStates[strings.ToUpper(city)]; isState {
		return ""
	}
	if _, isState := stateNameToCode[strings.ToLower(city)]; isState {
		return ""
	}
	return cleanCity(city)
}

// cleanCity strips work-mode markers and metro prefixes from a city
// fragment: "Remote - Austin" -> "Austin", "Greater Seattle" -> "Seattle".
func cleanCity(raw string) string {
	city := util.CleanText(raw)
	city = modePrefixRe.ReplaceAllString(city, "")
	city = cityPrefixRe.ReplaceAllString(city, "")
	return util.CleanText(city)
}

func extractPostalCode(text string) string {
	if m := postalCodeRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func lookupMSA(city, stateCode string) string {
	if city == "" || stateCode == "" {
		return ""
	}
	return usMetros[strings.ToLower(city)+"|"+stateCode]
}

func hasNonUSSignal(lowText string) bool {
	for _, sig := range nonUSSignals {
		if containsWord(lowText, sig) {
			return true
		}
	}
	return false
}

func containsAny(lowText string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lowText, n) {
			return true
		}
	}
	return false
}

// containsWord is a word-boundary contains, so "uk" never matches inside
// "milwaukee".
func containsWord(lowText, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(lowText[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(lowText[start-1])
		afterOK := end == len(lowText) || !isWordByte(lowText[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func lower(s string) string { return strings.ToLower(s) }

func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
}
