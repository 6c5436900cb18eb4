// Package hashing derives the stable identifiers the dataset is keyed on.
// Downstream consumers depend on the job key format: changing it is a
// breaking schema change.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// JobKey hashes the immutable identity of a posting: (source,
// source_job_id, company_id). Title, description and location are
// deliberately excluded so an edited posting keeps its identity across
// scrapes. Identical triples always yield identical keys regardless of
// run date.
func JobKey(source, sourceJobID, companyID string) string {
	return source + "_" + digest(strings.Join([]string{
		source,
		strings.TrimSpace(sourceJobID),
		strings.TrimSpace(companyID),
	}, "|"))[:16]
}

// CompanyID derives a stable 16-hex company identifier from the company
// name (plus domain when known).
func CompanyID(name, domain string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if domain != "" {
		key += "|" + strings.ToLower(strings.TrimSpace(domain))
	}
	return digest(key)[:16]
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
