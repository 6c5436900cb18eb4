// Package snapshot reduces the full posting history to one row per job
// key, keeping the most recent observation. The reduction is pure: it is
// recomputed from scratch on every invocation and carries no state between
// runs.
package snapshot

import (
	"fmt"
	"sort"

	"jobintel-engine/internal/domain"
)

// newer reports whether a should replace b as the latest observation of a
// job key: max run_date, then max scrape timestamp, then min job_url as a
// deterministic final tie-break.
func newer(a, b domain.CanonicalJobRecord) bool {
	if a.RunDate != b.RunDate {
		return a.RunDate > b.RunDate // YYYY-MM-DD sorts lexicographically
	}
	if !a.ScrapeTS.Equal(b.ScrapeTS) {
		return a.ScrapeTS.After(b.ScrapeTS)
	}
	return a.JobURL < b.JobURL
}

// Merger is a streaming group-by: feed it records grouped by job_key (any
// order within a group) and it emits one record per key. Memory is bounded
// by one record, not by history size.
type Merger struct {
	emit    func(domain.CanonicalJobRecord) error
	current domain.CanonicalJobRecord
	open    bool
}

func NewMerger(emit func(domain.CanonicalJobRecord) error) *Merger {
	return &Merger{emit: emit}
}

// Add feeds the next record of the key-sorted stream.
func (m *Merger) Add(rec domain.CanonicalJobRecord) error {
	if !m.open {
		m.current, m.open = rec, true
		return nil
	}
	if rec.JobKey == m.current.JobKey {
		if newer(rec, m.current) {
			m.current = rec
		}
		return nil
	}
	if rec.JobKey < m.current.JobKey {
		return fmt.Errorf("snapshot: input not sorted by job_key (%q after %q)", rec.JobKey, m.current.JobKey)
	}
	prev := m.current
	m.current = rec
	return m.emit(prev)
}

// Flush emits the final group. The merger is reusable afterwards.
func (m *Merger) Flush() error {
	if !m.open {
		return nil
	}
	m.open = false
	return m.emit(m.current)
}

// Merge is the in-memory form of the same reduction, for callers that
// already hold the full record set.
func Merge(records []domain.CanonicalJobRecord) ([]domain.CanonicalJobRecord, error) {
	sorted := make([]domain.CanonicalJobRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].JobKey < sorted[j].JobKey
	})

	var out []domain.CanonicalJobRecord
	m := NewMerger(func(rec domain.CanonicalJobRecord) error {
		out = append(out, rec)
		return nil
	})
	for _, rec := range sorted {
		if err := m.Add(rec); err != nil {
			return nil, err
		}
	}
	if err := m.Flush(); err != nil {
		return nil, err
	}
	return out, nil
}
