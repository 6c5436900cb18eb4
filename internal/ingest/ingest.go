package ingest

import (
	"context"

	"jobintel-engine/internal/domain"
)

// Result is one connector's raw haul for a run.
type Result struct {
	Source   string
	Postings []domain.RawJobPosting
}

// Fetcher is a source connector. Fetch is best-effort per company: one
// broken board must not sink the whole source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
