package types

import (
	"context"

	"jobradar/internal/domain"
)

// Result is one connector's haul for a run.
type Result struct {
	Source string
	Jobs   []domain.RawJob
}

// Fetcher is a job source connector. Fetch is best-effort: a failing source
// returns an error and contributes zero records without aborting the run.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
