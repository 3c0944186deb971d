package source

import (
	"context"

	"leadfinder-engine/internal/domain"
)

// Query is one adapter invocation. An empty Keywords string means match all.
type Query struct {
	Keywords string
	Location string
	Limit    int // max postings to return; callers default this to 10
}

// Result is the tagged outcome of one adapter call. Expected failures
// (network error, non-2xx, empty payload, anti-bot block) never surface as
// errors: they produce an empty Result, or a Limited one carrying clearly
// flagged placeholder jobs so the caller can report degraded status.
type Result struct {
	Jobs    []domain.JobPosting
	Limited bool
	Note    string
}

// Source fetches and normalizes postings from one external job source.
// Implementations are stateless across calls apart from connection reuse
// and rate-limit bookkeeping, and must honor ctx cancellation at I/O
// boundaries. An error return is reserved for unexpected failures; the
// aggregator records it as an error-status platform result and keeps going.
type Source interface {
	Name() string
	Search(ctx context.Context, q Query) (Result, error)
}
