package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/events"
	"leadfinder-engine/internal/outreach"
)

// Searcher runs a multi-board search. Satisfied by search.Aggregator.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.CombinedSearchResult, error)
}

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Searcher Searcher

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Outreach collaborators (inject for testability)
	NewWriter func(cfg config.Config) outreach.MessageWriter
	NewMailer func(cfg config.Config) outreach.Mailer
}
