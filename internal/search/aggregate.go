package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
)

const (
	defaultMaxResults    = 10
	defaultSourceTimeout = 45 * time.Second
)

// UnknownPlatformError is the one failure that aborts a whole search call:
// it means caller misuse, not a source outage.
type UnknownPlatformError struct {
	Platform string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q", e.Platform)
}

// Aggregator fans a search request out to the requested sources, isolates
// per-source failures, and folds everything into one combined result.
type Aggregator struct {
	reg     *Registry
	timeout time.Duration // per source call
}

func NewAggregator(reg *Registry, sourceTimeout time.Duration) *Aggregator {
	if sourceTimeout <= 0 {
		sourceTimeout = defaultSourceTimeout
	}
	return &Aggregator{reg: reg, timeout: sourceTimeout}
}

// Search runs one aggregation pass. Partial failure is the normal case: the
// returned result is fully populated even when every platform errors. The
// only error return is request validation (unknown platform identifiers).
func (a *Aggregator) Search(ctx context.Context, req domain.SearchRequest) (domain.CombinedSearchResult, error) {
	start := time.Now().UTC()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	// Resolve all platforms up front; unknown identifiers fail the call
	// before anything is dispatched.
	platforms := make([]string, 0, len(req.Platforms))
	sources := make([]source.Source, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		src, ok := a.reg.Lookup(p)
		if !ok {
			return domain.CombinedSearchResult{}, &UnknownPlatformError{Platform: p}
		}
		platforms = append(platforms, p)
		sources = append(sources, src)
	}

	log.Printf("[search] query=%q location=%q platforms=%v max=%d",
		req.Query, req.Location, platforms, maxResults)

	// Fan-out. Results land in a slice indexed by request order, so the
	// output never depends on wall-clock completion order.
	results := make([]domain.PlatformResult, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			results[i] = a.searchOne(ctx, src, source.Query{
				Keywords: req.Query,
				Location: req.Location,
				Limit:    maxResults,
			})
			return nil
		})
	}
	_ = g.Wait()

	byPlatform := make(map[string]domain.PlatformResult, len(platforms))
	total := 0
	for i, p := range platforms {
		byPlatform[p] = results[i]
		if results[i].Status != domain.StatusError {
			total += len(results[i].Jobs)
		}
	}

	combined := Combine(platforms, byPlatform)
	combined = ApplyFilters(combined, req.Filters)

	res := domain.CombinedSearchResult{
		Query:             req.Query,
		Location:          req.Location,
		PlatformsSearched: platforms,
		TotalResults:      total,
		ResultsByPlatform: byPlatform,
		CombinedResults:   combined,
		Metadata: domain.SearchMetadata{
			StartTime:      start,
			EndTime:        time.Now().UTC(),
			FiltersApplied: req.Filters,
			MaxPerPlatform: maxResults,
		},
	}

	log.Printf("[search] done total=%d combined=%d elapsed=%s",
		res.TotalResults, len(res.CombinedResults), res.Metadata.EndTime.Sub(start))
	return res, nil
}

// searchOne wraps a single adapter invocation in its timeout budget and
// converts the outcome to a tagged platform result. Adapter panics and
// errors stay inside this boundary.
func (a *Aggregator) searchOne(ctx context.Context, src source.Source, q source.Query) (pr domain.PlatformResult) {
	t0 := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[search:%s] panic: %v", src.Name(), rec)
			pr = domain.PlatformResult{
				Status:  domain.StatusError,
				Error:   fmt.Sprintf("panic: %v", rec),
				Elapsed: time.Since(t0),
				Seconds: time.Since(t0).Seconds(),
			}
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := src.Search(cctx, q)
	elapsed := time.Since(t0)

	if err != nil {
		log.Printf("[search:%s] error: %v", src.Name(), err)
		return domain.PlatformResult{
			Status:  domain.StatusError,
			Error:   err.Error(),
			Elapsed: elapsed,
			Seconds: elapsed.Seconds(),
		}
	}

	jobs := stampPlatform(res.Jobs, src.Name())

	status := domain.StatusSuccess
	if res.Limited {
		status = domain.StatusLimited
	}
	return domain.PlatformResult{
		Status:  status,
		Jobs:    jobs,
		Total:   len(jobs),
		Note:    res.Note,
		Elapsed: elapsed,
		Seconds: elapsed.Seconds(),
	}
}

// stampPlatform fills in SourcePlatform and ScrapedAt on postings whose
// adapter left them empty. Postings are copied, never mutated in place.
func stampPlatform(jobs []domain.JobPosting, platform string) []domain.JobPosting {
	out := make([]domain.JobPosting, len(jobs))
	now := time.Now().UTC()
	for i, j := range jobs {
		if j.SourcePlatform == "" {
			j.SourcePlatform = platform
		}
		if j.ScrapedAt.IsZero() {
			j.ScrapedAt = now
		}
		out[i] = j
	}
	return out
}
