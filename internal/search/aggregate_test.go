package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
)

type fakeSource struct {
	name   string
	result source.Result
	err    error
	delay  time.Duration
	panics bool

	gotQuery source.Query
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, q source.Query) (source.Result, error) {
	f.gotQuery = q
	if f.panics {
		panic("adapter exploded")
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return source.Result{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.result, f.err
}

func job(title, company, url string) domain.JobPosting {
	return domain.JobPosting{Title: title, Company: company, URL: url}
}

func TestSearch_PartialFailure(t *testing.T) {
	ok := &fakeSource{
		name: "alpha",
		result: source.Result{Jobs: []domain.JobPosting{
			job("Go Developer", "Acme", "https://a.example/1"),
			job("Platform Engineer", "Beta Inc", "https://a.example/2"),
		}},
	}
	down := &fakeSource{name: "bravo", err: errors.New("connect: refused")}
	limited := &fakeSource{
		name: "charlie",
		result: source.Result{
			Jobs:    []domain.JobPosting{job("Fallback Role", "Charlie (unavailable)", "https://c.example/p1")},
			Limited: true,
			Note:    "placeholder data returned - scraping was blocked",
		},
	}

	agg := NewAggregator(NewRegistry(ok, down, limited), time.Second)
	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "engineer",
		Platforms: []string{"alpha", "bravo", "charlie"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.ResultsByPlatform["alpha"].Status; got != domain.StatusSuccess {
		t.Errorf("alpha status = %q, want success", got)
	}
	if got := res.ResultsByPlatform["bravo"].Status; got != domain.StatusError {
		t.Errorf("bravo status = %q, want error", got)
	}
	if got := res.ResultsByPlatform["bravo"].Error; !strings.Contains(got, "refused") {
		t.Errorf("bravo error = %q, want the adapter error text", got)
	}
	if got := res.ResultsByPlatform["charlie"].Status; got != domain.StatusLimited {
		t.Errorf("charlie status = %q, want limited", got)
	}
	if got := res.ResultsByPlatform["charlie"].Note; got == "" {
		t.Error("charlie note should carry the placeholder explanation")
	}

	// error platforms contribute nothing; limited ones count
	if res.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3", res.TotalResults)
	}
	if len(res.CombinedResults) != 3 {
		t.Errorf("combined = %d jobs, want 3", len(res.CombinedResults))
	}
	for _, j := range res.ResultsByPlatform["alpha"].Jobs {
		if j.SourcePlatform != "alpha" {
			t.Errorf("job %q not stamped with platform, got %q", j.Title, j.SourcePlatform)
		}
		if j.ScrapedAt.IsZero() {
			t.Errorf("job %q has zero ScrapedAt", j.Title)
		}
	}
}

func TestSearch_UnknownPlatform(t *testing.T) {
	agg := NewAggregator(NewRegistry(&fakeSource{name: "alpha"}), time.Second)

	_, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "x",
		Platforms: []string{"alpha", "nope"},
	})
	var unknown *UnknownPlatformError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want *UnknownPlatformError", err)
	}
	if unknown.Platform != "nope" {
		t.Errorf("Platform = %q, want nope", unknown.Platform)
	}
}

func TestSearch_NoPlatforms(t *testing.T) {
	agg := NewAggregator(NewRegistry(), time.Second)

	res, err := agg.Search(context.Background(), domain.SearchRequest{Query: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalResults != 0 || len(res.ResultsByPlatform) != 0 || len(res.CombinedResults) != 0 {
		t.Errorf("want empty result, got %+v", res)
	}
}

func TestSearch_BlankPlatformSkipped(t *testing.T) {
	ok := &fakeSource{name: "alpha"}
	agg := NewAggregator(NewRegistry(ok), time.Second)

	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "x",
		Platforms: []string{"", "  ", "alpha"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.PlatformsSearched) != 1 || res.PlatformsSearched[0] != "alpha" {
		t.Errorf("PlatformsSearched = %v, want [alpha]", res.PlatformsSearched)
	}
}

func TestSearch_PanicBecomesErrorStatus(t *testing.T) {
	boom := &fakeSource{name: "boom", panics: true}
	ok := &fakeSource{
		name:   "alpha",
		result: source.Result{Jobs: []domain.JobPosting{job("Dev", "Acme", "https://a.example/1")}},
	}

	agg := NewAggregator(NewRegistry(boom, ok), time.Second)
	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "x",
		Platforms: []string{"boom", "alpha"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pr := res.ResultsByPlatform["boom"]
	if pr.Status != domain.StatusError {
		t.Errorf("boom status = %q, want error", pr.Status)
	}
	if !strings.Contains(pr.Error, "panic") {
		t.Errorf("boom error = %q, want panic text", pr.Error)
	}
	if res.ResultsByPlatform["alpha"].Status != domain.StatusSuccess {
		t.Error("healthy platform must be unaffected by a sibling panic")
	}
}

func TestSearch_SlowSourceTimesOut(t *testing.T) {
	slow := &fakeSource{name: "slow", delay: 5 * time.Second}
	agg := NewAggregator(NewRegistry(slow), 50*time.Millisecond)

	start := time.Now()
	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "x",
		Platforms: []string{"slow"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("search took %s, timeout not enforced", elapsed)
	}
	if got := res.ResultsByPlatform["slow"].Status; got != domain.StatusError {
		t.Errorf("slow status = %q, want error", got)
	}
}

func TestSearch_DefaultsApplied(t *testing.T) {
	src := &fakeSource{name: "alpha"}
	agg := NewAggregator(NewRegistry(src), time.Second)

	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "go",
		Location:  "Berlin",
		Platforms: []string{"alpha"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.gotQuery.Limit != defaultMaxResults {
		t.Errorf("adapter limit = %d, want default %d", src.gotQuery.Limit, defaultMaxResults)
	}
	if src.gotQuery.Location != "Berlin" {
		t.Errorf("adapter location = %q", src.gotQuery.Location)
	}
	if res.Metadata.MaxPerPlatform != defaultMaxResults {
		t.Errorf("metadata max = %d, want %d", res.Metadata.MaxPerPlatform, defaultMaxResults)
	}
	if res.Metadata.EndTime.Before(res.Metadata.StartTime) {
		t.Error("metadata end time before start time")
	}
}

func TestSearch_OutputIndependentOfCompletionOrder(t *testing.T) {
	// The slower source is listed first; its jobs must still come first in
	// per-platform bookkeeping and dedup order.
	slow := &fakeSource{
		name:   "slowfirst",
		delay:  50 * time.Millisecond,
		result: source.Result{Jobs: []domain.JobPosting{job("Role", "Shared Co", "https://dup.example/x")}},
	}
	fast := &fakeSource{
		name:   "fastsecond",
		result: source.Result{Jobs: []domain.JobPosting{job("Role", "Shared Co", "https://dup.example/x")}},
	}

	agg := NewAggregator(NewRegistry(slow, fast), time.Second)
	res, err := agg.Search(context.Background(), domain.SearchRequest{
		Query:     "x",
		Platforms: []string{"slowfirst", "fastsecond"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.CombinedResults) != 1 {
		t.Fatalf("combined = %d, want 1 after dedup", len(res.CombinedResults))
	}
	if got := res.CombinedResults[0].SourcePlatform; got != "slowfirst" {
		t.Errorf("surviving duplicate came from %q, want the first-listed platform", got)
	}
}
