package domain

import "time"

// Platform result statuses. "limited" means the adapter returned fallback
// placeholder data because the live source was unreachable or blocking;
// callers must be able to tell that apart from a real success.
const (
	StatusSuccess = "success"
	StatusLimited = "limited"
	StatusError   = "error"
)

// SearchRequest is constructed by the caller, consumed once, discarded.
type SearchRequest struct {
	Query       string     `json:"query"`
	Location    string     `json:"location"`
	Platforms   []string   `json:"platforms"`
	MaxResults  int        `json:"max_results"` // per platform, default 10
	Filters     FilterSpec `json:"filters"`
}

// FilterSpec is the recognized post-combination filter set. The zero value
// is the identity transform.
type FilterSpec struct {
	ExperienceLevel  string `json:"experience_level,omitempty"`
	JobType          string `json:"job_type,omitempty"`
	RemoteOnly       bool   `json:"remote_only,omitempty"`
	SalaryMin        int    `json:"salary_min,omitempty"`
	SalaryMax        int    `json:"salary_max,omitempty"`
	PostedWithinDays int    `json:"posted_within_days,omitempty"`
}

// IsZero reports whether no filter option is set.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// PlatformResult is the per-adapter outcome consumed by the aggregator's
// fan-in. Only success and limited entries contribute jobs downstream.
type PlatformResult struct {
	Status  string        `json:"status"`
	Jobs    []JobPosting  `json:"results"`
	Total   int           `json:"total_found"`
	Elapsed time.Duration `json:"-"`
	Seconds float64       `json:"search_time"`
	Error   string        `json:"error,omitempty"`
	Note    string        `json:"note,omitempty"`
}

// SearchMetadata records call-level timing and the filters that were applied.
type SearchMetadata struct {
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	FiltersApplied FilterSpec `json:"filters_applied"`
	MaxPerPlatform int        `json:"max_results_per_platform"`
}

// CombinedSearchResult is the fully-populated response of one search call,
// returned even under partial failure.
type CombinedSearchResult struct {
	Query             string                    `json:"query"`
	Location          string                    `json:"location"`
	PlatformsSearched []string                  `json:"platforms_searched"`
	TotalResults      int                       `json:"total_results"`
	ResultsByPlatform map[string]PlatformResult `json:"results_by_platform"`
	CombinedResults   []JobPosting              `json:"combined_results"`
	Metadata          SearchMetadata            `json:"search_metadata"`
}
