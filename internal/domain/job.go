package domain

import (
	"strings"
	"time"
)

// JobPosting is the normalized unit every source adapter produces.
// A posting is never mutated after creation; the pipeline only filters
// and reorders.
type JobPosting struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Tags           []string  `json:"tags,omitempty"`
	URL            string    `json:"url"`
	Description    string    `json:"description"` // plain text, HTML stripped
	Salary         string    `json:"salary,omitempty"`
	PostedDate     string    `json:"postedDate,omitempty"` // source-native format
	SourcePlatform string    `json:"sourcePlatform"`
	ScrapedAt      time.Time `json:"scrapedAt"`
}

// Identifiable reports whether the posting carries enough identity to be
// retained: a URL, or a non-empty (title, company) pair. Adapters drop
// anything that fails this before it reaches the aggregator.
func (j JobPosting) Identifiable() bool {
	if strings.TrimSpace(j.URL) != "" {
		return true
	}
	return strings.TrimSpace(j.Title) != "" || strings.TrimSpace(j.Company) != ""
}

// DedupKey is the composite identity the combiner checks:
// lowercase title | lowercase company | lowercase url.
func (j JobPosting) DedupKey() string {
	return strings.ToLower(j.Title) + "|" + strings.ToLower(j.Company) + "|" + strings.ToLower(j.URL)
}
