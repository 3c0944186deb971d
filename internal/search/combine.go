package search

import (
	"sort"
	"strings"
	"time"

	"leadfinder-engine/internal/domain"
)

// Combine merges per-platform results into one deduplicated sequence.
// Platforms are walked in the given order, so which duplicate survives is a
// by-product of request order, not a ranking decision. Error-status entries
// contribute nothing; limited entries do, because their placeholder jobs are
// the caller's signal that a source was degraded.
func Combine(order []string, results map[string]domain.PlatformResult) []domain.JobPosting {
	seenKey := map[string]bool{}
	seenURL := map[string]bool{}

	var out []domain.JobPosting
	for _, platform := range order {
		pr, ok := results[platform]
		if !ok || pr.Status == domain.StatusError {
			continue
		}
		for _, j := range pr.Jobs {
			key := j.DedupKey()
			urlKey := strings.ToLower(strings.TrimSpace(j.URL))

			// Double check: the composite key catches exact repeats, the
			// bare url catches the same listing captured with different
			// title or company text.
			if seenKey[key] {
				continue
			}
			if urlKey != "" && seenURL[urlKey] {
				continue
			}
			seenKey[key] = true
			if urlKey != "" {
				seenURL[urlKey] = true
			}
			out = append(out, j)
		}
	}

	sortByPostedDate(out)
	return out
}

// Date layouts seen across sources. Anything else stays unparsed and sorts
// as "most recent".
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
}

func parsePostedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// sortByPostedDate orders newest first. Records without a parseable date tie
// as equally most recent and keep their dedup-pass relative order; the sort
// is stable for exactly that reason.
func sortByPostedDate(jobs []domain.JobPosting) {
	type keyed struct {
		job domain.JobPosting
		t   *time.Time
	}
	ks := make([]keyed, len(jobs))
	for i := range jobs {
		ks[i] = keyed{job: jobs[i], t: parsePostedDate(jobs[i].PostedDate)}
	}
	sort.SliceStable(ks, func(i, k int) bool {
		ti, tk := ks[i].t, ks[k].t
		switch {
		case ti == nil && tk == nil:
			return false
		case ti == nil:
			return true // unparseable counts as most recent
		case tk == nil:
			return false
		default:
			return ti.After(*tk)
		}
	})
	for i := range ks {
		jobs[i] = ks[i].job
	}
}
