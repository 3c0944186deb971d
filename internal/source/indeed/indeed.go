package indeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/util"
)

const (
	defaultBaseURL = "https://www.indeed.com"
	maxAttempts    = 3
)

type Config struct {
	BaseURL string
}

// Adapter scrapes Indeed search result pages. Indeed renders listings from an
// embedded JSON blob (window._initialData); we read that first and only fall
// back to parsing the markup. Blocked attempts rotate browser headers; after
// the attempt budget is spent we return a limited placeholder result instead
// of a silent empty list.
type Adapter struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Adapter{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string { return "indeed" }

var initialDataRe = regexp.MustCompile(`(?s)window\._initialData\s*=\s*(\{.*?\});`)

func (a *Adapter) Search(ctx context.Context, q source.Query) (source.Result, error) {
	searchURL := a.searchURL(q)

	var jobs []domain.JobPosting
	blocked := false

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return source.Result{}, ctx.Err()
		default:
		}

		if a.limiter != nil {
			if err := a.limiter.WaitURL(ctx, searchURL); err != nil {
				return source.Result{}, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return source.Result{}, fmt.Errorf("indeed request: %w", err)
		}
		util.ApplyBrowserHeaders(req, attempt, a.cfg.BaseURL+"/")

		res, err := a.hc.Do(req)
		if err != nil {
			log.Printf("[indeed] attempt %d/%d: %v", attempt+1, maxAttempts, err)
			continue
		}
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<20))
		res.Body.Close()

		if util.LooksLikeBlock(res, string(body[:min(len(body), 4096)])) {
			blocked = true
			log.Printf("[indeed] blocked (attempt %d/%d), rotating headers", attempt+1, maxAttempts)
			continue
		}
		if res.StatusCode >= 400 {
			log.Printf("[indeed] status %d (attempt %d/%d)", res.StatusCode, attempt+1, maxAttempts)
			continue
		}

		jobs = a.parseListings(string(body), q.Limit)
		if len(jobs) > 0 {
			log.Printf("[indeed] scraped %d jobs", len(jobs))
			break
		}
		log.Printf("[indeed] no jobs parsed (attempt %d/%d)", attempt+1, maxAttempts)
	}

	if len(jobs) == 0 && blocked {
		// Clearly flagged fallback so callers can tell "source unusable"
		// apart from "no jobs".
		return source.Result{
			Jobs:    placeholderJobs(a.cfg.BaseURL, q.Limit),
			Limited: true,
			Note:    "placeholder data returned - scraping was blocked",
		}, nil
	}

	return source.Result{Jobs: jobs}, nil
}

func (a *Adapter) searchURL(q source.Query) string {
	params := url.Values{}
	if strings.TrimSpace(q.Keywords) != "" {
		params.Set("q", q.Keywords)
	}
	if strings.TrimSpace(q.Location) != "" {
		params.Set("l", q.Location)
	}
	params.Set("sort", "date")
	params.Set("limit", "50")
	params.Set("start", "0")
	return a.cfg.BaseURL + "/jobs?" + params.Encode()
}

// parseListings tries the embedded JSON state first, then raw markup.
func (a *Adapter) parseListings(html string, limit int) []domain.JobPosting {
	var jobs []domain.JobPosting

	if m := initialDataRe.FindStringSubmatch(html); m != nil {
		var data map[string]any
		if err := json.Unmarshal([]byte(m[1]), &data); err == nil {
			jobs = a.jobsFromState(data, limit)
		} else {
			log.Printf("[indeed] embedded state decode: %v", err)
		}
	}

	if len(jobs) == 0 {
		jobs = a.jobsFromMarkup(html, limit)
	}

	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs
}

// jobsFromState walks the known locations of the job list inside Indeed's
// initial-data blob. The structure shifts between page revisions, so several
// paths are tried in order.
func (a *Adapter) jobsFromState(data map[string]any, limit int) []domain.JobPosting {
	paths := [][]string{
		{"jobList", "jobList"},
		{"jobList"},
		{"searchResults", "jobList"},
		{"jobs", "jobList"},
		{"results", "jobList"},
	}

	var listings []any
	for _, path := range paths {
		cur := any(data)
		ok := true
		for _, key := range path {
			m, isMap := cur.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			cur, ok = m[key]
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		if l, isList := cur.([]any); isList {
			listings = l
			break
		}
	}

	now := time.Now().UTC()
	var out []domain.JobPosting
	for _, item := range listings {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		j := domain.JobPosting{
			Title:          util.CleanText(str(m, "jobTitle")),
			Company:        util.CleanText(str(m, "companyName")),
			Location:       util.NormalizeLocation(str(m, "location")),
			URL:            absoluteURL(a.cfg.BaseURL, str(m, "jobUrl")),
			Salary:         util.CleanText(str(m, "salary")),
			PostedDate:     strings.TrimSpace(str(m, "postedDate")),
			Description:    util.StripHTML(str(m, "jobDescription")),
			SourcePlatform: a.Name(),
			ScrapedAt:      now,
		}
		if !j.Identifiable() {
			continue
		}
		out = append(out, j)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// jobsFromMarkup is the fallback parse of the rendered result cards.
func (a *Adapter) jobsFromMarkup(html string, limit int) []domain.JobPosting {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	now := time.Now().UTC()
	var out []domain.JobPosting
	doc.Find("div.job_seen_beacon, div[data-jk]").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := util.CleanText(card.Find("h2.jobTitle, a.jobTitle, span[title]").First().Text())
		company := util.CleanText(card.Find("span.companyName, [data-testid='company-name']").First().Text())
		loc := util.CleanText(card.Find("div.companyLocation, [data-testid='text-location']").First().Text())
		salary := util.CleanText(card.Find("div.salary-snippet, .salary-snippet-container").First().Text())
		posted := util.CleanText(card.Find("span.date").First().Text())

		href, _ := card.Find("a[href]").First().Attr("href")

		j := domain.JobPosting{
			Title:          title,
			Company:        company,
			Location:       util.NormalizeLocation(loc),
			URL:            absoluteURL(a.cfg.BaseURL, href),
			Salary:         salary,
			PostedDate:     posted,
			SourcePlatform: a.Name(),
			ScrapedAt:      now,
		}
		if !j.Identifiable() {
			return true
		}
		out = append(out, j)
		return limit <= 0 || len(out) < limit
	})
	return out
}

func placeholderJobs(baseURL string, limit int) []domain.JobPosting {
	n := 5
	if limit > 0 && limit < n {
		n = limit
	}
	now := time.Now().UTC()
	out := make([]domain.JobPosting, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.JobPosting{
			Title:          "Software Engineer (Placeholder)",
			Company:        "Indeed (unavailable)",
			Location:       "Remote",
			URL:            fmt.Sprintf("%s/job/placeholder-%d", baseURL, i+1),
			Description:    "Placeholder listing generated because Indeed scraping was blocked.",
			Tags:           []string{"placeholder"},
			SourcePlatform: "indeed",
			ScrapedAt:      now,
		})
	}
	return out
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}
