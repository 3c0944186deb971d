package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/util"
)

const defaultAPIURL = "https://remotive.com/api/remote-jobs"

type Config struct {
	APIURL string
}

type Adapter struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Adapter {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	return &Adapter{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (a *Adapter) Name() string { return "remotive" }

type apiResponse struct {
	Jobs []posting `json:"jobs"`
}

type posting struct {
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	CandidateLoc    string   `json:"candidate_required_location"`
	Tags            []string `json:"tags"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	Salary          string   `json:"salary"`
	PublicationDate string   `json:"publication_date"`
	JobType         string   `json:"job_type"`
}

// Search hits the remote-jobs endpoint. Remotive filters server-side, so the
// query goes into the URL instead of being matched client-side.
func (a *Adapter) Search(ctx context.Context, q source.Query) (source.Result, error) {
	u := a.cfg.APIURL
	params := url.Values{}
	if strings.TrimSpace(q.Keywords) != "" {
		params.Set("search", q.Keywords)
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprint(q.Limit))
	}
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return source.Result{}, fmt.Errorf("remotive request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if a.limiter != nil {
		if err := a.limiter.WaitURL(ctx, u); err != nil {
			return source.Result{}, err
		}
	}

	res, err := a.hc.Do(req)
	if err != nil {
		log.Printf("[remotive] fetch error: %v", err)
		return source.Result{}, nil
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[remotive] status %d", res.StatusCode)
		return source.Result{}, nil
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		log.Printf("[remotive] decode error: %v", err)
		return source.Result{}, nil
	}

	now := time.Now().UTC()
	var out []domain.JobPosting
	for _, p := range ar.Jobs {
		loc := util.NormalizeLocation(p.CandidateLoc)
		if loc == "" {
			loc = "Remote"
		}

		tags := p.Tags
		if p.JobType != "" {
			tags = append(tags, p.JobType)
		}

		j := domain.JobPosting{
			Title:          util.CleanText(p.Title),
			Company:        util.CleanText(p.CompanyName),
			Location:       loc,
			Tags:           tags,
			URL:            strings.TrimSpace(p.URL),
			Description:    util.StripHTML(p.Description),
			Salary:         util.CleanText(p.Salary),
			PostedDate:     strings.TrimSpace(p.PublicationDate),
			SourcePlatform: a.Name(),
			ScrapedAt:      now,
		}
		if !j.Identifiable() {
			continue
		}
		out = append(out, j)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}

	log.Printf("[remotive] matched %d jobs", len(out))
	return source.Result{Jobs: out}, nil
}
