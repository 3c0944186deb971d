package arbeitnow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/util"
)

const defaultAPIURL = "https://www.arbeitnow.com/api/job-board-api"

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

func (a *Adapter) Name() string { return "arbeitnow" }

type apiResponse struct {
	Data []posting `json:"data"`
}

type posting struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	CreatedAt   int64    `json:"created_at"`
}

func (a *Adapter) Search(ctx context.Context, q source.Query) (source.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.APIURL, nil)
	if err != nil {
		return source.Result{}, fmt.Errorf("arbeitnow request: %w", err)
	}
	req.Header.Set("User-Agent", util.RandomUserAgent())
	req.Header.Set("Accept", "application/json")

	if a.limiter != nil {
		if err := a.limiter.WaitURL(ctx, a.cfg.APIURL); err != nil {
			return source.Result{}, err
		}
	}

	res, err := a.hc.Do(req)
	if err != nil {
		log.Printf("[arbeitnow] fetch error: %v", err)
		return source.Result{}, nil
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[arbeitnow] status %d", res.StatusCode)
		return source.Result{}, nil
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		log.Printf("[arbeitnow] decode error: %v", err)
		return source.Result{}, nil
	}

	now := time.Now().UTC()
	var out []domain.JobPosting
	for _, p := range ar.Data {
		if !util.MatchesKeyword(q.Keywords, p.Title, p.Description, strings.Join(p.Tags, " ")) {
			continue
		}

		loc := util.NormalizeLocation(p.Location)
		if loc == "" {
			loc = "Remote"
		}

		posted := ""
		if p.CreatedAt > 0 {
			posted = time.Unix(p.CreatedAt, 0).UTC().Format("2006-01-02")
		}

		j := domain.JobPosting{
			Title:          util.CleanText(p.Title),
			Company:        util.CleanText(p.CompanyName),
			Location:       loc,
			Tags:           p.Tags,
			URL:            strings.TrimSpace(p.URL),
			Description:    util.StripHTML(p.Description),
			PostedDate:     posted,
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

	log.Printf("[arbeitnow] matched %d jobs", len(out))
	return source.Result{Jobs: out}, nil
}
