package remoteok

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

const defaultAPIURL = "https://remoteok.com/api"

type Config struct {
	// APIURL overrides the endpoint, mainly for tests.
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

func (a *Adapter) Name() string { return "remoteok" }

// The feed is a JSON array whose first element is legal/metadata, so we
// decode into raw messages and skip anything without a position.
type posting struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Salary      string   `json:"salary"`
	Date        string   `json:"date"`
}

func (a *Adapter) Search(ctx context.Context, q source.Query) (source.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.APIURL, nil)
	if err != nil {
		return source.Result{}, fmt.Errorf("remoteok request: %w", err)
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
		log.Printf("[remoteok] fetch error: %v", err)
		return source.Result{}, nil
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[remoteok] status %d", res.StatusCode)
		return source.Result{}, nil
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		log.Printf("[remoteok] decode error: %v", err)
		return source.Result{}, nil
	}
	if len(raw) > 0 {
		// first entry is metadata
		raw = raw[1:]
	}

	now := time.Now().UTC()
	var out []domain.JobPosting
	for _, msg := range raw {
		var p posting
		if err := json.Unmarshal(msg, &p); err != nil {
			continue
		}
		if strings.TrimSpace(p.Position) == "" {
			continue
		}
		if !util.MatchesKeyword(q.Keywords, p.Position, p.Description, strings.Join(p.Tags, " ")) {
			continue
		}

		loc := util.NormalizeLocation(p.Location)
		if loc == "" {
			loc = "Remote"
		}

		j := domain.JobPosting{
			Title:          util.CleanText(p.Position),
			Company:        util.CleanText(p.Company),
			Location:       loc,
			Tags:           p.Tags,
			URL:            strings.TrimSpace(p.URL),
			Description:    util.StripHTML(p.Description),
			Salary:         util.CleanText(p.Salary),
			PostedDate:     strings.TrimSpace(p.Date),
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

	log.Printf("[remoteok] matched %d jobs", len(out))
	return source.Result{Jobs: out}, nil
}
