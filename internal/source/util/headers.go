package util

import (
	"math/rand"
	"net/http"
)

// Browser identity sets rotated by the page-scraping adapters between
// attempts. Scrapers that present the same identity on every retry get
// blocked much faster.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// ApplyBrowserHeaders sets a rotating browser-like header set on req.
// attempt picks the user agent so successive retries present different
// identities; referer should be the site root.
func ApplyBrowserHeaders(req *http.Request, attempt int, referer string) {
	ua := userAgents[attempt%len(userAgents)]

	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("DNT", "1")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

// RandomUserAgent returns one of the rotating identities, for adapters that
// only need a single plausible UA per call.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}
