package util

import (
	"net/http"
	"strings"
)

// LooksLikeBlock reports whether a response is an anti-automation block
// rather than a normal page. 403/429 always count; otherwise we look for
// Cloudflare interstitial markers in the headers and body preview.
func LooksLikeBlock(resp *http.Response, bodyPreview string) bool {
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return true
	}

	server := strings.ToLower(resp.Header.Get("Server"))
	cfRay := resp.Header.Get("CF-RAY")
	if cfRay == "" {
		cfRay = resp.Header.Get("cf-ray")
	}
	if strings.Contains(server, "cloudflare") && cfRay != "" && resp.StatusCode >= 400 {
		return true
	}

	low := strings.ToLower(bodyPreview)
	if strings.Contains(low, "/cdn-cgi/challenge") ||
		(strings.Contains(low, "cloudflare") && strings.Contains(low, "checking your browser")) ||
		(strings.Contains(low, "attention required") && strings.Contains(low, "cloudflare")) {
		return true
	}
	return false
}
