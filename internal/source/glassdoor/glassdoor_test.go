package glassdoor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadfinder-engine/internal/source"
)

const statePage = `<!doctype html>
<html><head><script>
window.GD__INITIAL_STATE__ = {"jobListings":{"jobListings":[
  {"jobTitle":"Site Reliability Engineer","employerName":"Acme Cloud",
   "location":"Seattle, WA","jobLink":"/partner/jobListing.htm?id=1",
   "salarySnippet":"$130K - $160K","discoverDate":"2025-05-03"},
  {"jobTitle":"QA Engineer","employerName":"Beta Soft",
   "location":"Remote","jobLink":"https://www.glassdoor.com/job-listing/2"}
]}};
</script></head><body></body></html>`

const markupPage = `<!doctype html>
<html><body>
<li class="react-job-listing">
  <a data-test="job-link" href="/job-listing/3">Build Engineer</a>
  <span class="employer-name">Gamma Works</span>
  <span data-test="emp-location">Portland, OR</span>
</li>
</body></html>`

func TestSearch_ParsesEmbeddedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statePage))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL}, nil)
	res, err := a.Search(context.Background(), source.Query{Keywords: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(res.Jobs))
	}

	j := res.Jobs[0]
	if j.Title != "Site Reliability Engineer" || j.Company != "Acme Cloud" {
		t.Errorf("job = %q @ %q", j.Title, j.Company)
	}
	if j.Salary != "$130K - $160K" {
		t.Errorf("salary = %q", j.Salary)
	}
	if !strings.HasPrefix(j.URL, srv.URL+"/partner/") {
		t.Errorf("relative url not made absolute: %q", j.URL)
	}
	if j.SourcePlatform != "glassdoor" {
		t.Errorf("platform = %q", j.SourcePlatform)
	}
}

func TestSearch_FallsBackToMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(markupPage))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL}, nil)
	res, err := a.Search(context.Background(), source.Query{Keywords: "build", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(res.Jobs))
	}
	if res.Jobs[0].Company != "Gamma Works" {
		t.Errorf("company = %q", res.Jobs[0].Company)
	}
}

func TestSearch_BlockedReturnsLimitedPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "cloudflare")
		w.Header().Set("CF-RAY", "ray123")
		http.Error(w, "Attention Required! | Cloudflare", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL}, nil)
	res, err := a.Search(context.Background(), source.Query{Keywords: "go", Limit: 2})
	if err != nil {
		t.Fatalf("a block must degrade, not error: %v", err)
	}
	if !res.Limited {
		t.Fatal("blocked scrape must be flagged limited")
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("got %d placeholders, want limit 2", len(res.Jobs))
	}
	if res.Jobs[0].URL == res.Jobs[1].URL {
		t.Error("placeholder urls must be distinct")
	}
}

func TestSearchURL(t *testing.T) {
	a := New(Config{}, nil)
	u := a.searchURL(source.Query{Keywords: "golang", Location: "Remote"})
	if !strings.Contains(u, "sc.keyword=golang") || !strings.Contains(u, "locKeyword=Remote") {
		t.Errorf("searchURL = %q", u)
	}
}
