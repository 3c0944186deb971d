package jobmail

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/util"
)

// Config describes the mailbox that receives job-alert emails
// (LinkedIn/Indeed digests and the like). The password comes from the OS
// keyring, not from config.
type Config struct {
	Addr       string // host:port, e.g. imap.gmail.com:993
	Username   string
	Password   string
	Mailbox    string   // default INBOX
	SubjectAny []string // a message is an alert if its subject contains any of these
	SinceDays  int      // default 7
}

// Adapter turns job-alert emails into postings: it searches recent messages,
// keeps those whose subject looks like a job alert, and extracts the job
// links and their anchor text from the message body.
type Adapter struct {
	cfg Config
}

func New(cfg Config) *Adapter {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.SinceDays <= 0 {
		cfg.SinceDays = 7
	}
	if len(cfg.SubjectAny) == 0 {
		cfg.SubjectAny = []string{"job alert", "jobs for you", "new jobs"}
	}
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "jobmail" }

func (a *Adapter) Search(ctx context.Context, q source.Query) (source.Result, error) {
	if a.cfg.Addr == "" || a.cfg.Username == "" || a.cfg.Password == "" {
		return source.Result{Note: "jobmail not configured"}, nil
	}

	host := a.cfg.Addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	c, err := imapclient.DialTLS(a.cfg.Addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
	})
	if err != nil {
		log.Printf("[jobmail] dial: %v", err)
		return source.Result{}, nil
	}
	defer func() { _ = c.Close() }()

	// best-effort close on cancellation
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(a.cfg.Username, a.cfg.Password).Wait(); err != nil {
		log.Printf("[jobmail] login: %v", err)
		return source.Result{}, nil
	}
	defer func() { _ = c.Logout().Wait() }()

	if _, err := c.Select(a.cfg.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		log.Printf("[jobmail] select %s: %v", a.cfg.Mailbox, err)
		return source.Result{}, nil
	}

	cutoff := time.Now().AddDate(0, 0, -a.cfg.SinceDays)
	searchData, err := c.UIDSearch(&imap.SearchCriteria{Since: cutoff}, nil).Wait()
	if err != nil {
		log.Printf("[jobmail] search: %v", err)
		return source.Result{}, nil
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return source.Result{}, nil
	}
	// newest first
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	const maxMessages = 50
	if len(uids) > maxMessages {
		uids = uids[:maxMessages]
	}

	bodyAll := &imap.FetchItemBodySection{Specifier: imap.PartSpecifierNone, Peek: true}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	now := time.Now().UTC()
	var out []domain.JobPosting
	for {
		select {
		case <-ctx.Done():
			return source.Result{}, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			log.Printf("[jobmail] fetch collect: %v", err)
			break
		}
		if buf.Envelope == nil || !a.isAlertSubject(buf.Envelope.Subject) {
			continue
		}

		posted := ""
		if !buf.Envelope.Date.IsZero() {
			posted = buf.Envelope.Date.UTC().Format("2006-01-02")
		}

		body := ""
		if b := buf.FindBodySection(bodyAll); b != nil {
			body = string(b)
		}

		for _, link := range extractJobLinks(body) {
			if !util.MatchesKeyword(q.Keywords, link.Text, buf.Envelope.Subject) {
				continue
			}
			j := domain.JobPosting{
				Title:          link.Text,
				Company:        companyFromSubject(buf.Envelope.Subject),
				Location:       "Remote",
				URL:            link.URL,
				Description:    fmt.Sprintf("From job alert email %q", util.CleanText(buf.Envelope.Subject)),
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
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}

	log.Printf("[jobmail] extracted %d jobs from alerts", len(out))
	return source.Result{Jobs: out}, nil
}

func (a *Adapter) isAlertSubject(subject string) bool {
	low := strings.ToLower(subject)
	for _, s := range a.cfg.SubjectAny {
		if strings.Contains(low, strings.ToLower(strings.TrimSpace(s))) {
			return true
		}
	}
	return false
}

type jobLink struct {
	URL  string
	Text string
}

var (
	reHref = regexp.MustCompile(`(?is)<a[^>]+href=["']([^"'#]+)["'][^>]*>(.*?)</a>`)
	reTags = regexp.MustCompile(`(?is)<[^>]+>`)
)

// extractJobLinks pulls anchors whose href looks like a job page. Tracking
// and unsubscribe links share alert emails with the actual postings, so the
// path has to mention jobs and the anchor text has to be a plausible title.
func extractJobLinks(body string) []jobLink {
	matches := reHref.FindAllStringSubmatch(body, -1)
	seen := map[string]bool{}
	var out []jobLink
	for _, m := range matches {
		href := strings.TrimSpace(html.UnescapeString(m[1]))
		text := util.CleanText(html.UnescapeString(reTags.ReplaceAllString(m[2], " ")))

		low := strings.ToLower(href)
		if !strings.HasPrefix(low, "http") {
			continue
		}
		if !strings.Contains(low, "/jobs/") && !strings.Contains(low, "/job/") && !strings.Contains(low, "jobid=") {
			continue
		}
		if text == "" || len(text) > 120 || looksLikeJunkText(text) {
			continue
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		out = append(out, jobLink{URL: href, Text: text})
	}
	return out
}

func looksLikeJunkText(t string) bool {
	l := strings.ToLower(t)
	return strings.Contains(l, "view all") || strings.Contains(l, "see more") ||
		strings.Contains(l, "unsubscribe") || strings.Contains(l, "apply now")
}

// companyFromSubject handles subjects like "Acme and 12 other companies are
// hiring" or "New jobs from Acme"; anything unrecognized maps to empty.
func companyFromSubject(subject string) string {
	s := util.CleanText(subject)
	low := strings.ToLower(s)
	if i := strings.Index(low, "jobs from "); i >= 0 {
		return util.CleanText(s[i+len("jobs from "):])
	}
	if i := strings.Index(low, " and "); i > 0 && strings.Contains(low, "hiring") {
		return util.CleanText(s[:i])
	}
	return ""
}
