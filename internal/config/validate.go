package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy along with any
// errors and warnings found. Callers should keep the copy.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Sources.Jobmail.SubjectAny = trimList(out.Sources.Jobmail.SubjectAny)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.SourceTimeoutSeconds <= 0 {
		res.addErr("search.source_timeout_seconds must be > 0")
	} else if out.Search.SourceTimeoutSeconds < 5 {
		res.addWarn("search.source_timeout_seconds is very low (%d); slow boards will time out constantly.", out.Search.SourceTimeoutSeconds)
	}
	if out.Search.DefaultMaxResults <= 0 {
		res.addErr("search.default_max_results must be > 0")
	}
	if out.Search.HostRequestsPerSec < 0 {
		res.addErr("search.host_requests_per_sec must be >= 0")
	}
	if out.Search.HostBurst < 0 {
		res.addErr("search.host_burst must be >= 0")
	}

	s := out.Sources
	if !s.RemoteOK.Enabled && !s.Arbeitnow.Enabled && !s.Remotive.Enabled &&
		!s.Indeed.Enabled && !s.Glassdoor.Enabled && !s.Jobmail.Enabled {
		res.addWarn("no sources enabled; every search will come back empty.")
	}

	// jobmail required fields if enabled (password lives in the keychain)
	if out.Sources.Jobmail.Enabled {
		jm := out.Sources.Jobmail
		if strings.TrimSpace(jm.IMAPHost) == "" {
			res.addErr("sources.jobmail.imap_host is required when sources.jobmail.enabled=true")
		}
		if jm.IMAPPort == 0 {
			res.addErr("sources.jobmail.imap_port is required when sources.jobmail.enabled=true")
		}
		if strings.TrimSpace(jm.Username) == "" {
			res.addErr("sources.jobmail.username is required when sources.jobmail.enabled=true")
		}
		if strings.TrimSpace(jm.Mailbox) == "" {
			res.addErr("sources.jobmail.mailbox is required when sources.jobmail.enabled=true")
		}
		if len(jm.SubjectAny) == 0 {
			res.addWarn("sources.jobmail.subject_any is empty; mail scanning may find nothing.")
		}
	}

	if out.Outreach.SMTPHost != "" && out.Outreach.SMTPPort == 0 {
		res.addErr("outreach.smtp_port is required when outreach.smtp_host is set")
	}
	if out.Outreach.SMTPHost != "" && strings.TrimSpace(out.Outreach.From) == "" {
		res.addWarn("outreach.from is empty; sent messages will use the SMTP username as sender.")
	}

	return out, res
}
