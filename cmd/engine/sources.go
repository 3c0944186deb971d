package main

import (
	"fmt"
	"log"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/search"
	"leadfinder-engine/internal/secrets"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/arbeitnow"
	"leadfinder-engine/internal/source/glassdoor"
	"leadfinder-engine/internal/source/indeed"
	"leadfinder-engine/internal/source/jobmail"
	"leadfinder-engine/internal/source/remoteok"
	"leadfinder-engine/internal/source/remotive"
	"leadfinder-engine/internal/source/util"
)

// buildRegistry wires up every source enabled in config. They all share one
// host limiter so parallel searches stay polite per host.
func buildRegistry(cfg config.Config) *search.Registry {
	reqPerSec := cfg.Search.HostRequestsPerSec
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	burst := cfg.Search.HostBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := util.NewHostLimiter(reqPerSec, burst)

	var sources []source.Source
	if cfg.Sources.RemoteOK.Enabled {
		sources = append(sources, remoteok.New(remoteok.Config{}, limiter))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		sources = append(sources, arbeitnow.New(arbeitnow.Config{}, limiter))
	}
	if cfg.Sources.Remotive.Enabled {
		sources = append(sources, remotive.New(remotive.Config{}, limiter))
	}
	if cfg.Sources.Indeed.Enabled {
		sources = append(sources, indeed.New(indeed.Config{}, limiter))
	}
	if cfg.Sources.Glassdoor.Enabled {
		sources = append(sources, glassdoor.New(glassdoor.Config{}, limiter))
	}
	if cfg.Sources.Jobmail.Enabled {
		jm := cfg.Sources.Jobmail
		pw, err := secrets.Get(secrets.IMAPAccount(cfg))
		if err != nil {
			log.Printf("[engine] jobmail enabled but no IMAP password in keychain: %v", err)
		}
		sources = append(sources, jobmail.New(jobmail.Config{
			Addr:       fmt.Sprintf("%s:%d", jm.IMAPHost, jm.IMAPPort),
			Username:   jm.Username,
			Password:   pw,
			Mailbox:    jm.Mailbox,
			SubjectAny: jm.SubjectAny,
			SinceDays:  jm.SinceDays,
		}))
	}

	return search.NewRegistry(sources...)
}
