package main

import (
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/events"
	"leadfinder-engine/internal/httpapi"
	"leadfinder-engine/internal/outreach"
	"leadfinder-engine/internal/search"
	"leadfinder-engine/internal/secrets"
	"leadfinder-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("LEADFINDER_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would fight over sqlite.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		if !vr.OK() {
			for _, e := range vr.Errors {
				log.Printf("[config] error: %s", e)
			}
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "leadfinder.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	reg := buildRegistry(cfg)
	agg := search.NewAggregator(reg, time.Duration(cfg.Search.SourceTimeoutSeconds)*time.Second)

	deps := httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Searcher:    agg,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		NewWriter:   newWriter,
		NewMailer:   newMailer,
	}

	handler := httpapi.Chain(
		httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[engine] listening on http://%s (db=%s sources=%v)", addr, dbPath, reg.Names())

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

func newWriter(cfg config.Config) outreach.MessageWriter {
	apiKey, err := secrets.Get(secrets.AccountLLMKey)
	if err != nil || cfg.Outreach.LLM.BaseURL == "" {
		return outreach.TemplateWriter{}
	}
	return outreach.NewLLMWriter(
		cfg.Outreach.LLM.BaseURL,
		apiKey,
		cfg.Outreach.LLM.Model,
		&http.Client{Timeout: 60 * time.Second},
	)
}

func newMailer(cfg config.Config) outreach.Mailer {
	pw, _ := secrets.Get(secrets.SMTPAccount(cfg))
	return outreach.Mailer{
		Host:     cfg.Outreach.SMTPHost,
		Port:     cfg.Outreach.SMTPPort,
		From:     cfg.Outreach.From,
		Password: pw,
	}
}
