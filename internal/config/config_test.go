package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
app:
  port: 38471
  data_dir: ""
search:
  source_timeout_seconds: 45
  default_max_results: 10
  host_requests_per_sec: 0.5
  host_burst: 1
sources:
  remoteok:
    enabled: true
  arbeitnow:
    enabled: true
  remotive:
    enabled: false
  jobmail:
    enabled: false
    mailbox: "INBOX"
outreach:
  smtp_host: ""
  smtp_port: 587
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTemp(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != 38471 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if !cfg.Sources.RemoteOK.Enabled || cfg.Sources.Remotive.Enabled {
		t.Errorf("source toggles wrong: %+v", cfg.Sources)
	}
	if cfg.Search.HostRequestsPerSec != 0.5 {
		t.Errorf("host_requests_per_sec = %v", cfg.Search.HostRequestsPerSec)
	}
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	var cfg Config
	cfg.App.Port = 70000
	cfg.Search.SourceTimeoutSeconds = 0
	cfg.Search.DefaultMaxResults = 10

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected validation errors")
	}
	if len(res.Errors) < 2 {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestNormalizeAndValidate_JobmailRequiredFields(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Search.SourceTimeoutSeconds = 45
	cfg.Search.DefaultMaxResults = 10
	cfg.Sources.Jobmail.Enabled = true
	cfg.Sources.Jobmail.SubjectAny = []string{" job alert ", "job alert", ""}

	out, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("enabled jobmail without host/username must fail validation")
	}
	// trimmed, deduped
	if len(out.Sources.Jobmail.SubjectAny) != 1 || out.Sources.Jobmail.SubjectAny[0] != "job alert" {
		t.Errorf("subject_any = %v", out.Sources.Jobmail.SubjectAny)
	}
}

func TestNormalizeAndValidate_WarnsWhenNoSources(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Search.SourceTimeoutSeconds = 45
	cfg.Search.DefaultMaxResults = 10

	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("want a warning when every source is disabled")
	}
}

func TestSaveAtomic_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	var cfg Config
	cfg.App.Port = 4000
	cfg.Search.SourceTimeoutSeconds = 30
	cfg.Search.DefaultMaxResults = 5
	cfg.Sources.RemoteOK.Enabled = true

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.App.Port != 4000 || !got.Sources.RemoteOK.Enabled {
		t.Errorf("roundtrip mismatch: %+v", got)
	}

	// second save keeps a .bak of the previous version
	cfg.App.Port = 4001
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("backup missing: %v", err)
	}
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	var cfg Config // port 0
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("invalid config must not be saved")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeTemp(t, sample)

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if filepath.Dir(userPath) != dataDir {
		t.Errorf("user config at %q, want inside %q", userPath, dataDir)
	}

	// second call must not overwrite
	if err := os.WriteFile(userPath, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Error("existing user config was clobbered")
	}
}
