package secrets

import (
	"testing"

	"github.com/zalando/go-keyring"

	"leadfinder-engine/internal/config"
)

func TestSetGetDelete(t *testing.T) {
	keyring.MockInit()

	if err := Set("leadfinder:test:acct", "hunter2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Get("leadfinder:test:acct")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("got %q", got)
	}

	if err := Delete("leadfinder:test:acct"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := Get("leadfinder:test:acct"); err == nil {
		t.Error("get after delete should fail")
	}
}

func TestEmptyArgumentsRejected(t *testing.T) {
	keyring.MockInit()

	if err := Set("", "v"); err == nil {
		t.Error("empty account must be rejected")
	}
	if err := Set("acct", ""); err == nil {
		t.Error("empty value must be rejected")
	}
	if _, err := Get(""); err == nil {
		t.Error("empty account lookup must fail")
	}
}

func TestAccountNames(t *testing.T) {
	var cfg config.Config
	cfg.Sources.Jobmail.Username = "me@example.com"
	cfg.Sources.Jobmail.IMAPHost = "imap.example.com"
	cfg.Outreach.From = "me@example.com"
	cfg.Outreach.SMTPHost = "smtp.example.com"

	if got := IMAPAccount(cfg); got != "leadfinder:imap:me@example.com@imap.example.com" {
		t.Errorf("imap account = %q", got)
	}
	if got := SMTPAccount(cfg); got != "leadfinder:smtp:me@example.com@smtp.example.com" {
		t.Errorf("smtp account = %q", got)
	}
}
