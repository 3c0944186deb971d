package outreach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadfinder-engine/internal/store"
)

func sampleLead() store.Lead {
	return store.Lead{
		ID:       1,
		Title:    "Go Developer",
		Company:  "Acme",
		Location: "Remote",
		URL:      "https://jobs.example/1",
	}
}

func TestLLMWriter_Draft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "Acme") {
			t.Errorf("prompt missing lead context: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Dear Acme team, short note."}}]}`))
	}))
	defer srv.Close()

	wr := NewLLMWriter(srv.URL, "test-key", "test-model", srv.Client())
	msg, err := wr.Draft(context.Background(), sampleLead(), "")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if msg != "Dear Acme team, short note." {
		t.Errorf("msg = %q", msg)
	}
}

func TestLLMWriter_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	wr := NewLLMWriter(srv.URL, "k", "m", srv.Client())
	if _, err := wr.Draft(context.Background(), sampleLead(), ""); err == nil {
		t.Fatal("API error payload must surface as an error")
	}
}

func TestLLMWriter_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	wr := NewLLMWriter(srv.URL, "k", "m", srv.Client())
	if _, err := wr.Draft(context.Background(), sampleLead(), ""); err == nil {
		t.Fatal("non-200 must surface as an error")
	}
}

func TestTemplateWriter(t *testing.T) {
	msg, err := TemplateWriter{}.Draft(context.Background(), sampleLead(), "casual")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if !strings.Contains(msg, "Acme") || !strings.Contains(msg, "Go Developer") {
		t.Errorf("template missing lead fields: %q", msg)
	}
	if !strings.Contains(msg, sampleLead().URL) {
		t.Errorf("template missing listing url: %q", msg)
	}
}

func TestMailer_Readiness(t *testing.T) {
	tests := []struct {
		m    Mailer
		want bool
	}{
		{Mailer{Host: "smtp.example.com", Port: 587, From: "me@example.com"}, true},
		{Mailer{Host: "smtp.example.com", Port: 587}, false},
		{Mailer{}, false},
	}
	for _, tt := range tests {
		if got := tt.m.Ready(); got != tt.want {
			t.Errorf("Ready(%+v) = %v, want %v", tt.m, got, tt.want)
		}
	}

	if err := (Mailer{}).Send("x@example.com", "s", "b"); err == nil {
		t.Error("unconfigured mailer must refuse to send")
	}
	m := Mailer{Host: "smtp.example.com", Port: 587, From: "me@example.com"}
	if err := m.Send("", "s", "b"); err == nil {
		t.Error("empty recipient must be rejected")
	}
}

func TestSanitizeHeader(t *testing.T) {
	if got := sanitizeHeader("hi\r\nBcc: evil@example.com"); strings.ContainsAny(got, "\r\n") {
		t.Errorf("header injection not stripped: %q", got)
	}
}
