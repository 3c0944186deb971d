package domain

import "testing"

func TestIdentifiable(t *testing.T) {
	tests := []struct {
		name string
		job  JobPosting
		want bool
	}{
		{"url only", JobPosting{URL: "https://x.example/1"}, true},
		{"title only", JobPosting{Title: "Engineer"}, true},
		{"company only", JobPosting{Company: "Acme"}, true},
		{"nothing", JobPosting{Description: "great role"}, false},
		{"whitespace url", JobPosting{URL: "   "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.Identifiable(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupKey(t *testing.T) {
	a := JobPosting{Title: "Go Developer", Company: "Acme", URL: "https://X.example/1"}
	b := JobPosting{Title: "GO DEVELOPER", Company: "acme", URL: "https://x.example/1"}
	if a.DedupKey() != b.DedupKey() {
		t.Errorf("keys differ: %q vs %q", a.DedupKey(), b.DedupKey())
	}

	c := JobPosting{Title: "Go Developer", Company: "Acme", URL: "https://x.example/2"}
	if a.DedupKey() == c.DedupKey() {
		t.Error("different urls must produce different keys")
	}
}

func TestFilterSpecIsZero(t *testing.T) {
	if !(FilterSpec{}).IsZero() {
		t.Error("empty spec should be zero")
	}
	if (FilterSpec{RemoteOnly: true}).IsZero() {
		t.Error("remote_only spec should not be zero")
	}
	if (FilterSpec{SalaryMin: 1}).IsZero() {
		t.Error("salary spec should not be zero")
	}
}
