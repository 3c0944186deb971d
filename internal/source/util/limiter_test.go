package util

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_AllowsWithinBudget(t *testing.T) {
	hl := NewHostLimiter(100, 5)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := hl.WaitURL(ctx, "https://remoteok.com/api"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}

func TestHostLimiter_SeparateHosts(t *testing.T) {
	// burst 1 at a very slow refill: a second request to the SAME host would
	// block, but a different host has its own bucket.
	hl := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hl.WaitURL(ctx, "https://a.example/x"); err != nil {
		t.Fatalf("first host: %v", err)
	}
	if err := hl.WaitURL(ctx, "https://b.example/y"); err != nil {
		t.Fatalf("second host should not share the first host's bucket: %v", err)
	}
}

func TestHostLimiter_ContextCancel(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := hl.WaitURL(ctx, "https://a.example/x"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := hl.WaitURL(ctx, "https://a.example/x"); err == nil {
		t.Fatal("second wait should fail once the context deadline passes")
	}
}

func TestHostLimiter_UnparseableURL(t *testing.T) {
	hl := NewHostLimiter(100, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := hl.WaitURL(ctx, "::not a url::"); err != nil {
		t.Fatalf("unparseable url must still be limited, not rejected: %v", err)
	}
}
