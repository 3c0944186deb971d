package events

import (
	"encoding/json"
	"testing"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish("hello")

	if got := <-a; got != "hello" {
		t.Errorf("a got %q", got)
	}
	if got := <-b; got != "hello" {
		t.Errorf("b got %q", got)
	}
}

func TestHub_SlowSubscriberDropsNotBlocks(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// channel buffer is 10; anything beyond must be dropped silently
	for i := 0; i < 50; i++ {
		h.Publish("evt")
	}
	if n := len(ch); n != 10 {
		t.Errorf("buffered %d events, want 10", n)
	}
}

func TestHub_UnsubscribedClientIgnored(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	// must not panic by sending on the closed channel
	h.Publish("after close")
}

func TestMakeEvent(t *testing.T) {
	raw := MakeEvent("req-1", TypeLeadSaved, 1, map[string]any{"id": 7})

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if e.Type != TypeLeadSaved || e.Version != 1 || e.RequestID != "req-1" {
		t.Errorf("envelope = %+v", e)
	}
	if e.At.IsZero() {
		t.Error("timestamp missing")
	}
	if len(e.Data) == 0 {
		t.Error("data payload missing")
	}
}
