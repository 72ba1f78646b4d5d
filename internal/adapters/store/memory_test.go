package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkeye/Whisper/internal/adapters/store"
	"github.com/dkeye/Whisper/internal/domain"
)

func TestMemoryRecorderStampsEntries(t *testing.T) {
	rec := store.NewMemoryRecorder()
	fixed := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	rec.Clock = func() time.Time { return fixed }

	ts, err := rec.Record(context.Background(), domain.TranscriptEntry{
		ChatKey: "a:b",
		Sender:  "a",
		Kind:    domain.KindMessage,
		Body:    "hello",
	})
	if err != nil {
		t.Fatalf("Record err: %v", err)
	}
	if !ts.Equal(fixed) {
		t.Fatalf("timestamp: got %v want %v", ts, fixed)
	}

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d want 1", len(entries))
	}
	if entries[0].Body != "hello" || !entries[0].At.Equal(fixed) {
		t.Fatalf("stored entry: %+v", entries[0])
	}
}

func TestMemoryRecorderByKey(t *testing.T) {
	rec := store.NewMemoryRecorder()
	for _, key := range []string{"a:b", "a:b", "c:d"} {
		if _, err := rec.Record(context.Background(), domain.TranscriptEntry{ChatKey: key, Kind: domain.KindMessage}); err != nil {
			t.Fatalf("Record err: %v", err)
		}
	}
	if got := len(rec.ByKey("a:b")); got != 2 {
		t.Fatalf("ByKey a:b: got %d want 2", got)
	}
	if got := len(rec.ByKey("x:y")); got != 0 {
		t.Fatalf("ByKey x:y: got %d want 0", got)
	}
}
