package store

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/Whisper/internal/domain"
)

// MemoryRecorder keeps transcripts in process memory. Used by tests and by
// dev runs without a configured Mongo.
type MemoryRecorder struct {
	mu      sync.Mutex
	entries []domain.TranscriptEntry

	// Clock is swappable for tests; nil means time.Now.
	Clock func() time.Time
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

func (r *MemoryRecorder) Record(_ context.Context, e domain.TranscriptEntry) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.At = r.now().UTC()
	r.entries = append(r.entries, e)
	return e.At, nil
}

// Entries returns a copy of everything recorded so far.
func (r *MemoryRecorder) Entries() []domain.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TranscriptEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ByKey filters entries under one chat key.
func (r *MemoryRecorder) ByKey(chatKey string) []domain.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TranscriptEntry
	for _, e := range r.entries {
		if e.ChatKey == chatKey {
			out = append(out, e)
		}
	}
	return out
}
