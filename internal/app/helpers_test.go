package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	fail   bool
	closed bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) setFail(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = fail
}

type frame struct {
	Type      string `json:"type"`
	Body      string `json:"body"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// byType decodes received frames and keeps those of one event type.
func (c *fakeConn) byType(t string) []frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []frame
	for _, raw := range c.frames {
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []domain.TranscriptEntry
	fail    bool
}

func (r *fakeRecorder) Record(_ context.Context, e domain.TranscriptEntry) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return time.Time{}, errors.New("store down")
	}
	e.At = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.entries = append(r.entries, e)
	return e.At, nil
}

func (r *fakeRecorder) byKind(k domain.EntryKind) []domain.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TranscriptEntry
	for _, e := range r.entries {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

type fakeSink struct {
	mu     sync.Mutex
	counts []int
}

func (s *fakeSink) PublishCount(_ context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, n)
	return nil
}
