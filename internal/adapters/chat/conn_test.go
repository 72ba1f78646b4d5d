package chat

import (
	"errors"
	"testing"

	"github.com/dkeye/Whisper/internal/core"
)

func TestTrySendBackpressure(t *testing.T) {
	c := &WsChatConn{send: make(chan core.Frame, 1)}

	if err := c.TrySend(core.Frame("one")); err != nil {
		t.Fatalf("first send err: %v", err)
	}
	if err := c.TrySend(core.Frame("two")); !errors.Is(err, ErrBackpressure) {
		t.Fatalf("expected ErrBackpressure, got %v", err)
	}

	<-c.send
	if err := c.TrySend(core.Frame("three")); err != nil {
		t.Fatalf("send after drain err: %v", err)
	}
}

func TestTrySendAfterClose(t *testing.T) {
	c := &WsChatConn{send: make(chan core.Frame, 1)}
	c.closed = true

	if err := c.TrySend(core.Frame("x")); err == nil {
		t.Fatal("expected error on closed connection")
	}
}
