package core

import (
	"context"
	"time"

	"github.com/dkeye/Whisper/internal/domain"
)

// Frame is a serialized wire payload.
type Frame []byte

// SignalConnection abstracts for a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Recorder durably stores one transcript entry and returns the authoritative
// server timestamp. Implementations stamp the entry themselves; At on the
// passed entry is advisory.
type Recorder interface {
	Record(ctx context.Context, e domain.TranscriptEntry) (time.Time, error)
}

// Obfuscator turns a raw client address into an opaque token safe to store.
// The core never sees the raw address after this call.
type Obfuscator interface {
	Obfuscate(raw string) string
}

// PresenceSource is the read-only presence count for other subsystems.
type PresenceSource interface {
	CurrentPresenceCount() int
}

// PresenceSink mirrors the live count to an external system (advisory;
// publish failures must not affect matching).
type PresenceSink interface {
	PublishCount(ctx context.Context, n int) error
}
