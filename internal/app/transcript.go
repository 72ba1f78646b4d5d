package app

import (
	"context"
	"time"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
	"github.com/rs/zerolog/log"
)

// TranscriptLogger adapts chat events into Recorder calls. Persistence
// failures are logged and swallowed: live delivery never blocks on
// durability, and a missing transcript row is an accepted degradation.
type TranscriptLogger struct {
	rec   core.Recorder
	clock func() time.Time
}

func NewTranscriptLogger(rec core.Recorder) *TranscriptLogger {
	return &TranscriptLogger{rec: rec, clock: time.Now}
}

// Log records one event and returns the timestamp to attach to the outbound
// frame. On recorder failure the local clock stands in so the partner still
// sees a stamped message.
func (l *TranscriptLogger) Log(ctx context.Context, chatKey string, sender domain.SessionID, kind domain.EntryKind, body, origin string) time.Time {
	ts, err := l.rec.Record(ctx, domain.TranscriptEntry{
		ChatKey: chatKey,
		Sender:  sender,
		Kind:    kind,
		Body:    body,
		Origin:  origin,
		At:      l.clock(),
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.transcript").Str("chat_key", chatKey).Str("kind", string(kind)).Msg("transcript write failed")
		return l.clock()
	}
	return ts
}
