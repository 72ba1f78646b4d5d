package app

import (
	"context"
	"time"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/rs/zerolog/log"
)

// PresenceTracker fans the live connection count out to every session and
// mirrors it to an optional external sink. The count is always read from the
// registry at broadcast time, never cached.
type PresenceTracker struct {
	reg  *ConnectionRegistry
	sink core.PresenceSink
}

func NewPresenceTracker(reg *ConnectionRegistry, sink core.PresenceSink) *PresenceTracker {
	return &PresenceTracker{reg: reg, sink: sink}
}

// BroadcastCount pushes a presence_count event to every registered session.
// Individual send failures are logged and skipped; this is advisory UI data
// and partial delivery is acceptable.
func (p *PresenceTracker) BroadcastCount() {
	n := p.reg.Count()
	frame := core.PresenceFrame(n)
	for _, snap := range p.reg.Connections() {
		if err := snap.Conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.presence").Str("sid", string(snap.SID)).Msg("presence send skipped")
		}
	}
	if p.sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := p.sink.PublishCount(ctx, n); err != nil {
			log.Warn().Err(err).Str("module", "app.presence").Int("count", n).Msg("presence sink publish failed")
		}
	}
	log.Debug().Str("module", "app.presence").Int("count", n).Msg("presence broadcast")
}

// CurrentPresenceCount is the readout other parts of the site may poll.
func (p *PresenceTracker) CurrentPresenceCount() int {
	return p.reg.Count()
}
