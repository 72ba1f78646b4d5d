package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	// ErrDuplicateSession means a session id was registered twice. Ids are
	// fresh UUIDs, so this is a programming error, not a runtime condition.
	ErrDuplicateSession = errors.New("session already registered")
	ErrSessionNotFound  = errors.New("session not registered")
)

type registryEntry struct {
	session *domain.Session
	conn    core.SignalConnection
}

// ConnectionRegistry owns every live session and its send capability.
// WaitingQueue and PairingTable only ever hold ids.
type ConnectionRegistry struct {
	mu      sync.RWMutex
	entries map[domain.SessionID]*registryEntry
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{entries: make(map[domain.SessionID]*registryEntry)}
}

func (r *ConnectionRegistry) Register(sess *domain.Session, conn core.SignalConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[sess.ID]; ok {
		log.Error().Str("module", "app.registry").Str("sid", string(sess.ID)).Msg("duplicate session registration")
		return ErrDuplicateSession
	}
	r.entries[sess.ID] = &registryEntry{session: sess, conn: conn}
	log.Info().Str("module", "app.registry").Str("sid", string(sess.ID)).Msg("session registered")
	return nil
}

// Deregister removes the session and reports whether it was present.
// Absent is not an error: teardown may run more than once.
func (r *ConnectionRegistry) Deregister(sid domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[sid]; !ok {
		return false
	}
	delete(r.entries, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("session deregistered")
	return true
}

func (r *ConnectionRegistry) Get(sid domain.SessionID) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sid]
	if !ok {
		return nil, false
	}
	return e.session, true
}

func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SendTo is best-effort delivery. A failure is never retried; the caller
// treats the recipient as disconnected and tears it down.
func (r *ConnectionRegistry) SendTo(sid domain.SessionID, f core.Frame) error {
	r.mu.RLock()
	e, ok := r.entries[sid]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	if err := e.conn.TrySend(f); err != nil {
		return fmt.Errorf("send to %s: %w", sid, err)
	}
	return nil
}

type ConnSnap struct {
	SID  domain.SessionID
	Conn core.SignalConnection
}

func (r *ConnectionRegistry) Connections() []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.entries))
	for sid, e := range r.entries {
		out = append(out, ConnSnap{SID: sid, Conn: e.conn})
	}
	return out
}
