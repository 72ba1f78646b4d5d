package app

import (
	"context"
	"sync"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	WaitingText      = "Waiting for someone to join..."
	MatchedText      = "You are now chatting with a stranger. Say hi!"
	DisconnectedText = "Stranger has disconnected."
)

// Matchmaker runs the pairing protocol: a connecting session either claims
// the head of the waiting queue or becomes the new head, paired sessions
// relay messages to each other, and a disconnect unwinds whichever state the
// session was in.
//
// All queue/table decisions happen under one mutex. That single critical
// section is the whole serialization story: two sessions connecting at once
// cannot both claim the same waiting head, and a third cannot steal a
// partner mid-handoff. Matching is correct only within this process; a
// multi-node deployment would need a single elected matching authority in
// front of it.
type Matchmaker struct {
	reg        *ConnectionRegistry
	presence   *PresenceTracker
	transcript *TranscriptLogger

	mu    sync.Mutex // the matching critical section
	queue *WaitingQueue
	pairs *PairingTable
}

func NewMatchmaker(reg *ConnectionRegistry, presence *PresenceTracker, transcript *TranscriptLogger) *Matchmaker {
	m := &Matchmaker{
		reg:        reg,
		presence:   presence,
		transcript: transcript,
		queue:      NewWaitingQueue(),
		pairs:      NewPairingTable(),
	}
	return m
}

// Connect registers the session and makes the matching decision. On
// ErrDuplicateSession the caller must close the connection; no queue or
// table state exists for it.
func (m *Matchmaker) Connect(ctx context.Context, sess *domain.Session, conn core.SignalConnection) error {
	if err := m.reg.Register(sess, conn); err != nil {
		return err
	}
	m.presence.BroadcastCount()

	m.mu.Lock()
	partner, found := m.queue.DequeueHead()
	var chatKey string
	if found {
		key, err := m.pairs.CreatePair(sess.ID, partner)
		if err != nil {
			// Unreachable while dequeue+pair stay inside this lock. Put the
			// head back rather than leave it lost.
			log.Error().Err(err).Str("module", "app.matchmaker").Str("sid", string(sess.ID)).Str("partner", string(partner)).Msg("pairing invariant violation")
			m.queue.Enqueue(partner)
			found = false
		}
		chatKey = key
	}
	if !found {
		m.queue.Enqueue(sess.ID)
	}
	m.mu.Unlock()

	if !found {
		m.transcript.Log(ctx, domain.ChatKey(sess.ID, sess.ID), sess.ID, domain.KindStatus, WaitingText, sess.Origin)
		m.deliver(ctx, sess.ID, core.StatusFrame(WaitingText))
		log.Info().Str("module", "app.matchmaker").Str("sid", string(sess.ID)).Msg("session waiting")
		return nil
	}

	m.transcript.Log(ctx, chatKey, sess.ID, domain.KindMatched, MatchedText, sess.Origin)
	frame := core.MatchedFrame(MatchedText)
	m.deliver(ctx, sess.ID, frame)
	m.deliver(ctx, partner, frame)
	log.Info().Str("module", "app.matchmaker").Str("sid", string(sess.ID)).Str("partner", string(partner)).Str("chat_key", chatKey).Msg("sessions paired")
	return nil
}

// Message relays one chat message to the sender's partner. A sender with no
// partner (still waiting, or the partner is already torn down) is silently
// dropped; the user never sees an error for a vanished stranger.
func (m *Matchmaker) Message(ctx context.Context, sid domain.SessionID, body string) {
	m.mu.Lock()
	partner, ok := m.pairs.PartnerOf(sid)
	m.mu.Unlock()
	if !ok {
		log.Debug().Str("module", "app.matchmaker").Str("sid", string(sid)).Msg("message without partner dropped")
		return
	}

	origin := ""
	if sess, ok := m.reg.Get(sid); ok {
		origin = sess.Origin
	}
	ts := m.transcript.Log(ctx, domain.ChatKey(sid, partner), sid, domain.KindMessage, body, origin)
	m.deliver(ctx, partner, core.MessageFrame(body, ts))
}

// Disconnect unwinds a session: out of the queue or out of its pairing
// (notifying the partner), out of the registry, then a presence broadcast.
// Every step is idempotent, so duplicate disconnect signals are harmless.
func (m *Matchmaker) Disconnect(ctx context.Context, sid domain.SessionID) {
	origin := ""
	if sess, ok := m.reg.Get(sid); ok {
		origin = sess.Origin
	}

	m.mu.Lock()
	m.queue.Remove(sid)
	partner, hadPartner := m.pairs.Dissolve(sid)
	m.mu.Unlock()

	if hadPartner {
		m.transcript.Log(ctx, domain.ChatKey(sid, partner), sid, domain.KindDisconnected, DisconnectedText, origin)
		m.deliver(ctx, partner, core.DisconnectedFrame(DisconnectedText))
	}

	if m.reg.Deregister(sid) {
		m.presence.BroadcastCount()
	}
	log.Info().Str("module", "app.matchmaker").Str("sid", string(sid)).Bool("had_partner", hadPartner).Msg("session disconnected")
}

// deliver sends one frame and converts a failure into a disconnect of the
// recipient. Never retried; the unreachable side only ever comes back as a
// normal disconnected notification to its partner.
func (m *Matchmaker) deliver(ctx context.Context, sid domain.SessionID, f core.Frame) {
	if err := m.reg.SendTo(sid, f); err != nil {
		log.Warn().Err(err).Str("module", "app.matchmaker").Str("sid", string(sid)).Msg("recipient unreachable, tearing down")
		m.Disconnect(ctx, sid)
	}
}

// WaitingCount reports how many sessions sit in the queue. Advisory.
func (m *Matchmaker) WaitingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// PartnerOf exposes the live pairing state (used by tests and the debug
// surface, never by the hot path).
func (m *Matchmaker) PartnerOf(sid domain.SessionID) (domain.SessionID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairs.PartnerOf(sid)
}
