package app

import (
	"errors"

	"github.com/dkeye/Whisper/internal/domain"
)

// ErrAlreadyPaired means CreatePair was asked to pair a session that is in a
// pairing already. The matchmaker's critical section makes this unreachable;
// if it fires, it is a programming error.
var ErrAlreadyPaired = errors.New("session already paired")

// PairingTable is the symmetric partner mapping: if a→b exists then b→a
// exists, and neither side is in any other pairing. Like WaitingQueue it is
// only ever mutated inside the matching critical section.
type PairingTable struct {
	partners map[domain.SessionID]domain.SessionID
}

func NewPairingTable() *PairingTable {
	return &PairingTable{partners: make(map[domain.SessionID]domain.SessionID)}
}

// CreatePair inserts both directions atomically and returns the shared
// chat key both partners log their transcript under.
func (t *PairingTable) CreatePair(a, b domain.SessionID) (string, error) {
	if _, ok := t.partners[a]; ok {
		return "", ErrAlreadyPaired
	}
	if _, ok := t.partners[b]; ok {
		return "", ErrAlreadyPaired
	}
	t.partners[a] = b
	t.partners[b] = a
	return domain.ChatKey(a, b), nil
}

func (t *PairingTable) PartnerOf(sid domain.SessionID) (domain.SessionID, bool) {
	p, ok := t.partners[sid]
	return p, ok
}

// Dissolve removes both directions of sid's pairing and returns the partner
// for notification. Idempotent: the second call for the same pair finds
// nothing and returns false.
func (t *PairingTable) Dissolve(sid domain.SessionID) (domain.SessionID, bool) {
	p, ok := t.partners[sid]
	if !ok {
		return "", false
	}
	delete(t.partners, sid)
	delete(t.partners, p)
	return p, true
}

// Len counts sessions (not pairs) currently in the table.
func (t *PairingTable) Len() int { return len(t.partners) }
