package domain

import "time"

// EntryKind classifies one chat event in the transcript.
type EntryKind string

const (
	KindMessage      EntryKind = "message"
	KindStatus       EntryKind = "status"
	KindMatched      EntryKind = "matched"
	KindDisconnected EntryKind = "disconnected"
)

// TranscriptEntry is one durably logged chat event. Immutable once recorded;
// retention is not this service's concern.
type TranscriptEntry struct {
	ChatKey string
	Sender  SessionID
	Kind    EntryKind
	Body    string
	Origin  string
	At      time.Time
}

// ChatKey derives the transcript grouping key for a pair of sessions.
// Order-independent: both partners derive the identical key. A session
// waiting alone uses ChatKey(id, id) as its provisional key.
func ChatKey(a, b SessionID) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + ":" + string(b)
}
