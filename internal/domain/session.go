// Package domain contains entity without logic, just meta-data
package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// Session is one live connection. The id is generated at connect time and
// never reused. Origin is the obfuscated address token; the raw client
// address is never retained.
type Session struct {
	ID          SessionID
	ConnectedAt time.Time
	Origin      string
}

// NewSession avoids raw literals in adapters and keeps construction obvious.
func NewSession(origin string) *Session {
	return &Session{
		ID:          SessionID(uuid.NewString()),
		ConnectedAt: time.Now(),
		Origin:      origin,
	}
}
