package core

import (
	"encoding/json"
	"time"
)

// The closed set of outbound event kinds. Everything a client ever sees is
// one of these; errors are never surfaced on the wire.
const (
	EventStatus       = "status"
	EventMatched      = "matched"
	EventMessage      = "message"
	EventDisconnected = "disconnected"
	EventPresence     = "presence_count"
	EventPong         = "pong"
)

// Marshal errors are impossible for these fixed shapes, so the builders
// return frames directly.

func StatusFrame(text string) Frame {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
		Body string `json:"body"`
	}{EventStatus, text})
	return b
}

func MatchedFrame(text string) Frame {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
		Body string `json:"body"`
	}{EventMatched, text})
	return b
}

func MessageFrame(body string, ts time.Time) Frame {
	b, _ := json.Marshal(struct {
		Type      string `json:"type"`
		Body      string `json:"body"`
		Timestamp string `json:"timestamp"`
	}{EventMessage, body, ts.UTC().Format(time.RFC3339)})
	return b
}

func DisconnectedFrame(text string) Frame {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
		Body string `json:"body"`
	}{EventDisconnected, text})
	return b
}

func PresenceFrame(n int) Frame {
	b, _ := json.Marshal(struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	}{EventPresence, n})
	return b
}

func PongFrame() Frame {
	b, _ := json.Marshal(struct {
		Type string `json:"type"`
	}{EventPong})
	return b
}
