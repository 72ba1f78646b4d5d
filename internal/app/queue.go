package app

import "github.com/dkeye/Whisper/internal/domain"

// WaitingQueue is the FIFO of sessions that connected but have no partner
// yet. Not safe for concurrent use on its own: every mutation happens inside
// the Matchmaker's matching critical section.
type WaitingQueue struct {
	order []domain.SessionID
	index map[domain.SessionID]struct{}
}

func NewWaitingQueue() *WaitingQueue {
	return &WaitingQueue{index: make(map[domain.SessionID]struct{})}
}

// Enqueue appends to the tail. The caller guarantees the id is not already
// queued or paired; the index keeps a repeat enqueue from corrupting order.
func (q *WaitingQueue) Enqueue(sid domain.SessionID) {
	if _, ok := q.index[sid]; ok {
		return
	}
	q.order = append(q.order, sid)
	q.index[sid] = struct{}{}
}

// DequeueHead removes and returns the oldest waiting id. This is the sole
// admission point into a pairing.
func (q *WaitingQueue) DequeueHead() (domain.SessionID, bool) {
	if len(q.order) == 0 {
		return "", false
	}
	sid := q.order[0]
	q.order = q.order[1:]
	delete(q.index, sid)
	return sid, true
}

// Remove deletes a specific id and reports whether it was present.
func (q *WaitingQueue) Remove(sid domain.SessionID) bool {
	if _, ok := q.index[sid]; !ok {
		return false
	}
	delete(q.index, sid)
	for i, s := range q.order {
		if s == sid {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

func (q *WaitingQueue) Contains(sid domain.SessionID) bool {
	_, ok := q.index[sid]
	return ok
}

func (q *WaitingQueue) Len() int { return len(q.order) }
