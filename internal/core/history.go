package core

import (
	"sync"

	"github.com/gammazero/deque"
)

// HistoryLimit is the number of most recent messages kept per room.
const HistoryLimit = 100

// HistoryStore keeps a bounded, in-memory record of recent messages per room.
// A single RW lock guards the whole map; no I/O happens while it is held.
type HistoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*deque.Deque[Message]
}

// NewHistoryStore creates an empty store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		rooms: make(map[string]*deque.Deque[Message]),
	}
}

// Insert puts msg at the front of its room's history and evicts the oldest
// entries beyond HistoryLimit. The room entry is created on first insert.
func (s *HistoryStore) Insert(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.rooms[msg.RoomID]
	if !ok {
		q = new(deque.Deque[Message])
		s.rooms[msg.RoomID] = q
	}
	q.PushFront(msg)
	for q.Len() > HistoryLimit {
		q.PopBack()
	}
}

// Get returns the room's messages oldest first.
// An unknown room yields an empty, non-nil slice.
func (s *HistoryStore) Get(roomID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.rooms[roomID]
	if !ok {
		return []Message{}
	}

	// Storage is newest-first, so walk it backwards.
	out := make([]Message, 0, q.Len())
	for i := q.Len() - 1; i >= 0; i-- {
		out = append(out, q.At(i))
	}
	return out
}
