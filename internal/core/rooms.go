package core

import (
	"sync"

	"github.com/samber/lo"
)

// Room groups clients subscribed to the same broadcast channel.
type Room struct {
	Name    string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}

// RoomIndex tracks which room every live client is in.
// It keeps both directions (room -> clients, client -> room) under one lock,
// so a client is never observed in two rooms at once.
type RoomIndex struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	current map[*Client]string
}

// NewRoomIndex creates an empty index.
func NewRoomIndex() *RoomIndex {
	return &RoomIndex{
		rooms:   make(map[string]*Room),
		current: make(map[*Client]string),
	}
}

// Join moves c into room, leaving whatever room it was in before.
// It returns the previous room name, or "" if c was in none.
func (idx *RoomIndex) Join(c *Client, room string) string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	prev := idx.leaveLocked(c)
	r, ok := idx.rooms[room]
	if !ok {
		r = NewRoom(room)
		idx.rooms[room] = r
	}
	r.AddClient(c)
	idx.current[c] = room
	return prev
}

// LeaveAll removes c from every room. It returns the room c left, or "".
func (idx *RoomIndex) LeaveAll(c *Client) string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.leaveLocked(c)
}

func (idx *RoomIndex) leaveLocked(c *Client) string {
	prev, ok := idx.current[c]
	if !ok {
		return ""
	}
	delete(idx.current, c)
	if r, exists := idx.rooms[prev]; exists {
		r.RemoveClient(c)
		if r.Empty() {
			delete(idx.rooms, prev)
		}
	}
	return prev
}

// Members returns a snapshot of the clients in room.
// The result is empty (not nil) when nobody is there.
func (idx *RoomIndex) Members(room string) []*Client {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	r, ok := idx.rooms[room]
	if !ok {
		return []*Client{}
	}
	return lo.Keys(r.clients)
}

// RoomOf reports the room c is currently in.
func (idx *RoomIndex) RoomOf(c *Client) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	room, ok := idx.current[c]
	return room, ok
}
