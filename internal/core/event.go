package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers room history to a client that just joined.
	EventHistory EventKind = iota
	// EventRoomMessage notifies clients about a chat message in a room.
	EventRoomMessage
	// EventTyping notifies clients that a user is typing.
	EventTyping
	// EventStopTyping notifies clients that a user stopped typing.
	EventStopTyping
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     string
	Message  Message
	Messages []Message // For EventHistory
}
