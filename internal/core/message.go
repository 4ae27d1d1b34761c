package core

import "time"

// Message is the domain model for a chat message.
// Timestamp is always assigned by the server at receipt.
type Message struct {
	RoomID    string
	UserID    string
	Text      string
	Timestamp time.Time
}
