package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	InboundEventJoin       = "join"
	InboundEventMessage    = "message"
	InboundEventTyping     = "typing"
	InboundEventStopTyping = "stop typing"

	OutboundEventMessages   = "messages"
	OutboundEventMessage    = "message"
	OutboundEventTyping     = "typing"
	OutboundEventStopTyping = "stop typing"
)

// MessageData is a chat message from the client. Any client-supplied
// timestamp is decoded and discarded.
type MessageData struct {
	RoomID    string          `json:"room_id" validate:"required"`
	UserID    string          `json:"user_id"`
	Text      string          `json:"text"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Message is a stamped chat message as seen on the wire.
type Message struct {
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Messages is the history dump sent to a client after it joins a room.
type Messages struct {
	Messages []Message `json:"messages"`
}

// Typing announces that a user started or stopped typing.
type Typing struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id,omitempty"`
}
