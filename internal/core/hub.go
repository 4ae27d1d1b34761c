package core

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// TypingScope selects who receives typing notifications.
type TypingScope string

const (
	// TypingScopeRoom notifies the other members of the sender's room.
	TypingScopeRoom TypingScope = "room"
	// TypingScopeGlobal notifies every other live connection.
	TypingScopeGlobal TypingScope = "global"
)

// Hub routes client commands into the history store and room index and
// fans the resulting events out to clients. All methods are safe for
// concurrent use; commands from a single client are expected to arrive
// sequentially.
type Hub struct {
	history *HistoryStore
	rooms   *RoomIndex
	clients *xsync.MapOf[string, *Client]
	typing  TypingScope
	now     func() time.Time
	log     *zerolog.Logger
}

// Option customizes a Hub.
type Option func(*Hub)

// WithTypingScope sets the audience of typing notifications.
func WithTypingScope(scope TypingScope) Option {
	return func(h *Hub) {
		if scope == TypingScopeGlobal || scope == TypingScopeRoom {
			h.typing = scope
		}
	}
}

// WithClock replaces the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.log = logger
		}
	}
}

// NewHub creates a hub over the given stores. Nil stores are replaced with
// fresh empty ones.
func NewHub(history *HistoryStore, rooms *RoomIndex, opts ...Option) *Hub {
	if history == nil {
		history = NewHistoryStore()
	}
	if rooms == nil {
		rooms = NewRoomIndex()
	}
	nop := zerolog.Nop()
	h := &Hub{
		history: history,
		rooms:   rooms,
		clients: xsync.NewMapOf[string, *Client](),
		typing:  TypingScopeRoom,
		now:     time.Now,
		log:     &nop,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterClient makes c reachable by global broadcasts.
func (h *Hub) RegisterClient(c *Client) {
	h.clients.Store(c.ID, c)
	h.log.Debug().Str("conn_id", c.ID).Int("clients", h.clients.Size()).Msg("client registered")
}

// UnregisterClient drops c from the registry and from every room.
func (h *Hub) UnregisterClient(c *Client) {
	room := h.rooms.LeaveAll(c)
	h.clients.Delete(c.ID)
	h.log.Debug().Str("conn_id", c.ID).Str("room_id", room).Msg("client unregistered")
}

// Handle dispatches a command issued by c.
func (h *Hub) Handle(c *Client, cmd *Command) {
	if cmd == nil {
		return
	}
	switch cmd.Kind {
	case CommandJoinRoom:
		h.Join(c, cmd.Room)
	case CommandSendRoomMessage:
		h.SendMessage(cmd.Message)
	case CommandTyping:
		h.Typing(c, cmd.User)
	case CommandStopTyping:
		h.StopTyping(c, cmd.User)
	default:
		h.log.Debug().Str("conn_id", c.ID).Int("kind", int(cmd.Kind)).Msg("unknown command")
	}
}

// Join moves c into room and sends it the room's history, oldest first.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	prev := h.rooms.Join(c, room)
	messages := h.history.Get(room)

	h.log.Info().Str("conn_id", c.ID).Str("room_id", room).Str("prev_room", prev).Msg("joined room")
	h.deliver(c, &Event{Kind: EventHistory, Room: room, Messages: messages})
}

// SendMessage stamps msg with the server time, records it and broadcasts it
// to every member of its room, the sender included. The stamped message is
// returned.
func (h *Hub) SendMessage(msg Message) Message {
	msg.Timestamp = h.now().UTC()
	h.history.Insert(msg)

	ev := &Event{Kind: EventRoomMessage, Room: msg.RoomID, User: msg.UserID, Message: msg}
	members := h.rooms.Members(msg.RoomID)
	for _, m := range members {
		h.deliver(m, ev)
	}

	h.log.Debug().
		Str("room_id", msg.RoomID).
		Str("user_id", msg.UserID).
		Int("recipients", len(members)).
		Msg("message broadcast")
	return msg
}

// Typing tells the other clients in scope that user is typing.
func (h *Hub) Typing(c *Client, user string) {
	h.broadcastTyping(c, EventTyping, user)
}

// StopTyping tells the other clients in scope that user stopped typing.
func (h *Hub) StopTyping(c *Client, user string) {
	h.broadcastTyping(c, EventStopTyping, user)
}

// History returns the recent messages of room, oldest first.
func (h *Hub) History(room string) []Message {
	return h.history.Get(room)
}

// RoomSize reports how many clients are currently in room.
func (h *Hub) RoomSize(room string) int {
	return len(h.rooms.Members(room))
}

// ClientCount reports how many clients are registered.
func (h *Hub) ClientCount() int {
	return h.clients.Size()
}

func (h *Hub) broadcastTyping(sender *Client, kind EventKind, user string) {
	room, inRoom := h.rooms.RoomOf(sender)
	ev := &Event{Kind: kind, Room: room, User: user}

	if h.typing == TypingScopeGlobal {
		h.clients.Range(func(id string, c *Client) bool {
			if c != sender {
				h.deliver(c, ev)
			}
			return true
		})
		return
	}

	if !inRoom {
		return
	}
	for _, m := range h.rooms.Members(room) {
		if m != sender {
			h.deliver(m, ev)
		}
	}
}

// deliver is best effort: a full queue drops the event for that client only.
func (h *Hub) deliver(c *Client, ev *Event) {
	if !c.Send(ev) {
		h.log.Debug().Str("conn_id", c.ID).Int("event", int(ev.Kind)).Msg("dropped event for slow client")
	}
}
