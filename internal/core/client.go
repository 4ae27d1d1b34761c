package core

// DefaultClientBuffer is the outbound queue size used when none is given.
const DefaultClientBuffer = 64

// Client is one live connection as seen by the core layer.
// The transport drains Events and writes them to the socket.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with a bounded outbound queue.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}

// Send queues an event without blocking. It returns false when the queue
// is full and the event was dropped.
func (c *Client) Send(event *Event) bool {
	select {
	case c.Events <- event:
		return true
	default:
		// Drop if slow consumer.
		return false
	}
}
