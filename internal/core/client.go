package core

// DefaultClientBuffer is the size of a client's command and event channels.
const DefaultClientBuffer = 64

// Client is one live connection as seen by the core layer.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// owned by the hub loop
	room   *Room
	debate bool
	done   chan struct{}
}

// NewClient constructs a client with initialized channels. A non-positive
// buffer falls back to DefaultClientBuffer.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		done:     make(chan struct{}),
	}
}

// Done is closed once the hub has unregistered the client.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
