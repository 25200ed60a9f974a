package core

// Room groups up to Capacity clients sharing history and broadcasts.
type Room struct {
	Name     string
	Capacity int
	clients  map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(name string, capacity int) *Room {
	return &Room{
		Name:     name,
		Capacity: capacity,
		clients:  make(map[*Client]struct{}, capacity),
	}
}

// AddClient inserts a client into the room. Returns false if the room is full
// and the client is not already a member.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return true
	}
	if r.Full() {
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

// Has reports whether c is a member.
func (r *Room) Has(c *Client) bool {
	_, ok := r.clients[c]
	return ok
}

// Len returns the current member count.
func (r *Room) Len() int {
	return len(r.clients)
}

// Full returns true if no further client may join.
func (r *Room) Full() bool {
	return len(r.clients) >= r.Capacity
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}

// Members returns a snapshot of the current members.
func (r *Room) Members() []*Client {
	out := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		out = append(out, c)
	}
	return out
}
