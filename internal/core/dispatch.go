package core

// deliver queues ev for c without blocking the hub. A client whose buffer is
// full is marked slow and disconnected once the current command finishes.
func (h *Hub) deliver(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.log.Warn().Str("client_id", c.ID).Stringer("event", ev.Kind).Msg("client buffer full")
		h.slow[c] = struct{}{}
	}
}

// toSender answers the client that issued the command.
func (h *Hub) toSender(c *Client, ev *Event) {
	h.deliver(c, ev)
}

// toRoom fans ev out to the members of room at the time of the call.
func (h *Hub) toRoom(room *Room, ev *Event) {
	for _, c := range room.Members() {
		h.deliver(c, ev)
	}
}

// toOthers fans ev out to the room, skipping the sender.
func (h *Hub) toOthers(room *Room, sender *Client, ev *Event) {
	for _, c := range room.Members() {
		if c == sender {
			continue
		}
		h.deliver(c, ev)
	}
}

// toAll reaches every connected client regardless of room.
func (h *Hub) toAll(ev *Event) {
	for c := range h.clients {
		h.deliver(c, ev)
	}
}

// toAllExcept reaches every connected client but the sender.
func (h *Hub) toAllExcept(sender *Client, ev *Event) {
	for c := range h.clients {
		if c == sender {
			continue
		}
		h.deliver(c, ev)
	}
}
