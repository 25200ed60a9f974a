package core

// history is a bounded FIFO of room messages. Oldest entries are dropped
// once the limit is exceeded.
type history struct {
	limit    int
	messages []Message
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) append(msg Message) {
	h.messages = append(h.messages, msg)
	if over := len(h.messages) - h.limit; over > 0 {
		h.messages = h.messages[over:]
	}
}

// snapshot returns a copy the caller may keep.
func (h *history) snapshot() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *history) len() int {
	return len(h.messages)
}
