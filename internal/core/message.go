package core

import "time"

// Side is the stance a debate participant argues for.
type Side string

const (
	SidePro Side = "pro"
	SideCon Side = "con"
)

// Opposite returns the other side of the debate.
func (s Side) Opposite() Side {
	if s == SidePro {
		return SideCon
	}
	return SidePro
}

// Message is the domain model for a chat message.
type Message struct {
	Sender    string
	Content   string
	Timestamp int64 // unix millis, assigned at receipt
	Role      Side  // empty unless the sender holds a debate side
}

// NewMessage stamps content from sender with the current wall clock.
func NewMessage(sender, content string, role Side) Message {
	return Message{
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
		Role:      role,
	}
}
