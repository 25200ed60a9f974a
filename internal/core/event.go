package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomHistory delivers a room's stored messages to a joining client.
	EventRoomHistory EventKind = iota
	// EventSystemMessage carries a human-readable notice (join, leave, room full).
	EventSystemMessage
	// EventRandomRoomFound tells the requester which room matchmaking picked.
	EventRandomRoomFound
	// EventRoomAvailability answers a room availability check.
	EventRoomAvailability
	// EventChatMessage notifies room members about a chat message.
	EventChatMessage
	// EventDebateRoomAssigned tells a debate joiner its room and side.
	EventDebateRoomAssigned
	// EventDebateParticipants carries the full debate participant list.
	EventDebateParticipants
	// EventDebateRoomFull rejects a debate join when both sides are taken.
	EventDebateRoomFull
	// EventDebateMessage relays a debate chat message.
	EventDebateMessage
	// EventError notifies the sender about a rejected command.
	EventError
)

var eventNames = map[EventKind]string{
	EventRoomHistory:        "room-history",
	EventSystemMessage:      "system-message",
	EventRandomRoomFound:    "randomRoomFound",
	EventRoomAvailability:   "roomAvailabilityResponse",
	EventChatMessage:        "chat-message",
	EventDebateRoomAssigned: "debate:room-assigned",
	EventDebateParticipants: "debate:participants-update",
	EventDebateRoomFull:     "debate:room-full",
	EventDebateMessage:      "chat:message",
	EventError:              "error",
}

// String returns the wire name of the event.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind         EventKind
	Room         string
	Text         string        // EventSystemMessage
	Message      Message       // EventChatMessage, EventDebateMessage
	Messages     []Message     // EventRoomHistory
	Availability *Availability // EventRoomAvailability
	Assignment   *Assignment   // EventDebateRoomAssigned
	Participants []Participant // EventDebateParticipants
	Error        *CoreError
}

// Availability describes the occupancy of a room.
type Availability struct {
	RoomID       string
	Exists       bool
	IsFull       bool
	CurrentUsers int
	MaxUsers     int
}

// Assignment is the seat a debate joiner received.
type Assignment struct {
	RoomID string
	Side   Side
	ConnID string
}

// RoomStat is a point-in-time view of one active room.
type RoomStat struct {
	RoomID       string
	CurrentUsers int
	MaxUsers     int
	Messages     int
}
