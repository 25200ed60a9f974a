package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeIdentify              = "identify"
	InboundTypeJoinRoom              = "joinRoom"
	InboundTypeLeaveRoom             = "leaveRoom"
	InboundTypeRequestRandomRoom     = "requestRandomRoom"
	InboundTypeCheckRoomAvailability = "checkRoomAvailability"
	InboundTypeSendMessage           = "sendMessage"
	InboundTypeDebateJoin            = "debate:join"
	InboundTypeDebateLeave           = "debate:leave"
	InboundTypeDebateGetParticipants = "debate:get-participants"
	InboundTypeDebateChatMessage     = "chat:message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// IdentifyData links the connection to a client-persisted user id.
type IdentifyData struct {
	UserID string `json:"userId"`
}

// RoomData names a room for join and availability requests.
type RoomData struct {
	RoomID string `json:"roomId"`
}

// SendMessageData is a chat message for a room.
type SendMessageData struct {
	Content string `json:"content"`
	RoomID  string `json:"roomId"`
}

// DebateData is sent with debate join, leave and participant requests.
type DebateData struct {
	User     string `json:"user,omitempty"`
	DebateID string `json:"debateId,omitempty"`
}

// DebateMessageData is a chat message inside the debate room.
type DebateMessageData struct {
	DebateID string `json:"debateId,omitempty"`
	Message  string `json:"message"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ChatMessage is a stored or relayed chat message.
type ChatMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Role      string `json:"role,omitempty"`
}

// RoomAvailability answers checkRoomAvailability.
type RoomAvailability struct {
	RoomID       string `json:"roomId"`
	Exists       bool   `json:"exists"`
	IsFull       bool   `json:"isFull"`
	CurrentUsers int    `json:"currentUsers"`
	MaxUsers     int    `json:"maxUsers"`
}

// RoomAssigned tells a debate joiner its seat.
type RoomAssigned struct {
	RoomID string `json:"roomId"`
	Side   string `json:"side"`
	UserID string `json:"userId"`
}

// Participant is one seated debater.
type Participant struct {
	User     string `json:"user"`
	Side     string `json:"side"`
	SocketID string `json:"socketId"`
}

// ParticipantsUpdate carries the full debate participant list.
type ParticipantsUpdate struct {
	Participants []Participant `json:"participants"`
}

// RoomFull rejects a debate join.
type RoomFull struct {
	RoomID       string        `json:"roomId"`
	Message      string        `json:"message"`
	Participants []Participant `json:"participants"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
