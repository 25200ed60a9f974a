package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandIdentify links the connection to a client-persisted user id.
	CommandIdentify CommandKind = iota
	// CommandJoinRoom joins a named room, leaving any previous one.
	CommandJoinRoom
	// CommandLeaveRoom leaves the current room.
	CommandLeaveRoom
	// CommandRequestRandomRoom matches the client into any room with a free slot.
	CommandRequestRandomRoom
	// CommandCheckRoomAvailability reports occupancy of a room to the sender.
	CommandCheckRoomAvailability
	// CommandSendMessage stores and fans out a chat message to a room.
	CommandSendMessage
	// CommandDebateJoin takes a side in the shared debate room.
	CommandDebateJoin
	// CommandDebateLeave gives up the debate side.
	CommandDebateLeave
	// CommandDebateParticipants asks for the current debate participant list.
	CommandDebateParticipants
	// CommandDebateMessage relays a debate chat message to everyone else.
	CommandDebateMessage
)

var commandNames = map[CommandKind]string{
	CommandIdentify:              "identify",
	CommandJoinRoom:              "joinRoom",
	CommandLeaveRoom:             "leaveRoom",
	CommandRequestRandomRoom:     "requestRandomRoom",
	CommandCheckRoomAvailability: "checkRoomAvailability",
	CommandSendMessage:           "sendMessage",
	CommandDebateJoin:            "debate:join",
	CommandDebateLeave:           "debate:leave",
	CommandDebateParticipants:    "debate:get-participants",
	CommandDebateMessage:         "chat:message",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Room    string
	User    string
	Content string
}
