package http

import (
	"bytes"
	"encoding/json"

	"github.com/vovakirdan/wiredebate-server/internal/core"
	"github.com/vovakirdan/wiredebate-server/internal/proto"
)

var badPayload = &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed payload"}

// decodeData unmarshals an inbound payload. Single-field payloads may also
// arrive as a bare JSON string, which is stored through field.
func decodeData(data json.RawMessage, v any, field *string) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	if field != nil && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, field) == nil
	}
	return json.Unmarshal(trimmed, v) == nil
}

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeIdentify:
		var identify proto.IdentifyData
		if !decodeData(inbound.Data, &identify, &identify.UserID) {
			return nil, badPayload
		}
		return &core.Command{Kind: core.CommandIdentify, User: identify.UserID}, nil
	case proto.InboundTypeJoinRoom, proto.InboundTypeCheckRoomAvailability:
		var room proto.RoomData
		if !decodeData(inbound.Data, &room, &room.RoomID) {
			return nil, badPayload
		}
		if room.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}
		}
		kind := core.CommandJoinRoom
		if inbound.Type == proto.InboundTypeCheckRoomAvailability {
			kind = core.CommandCheckRoomAvailability
		}
		return &core.Command{Kind: kind, Room: room.RoomID}, nil
	case proto.InboundTypeLeaveRoom:
		return &core.Command{Kind: core.CommandLeaveRoom}, nil
	case proto.InboundTypeRequestRandomRoom:
		return &core.Command{Kind: core.CommandRequestRandomRoom}, nil
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if !decodeData(inbound.Data, &msg, nil) {
			return nil, badPayload
		}
		if msg.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}
		}
		return &core.Command{Kind: core.CommandSendMessage, Room: msg.RoomID, Content: msg.Content}, nil
	case proto.InboundTypeDebateJoin, proto.InboundTypeDebateLeave, proto.InboundTypeDebateGetParticipants:
		var debate proto.DebateData
		if !decodeData(inbound.Data, &debate, nil) {
			return nil, badPayload
		}
		kind := core.CommandDebateJoin
		switch inbound.Type {
		case proto.InboundTypeDebateLeave:
			kind = core.CommandDebateLeave
		case proto.InboundTypeDebateGetParticipants:
			kind = core.CommandDebateParticipants
		}
		return &core.Command{Kind: kind, User: debate.User}, nil
	case proto.InboundTypeDebateChatMessage:
		var msg proto.DebateMessageData
		if !decodeData(inbound.Data, &msg, &msg.Message) {
			return nil, badPayload
		}
		return &core.Command{Kind: core.CommandDebateMessage, Content: msg.Message}, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}
	}
}

func chatMessage(msg core.Message) proto.ChatMessage {
	return proto.ChatMessage{
		Sender:    msg.Sender,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Role:      string(msg.Role),
	}
}

func participants(ps []core.Participant) []proto.Participant {
	out := make([]proto.Participant, 0, len(ps))
	for _, p := range ps {
		out = append(out, proto.Participant{User: p.User, Side: string(p.Side), SocketID: p.ConnID})
	}
	return out
}

func roomAvailability(a core.Availability) proto.RoomAvailability {
	return proto.RoomAvailability{
		RoomID:       a.RoomID,
		Exists:       a.Exists,
		IsFull:       a.IsFull,
		CurrentUsers: a.CurrentUsers,
		MaxUsers:     a.MaxUsers,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	out := proto.Outbound{Type: proto.OutboundTypeEvent, Event: event.Kind.String()}

	switch event.Kind {
	case core.EventRoomHistory:
		messages := make([]proto.ChatMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, chatMessage(msg))
		}
		out.Data = messages
	case core.EventSystemMessage:
		out.Data = event.Text
	case core.EventRandomRoomFound:
		out.Data = event.Room
	case core.EventRoomAvailability:
		if event.Availability != nil {
			out.Data = roomAvailability(*event.Availability)
		}
	case core.EventChatMessage, core.EventDebateMessage:
		out.Data = chatMessage(event.Message)
	case core.EventDebateRoomAssigned:
		if a := event.Assignment; a != nil {
			out.Data = proto.RoomAssigned{RoomID: a.RoomID, Side: string(a.Side), UserID: a.ConnID}
		}
	case core.EventDebateParticipants:
		out.Data = proto.ParticipantsUpdate{Participants: participants(event.Participants)}
	case core.EventDebateRoomFull:
		out.Data = proto.RoomFull{
			RoomID:       event.Room,
			Message:      event.Text,
			Participants: participants(event.Participants),
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	}
	return out
}
