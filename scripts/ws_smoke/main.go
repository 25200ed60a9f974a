package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wiredebate-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "user id to identify with")
	room := flag.String("room", "", "room to join; empty asks for a random room")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeIdentify, proto.IdentifyData{UserID: *user}); err != nil {
		return err
	}
	if *room == "" {
		if err := send(proto.InboundTypeRequestRandomRoom, nil); err != nil {
			return err
		}
	} else if err := send(proto.InboundTypeJoinRoom, proto.RoomData{RoomID: *room}); err != nil {
		return err
	}

	joined := *room
	sent := false
	sendText := func() error {
		if sent || joined == "" {
			return nil
		}
		sent = true
		return send(proto.InboundTypeSendMessage, proto.SendMessageData{Content: *text, RoomID: joined})
	}
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if outbound.Error != nil {
			return fmt.Errorf("server error %s: %s", outbound.Error.Code, outbound.Error.Msg)
		}
		fmt.Printf("event=%s data=%s\n", outbound.Event, outbound.Data)

		switch outbound.Event {
		case "randomRoomFound":
			if err := json.Unmarshal(outbound.Data, &joined); err != nil {
				return fmt.Errorf("unmarshal room: %w", err)
			}
			if err := sendText(); err != nil {
				return err
			}
		case "room-history":
			if err := sendText(); err != nil {
				return err
			}
		case "chat-message":
			var msg proto.ChatMessage
			if err := json.Unmarshal(outbound.Data, &msg); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("room=%s sender=%s content=%q ts=%d\n", joined, msg.Sender, msg.Content, msg.Timestamp)
			return nil
		}
	}
}
