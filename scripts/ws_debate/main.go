package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wiredebate-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_debate: %v", err)
		os.Exit(1)
	}
}

type outbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "debater name")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := send(ctx, conn, proto.InboundTypeDebateJoin, proto.DebateData{User: *user}); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s\n", *addr, *user)
	fmt.Println("Type arguments and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	_ = send(context.Background(), conn, proto.InboundTypeDebateLeave, nil)
	return nil
}

func send(ctx context.Context, conn *websocket.Conn, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", typ, err)
	}
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var out outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}
		if out.Error != nil {
			fmt.Printf("error %s: %s\n", out.Error.Code, out.Error.Msg)
			continue
		}

		switch out.Event {
		case "debate:room-assigned":
			var a proto.RoomAssigned
			if json.Unmarshal(out.Data, &a) == nil {
				fmt.Printf("seated in %s on the %s side\n", a.RoomID, a.Side)
			}
		case "debate:room-full":
			var full proto.RoomFull
			if json.Unmarshal(out.Data, &full) == nil {
				fmt.Printf("%s: %s\n", full.RoomID, full.Message)
			}
		case "debate:participants-update":
			var upd proto.ParticipantsUpdate
			if json.Unmarshal(out.Data, &upd) == nil {
				names := make([]string, 0, len(upd.Participants))
				for _, p := range upd.Participants {
					names = append(names, p.User+"("+p.Side+")")
				}
				fmt.Printf("participants: %s\n", strings.Join(names, ", "))
			}
		case "room-history":
			var msgs []proto.ChatMessage
			if json.Unmarshal(out.Data, &msgs) == nil {
				for _, m := range msgs {
					fmt.Printf("[%s] %s: %s\n", m.Role, m.Sender, m.Content)
				}
			}
		case "chat:message":
			var m proto.ChatMessage
			if json.Unmarshal(out.Data, &m) == nil {
				fmt.Printf("[%s] %s: %s\n", m.Role, m.Sender, m.Content)
			}
		default:
			fmt.Printf("event=%s data=%s\n", out.Event, out.Data)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if err := send(ctx, conn, proto.InboundTypeDebateChatMessage, proto.DebateMessageData{Message: text}); err != nil {
				log.Printf("%v", err)
				return
			}
		}
	}
}
