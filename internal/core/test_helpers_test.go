package core

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// nextEvent returns the very next event, whatever its kind.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		if ev == nil {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return nil
	}
}

// noEvent fails if any event shows up within wait.
func noEvent(t *testing.T, ch <-chan *Event, wait time.Duration) {
	t.Helper()

	select {
	case ev := <-ch:
		if ev != nil {
			t.Fatalf("unexpected event %v: %+v", ev.Kind, ev)
		}
	case <-time.After(wait):
	}
}

func sequentialRoomIDs() func() string {
	n := 0
	return func() string {
		n++
		return "room_" + strconv.Itoa(n)
	}
}

func startHub(t *testing.T, opts Options) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if opts.NewRoomID == nil {
		opts.NewRoomID = sequentialRoomIDs()
	}
	hub := NewHub(opts, nil)
	go hub.Run(ctx)
	return hub
}

func connect(hub *Hub, id string) *Client {
	c := NewClient(id, 0)
	hub.RegisterClient(c)
	return c
}

func join(t *testing.T, c *Client, room string) {
	t.Helper()

	c.Commands <- &Command{Kind: CommandJoinRoom, Room: room}
	ev := mustEvent(t, c.Events, EventSystemMessage)
	if ev.Text != "You joined room: "+room {
		t.Fatalf("unexpected join confirmation: %q", ev.Text)
	}
}
