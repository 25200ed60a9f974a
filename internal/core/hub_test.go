package core

import (
	"context"
	"testing"
	"time"
)

func TestHubRoomScenario(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	alice.Commands <- &Command{Kind: CommandIdentify, User: "alice"}

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "room-x"}
	hist := nextEvent(t, alice.Events)
	if hist.Kind != EventRoomHistory || len(hist.Messages) != 0 {
		t.Fatalf("expected empty history, got %+v", hist)
	}
	joined := nextEvent(t, alice.Events)
	if joined.Kind != EventSystemMessage || joined.Text != "You joined room: room-x" {
		t.Fatalf("unexpected join confirmation: %+v", joined)
	}

	bob.Commands <- &Command{Kind: CommandJoinRoom, Room: "room-x"}
	bobHist := mustEvent(t, bob.Events, EventRoomHistory)
	if len(bobHist.Messages) != 0 {
		t.Fatalf("expected empty history for bob, got %d", len(bobHist.Messages))
	}
	notice := mustEvent(t, alice.Events, EventSystemMessage)
	if notice.Text != "A user has joined the room" {
		t.Fatalf("unexpected notice: %q", notice.Text)
	}

	alice.Commands <- &Command{Kind: CommandSendMessage, Room: "room-x", Content: "hello"}
	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventChatMessage)
		if ev.Message.Content != "hello" || ev.Message.Sender != "alice" || ev.Room != "room-x" {
			t.Fatalf("unexpected chat message for %s: %+v", c.ID, ev.Message)
		}
		if ev.Message.Timestamp == 0 {
			t.Fatalf("message not stamped")
		}
	}

	hub.UnregisterClient(bob)
	left := mustEvent(t, alice.Events, EventSystemMessage)
	if left.Text != "A user has left the room" {
		t.Fatalf("unexpected leave notice: %q", left.Text)
	}

	carol := connect(hub, "c")
	carol.Commands <- &Command{Kind: CommandJoinRoom, Room: "room-x"}
	carolHist := mustEvent(t, carol.Events, EventRoomHistory)
	if len(carolHist.Messages) != 1 || carolHist.Messages[0].Content != "hello" {
		t.Fatalf("expected history with hello, got %+v", carolHist.Messages)
	}
}

func TestHubRejectsJoinWhenFull(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	carol := connect(hub, "c")

	join(t, alice, "duel")
	join(t, bob, "duel")
	join(t, carol, "lobby")

	carol.Commands <- &Command{Kind: CommandJoinRoom, Room: "duel"}
	ev := mustEvent(t, carol.Events, EventSystemMessage)
	if ev.Text != "Room duel is full (2/2)" {
		t.Fatalf("unexpected rejection: %q", ev.Text)
	}

	ctx := context.Background()
	duel, err := hub.Availability(ctx, "duel")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !duel.Exists || !duel.IsFull || duel.CurrentUsers != 2 || duel.MaxUsers != 2 {
		t.Fatalf("unexpected availability: %+v", duel)
	}

	// rejected joiner keeps its old seat
	lobby, err := hub.Availability(ctx, "lobby")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if lobby.CurrentUsers != 1 {
		t.Fatalf("expected carol to stay in lobby, got %+v", lobby)
	}
}

func TestHubDuplicateJoinIsIgnored(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	join(t, bob, "general")
	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "general"}
	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "general"}
	alice.Commands <- &Command{Kind: CommandSendMessage, Room: "general", Content: "hi"}

	kinds := []EventKind{EventRoomHistory, EventSystemMessage, EventChatMessage}
	for _, want := range kinds {
		if got := nextEvent(t, alice.Events); got.Kind != want {
			t.Fatalf("expected %v, got %v (%+v)", want, got.Kind, got)
		}
	}

	if ev := nextEvent(t, bob.Events); ev.Kind != EventSystemMessage || ev.Text != "A user has joined the room" {
		t.Fatalf("unexpected event for bob: %+v", ev)
	}
	if ev := nextEvent(t, bob.Events); ev.Kind != EventChatMessage {
		t.Fatalf("expected chat after a single join notice, got %+v", ev)
	}

	stats, err := hub.RoomStats(context.Background())
	if err != nil {
		t.Fatalf("room stats: %v", err)
	}
	if len(stats) != 1 || stats[0].CurrentUsers != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHubSwitchingRoomsNotifiesOldRoomFirst(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	carol := connect(hub, "c")

	join(t, alice, "one")
	join(t, bob, "one")
	join(t, carol, "two")
	mustEvent(t, alice.Events, EventSystemMessage) // bob joined

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "two"}

	if ev := mustEvent(t, bob.Events, EventSystemMessage); ev.Text != "A user has left the room" {
		t.Fatalf("unexpected notice for old room: %q", ev.Text)
	}
	if ev := mustEvent(t, carol.Events, EventSystemMessage); ev.Text != "A user has joined the room" {
		t.Fatalf("unexpected notice for new room: %q", ev.Text)
	}

	one, _ := hub.Availability(context.Background(), "one")
	two, _ := hub.Availability(context.Background(), "two")
	if one.CurrentUsers != 1 || two.CurrentUsers != 2 {
		t.Fatalf("unexpected occupancy: one=%+v two=%+v", one, two)
	}
}

func TestHubHistorySurvivesLeave(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	join(t, alice, "archive")
	alice.Commands <- &Command{Kind: CommandSendMessage, Room: "archive", Content: "first"}
	mustEvent(t, alice.Events, EventChatMessage)

	alice.Commands <- &Command{Kind: CommandLeaveRoom}

	ctx := context.Background()
	deadline := time.Now().Add(2 * time.Second)
	for {
		stats, err := hub.RoomStats(ctx)
		if err != nil {
			t.Fatalf("room stats: %v", err)
		}
		if len(stats) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("empty room was not pruned: %+v", stats)
		}
		time.Sleep(10 * time.Millisecond)
	}

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "archive"}
	hist := mustEvent(t, alice.Events, EventRoomHistory)
	if len(hist.Messages) != 1 || hist.Messages[0].Content != "first" {
		t.Fatalf("history lost after leave: %+v", hist.Messages)
	}
}

func TestHubRandomRoomPrefersReuse(t *testing.T) {
	hub := startHub(t, Options{})

	clients := []*Client{connect(hub, "a"), connect(hub, "b"), connect(hub, "c")}
	want := []string{"room_1", "room_1", "room_2"}

	for i, c := range clients {
		c.Commands <- &Command{Kind: CommandRequestRandomRoom}
		mustEvent(t, c.Events, EventRoomHistory)
		found := mustEvent(t, c.Events, EventRandomRoomFound)
		if found.Room != want[i] {
			t.Fatalf("client %s: expected %s, got %s", c.ID, want[i], found.Room)
		}
	}

	notice := mustEvent(t, clients[0].Events, EventSystemMessage)
	if notice.Text != "A user has joined the room" {
		t.Fatalf("unexpected notice: %q", notice.Text)
	}
	noEvent(t, clients[2].Events, 50*time.Millisecond)
}

func TestHubRandomRoomLeavesCurrentRoom(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	join(t, alice, "named")
	join(t, bob, "named")

	mustEvent(t, alice.Events, EventSystemMessage) // bob joined

	bob.Commands <- &Command{Kind: CommandRequestRandomRoom}
	if ev := mustEvent(t, alice.Events, EventSystemMessage); ev.Text != "A user has left the room" {
		t.Fatalf("expected leave notice first, got %q", ev.Text)
	}
	if ev := mustEvent(t, alice.Events, EventSystemMessage); ev.Text != "A user has joined the room" {
		t.Fatalf("expected join notice second, got %q", ev.Text)
	}

	// named has one free slot again, so matchmaking reuses it
	found := mustEvent(t, bob.Events, EventRandomRoomFound)
	if found.Room != "named" {
		t.Fatalf("expected reuse of named, got %s", found.Room)
	}
}

func TestHubSendWithoutJoinProducesError(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	alice.Commands <- &Command{Kind: CommandSendMessage, Room: "general", Content: "hi"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeNotInRoom {
		t.Fatalf("expected not_in_room error, got %+v", ev)
	}

	msgs, err := hub.History(context.Background(), "general")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("rejected message was stored: %+v", msgs)
	}
}

func TestHubMalformedCommandsKeepConnection(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	alice.Commands <- &Command{Kind: CommandIdentify, User: ""}
	if ev := mustEvent(t, alice.Events, EventError); ev.Error.Code != ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", ev.Error)
	}

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: ""}
	if ev := mustEvent(t, alice.Events, EventError); ev.Error.Code != ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", ev.Error)
	}

	join(t, alice, "still-alive")
	alice.Commands <- &Command{Kind: CommandSendMessage, Room: "still-alive", Content: ""}
	if ev := mustEvent(t, alice.Events, EventError); ev.Error.Code != ErrCodeInvalidMessage {
		t.Fatalf("expected invalid_message, got %+v", ev.Error)
	}
}

func TestHubUnidentifiedSenderUsesConnectionID(t *testing.T) {
	hub := startHub(t, Options{})

	anon := connect(hub, "conn-42")
	join(t, anon, "general")
	anon.Commands <- &Command{Kind: CommandSendMessage, Room: "general", Content: "who am i"}

	ev := mustEvent(t, anon.Events, EventChatMessage)
	if ev.Message.Sender != "conn-42" {
		t.Fatalf("expected connection id as sender, got %q", ev.Message.Sender)
	}
}

func TestHubCheckAvailability(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	alice.Commands <- &Command{Kind: CommandCheckRoomAvailability, Room: "ghost"}
	ev := mustEvent(t, alice.Events, EventRoomAvailability)
	if ev.Availability.Exists || ev.Availability.IsFull || ev.Availability.CurrentUsers != 0 || ev.Availability.MaxUsers != 2 {
		t.Fatalf("unexpected availability for unknown room: %+v", ev.Availability)
	}

	join(t, alice, "real")
	alice.Commands <- &Command{Kind: CommandCheckRoomAvailability, Room: "real"}
	ev = mustEvent(t, alice.Events, EventRoomAvailability)
	if !ev.Availability.Exists || ev.Availability.IsFull || ev.Availability.CurrentUsers != 1 {
		t.Fatalf("unexpected availability: %+v", ev.Availability)
	}
}

func TestHubDisconnectNotifiesOnce(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	join(t, alice, "pair")
	join(t, bob, "pair")
	mustEvent(t, alice.Events, EventSystemMessage) // bob joined

	hub.UnregisterClient(bob)
	hub.UnregisterClient(bob)

	if ev := nextEvent(t, alice.Events); ev.Text != "A user has left the room" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	noEvent(t, alice.Events, 50*time.Millisecond)

	select {
	case <-bob.Done():
	case <-time.After(time.Second):
		t.Fatal("bob was not released")
	}
}

func TestHubDisconnectsClientWithFullBuffer(t *testing.T) {
	hub := startHub(t, Options{})

	fast := connect(hub, "fast")
	join(t, fast, "busy")

	// room-history and the join confirmation fill a buffer of two
	slow := NewClient("slow", 2)
	hub.RegisterClient(slow)
	slow.Commands <- &Command{Kind: CommandJoinRoom, Room: "busy"}
	if ev := mustEvent(t, fast.Events, EventSystemMessage); ev.Text != "A user has joined the room" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	fast.Commands <- &Command{Kind: CommandSendMessage, Room: "busy", Content: "hello"}
	mustEvent(t, fast.Events, EventChatMessage)
	if ev := mustEvent(t, fast.Events, EventSystemMessage); ev.Text != "A user has left the room" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	select {
	case <-slow.Done():
	case <-time.After(time.Second):
		t.Fatal("slow client was not disconnected")
	}

	// the two queued events are still readable before the channel closes
	var kinds []EventKind
	for ev := range slow.Events {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) != 2 || kinds[0] != EventRoomHistory || kinds[1] != EventSystemMessage {
		t.Fatalf("unexpected queued events: %v", kinds)
	}

	a, err := hub.Availability(context.Background(), "busy")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if a.CurrentUsers != 1 {
		t.Fatalf("slow client still counted: %+v", a)
	}

	msgs, err := hub.History(context.Background(), "busy")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("message missing from history: %+v", msgs)
	}
}

func TestHubDebateSides(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	carol := connect(hub, "c")

	alice.Commands <- &Command{Kind: CommandDebateJoin, User: "alice"}
	assigned := mustEvent(t, alice.Events, EventDebateRoomAssigned)
	if assigned.Assignment.Side != SidePro || assigned.Assignment.RoomID != DefaultDebateRoom || assigned.Assignment.ConnID != "a" {
		t.Fatalf("unexpected assignment: %+v", assigned.Assignment)
	}

	bob.Commands <- &Command{Kind: CommandDebateJoin, User: "bob"}
	assigned = mustEvent(t, bob.Events, EventDebateRoomAssigned)
	if assigned.Assignment.Side != SideCon {
		t.Fatalf("second joiner should be con, got %s", assigned.Assignment.Side)
	}

	// participant updates go to every connection, including non-participants
	update := mustEvent(t, carol.Events, EventDebateParticipants)
	for len(update.Participants) < 2 {
		update = mustEvent(t, carol.Events, EventDebateParticipants)
	}

	carol.Commands <- &Command{Kind: CommandDebateJoin, User: "carol"}
	full := mustEvent(t, carol.Events, EventDebateRoomFull)
	if len(full.Participants) != 2 {
		t.Fatalf("expected 2 participants in full notice, got %+v", full.Participants)
	}

	alice.Commands <- &Command{Kind: CommandDebateLeave}
	update = mustEvent(t, carol.Events, EventDebateParticipants)
	if len(update.Participants) != 1 || update.Participants[0].User != "bob" {
		t.Fatalf("unexpected participants after leave: %+v", update.Participants)
	}

	carol.Commands <- &Command{Kind: CommandDebateJoin, User: "carol"}
	assigned = mustEvent(t, carol.Events, EventDebateRoomAssigned)
	if assigned.Assignment.Side != SidePro {
		t.Fatalf("expected opposite of bob's con, got %s", assigned.Assignment.Side)
	}
}

func TestHubDebateMessageReachesOthers(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	alice.Commands <- &Command{Kind: CommandIdentify, User: "alice"}
	alice.Commands <- &Command{Kind: CommandDebateJoin, User: "alice"}
	mustEvent(t, alice.Events, EventDebateRoomAssigned)

	alice.Commands <- &Command{Kind: CommandDebateMessage, Content: "opening statement"}
	ev := mustEvent(t, bob.Events, EventDebateMessage)
	if ev.Message.Content != "opening statement" || ev.Message.Role != SidePro || ev.Message.Sender != "alice" {
		t.Fatalf("unexpected debate message: %+v", ev.Message)
	}

	bob.Commands <- &Command{Kind: CommandDebateJoin, User: "bob"}
	hist := mustEvent(t, bob.Events, EventRoomHistory)
	if hist.Room != DefaultDebateRoom || len(hist.Messages) != 1 {
		t.Fatalf("unexpected debate history: %+v", hist)
	}
}

func TestHubDebateDisconnectFreesSeat(t *testing.T) {
	hub := startHub(t, Options{})

	alice := connect(hub, "a")
	bob := connect(hub, "b")
	alice.Commands <- &Command{Kind: CommandDebateJoin, User: "alice"}
	mustEvent(t, alice.Events, EventDebateRoomAssigned)

	hub.UnregisterClient(alice)
	update := mustEvent(t, bob.Events, EventDebateParticipants)
	for len(update.Participants) != 0 {
		update = mustEvent(t, bob.Events, EventDebateParticipants)
	}

	bob.Commands <- &Command{Kind: CommandDebateParticipants}
	ev := mustEvent(t, bob.Events, EventDebateParticipants)
	if len(ev.Participants) != 0 {
		t.Fatalf("expected empty debate, got %+v", ev.Participants)
	}
}

func TestHubQueriesAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(Options{}, nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	if _, err := hub.RoomStats(context.Background()); err == nil {
		t.Fatal("expected error from stopped hub")
	}
}
