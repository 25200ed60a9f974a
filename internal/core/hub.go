package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wiredebate-server/internal/utils"
)

// Options tunes the hub. Zero values fall back to defaults.
type Options struct {
	RoomCapacity int
	HistoryLimit int
	DebateRoom   string
	// NewRoomID generates keys for rooms created by matchmaking.
	NewRoomID func() string
}

type envelope struct {
	client *Client
	cmd    *Command
}

type query struct {
	fn   func()
	done chan struct{}
}

// Hub owns all room and connection state. Every mutation runs on the Run
// goroutine, one command at a time, so no state is locked.
type Hub struct {
	log *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	inbox      chan envelope
	queries    chan query
	stopped    chan struct{}

	clients  map[*Client]struct{}
	slow     map[*Client]struct{}
	registry *Registry
	store    *Store
	match    *Matchmaker
	debate   *Debate
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(opts Options, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.NewRoomID == nil {
		opts.NewRoomID = utils.NewRoomID
	}

	store := NewStore(opts.RoomCapacity, opts.HistoryLimit)
	return &Hub{
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbox:      make(chan envelope, 256),
		queries:    make(chan query),
		stopped:    make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		slow:       make(map[*Client]struct{}),
		registry:   NewRegistry(),
		store:      store,
		match:      NewMatchmaker(store, opts.NewRoomID),
		debate:     NewDebate(opts.DebateRoom, opts.HistoryLimit),
	}
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// UnregisterClient reports a closed connection. It is processed like any
// other event, so the client's last commands may still be ignored.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Run processes events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Int("clients", len(h.clients)).Msg("hub stopped")
			return
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.inbox:
			if _, ok := h.clients[env.client]; !ok {
				// late command from a connection that is already gone
				continue
			}
			h.handle(env.client, env.cmd)
		case q := <-h.queries:
			q.fn()
			close(q.done)
		}
		h.evictSlow()
	}
}

// forward feeds a client's commands into the shared inbox.
func (h *Hub) forward(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			if cmd == nil {
				continue
			}
			select {
			case h.inbox <- envelope{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// do runs fn on the hub goroutine and waits for it.
func (h *Hub) do(ctx context.Context, fn func()) error {
	q := query{fn: fn, done: make(chan struct{})}
	select {
	case h.queries <- q:
	case <-h.stopped:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RoomStats returns the active rooms in matchmaking order.
func (h *Hub) RoomStats(ctx context.Context) ([]RoomStat, error) {
	var stats []RoomStat
	if err := h.do(ctx, func() { stats = h.store.Stats() }); err != nil {
		return nil, fmt.Errorf("room stats: %w", err)
	}
	return stats, nil
}

// Availability reports occupancy of a room.
func (h *Hub) Availability(ctx context.Context, roomID string) (Availability, error) {
	var a Availability
	if err := h.do(ctx, func() { a = h.store.Availability(roomID) }); err != nil {
		return Availability{}, fmt.Errorf("room availability: %w", err)
	}
	return a, nil
}

// History returns the stored messages of a room.
func (h *Hub) History(ctx context.Context, roomID string) ([]Message, error) {
	var msgs []Message
	if err := h.do(ctx, func() { msgs = h.store.History(roomID) }); err != nil {
		return nil, fmt.Errorf("room history: %w", err)
	}
	return msgs, nil
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	if c == nil {
		return
	}
	h.clients[c] = struct{}{}
	go h.forward(ctx, c)
	h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client connected")
}

func (h *Hub) handle(c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("client_id", c.ID).Stringer("command", cmd.Kind).Msg("command failed")
			h.toSender(c, errorEvent(ErrCodeInternal, "internal error"))
		}
	}()

	switch cmd.Kind {
	case CommandIdentify:
		h.handleIdentify(c, cmd.User)
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Room)
	case CommandLeaveRoom:
		h.handleLeave(c)
	case CommandRequestRandomRoom:
		h.handleRandomRoom(c)
	case CommandCheckRoomAvailability:
		h.handleAvailability(c, cmd.Room)
	case CommandSendMessage:
		h.handleSend(c, cmd.Room, cmd.Content)
	case CommandDebateJoin:
		h.handleDebateJoin(c, cmd.User)
	case CommandDebateLeave:
		h.handleDebateLeave(c)
	case CommandDebateParticipants:
		h.toSender(c, &Event{Kind: EventDebateParticipants, Room: h.debate.RoomID, Participants: h.debate.Participants()})
	case CommandDebateMessage:
		h.handleDebateMessage(c, cmd.Content)
	default:
		h.toSender(c, errorEvent(ErrCodeBadRequest, "unknown command"))
	}
}

func (h *Hub) handleIdentify(c *Client, userID string) {
	if err := ValidateUserID(userID); err != nil {
		h.toSender(c, errorEvent(ErrCodeBadRequest, err.Error()))
		return
	}
	h.registry.Identify(c.ID, userID)
	h.log.Debug().Str("client_id", c.ID).Str("user_id", userID).Msg("client identified")
}

func (h *Hub) handleJoin(c *Client, roomID string) {
	if err := ValidateRoomID(roomID); err != nil {
		h.toSender(c, errorEvent(ErrCodeBadRequest, err.Error()))
		return
	}
	if c.room != nil && c.room.Name == roomID {
		h.log.Debug().Str("client_id", c.ID).Str("room", roomID).Msg("duplicate join ignored")
		return
	}
	if target, ok := h.store.Lookup(roomID); ok && target.Full() {
		h.toSender(c, systemEvent(roomID, fmt.Sprintf("Room %s is full (%d/%d)", roomID, target.Len(), target.Capacity)))
		return
	}

	h.leaveCurrent(c)
	room := h.enter(c, roomID)
	h.toSender(c, systemEvent(room.Name, "You joined room: "+room.Name))
	if room.Len() > 1 {
		h.toOthers(room, c, systemEvent(room.Name, "A user has joined the room"))
	}
}

func (h *Hub) handleRandomRoom(c *Client) {
	h.leaveCurrent(c)

	picked, created := h.match.Pick()
	if created {
		h.log.Info().Str("room", picked.Name).Msg("created room for matchmaking")
	}
	room := h.enter(c, picked.Name)
	h.toSender(c, &Event{Kind: EventRandomRoomFound, Room: room.Name})
	if room.Len() > 1 {
		h.toOthers(room, c, systemEvent(room.Name, "A user has joined the room"))
	}
}

// enter adds c to roomID, which must have a free slot, and sends it the
// room's history.
func (h *Hub) enter(c *Client, roomID string) *Room {
	if !h.store.AddMember(roomID, c) {
		panic(fmt.Sprintf("room %s has no free slot", roomID))
	}
	room, _ := h.store.Lookup(roomID)
	c.room = room
	h.log.Info().Str("client_id", c.ID).Str("room", roomID).Int("members", room.Len()).Msg("client joined room")

	h.toSender(c, &Event{Kind: EventRoomHistory, Room: roomID, Messages: h.store.History(roomID)})
	return room
}

func (h *Hub) handleLeave(c *Client) {
	if c.room == nil {
		h.toSender(c, errorEvent(ErrCodeNotInRoom, "not in a room"))
		return
	}
	h.leaveCurrent(c)
}

// leaveCurrent removes c from its room and tells whoever remains.
func (h *Hub) leaveCurrent(c *Client) {
	room := c.room
	if room == nil {
		return
	}
	c.room = nil

	remaining, removed := h.store.RemoveMember(room.Name, c)
	if !removed {
		return
	}
	h.log.Info().Str("client_id", c.ID).Str("room", room.Name).Int("members", remaining).Msg("client left room")
	if remaining == 0 {
		h.log.Debug().Str("room", room.Name).Msg("pruned empty room, history kept")
		return
	}
	h.toRoom(room, systemEvent(room.Name, "A user has left the room"))
}

func (h *Hub) handleAvailability(c *Client, roomID string) {
	if err := ValidateRoomID(roomID); err != nil {
		h.toSender(c, errorEvent(ErrCodeBadRequest, err.Error()))
		return
	}
	a := h.store.Availability(roomID)
	h.toSender(c, &Event{Kind: EventRoomAvailability, Room: roomID, Availability: &a})
}

func (h *Hub) handleSend(c *Client, roomID, content string) {
	if err := ValidateMessage(content); err != nil {
		h.toSender(c, errorEvent(ErrCodeInvalidMessage, err.Error()))
		return
	}
	if c.room == nil || c.room.Name != roomID {
		h.toSender(c, errorEvent(ErrCodeNotInRoom, "not in room "+roomID))
		return
	}

	msg := NewMessage(h.registry.Resolve(c.ID), content, "")
	h.store.Append(roomID, msg)
	h.toRoom(c.room, &Event{Kind: EventChatMessage, Room: roomID, Message: msg})
}

func (h *Hub) handleDebateJoin(c *Client, user string) {
	if user == "" {
		user = h.registry.Resolve(c.ID)
	}

	p, ok := h.debate.Join(c.ID, user)
	if !ok {
		h.log.Info().Str("client_id", c.ID).Str("user_id", user).Msg("debate room full")
		h.toSender(c, &Event{
			Kind:         EventDebateRoomFull,
			Room:         h.debate.RoomID,
			Text:         "Debate room is full",
			Participants: h.debate.Participants(),
		})
		return
	}
	c.debate = true
	h.log.Info().Str("client_id", c.ID).Str("user_id", user).Str("side", string(p.Side)).Msg("joined debate")

	h.toSender(c, &Event{
		Kind:       EventDebateRoomAssigned,
		Room:       h.debate.RoomID,
		Assignment: &Assignment{RoomID: h.debate.RoomID, Side: p.Side, ConnID: c.ID},
	})
	h.toSender(c, &Event{Kind: EventRoomHistory, Room: h.debate.RoomID, Messages: h.debate.History()})
	h.broadcastParticipants()
}

func (h *Hub) handleDebateLeave(c *Client) {
	if !h.debate.Leave(c.ID) {
		return
	}
	c.debate = false
	h.log.Info().Str("client_id", c.ID).Msg("left debate")
	h.broadcastParticipants()
}

func (h *Hub) handleDebateMessage(c *Client, content string) {
	if err := ValidateMessage(content); err != nil {
		h.toSender(c, errorEvent(ErrCodeInvalidMessage, err.Error()))
		return
	}
	side, _ := h.debate.SideOf(c.ID)
	msg := NewMessage(h.registry.Resolve(c.ID), content, side)
	h.debate.Record(msg)
	h.toAllExcept(c, &Event{Kind: EventDebateMessage, Room: h.debate.RoomID, Message: msg})
}

func (h *Hub) broadcastParticipants() {
	h.toAll(&Event{Kind: EventDebateParticipants, Room: h.debate.RoomID, Participants: h.debate.Participants()})
}

// handleDisconnect is the only cancellation path: it always leaves the room,
// gives up the debate seat and forgets the identity.
func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.leaveCurrent(c)
	delete(h.clients, c)
	if c.debate && h.debate.Leave(c.ID) {
		c.debate = false
		h.broadcastParticipants()
	}
	h.registry.Forget(c.ID)

	close(c.done)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client disconnected")
}

// evictSlow disconnects clients that missed an event. Their socket closes
// and a reconnect replays the room history. Eviction notices may overflow
// other buffers, so it repeats until no client is left behind.
func (h *Hub) evictSlow() {
	for len(h.slow) > 0 {
		for c := range h.slow {
			delete(h.slow, c)
			if _, ok := h.clients[c]; !ok {
				continue
			}
			h.log.Warn().Str("client_id", c.ID).Msg("disconnecting slow client")
			h.handleDisconnect(c)
		}
	}
}

func systemEvent(room, text string) *Event {
	return &Event{Kind: EventSystemMessage, Room: room, Text: text}
}

func errorEvent(code, msg string) *Event {
	return &Event{Kind: EventError, Error: coreError(code, msg)}
}
