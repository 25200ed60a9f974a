package core

// Default room limits.
const (
	DefaultRoomCapacity = 2
	DefaultHistoryLimit = 200
)

// Store keeps the active room index and per-room history. History lives in
// its own map so it outlives membership: a room pruned for being empty keeps
// its messages for anyone who joins it later.
type Store struct {
	capacity     int
	historyLimit int

	rooms     map[string]*Room
	order     []string // creation order of active rooms
	histories map[string]*history
}

// NewStore creates an empty store. Non-positive limits fall back to defaults.
func NewStore(capacity, historyLimit int) *Store {
	if capacity <= 0 {
		capacity = DefaultRoomCapacity
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		capacity:     capacity,
		historyLimit: historyLimit,
		rooms:        make(map[string]*Room),
		histories:    make(map[string]*history),
	}
}

// Capacity returns the member bound applied to every room.
func (s *Store) Capacity() int {
	return s.capacity
}

// EnsureRoom returns the active room for id, creating it if needed.
func (s *Store) EnsureRoom(id string) *Room {
	if room, ok := s.rooms[id]; ok {
		return room
	}
	room := NewRoom(id, s.capacity)
	s.rooms[id] = room
	s.order = append(s.order, id)
	return room
}

// Lookup returns the active room for id.
func (s *Store) Lookup(id string) (*Room, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// Known reports whether id names an active room or has stored history.
func (s *Store) Known(id string) bool {
	if _, ok := s.rooms[id]; ok {
		return true
	}
	_, ok := s.histories[id]
	return ok
}

// Rooms returns the active rooms in creation order.
func (s *Store) Rooms() []*Room {
	out := make([]*Room, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rooms[id])
	}
	return out
}

// History returns a copy of the stored messages for id. Unknown rooms yield
// an empty slice.
func (s *Store) History(id string) []Message {
	h, ok := s.histories[id]
	if !ok {
		return []Message{}
	}
	return h.snapshot()
}

// Append stores msg in the history of id, trimming the oldest entries past
// the history limit.
func (s *Store) Append(id string, msg Message) {
	h, ok := s.histories[id]
	if !ok {
		h = newHistory(s.historyLimit)
		s.histories[id] = h
	}
	h.append(msg)
}

// AddMember joins c to room id, creating the room if needed. It returns
// false when the room is at capacity.
func (s *Store) AddMember(id string, c *Client) bool {
	return s.EnsureRoom(id).AddClient(c)
}

// RemoveMember takes c out of room id. An emptied room is dropped from the
// active index; its history stays. It returns the remaining member count and
// whether c was a member.
func (s *Store) RemoveMember(id string, c *Client) (int, bool) {
	room, ok := s.rooms[id]
	if !ok {
		return 0, false
	}
	removed := room.RemoveClient(c)
	if room.Empty() {
		s.prune(id)
	}
	return room.Len(), removed
}

func (s *Store) prune(id string) {
	delete(s.rooms, id)
	for i, name := range s.order {
		if name == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Availability reports occupancy of id. Only rooms with members exist.
func (s *Store) Availability(id string) Availability {
	a := Availability{RoomID: id, MaxUsers: s.capacity}
	if room, ok := s.rooms[id]; ok && !room.Empty() {
		a.Exists = true
		a.IsFull = room.Full()
		a.CurrentUsers = room.Len()
	}
	return a
}

// Stats returns a snapshot of every active room in creation order.
func (s *Store) Stats() []RoomStat {
	stats := make([]RoomStat, 0, len(s.order))
	for _, room := range s.Rooms() {
		stat := RoomStat{
			RoomID:       room.Name,
			CurrentUsers: room.Len(),
			MaxUsers:     room.Capacity,
		}
		if h, ok := s.histories[room.Name]; ok {
			stat.Messages = h.len()
		}
		stats = append(stats, stat)
	}
	return stats
}
