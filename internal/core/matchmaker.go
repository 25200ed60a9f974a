package core

// Matchmaker assigns clients to rooms without a client-chosen key.
type Matchmaker struct {
	store *Store
	newID func() string
}

// NewMatchmaker builds a matchmaker over store. newID generates candidate
// keys for rooms it has to create.
func NewMatchmaker(store *Store, newID func() string) *Matchmaker {
	return &Matchmaker{store: store, newID: newID}
}

// Pick returns the first active room with a free slot, scanning in creation
// order. When every room is full it creates a fresh one under a generated
// key; created reports which case happened.
func (m *Matchmaker) Pick() (room *Room, created bool) {
	for _, r := range m.store.Rooms() {
		if !r.Full() {
			return r, false
		}
	}
	id := m.newID()
	for m.store.Known(id) {
		id = m.newID()
	}
	return m.store.EnsureRoom(id), true
}
