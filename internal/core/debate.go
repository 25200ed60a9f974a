package core

// debateSeats is fixed: one pro and one con.
const debateSeats = 2

// DefaultDebateRoom is the id of the single shared debate room.
const DefaultDebateRoom = "room1"

// Participant is a client holding a side in the debate room.
type Participant struct {
	User   string
	Side   Side
	ConnID string
}

// Debate is the shared two-sided room. A third joiner is rejected rather
// than stacked onto one side.
type Debate struct {
	RoomID       string
	participants []Participant // join order
	history      *history
}

// NewDebate creates an empty debate room.
func NewDebate(roomID string, historyLimit int) *Debate {
	if roomID == "" {
		roomID = DefaultDebateRoom
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Debate{
		RoomID:  roomID,
		history: newHistory(historyLimit),
	}
}

// Join seats connID as user. A connection already seated is re-seated.
// It returns false when both sides are taken.
func (d *Debate) Join(connID, user string) (Participant, bool) {
	d.Leave(connID)

	var side Side
	switch len(d.participants) {
	case 0:
		side = SidePro
	case 1:
		side = d.participants[0].Side.Opposite()
	default:
		return Participant{}, false
	}

	p := Participant{User: user, Side: side, ConnID: connID}
	d.participants = append(d.participants, p)
	return p, true
}

// Leave removes connID. Returns true if it held a seat.
func (d *Debate) Leave(connID string) bool {
	for i, p := range d.participants {
		if p.ConnID == connID {
			d.participants = append(d.participants[:i], d.participants[i+1:]...)
			return true
		}
	}
	return false
}

// SideOf returns the side held by connID.
func (d *Debate) SideOf(connID string) (Side, bool) {
	for _, p := range d.participants {
		if p.ConnID == connID {
			return p.Side, true
		}
	}
	return "", false
}

// Participants returns a copy of the seated participants in join order.
func (d *Debate) Participants() []Participant {
	out := make([]Participant, len(d.participants))
	copy(out, d.participants)
	return out
}

// Record appends msg to the debate history.
func (d *Debate) Record(msg Message) {
	d.history.append(msg)
}

// History returns a copy of the debate history.
func (d *Debate) History() []Message {
	return d.history.snapshot()
}
