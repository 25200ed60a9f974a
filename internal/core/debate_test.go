package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebateSideAssignment(t *testing.T) {
	tests := []struct {
		name  string
		seed  []Side // sides held before the join
		want  Side
		admit bool
	}{
		{name: "first joiner is pro", want: SidePro, admit: true},
		{name: "second opposes pro", seed: []Side{SidePro}, want: SideCon, admit: true},
		{name: "second opposes con", seed: []Side{SideCon}, want: SidePro, admit: true},
		{name: "third is rejected", seed: []Side{SidePro, SideCon}, admit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebate("", 0)
			for i, side := range tt.seed {
				d.participants = append(d.participants, Participant{User: "u", Side: side, ConnID: string(rune('a' + i))})
			}

			p, ok := d.Join("new", "newcomer")
			require.Equal(t, tt.admit, ok)
			if !ok {
				assert.Len(t, d.Participants(), len(tt.seed))
				return
			}
			assert.Equal(t, tt.want, p.Side)
			assert.Equal(t, "newcomer", p.User)
			assert.Equal(t, "new", p.ConnID)
		})
	}
}

func TestDebateRejoinReseats(t *testing.T) {
	d := NewDebate("stage", 0)
	assert.Equal(t, "stage", d.RoomID)

	_, ok := d.Join("a", "alice")
	require.True(t, ok)
	_, ok = d.Join("b", "bob")
	require.True(t, ok)

	p, ok := d.Join("a", "alice")
	require.True(t, ok, "a seated connection may re-join")
	assert.Equal(t, SidePro, p.Side)
	assert.Len(t, d.Participants(), 2)

	side, ok := d.SideOf("b")
	require.True(t, ok)
	assert.Equal(t, SideCon, side)

	assert.True(t, d.Leave("a"))
	assert.False(t, d.Leave("a"))
	_, ok = d.SideOf("a")
	assert.False(t, ok)
}

func TestDebateHistoryBounded(t *testing.T) {
	d := NewDebate("", 2)
	for _, c := range []string{"x", "y", "z"} {
		d.Record(Message{Content: c})
	}
	assert.Equal(t, []Message{{Content: "y"}, {Content: "z"}}, d.History())
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideCon, SidePro.Opposite())
	assert.Equal(t, SidePro, SideCon.Opposite())
}
