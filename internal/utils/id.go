package utils

import (
	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

const roomAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var roomToken = mustGenerator(roomAlphabet, 8)

func mustGenerator(alphabet string, length int) func() string {
	gen, err := nanoid.CustomASCII(alphabet, length)
	if err != nil {
		panic(err)
	}
	return gen
}

// NewConnID returns an identifier for one transport session.
func NewConnID() string {
	return uuid.NewString()
}

// NewRoomID returns a key for a room created by matchmaking, e.g. "room_k3f9a0zq".
func NewRoomID() string {
	return "room_" + roomToken()
}
