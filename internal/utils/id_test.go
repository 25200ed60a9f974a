package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomIDShape(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := NewRoomID()
		require.True(t, strings.HasPrefix(id, "room_"), id)

		token := strings.TrimPrefix(id, "room_")
		assert.Len(t, token, 8)
		assert.Empty(t, strings.Trim(token, roomAlphabet), id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 95)
}

func TestNewConnIDIsUUID(t *testing.T) {
	_, err := uuid.Parse(NewConnID())
	assert.NoError(t, err)
}
