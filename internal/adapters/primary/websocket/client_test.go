package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ParseRoomRequest(t *testing.T) {
	client := newTestClient(NewRegistry(testLogger()), 3, 7)

	t.Run("module room keeps its id", func(t *testing.T) {
		room, ok := client.parseRoomRequest(json.RawMessage(`{"type":"module","id":"invoice"}`))
		require.True(t, ok)
		assert.Equal(t, "module:invoice", room.Name())
	})

	t.Run("global room discards any client-sent id", func(t *testing.T) {
		room, ok := client.parseRoomRequest(json.RawMessage(`{"type":"global","id":"anything"}`))
		require.True(t, ok)
		assert.Equal(t, Room{Kind: RoomGlobal}, room)
		assert.Equal(t, "global", room.Name())
	})

	t.Run("global room needs no id", func(t *testing.T) {
		room, ok := client.parseRoomRequest(json.RawMessage(`{"type":"global"}`))
		require.True(t, ok)
		assert.Equal(t, "global", room.Name())
	})

	t.Run("rejects missing id for non-global kinds", func(t *testing.T) {
		_, ok := client.parseRoomRequest(json.RawMessage(`{"type":"user"}`))
		assert.False(t, ok)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, ok := client.parseRoomRequest(json.RawMessage(`{"type":"ticket","id":"1"}`))
		assert.False(t, ok)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		_, ok := client.parseRoomRequest(json.RawMessage(`{`))
		assert.False(t, ok)
	})
}

func TestClient_JoinGlobalWithStrayID(t *testing.T) {
	reg := NewRegistry(testLogger())
	client := newTestClient(reg, 3, 7)
	reg.Register(client)
	require.Len(t, client.joinedRooms(), 3)

	// A join_room frame for the global room carrying a stray id must land
	// in the one global room, not mint a second membership.
	client.handleIncomingMessage([]byte(`{"type":"join_room","payload":{"type":"global","id":"sneaky"}}`))

	assert.Len(t, client.joinedRooms(), 3)
	assert.Equal(t, 1, reg.RoomSize(GlobalRoom()))
}
