package websocket

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/erp-backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(reg *Registry, userID, orgID int64) *Client {
	// No transport pumps are started in tests, so a nil conn is fine.
	return NewClient(reg, nil, userID, orgID, testLogger())
}

// drain reads every message currently buffered on the client.
func drain(c *Client) []OutboundMessage {
	var msgs []OutboundMessage
	for {
		select {
		case msg := <-c.Send:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("auto-joins user, org and global rooms", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 3, 7)

		reg.Register(client)

		assert.True(t, client.InRoom(UserRoom(3)))
		assert.True(t, client.InRoom(OrgRoom(7)))
		assert.True(t, client.InRoom(GlobalRoom()))
		assert.Equal(t, 1, reg.ClientCount())
	})

	t.Run("skips org room when org unknown", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 3, 0)

		reg.Register(client)

		assert.True(t, client.InRoom(UserRoom(3)))
		assert.Equal(t, 0, reg.RoomSize(OrgRoom(0)))
		assert.True(t, client.InRoom(GlobalRoom()))
	})

	t.Run("rejects connection without user id", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 0, 7)

		reg.Register(client)

		assert.Equal(t, 0, reg.ClientCount())
		assert.Empty(t, client.joinedRooms())

		// An unregistered connection stays invisible even after an
		// explicit join attempt.
		reg.Join(client, ModuleRoom(domain.CategoryLead))
		assert.False(t, client.InRoom(ModuleRoom(domain.CategoryLead)))

		reg.Multicast(ModuleRoom(domain.CategoryLead), "lead:created", nil)
		assert.Empty(t, drain(client))
	})
}

func TestRegistry_JoinLeave(t *testing.T) {
	t.Run("join is idempotent", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 3, 0)
		reg.Register(client)

		room := ModuleRoom(domain.CategoryInvoice)
		reg.Join(client, room)
		reg.Join(client, room)
		reg.Join(client, room)

		assert.Equal(t, 1, reg.RoomSize(room))
	})

	t.Run("leave is idempotent and tolerates non-members", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 3, 0)
		reg.Register(client)

		room := RoleRoom("dispatcher")
		reg.Leave(client, room) // never joined

		reg.Join(client, room)
		reg.Leave(client, room)
		reg.Leave(client, room)

		assert.Equal(t, 0, reg.RoomSize(room))
		assert.False(t, client.InRoom(room))
	})
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry(testLogger())
	client := newTestClient(reg, 3, 7)
	reg.Register(client)
	reg.Join(client, ModuleRoom(domain.CategoryLead))

	rooms := client.joinedRooms()
	require.Len(t, rooms, 4)

	reg.Unregister(client)

	assert.Equal(t, 0, reg.ClientCount())
	for _, room := range rooms {
		assert.Equal(t, 0, reg.RoomSize(room))
	}

	// No further multicast reaches the connection.
	for _, room := range rooms {
		reg.Multicast(room, "lead:created", nil)
	}
	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed")
}

func TestRegistry_Multicast(t *testing.T) {
	t.Run("delivers to every room member", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		member1 := newTestClient(reg, 1, 7)
		member2 := newTestClient(reg, 2, 7)
		outsider := newTestClient(reg, 3, 9)
		reg.Register(member1)
		reg.Register(member2)
		reg.Register(outsider)

		reg.Multicast(OrgRoom(7), "lead:created", map[string]any{"id": int64(41)})

		for _, member := range []*Client{member1, member2} {
			msgs := drain(member)
			require.Len(t, msgs, 1)
			assert.Equal(t, "lead:created", msgs[0].Event)
		}
		assert.Empty(t, drain(outsider))
	})

	t.Run("empty room is a silent no-op", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		assert.NotPanics(t, func() {
			reg.Multicast(UserRoom(999), "lead:created", nil)
		})
	})

	t.Run("drops messages for a client with a full buffer", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		client := newTestClient(reg, 3, 0)
		reg.Register(client)

		for i := 0; i < sendBufferSize; i++ {
			client.Send <- OutboundMessage{Event: "filler"}
		}

		assert.NotPanics(t, func() {
			reg.Multicast(UserRoom(3), "lead:created", nil)
		})
		assert.Len(t, drain(client), sendBufferSize)
	})
}

func TestRegistry_MulticastDuringUnregister(t *testing.T) {
	t.Run("disconnected member is never sent to after its channel closes", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		leaving := newTestClient(reg, 1, 7)
		staying := newTestClient(reg, 2, 7)
		reg.Register(leaving)
		reg.Register(staying)

		reg.Unregister(leaving)

		assert.NotPanics(t, func() {
			reg.Multicast(OrgRoom(7), "lead:created", nil)
		})

		msgs := drain(staying)
		require.Len(t, msgs, 1)
		assert.Equal(t, "lead:created", msgs[0].Event)
	})

	t.Run("concurrent disconnects do not break in-flight multicasts", func(t *testing.T) {
		reg := NewRegistry(testLogger())

		const memberCount = 32
		members := make([]*Client, 0, memberCount)
		for i := 0; i < memberCount; i++ {
			client := newTestClient(reg, int64(i+1), 7)
			reg.Register(client)
			members = append(members, client)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				reg.Multicast(OrgRoom(7), "lead:created", nil)
			}
		}()
		go func() {
			defer wg.Done()
			for _, client := range members {
				reg.Unregister(client)
			}
		}()
		wg.Wait()

		assert.Equal(t, 0, reg.ClientCount())
		assert.Equal(t, 0, reg.RoomSize(OrgRoom(7)))
	})
}

func TestRegistry_BroadcastAll(t *testing.T) {
	reg := NewRegistry(testLogger())
	client1 := newTestClient(reg, 1, 7)
	client2 := newTestClient(reg, 2, 9)
	reg.Register(client1)
	reg.Register(client2)

	reg.BroadcastAll("system:alert", map[string]any{"message": "maintenance"})

	for _, client := range []*Client{client1, client2} {
		msgs := drain(client)
		require.Len(t, msgs, 1)
		assert.Equal(t, "system:alert", msgs[0].Event)
	}
}
