package websocket

import (
	"log/slog"
	"sync"
)

// Registry owns the live set of client connections and their room
// memberships, and provides the multicast primitives the broadcaster is
// built on. It is the only component allowed to mutate membership state;
// everything else goes through Register/Join/Leave/Unregister.
type Registry struct {
	// rooms maps room names to the set of connections joined to them.
	// A room vanishes implicitly when its last member leaves.
	rooms map[string]map[*Client]struct{}

	// registered is the set of connections accepted by Register. A
	// connection that was never registered (missing user id) is invisible:
	// Join refuses it and no multicast ever reaches it.
	registered map[*Client]struct{}

	// mu protects rooms and registered
	mu sync.RWMutex

	logger *slog.Logger
}

// NewRegistry creates an empty connection/room registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:      make(map[string]map[*Client]struct{}),
		registered: make(map[*Client]struct{}),
		logger:     logger.With("component", "ws_registry"),
	}
}

// Register accepts a new client connection. A connection without a user id
// is rejected: it is logged and left out of every room, so it can exist at
// the transport level but never receives a broadcast. Accepted connections
// are auto-subscribed to their user room, their org room when the org is
// known, and the global room.
func (r *Registry) Register(client *Client) {
	if client.UserID == 0 {
		r.logger.Warn("rejecting connection without user id",
			"remote_addr", client.remoteAddr(),
		)
		return
	}

	r.mu.Lock()
	r.registered[client] = struct{}{}
	r.join(client, UserRoom(client.UserID))
	if client.OrgID != 0 {
		r.join(client, OrgRoom(client.OrgID))
	}
	r.join(client, GlobalRoom())
	r.mu.Unlock()

	r.logger.Info("client registered",
		"user_id", client.UserID,
		"org_id", client.OrgID,
	)
}

// Join adds the client to a room. It is idempotent and refuses clients
// that were never registered.
func (r *Registry) Join(client *Client, room Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.registered[client]; !ok {
		r.logger.Warn("join refused for unregistered connection",
			"room", room.Name(),
		)
		return
	}
	r.join(client, room)

	r.logger.Debug("client joined room",
		"user_id", client.UserID,
		"room", room.Name(),
	)
}

// join adds the client to a room's member set. Caller must hold mu.
func (r *Registry) join(client *Client, room Room) {
	name := room.Name()
	if r.rooms[name] == nil {
		r.rooms[name] = make(map[*Client]struct{})
	}
	r.rooms[name][client] = struct{}{}
	client.addRoom(room)
}

// Leave removes the client from a room. No error if it was not a member.
func (r *Registry) Leave(client *Client, room Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leave(client, room)

	r.logger.Debug("client left room",
		"user_id", client.UserID,
		"room", room.Name(),
	)
}

// leave removes the client from a room's member set. Caller must hold mu.
func (r *Registry) leave(client *Client, room Room) {
	name := room.Name()
	if members, ok := r.rooms[name]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(r.rooms, name)
		}
	}
	client.removeRoom(room)
}

// Unregister removes the client from every room it was joined to and
// closes its send channel. Invoked on disconnect; callers never issue
// explicit Leave calls first.
//
// The channel close happens under the write lock. Multicast sends while
// holding the read lock, so a close can never interleave with a send:
// any multicast that saw this client as a member has finished before the
// close, and any later one no longer sees it.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	for _, room := range client.joinedRooms() {
		r.leave(client, room)
	}
	delete(r.registered, client)
	client.CloseSend()
	r.mu.Unlock()

	r.logger.Info("client unregistered", "user_id", client.UserID)
}

// Multicast delivers a payload tagged with eventName to every connection
// currently joined to the room. Delivery is best-effort and fire-and-forget:
// an empty room is a silent no-op, and a client whose send buffer is full
// simply misses the message.
//
// Sends happen under the read lock. They are non-blocking (select/default
// against a buffered channel), so the lock is never held across a stalled
// peer, and Unregister cannot close a member's channel mid-delivery.
func (r *Registry) Multicast(room Room, eventName string, payload any) {
	name := room.Name()

	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[name]
	if !ok || len(members) == 0 {
		return
	}

	msg := OutboundMessage{Event: eventName, Payload: payload}
	for client := range members {
		select {
		case client.Send <- msg:
		default:
			r.logger.Warn("client send buffer full, dropping message",
				"user_id", client.UserID,
				"room", name,
				"event", eventName,
			)
		}
	}

	r.logger.Debug("multicast delivered",
		"room", name,
		"event", eventName,
		"client_count", len(members),
	)
}

// BroadcastAll delivers a payload to every connection via the global room.
func (r *Registry) BroadcastAll(eventName string, payload any) {
	r.Multicast(GlobalRoom(), eventName, payload)
}

// ClientCount returns the number of registered connections.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registered)
}

// RoomSize returns the number of connections joined to a room.
func (r *Registry) RoomSize(room Room) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room.Name()])
}
