package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Buffered outbound messages per connection. When the buffer is full
	// further messages are dropped, not queued.
	sendBufferSize = 256
)

// OutboundMessage is the JSON frame pushed to clients.
type OutboundMessage struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Client is a middleman between one websocket connection and the registry.
type Client struct {
	registry *Registry

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan OutboundMessage

	// Identity supplied at handshake time, not renegotiable afterward.
	// UserID is required for registration; OrgID of 0 means unknown.
	UserID int64
	OrgID  int64

	// rooms tracks this connection's memberships by room name
	rooms map[string]Room

	// closeOnce ensures the Send channel is only closed once
	closeOnce sync.Once

	// mu protects rooms
	mu sync.RWMutex

	logger *slog.Logger
}

// NewClient creates a client for an upgraded websocket connection.
func NewClient(registry *Registry, conn *websocket.Conn, userID, orgID int64, logger *slog.Logger) *Client {
	return &Client{
		registry: registry,
		Conn:     conn,
		Send:     make(chan OutboundMessage, sendBufferSize),
		UserID:   userID,
		OrgID:    orgID,
		rooms:    make(map[string]Room),
		logger:   logger.With("user_id", userID),
	}
}

// CloseSend safely closes the Send channel exactly once.
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

func (c *Client) addRoom(room Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room.Name()] = room
}

func (c *Client) removeRoom(room Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room.Name())
}

// joinedRooms returns a copy of the client's current memberships.
func (c *Client) joinedRooms() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// InRoom reports whether the client is currently joined to the room.
func (c *Client) InRoom(room Room) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[room.Name()]
	return ok
}

func (c *Client) remoteAddr() string {
	if c.Conn == nil {
		return ""
	}
	return c.Conn.RemoteAddr().String()
}

// ReadPump pumps messages from the websocket connection to the registry.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		c.handleIncomingMessage(message)
	}
}

// WritePump pumps messages from the registry to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The registry closed the channel. Send close message.
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.writeJSON(msg); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// writeJSON writes a JSON message to the websocket connection.
func (c *Client) writeJSON(msg OutboundMessage) error {
	w, err := c.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(msg); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// --- Incoming Message Handling ---

// ClientMessage is the structure for messages sent from the client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomRequest is the payload for join_room/leave_room messages.
type RoomRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// handleIncomingMessage processes messages received from the client.
func (c *Client) handleIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal client message", "error", err)
		return
	}

	switch msg.Type {
	case "join_room":
		if room, ok := c.parseRoomRequest(msg.Payload); ok {
			c.registry.Join(c, room)
		}

	case "leave_room":
		if room, ok := c.parseRoomRequest(msg.Payload); ok {
			c.registry.Leave(c, room)
		}

	case "ping":
		// Client-side keep-alive, respond with pong
		c.sendPong()

	default:
		c.logger.Debug("received unknown message type", "type", msg.Type)
	}
}

func (c *Client) parseRoomRequest(payload json.RawMessage) (Room, bool) {
	var req RoomRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		c.logger.Warn("failed to unmarshal room request", "error", err)
		return Room{}, false
	}

	kind, err := ParseRoomKind(req.Type)
	if err != nil {
		c.logger.Warn("invalid room kind in request", "kind", req.Type)
		return Room{}, false
	}

	// The global room has a single fixed name; drop any id the client sent
	// so every accepted room maps to exactly one (kind, id) pair.
	if kind == RoomGlobal {
		return Room{Kind: RoomGlobal}, true
	}

	if req.ID == "" {
		c.logger.Warn("missing room id in request", "kind", req.Type)
		return Room{}, false
	}

	return Room{Kind: kind, ID: req.ID}, true
}

func (c *Client) sendPong() {
	select {
	case c.Send <- OutboundMessage{Event: "pong"}:
	default:
		// Channel full, skip pong response
	}
}
