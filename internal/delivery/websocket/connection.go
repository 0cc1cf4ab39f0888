package websocket

import (
	"context"
	"sync"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Connection represents a WebSocket connection, bound to a player/room pair
// once the client completes establish_connection.
type Connection struct {
	ID       string
	PlayerID string
	RoomCode string
	Conn     *websocket.Conn
	Send     chan dto.OutboundEnvelope
	Hub      *Hub
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewConnection creates a new WebSocket connection.
func NewConnection(id string, conn *websocket.Conn, hub *Hub) *Connection {
	return &Connection{
		ID:     id,
		Conn:   conn,
		Send:   make(chan dto.OutboundEnvelope, 256),
		Hub:    hub,
		logger: logger.Get(),
	}
}

// SetPlayer associates this connection with a seated player.
func (c *Connection) SetPlayer(playerID, roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PlayerID = playerID
	c.RoomCode = roomCode
}

// GetPlayer returns the player and room for this connection.
func (c *Connection) GetPlayer() (playerID, roomCode string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PlayerID, c.RoomCode
}

// ReadPump pumps raw frames from the websocket connection to the hub. Frames
// are kept as raw bytes here; the hub peeks the "action" field and decodes
// into the concrete request type once it knows which action it names.
func (c *Connection) ReadPump(ctx context.Context) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("connection read pump stopping due to context cancellation", zap.String("connection_id", c.ID))
			return
		default:
			_, raw, err := c.Conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("websocket read error", zap.Error(err), zap.String("connection_id", c.ID))
				} else {
					c.logger.Info("websocket connection closed", zap.String("connection_id", c.ID))
				}
				return
			}

			select {
			case c.Hub.Broadcast <- HubMessage{Connection: c, Raw: raw}:
			default:
				c.logger.Warn("hub broadcast channel is full", zap.String("connection_id", c.ID))
				return
			}
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Connection) WritePump(ctx context.Context) {
	defer c.Conn.Close()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("connection write pump stopping due to context cancellation", zap.String("connection_id", c.ID))
			return
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.logger.Error("websocket write error", zap.Error(err), zap.String("connection_id", c.ID))
				return
			}
		}
	}
}

// SendMessage sends a message to this connection.
func (c *Connection) SendMessage(message dto.OutboundEnvelope) {
	select {
	case c.Send <- message:
	default:
		c.logger.Warn("connection send channel is full, closing connection", zap.String("connection_id", c.ID))
		close(c.Send)
	}
}
