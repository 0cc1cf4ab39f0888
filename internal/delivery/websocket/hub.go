package websocket

import (
	"context"
	"sync"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/logger"
	"monopolydeal-server/internal/room"

	"go.uber.org/zap"
)

// HubMessage represents a raw frame received from a connection.
type HubMessage struct {
	Connection *Connection
	Raw        []byte
}

// Hub maintains active WebSocket connections and routes inbound frames to
// the room service, and outbound state to every connection seated at a room.
type Hub struct {
	connections map[*Connection]bool

	// Connections grouped by room code for efficient broadcasting.
	roomConnections map[string]map[*Connection]bool

	Register   chan *Connection
	Unregister chan *Connection
	Broadcast  chan HubMessage

	rooms *room.Service

	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub creates a new WebSocket hub bound to a room orchestration service.
func NewHub(rooms *room.Service) *Hub {
	return &Hub{
		connections:     make(map[*Connection]bool),
		roomConnections: make(map[string]map[*Connection]bool),
		Register:        make(chan *Connection),
		Unregister:      make(chan *Connection),
		Broadcast:       make(chan HubMessage),
		rooms:           rooms,
		logger:          logger.Get(),
	}
}

// Run starts the hub's connection management loop.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("starting websocket hub")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("websocket hub stopping due to context cancellation")
			h.closeAllConnections()
			return

		case connection := <-h.Register:
			h.registerConnection(connection)

		case connection := <-h.Unregister:
			h.unregisterConnection(connection)

		case hubMessage := <-h.Broadcast:
			h.handleMessage(ctx, hubMessage)
		}
	}
}

func (h *Hub) registerConnection(connection *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[connection] = true
	h.logger.Info("connection registered", zap.String("connection_id", connection.ID))
}

func (h *Hub) unregisterConnection(connection *Connection) {
	h.mu.Lock()
	playerID, roomCode := connection.GetPlayer()
	if _, ok := h.connections[connection]; ok {
		delete(h.connections, connection)
		close(connection.Send)

		if roomCode != "" {
			if conns, exists := h.roomConnections[roomCode]; exists {
				delete(conns, connection)
				if len(conns) == 0 {
					delete(h.roomConnections, roomCode)
				}
			}
		}
	}
	h.mu.Unlock()

	h.logger.Info("connection unregistered",
		zap.String("connection_id", connection.ID),
		zap.String("player_id", playerID),
		zap.String("room_code", roomCode))

	if roomCode != "" && playerID != "" {
		if r, ok := h.rooms.GetRoom(roomCode); ok && !r.IsStarted() {
			h.rooms.Leave(context.Background(), roomCode, playerID)
			h.broadcastRoster(roomCode)
			return
		}
		h.rooms.Disconnect(roomCode, playerID)
		h.broadcastToRoom(roomCode, dto.OutboundEnvelope{
			Type: "player_disconnected",
			Data: dto.PlayerDisconnectedPayload{PlayerID: playerID},
		})
	}
}

func (h *Hub) addToRoom(connection *Connection, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.roomConnections[roomCode] == nil {
		h.roomConnections[roomCode] = make(map[*Connection]bool)
	}
	h.roomConnections[roomCode][connection] = true
}

func (h *Hub) broadcastToRoom(roomCode string, message dto.OutboundEnvelope) {
	h.mu.RLock()
	conns := h.roomConnections[roomCode]
	h.mu.RUnlock()

	for connection := range conns {
		connection.SendMessage(message)
	}

	h.logger.Debug("message broadcast to room",
		zap.String("room_code", roomCode),
		zap.String("message_type", message.Type),
		zap.Int("connection_count", len(conns)))
}

// broadcastGameUpdate sends each connection in a room its own personalized
// snapshot (full hand visible only to its owner).
func (h *Hub) broadcastGameUpdate(roomCode string) {
	r, ok := h.rooms.GetRoom(roomCode)
	if !ok {
		return
	}
	g := r.Game()
	if g == nil {
		return
	}

	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.roomConnections[roomCode]))
	for c := range h.roomConnections[roomCode] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	update := r.BuildGameUpdate(g)
	for _, connection := range conns {
		playerID, _ := connection.GetPlayer()
		connection.SendMessage(dto.OutboundEnvelope{
			Type: "game_update",
			Data: update.RenderForPlayer(playerID),
		})
	}
}

func (h *Hub) broadcastRoster(roomCode string) {
	r, ok := h.rooms.GetRoom(roomCode)
	if !ok {
		return
	}
	h.broadcastToRoom(roomCode, dto.OutboundEnvelope{
		Type: "roster_update",
		Data: dto.RosterUpdatePayload{Players: r.Roster()},
	})
}

func (h *Hub) sendToConnection(connection *Connection, message dto.OutboundEnvelope) {
	connection.SendMessage(message)
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for connection := range h.connections {
		close(connection.Send)
		connection.Conn.Close()
	}

	h.logger.Info("all connections closed")
}
