package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"monopolydeal-server/internal/delivery/dto"

	"go.uber.org/zap"
)

// handleMessage decodes one raw frame's action and dispatches it.
func (h *Hub) handleMessage(ctx context.Context, hubMessage HubMessage) {
	connection := hubMessage.Connection

	var envelope dto.InboundEnvelope
	if err := parseJSON(hubMessage.Raw, &envelope); err != nil || envelope.Action == "" {
		h.logger.Warn("malformed inbound frame", zap.String("connection_id", connection.ID))
		h.sendRejection(connection, "malformed message")
		return
	}

	h.logger.Debug("processing websocket message",
		zap.String("connection_id", connection.ID),
		zap.String("action", envelope.Action))

	switch envelope.Action {
	case "establish_connection":
		h.handleEstablishConnection(ctx, connection, hubMessage.Raw)
	case "player_ready":
		h.handlePlayerReady(ctx, connection, hubMessage.Raw)
	case "start_game":
		h.handleStartGame(ctx, connection, hubMessage.Raw)
	default:
		h.handleGameAction(ctx, connection, envelope.Action, hubMessage.Raw)
	}
}

func parseJSON(raw []byte, dest interface{}) error {
	return json.Unmarshal(raw, dest)
}

// handleEstablishConnection admits a connection into a room's lobby.
func (h *Hub) handleEstablishConnection(ctx context.Context, connection *Connection, raw []byte) {
	var req struct {
		RoomCode string `json:"roomCode"`
		dto.EstablishConnectionRequest
		Name string `json:"name"`
	}
	if err := parseJSON(raw, &req); err != nil {
		h.sendRejection(connection, "invalid establish_connection payload")
		return
	}

	if err := h.rooms.Join(ctx, req.RoomCode, req.PlayerID, req.Name); err != nil {
		h.logger.Info("admission refused",
			zap.String("connection_id", connection.ID),
			zap.String("room_code", req.RoomCode),
			zap.Error(err))
		h.sendRejection(connection, err.Error())
		return
	}

	connection.SetPlayer(req.PlayerID, req.RoomCode)
	h.addToRoom(connection, req.RoomCode)
	h.broadcastRoster(req.RoomCode)

	h.logger.Info("player admitted to room",
		zap.String("connection_id", connection.ID),
		zap.String("player_id", req.PlayerID),
		zap.String("room_code", req.RoomCode))
}

// handlePlayerReady toggles the caller's ready flag.
func (h *Hub) handlePlayerReady(ctx context.Context, connection *Connection, raw []byte) {
	playerID, roomCode := connection.GetPlayer()
	if playerID == "" {
		h.sendRejection(connection, "not yet connected to a room")
		return
	}

	var req dto.PlayerReadyRequest
	if err := parseJSON(raw, &req); err != nil {
		h.sendRejection(connection, "invalid player_ready payload")
		return
	}

	if err := h.rooms.SetReady(ctx, roomCode, playerID, req.IsReady); err != nil {
		h.sendRejection(connection, err.Error())
		return
	}
	h.broadcastRoster(roomCode)
}

// handleStartGame closes a room's lobby and deals the opening hands.
func (h *Hub) handleStartGame(ctx context.Context, connection *Connection, raw []byte) {
	playerID, roomCode := connection.GetPlayer()
	if playerID == "" {
		h.sendRejection(connection, "not yet connected to a room")
		return
	}

	if err := h.rooms.StartGame(ctx, roomCode, playerID, deriveSeed(roomCode)); err != nil {
		h.logger.Info("start_game dropped",
			zap.String("connection_id", connection.ID),
			zap.Error(err))
		return
	}
	h.broadcastGameUpdate(roomCode)
}

// handleGameAction decodes and dispatches an in-game action.
func (h *Hub) handleGameAction(ctx context.Context, connection *Connection, action string, raw []byte) {
	_, roomCode := connection.GetPlayer()
	if roomCode == "" {
		h.sendRejection(connection, "not yet connected to a room")
		return
	}

	req, err := dto.DecodeAction(action, raw)
	if err != nil {
		h.sendRejection(connection, fmt.Sprintf("invalid %s payload", action))
		return
	}

	if err := h.rooms.Dispatch(roomCode, action, req); err != nil {
		h.logger.Info("action rejected",
			zap.String("connection_id", connection.ID),
			zap.String("action", action),
			zap.Error(err))
		return
	}

	h.broadcastGameUpdate(roomCode)
}

// sendRejection answers a failed request without closing the connection.
func (h *Hub) sendRejection(connection *Connection, reason string) {
	h.sendToConnection(connection, dto.OutboundEnvelope{
		Type: "rejection",
		Data: dto.RejectionPayload{Reason: reason},
	})
}

// deriveSeed turns a room code into a deterministic shuffle seed so a
// replayed session (same room code, same join order) reproduces the same
// deal — convenient for the test suite, inconsequential in production where
// room codes are freshly random per table.
func deriveSeed(roomCode string) int64 {
	var seed int64
	for _, r := range roomCode {
		seed = seed*31 + int64(r)
	}
	return seed
}
