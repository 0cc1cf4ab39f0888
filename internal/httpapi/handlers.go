// Package httpapi exposes the small REST surface around room discovery:
// creating a room, looking one up, and listing the lobby. Gameplay itself
// runs entirely over the websocket connection in internal/delivery/websocket.
package httpapi

import (
	"net/http"

	"monopolydeal-server/internal/directory"
	"monopolydeal-server/internal/room"

	"github.com/gin-gonic/gin"
)

// Handler serves the room directory's REST endpoints.
type Handler struct {
	rooms *room.Service
}

// NewHandler creates a new REST handler bound to the room service.
func NewHandler(rooms *room.Service) *Handler {
	return &Handler{rooms: rooms}
}

type createRoomRequest struct {
	MaxPlayers int `json:"maxPlayers"`
}

type roomResponse struct {
	RoomCode   string                   `json:"roomCode"`
	MaxPlayers int                      `json:"maxPlayers"`
	HasStarted bool                     `json:"hasStarted"`
	Players    []directory.RosterMember `json:"players"`
}

func toRoomResponse(record directory.Record) roomResponse {
	return roomResponse{
		RoomCode:   record.RoomCode,
		MaxPlayers: record.MaxPlayers,
		HasStarted: record.HasStarted,
		Players:    record.Roster,
	}
}

// CreateRoom handles POST /api/room/create.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	_ = c.ShouldBindJSON(&req) // empty body is fine, falls back to the default size

	record, err := h.rooms.CreateRoom(c.Request.Context(), req.MaxPlayers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toRoomResponse(record))
}

// GetRoom handles GET /api/room/:room_id.
func (h *Handler) GetRoom(c *gin.Context) {
	roomCode := c.Param("room_id")
	record, err := h.rooms.RecordByCode(c.Request.Context(), roomCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(record))
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	records, err := h.rooms.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]roomResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRoomResponse(record))
	}
	c.JSON(http.StatusOK, out)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
