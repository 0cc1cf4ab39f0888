package room

import (
	"context"
	"sync"
	"time"

	"monopolydeal-server/internal/apperrors"
	"monopolydeal-server/internal/directory"
	"monopolydeal-server/internal/engine/actions"
	"monopolydeal-server/internal/events"
	"monopolydeal-server/internal/logger"

	"go.uber.org/zap"
)

const defaultMaxPlayers = 4

// Service owns every live Room alongside the directory that makes rooms
// discoverable by code.
type Service struct {
	dir   directory.Repository
	bus   *events.EventBusImpl
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewService wires a room orchestration service to a directory repository
// and the event bus the delivery layer broadcasts from.
func NewService(dir directory.Repository, bus *events.EventBusImpl) *Service {
	return &Service{
		dir:   dir,
		bus:   bus,
		rooms: make(map[string]*Room),
	}
}

// CreateRoom allocates a fresh room and its directory record.
func (s *Service) CreateRoom(ctx context.Context, maxPlayers int) (directory.Record, error) {
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}
	record, err := s.dir.Create(ctx, maxPlayers)
	if err != nil {
		return directory.Record{}, err
	}

	s.mu.Lock()
	s.rooms[record.RoomCode] = New(record.RoomCode, maxPlayers)
	s.mu.Unlock()

	return record, nil
}

// GetRoom returns the live room for a code, if any.
func (s *Service) GetRoom(roomCode string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[roomCode]
	return r, ok
}

// ListRecords returns the directory's current room listing.
func (s *Service) ListRecords(ctx context.Context) ([]directory.Record, error) {
	return s.dir.List(ctx)
}

// RecordByCode returns one room's directory record.
func (s *Service) RecordByCode(ctx context.Context, roomCode string) (directory.Record, error) {
	return s.dir.GetByCode(ctx, roomCode)
}

// Join admits a player into a room's lobby, enforcing the admission rules:
// unknown room, a room whose game has already started (for every player,
// including one admitted before the start), an identifier already on the
// roster, or a full room.
func (s *Service) Join(ctx context.Context, roomCode, playerID, name string) error {
	r, ok := s.GetRoom(roomCode)
	if !ok {
		return &apperrors.AdmissionError{Reason: apperrors.AdmissionRoomMissing}
	}

	if r.IsStarted() {
		return &apperrors.AdmissionError{Reason: apperrors.AdmissionGameStarted}
	}
	if r.HasMember(playerID) {
		return &apperrors.AdmissionError{Reason: apperrors.AdmissionDuplicatePlayer}
	}
	if r.MemberCount() >= r.MaxPlayers {
		return &apperrors.AdmissionError{Reason: apperrors.AdmissionRoomFull}
	}

	if err := r.AddMember(playerID, name); err != nil {
		return &apperrors.AdmissionError{Reason: apperrors.AdmissionRoomFull}
	}
	if _, err := s.dir.AddRosterMember(ctx, roomCode, directory.RosterMember{PlayerID: playerID, Name: name}); err != nil {
		return err
	}

	events.Publish(s.bus, events.PlayerJoinedEvent{RoomCode: roomCode, PlayerID: playerID, Name: name, Timestamp: timeNow()})
	return nil
}

// SetReady toggles a lobby member's ready flag.
func (s *Service) SetReady(ctx context.Context, roomCode, playerID string, ready bool) error {
	r, ok := s.GetRoom(roomCode)
	if !ok {
		return &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	if err := r.SetReady(playerID, ready); err != nil {
		return &apperrors.ValidationError{Op: "set_ready", Reason: err.Error()}
	}
	if _, err := s.dir.SetReady(ctx, roomCode, playerID, ready); err != nil {
		return err
	}
	events.Publish(s.bus, events.PlayerReadyChangedEvent{RoomCode: roomCode, PlayerID: playerID, IsReady: ready, Timestamp: timeNow()})
	return nil
}

// Leave removes a player from a room's pre-game roster.
func (s *Service) Leave(ctx context.Context, roomCode, playerID string) {
	r, ok := s.GetRoom(roomCode)
	if !ok {
		return
	}
	r.RemoveMember(playerID)
	_, _ = s.dir.RemoveRosterMember(ctx, roomCode, playerID)
}

// Disconnect announces a mid-game drop without altering table membership.
func (s *Service) Disconnect(roomCode, playerID string) {
	events.Publish(s.bus, events.PlayerDisconnectedEvent{RoomCode: roomCode, PlayerID: playerID, Timestamp: timeNow()})
}

// StartGame closes a room's lobby and deals the opening hands.
func (s *Service) StartGame(ctx context.Context, roomCode, requesterID string, seed int64) error {
	r, ok := s.GetRoom(roomCode)
	if !ok {
		return &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	if !r.HasMember(requesterID) {
		return &apperrors.ValidationError{Op: "start_game", Reason: "requester is not seated at this table"}
	}

	g, err := r.Start(seed)
	if err != nil {
		return &apperrors.ValidationError{Op: "start_game", Reason: err.Error()}
	}
	if _, err := s.dir.MarkStarted(ctx, roomCode); err != nil {
		logger.Get().Warn("failed to mark room started in directory", zap.String("room_code", roomCode), zap.Error(err))
	}

	playerIDs := make([]string, 0, len(g.Players()))
	for _, p := range g.Players() {
		playerIDs = append(playerIDs, p.ID)
	}
	events.Publish(s.bus, events.GameStartedEvent{RoomCode: roomCode, PlayerIDs: playerIDs, Timestamp: timeNow()})
	return nil
}

// Dispatch routes a decoded action request to the room's live game.
func (s *Service) Dispatch(roomCode, actionName string, req interface{}) error {
	r, ok := s.GetRoom(roomCode)
	if !ok {
		return &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	g := r.Game()
	if g == nil {
		return &apperrors.ValidationError{Op: actionName, Reason: "game has not started"}
	}
	if err := actions.Apply(g, actionName, req); err != nil {
		return &apperrors.ValidationError{Op: actionName, Reason: err.Error()}
	}
	return nil
}

// timeNow centralizes the one non-deterministic call event stamping needs,
// so future work (e.g. snapshot-based replay) has a single seam to fake it.
func timeNow() time.Time { return time.Now() }
