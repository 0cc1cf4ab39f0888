package directory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"monopolydeal-server/internal/apperrors"
	"monopolydeal-server/internal/logger"

	"go.uber.org/zap"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6
	maxCodeAttempts  = 10
)

// Repository provides CRUD operations and granular roster updates for rooms.
type Repository interface {
	Create(ctx context.Context, maxPlayers int) (Record, error)
	GetByCode(ctx context.Context, roomCode string) (Record, error)
	Delete(ctx context.Context, roomCode string) error
	List(ctx context.Context) ([]Record, error)

	AddRosterMember(ctx context.Context, roomCode string, member RosterMember) (Record, error)
	SetReady(ctx context.Context, roomCode, playerID string, isReady bool) (Record, error)
	RemoveRosterMember(ctx context.Context, roomCode, playerID string) (Record, error)
	MarkStarted(ctx context.Context, roomCode string) (Record, error)
}

// RepositoryImpl implements Repository with in-memory storage.
type RepositoryImpl struct {
	rooms map[string]*Record
	mutex sync.RWMutex
	rng   *rand.Rand
}

// NewRepository creates a new in-memory room directory.
func NewRepository() Repository {
	return &RepositoryImpl{
		rooms: make(map[string]*Record),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create allocates a fresh room with a unique 6-character code.
func (r *RepositoryImpl) Create(ctx context.Context, maxPlayers int) (Record, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	log := logger.Get()

	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := r.generateCode()
		if _, exists := r.rooms[candidate]; !exists {
			code = candidate
			break
		}
	}
	if code == "" {
		return Record{}, fmt.Errorf("failed to allocate a unique room code after %d attempts", maxCodeAttempts)
	}

	record := &Record{
		RoomCode:   code,
		CreatedAt:  time.Now(),
		MaxPlayers: maxPlayers,
	}
	r.rooms[code] = record
	log.Debug("room created", zap.String("room_code", code))
	return *record, nil
}

func (r *RepositoryImpl) generateCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[r.rng.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}

// GetByCode returns a snapshot copy of a room's directory record.
func (r *RepositoryImpl) GetByCode(ctx context.Context, roomCode string) (Record, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	record, exists := r.rooms[roomCode]
	if !exists {
		return Record{}, &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	return *record, nil
}

// Delete removes a room from the directory.
func (r *RepositoryImpl) Delete(ctx context.Context, roomCode string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.rooms[roomCode]; !exists {
		return &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	delete(r.rooms, roomCode)
	return nil
}

// List returns a snapshot of every room currently tracked.
func (r *RepositoryImpl) List(ctx context.Context) ([]Record, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]Record, 0, len(r.rooms))
	for _, record := range r.rooms {
		out = append(out, *record)
	}
	return out, nil
}

// AddRosterMember admits a new player into a room's lobby roster.
func (r *RepositoryImpl) AddRosterMember(ctx context.Context, roomCode string, member RosterMember) (Record, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	record, exists := r.rooms[roomCode]
	if !exists {
		return Record{}, &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	for _, existing := range record.Roster {
		if existing.PlayerID == member.PlayerID {
			return *record, nil
		}
	}
	record.Roster = append(record.Roster, member)
	record.PlayerIDs = append(record.PlayerIDs, member.PlayerID)
	return *record, nil
}

// SetReady toggles a roster member's advisory ready flag.
func (r *RepositoryImpl) SetReady(ctx context.Context, roomCode, playerID string, isReady bool) (Record, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	record, exists := r.rooms[roomCode]
	if !exists {
		return Record{}, &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	for i := range record.Roster {
		if record.Roster[i].PlayerID == playerID {
			record.Roster[i].IsReady = isReady
			return *record, nil
		}
	}
	return Record{}, &apperrors.NotFoundError{Resource: "roster member", ID: playerID}
}

// RemoveRosterMember drops a player from the lobby roster (pre-game only).
func (r *RepositoryImpl) RemoveRosterMember(ctx context.Context, roomCode, playerID string) (Record, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	record, exists := r.rooms[roomCode]
	if !exists {
		return Record{}, &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	for i, member := range record.Roster {
		if member.PlayerID == playerID {
			record.Roster = append(record.Roster[:i], record.Roster[i+1:]...)
			break
		}
	}
	for i, id := range record.PlayerIDs {
		if id == playerID {
			record.PlayerIDs = append(record.PlayerIDs[:i], record.PlayerIDs[i+1:]...)
			break
		}
	}
	return *record, nil
}

// MarkStarted closes a room's lobby.
func (r *RepositoryImpl) MarkStarted(ctx context.Context, roomCode string) (Record, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	record, exists := r.rooms[roomCode]
	if !exists {
		return Record{}, &apperrors.NotFoundError{Resource: "room", ID: roomCode}
	}
	record.HasStarted = true
	return *record, nil
}
