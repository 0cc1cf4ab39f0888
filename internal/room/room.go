// Package room orchestrates one table end to end: the pre-game lobby
// roster, the transition into a live engine.Game, and the per-player view
// of its state. internal/directory tracks the metadata every room needs to
// be discoverable; Room tracks the live state a directory record can't hold
// (sync primitives, the engine instance itself).
package room

import (
	"fmt"
	"sync"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// member is one lobby roster entry before the game starts.
type member struct {
	name    string
	isReady bool
}

// Room is one table: a lobby roster before Start, a live engine.Game after.
type Room struct {
	mu         sync.Mutex
	Code       string
	MaxPlayers int

	order   []string // join order, becomes turn order
	members map[string]*member

	game         *engine.Game
	lastSnapshot *roomSnapshot // last broadcast game_update, for diffing
}

// New creates an empty room awaiting its first joiners.
func New(code string, maxPlayers int) *Room {
	return &Room{
		Code:       code,
		MaxPlayers: maxPlayers,
		members:    make(map[string]*member),
	}
}

// AddMember admits a player into the lobby roster. Rejoining an existing
// roster slot (e.g. a reconnect) is idempotent.
func (r *Room) AddMember(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[playerID]; exists {
		return nil
	}
	if r.game != nil {
		return fmt.Errorf("room %s has already started", r.Code)
	}
	if len(r.order) >= r.MaxPlayers {
		return fmt.Errorf("room %s is full", r.Code)
	}

	r.members[playerID] = &member{name: name}
	r.order = append(r.order, playerID)
	return nil
}

// RemoveMember drops a player from the lobby roster. A no-op once the game
// has started; mid-game disconnects are handled by the delivery layer
// without touching table membership.
func (r *Room) RemoveMember(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil {
		return
	}
	delete(r.members, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SetReady toggles a roster member's advisory ready flag.
func (r *Room) SetReady(playerID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.members[playerID]
	if !exists {
		return fmt.Errorf("player %s is not in room %s", playerID, r.Code)
	}
	m.isReady = ready
	return nil
}

// Roster returns the lobby roster in join order.
func (r *Room) Roster() []dto.RosterEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dto.RosterEntry, 0, len(r.order))
	for _, id := range r.order {
		m := r.members[id]
		out = append(out, dto.RosterEntry{ID: id, Name: m.name, IsReady: m.isReady})
	}
	return out
}

// MemberCount reports how many players have joined the lobby.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// HasMember reports whether a player is seated at this table.
func (r *Room) HasMember(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[playerID]
	return ok
}

// IsStarted reports whether the lobby has closed and play has begun.
func (r *Room) IsStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game != nil
}

// Start closes the lobby and constructs the live game from the current
// roster, in join order.
func (r *Room) Start(seed int64) (*engine.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil {
		return nil, fmt.Errorf("room %s has already started", r.Code)
	}
	if len(r.order) < 2 {
		return nil, fmt.Errorf("room %s needs at least 2 players to start", r.Code)
	}

	names := make(map[string]string, len(r.order))
	for id, m := range r.members {
		names[id] = m.name
	}

	g := engine.New(seed, append([]string{}, r.order...), names)
	if err := g.Start(); err != nil {
		return nil, err
	}
	r.game = g
	return g, nil
}

// Game returns the live game, or nil before Start.
func (r *Room) Game() *engine.Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game
}
