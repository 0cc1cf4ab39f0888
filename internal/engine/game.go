// Package engine implements the authoritative per-room game-engine state
// machine: turn and action accounting, the refusal/payment negotiation
// sub-states, and win detection. Every mutating method takes Game's
// internal lock.
package engine

import (
	"fmt"
	"sync"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/deck"
	"monopolydeal-server/internal/engine/negotiation"
	"monopolydeal-server/internal/player"
)

// TurnState is one of the states a turn can be in.
type TurnState string

const (
	StateIdle           TurnState = "idle"
	StateDrawPhase      TurnState = "draw_phase"
	StateActions        TurnState = "actions"
	StatePendingRent     TurnState = "pending_rent"
	StatePendingRefusal TurnState = "pending_refusal"
	StateWin            TurnState = "win"
)

// Game is one room's authoritative state. It owns the deck and every
// player's state, and drives turn order, the refusal chain, and the
// multi-payer rent queue.
type Game struct {
	mu sync.Mutex

	deck    *deck.Deck
	players []*player.Player

	turnIndex        int
	actionsRemaining int
	state            TurnState
	winner           *player.Player

	rentPlayedThisTurn bool

	pendingRent *RentRequest
	refusal     *Refusal
	group       *groupAction
	pendingActionCost int
}

// RentRequest is the active payment obligation: recipient awaits amount
// from payer.
type RentRequest struct {
	Recipient string
	Payer     string
	Amount    int
}

// New constructs a game for the given player ids/display names, in the
// turn order supplied. The order is used as given and is not shuffled;
// Room.Start passes the lobby's join order.
func New(seed int64, playerIDs []string, displayNames map[string]string) *Game {
	players := make([]*player.Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = player.New(id, displayNames[id])
	}
	return &Game{
		deck:    deck.New(seed),
		players: players,
		state:   StateIdle,
	}
}

// Start deals the opening hand to every player and begins the first turn.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateIdle {
		return fmt.Errorf("game already started")
	}
	for _, p := range g.players {
		p.AddToHand(g.deck.Draw(5)...)
	}
	g.turnIndex = 0
	g.turnStartLocked()
	return nil
}

func (g *Game) turnStartLocked() {
	p := g.players[g.turnIndex]
	n := 2
	if len(p.Hand()) == 0 {
		n = 5
	}
	p.Draw(g.deck, n)
	g.actionsRemaining = 3
	g.rentPlayedThisTurn = false
	g.state = StateActions
}

func (g *Game) advanceTurnLocked() {
	g.turnIndex = (g.turnIndex + 1) % len(g.players)
	g.turnStartLocked()
}

// Players returns the players in fixed turn order.
func (g *Game) Players() []*player.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*player.Player, len(g.players))
	copy(out, g.players)
	return out
}

// PlayerByID returns the player with the given id, or nil.
func (g *Game) PlayerByID(id string) *player.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerByIDLocked(id)
}

func (g *Game) playerByIDLocked(id string) *player.Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponents returns every player id other than the given one, in turn
// order starting immediately after it (the acting player's left).
func (g *Game) Opponents(actingPlayerID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.players)
	start := 0
	for i, p := range g.players {
		if p.ID == actingPlayerID {
			start = i
			break
		}
	}
	out := make([]string, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, g.players[(start+i)%n].ID)
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *player.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[g.turnIndex]
}

// Deck exposes the deck so action handlers can draw/discard.
func (g *Game) Deck() *deck.Deck { return g.deck }

// State returns the current turn state.
func (g *Game) State() TurnState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// ActionsRemaining returns the current turn's remaining action budget.
func (g *Game) ActionsRemaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.actionsRemaining
}

// TurnIndex returns the index, into Players(), of the current player.
func (g *Game) TurnIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turnIndex
}

// Winner returns the winning player, or nil.
func (g *Game) Winner() *player.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// RentPlayedThisTurn reports whether a Rent (two-color or multicolor) card
// has already been successfully played this turn. DoubleTheRent does not
// consult it: its rent card is played in the same request.
func (g *Game) RentPlayedThisTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rentPlayedThisTurn
}

// MarkRentPlayed records that a Rent card was played this turn.
func (g *Game) MarkRentPlayed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rentPlayedThisTurn = true
}

// RequireCurrentPlayer validates that playerID is the current player and
// the game is accepting actions.
func (g *Game) RequireCurrentPlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requireCurrentPlayerLocked(playerID)
}

func (g *Game) requireCurrentPlayerLocked(playerID string) error {
	if g.state == StateWin {
		return fmt.Errorf("game already has a winner")
	}
	if g.state != StateActions {
		return fmt.Errorf("not in actions phase")
	}
	if g.players[g.turnIndex].ID != playerID {
		return fmt.Errorf("not %s's turn", playerID)
	}
	return nil
}

// CommitAction validates playerID is the current player in the actions
// phase, then consumes one action slot. Call after a handler's mutation
// has already succeeded — never before, so a failed precondition never
// consumes a slot.
func (g *Game) CommitAction(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireCurrentPlayerLocked(playerID); err != nil {
		return err
	}
	g.commitActionLocked(playerID)
	return nil
}

func (g *Game) commitActionLocked(playerID string) {
	g.commitActionsLocked(playerID, 1)
}

// commitActionsLocked consumes n action slots from the current player's
// budget in one step. Spending must never straddle a turn boundary: if n
// exceeds the remaining budget, the excess is simply absorbed rather than
// carried into the next player's fresh budget once advanceTurnLocked resets
// it.
func (g *Game) commitActionsLocked(playerID string, n int) {
	if g.state == StateWin {
		return
	}
	g.actionsRemaining -= n
	if g.actionsRemaining < 0 {
		g.actionsRemaining = 0
	}
	if p := g.playerByIDLocked(playerID); p != nil {
		g.checkWinLocked(p)
	}
	if g.state == StateWin {
		return
	}
	if g.actionsRemaining == 0 {
		g.advanceTurnLocked()
		return
	}
	g.state = StateActions
}

func (g *Game) checkWinLocked(p *player.Player) {
	if p.HasWon() {
		g.winner = p
		g.state = StateWin
	}
}

// SkipTurn immediately zeros the action budget and advances the turn.
func (g *Game) SkipTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.requireCurrentPlayerLocked(playerID); err != nil {
		return err
	}
	g.actionsRemaining = 0
	g.advanceTurnLocked()
	return nil
}

// DiscardPile exposes the deck's discard pile for broadcast snapshots.
func (g *Game) DiscardPile() []*card.Card {
	return g.deck.DiscardPile()
}

// DeckCount exposes the draw pile size for broadcast snapshots.
func (g *Game) DeckCount() int {
	return g.deck.Size()
}
