package events

import "time"

// Domain events for the Monopoly Deal room/game layer.
// All event type definitions are centralized here to avoid circular dependencies.
// The room service publishes these. The websocket hub does not subscribe to
// them; it builds and sends state updates directly after each request.

// =============================================================================
// ROSTER EVENTS
// =============================================================================

// PlayerJoinedEvent is published when a connection is admitted into a room's lobby.
type PlayerJoinedEvent struct {
	RoomCode  string
	PlayerID  string
	Name      string
	Timestamp time.Time
}

// PlayerReadyChangedEvent is published when a lobby member toggles ready.
type PlayerReadyChangedEvent struct {
	RoomCode  string
	PlayerID  string
	IsReady   bool
	Timestamp time.Time
}

// PlayerDisconnectedEvent is published when a connection drops mid-game.
type PlayerDisconnectedEvent struct {
	RoomCode  string
	PlayerID  string
	Timestamp time.Time
}

// =============================================================================
// TURN EVENTS
// =============================================================================

// GameStartedEvent is published when a room's roster closes and play begins.
type GameStartedEvent struct {
	RoomCode  string
	PlayerIDs []string
	Timestamp time.Time
}

// TurnAdvancedEvent is published when the acting player changes.
type TurnAdvancedEvent struct {
	RoomCode     string
	PlayerID     string
	ActionsTotal int
	Timestamp    time.Time
}

// ActionsRemainingChangedEvent is published when the acting player's action
// budget is consumed.
type ActionsRemainingChangedEvent struct {
	RoomCode  string
	PlayerID  string
	Remaining int
	Timestamp time.Time
}

// CardPlayedEvent is published when a player successfully plays a card from
// hand, whether to bank, to a property set, or as an action.
type CardPlayedEvent struct {
	RoomCode  string
	PlayerID  string
	CardID    int
	CardName  string
	Timestamp time.Time
}

// CardDrawnEvent is published when a player draws from the deck at the start
// of a turn or via Pass Go.
type CardDrawnEvent struct {
	RoomCode  string
	PlayerID  string
	Count     int
	Timestamp time.Time
}

// =============================================================================
// NEGOTIATION EVENTS
// =============================================================================

// RefusalChainStartedEvent is published when a rent-like or stealing effect
// opens the Just Say No negotiation for one target.
type RefusalChainStartedEvent struct {
	RoomCode     string
	ActingPlayer string
	TargetPlayer string
	Timestamp    time.Time
}

// RefusalDecisionEvent is published each time a decision holder answers.
type RefusalDecisionEvent struct {
	RoomCode  string
	PlayerID  string
	Refused   bool
	Timestamp time.Time
}

// RentRequestedEvent is published once a refusal chain resolves with an
// outstanding rent amount due.
type RentRequestedEvent struct {
	RoomCode  string
	Recipient string
	Payer     string
	Amount    int
	Timestamp time.Time
}

// RentPaidEvent is published when a payer settles an outstanding rent request.
type RentPaidEvent struct {
	RoomCode  string
	Payer     string
	Recipient string
	CardIDs   []int
	Timestamp time.Time
}

// PropertyStolenEvent is published on a resolved Sly Deal.
type PropertyStolenEvent struct {
	RoomCode     string
	ActingPlayer string
	TargetPlayer string
	CardID       int
	Timestamp    time.Time
}

// PropertySwappedEvent is published on a resolved Forced Deal.
type PropertySwappedEvent struct {
	RoomCode     string
	ActingPlayer string
	TargetPlayer string
	ToActingID   int
	ToTargetID   int
	Timestamp    time.Time
}

// SetStolenEvent is published on a resolved Deal Breaker.
type SetStolenEvent struct {
	RoomCode     string
	ActingPlayer string
	TargetPlayer string
	CardIDs      []int
	Timestamp    time.Time
}

// =============================================================================
// GAME-OVER EVENTS
// =============================================================================

// GameWonEvent is published the instant a player completes a third full set.
type GameWonEvent struct {
	RoomCode  string
	Winner    string
	Timestamp time.Time
}
