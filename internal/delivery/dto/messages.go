// Package dto defines the wire representation of the Monopoly Deal
// websocket protocol: inbound actions keyed by an "action" field and
// outbound events keyed by a "type" field, plus the JSON view of cards and
// game state sent to clients.
package dto

import "monopolydeal-server/internal/card"

// InboundEnvelope is the outer shape of every client-to-server frame.
// Payload is re-decoded into the concrete request type once Action is
// known.
type InboundEnvelope struct {
	Action string `json:"action"`
}

// OutboundEnvelope is the outer shape of every server-to-client frame.
type OutboundEnvelope struct {
	Type string `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// EstablishConnectionRequest admits a connection into a room.
type EstablishConnectionRequest struct {
	PlayerID string `json:"player_id"`
}

// PlayerReadyRequest toggles a roster entry's advisory ready flag.
type PlayerReadyRequest struct {
	IsReady bool `json:"isReady"`
}

// SkipTurnRequest ends the current player's turn immediately.
type SkipTurnRequest struct {
	Player string `json:"player"`
}

// ToBankRequest moves a non-property card from hand to bank.
type ToBankRequest struct {
	Player string `json:"player"`
	Card   int    `json:"card"`
}

// CardColorRef names a card id and the color the player wants it assigned.
type CardColorRef struct {
	ID           int        `json:"id"`
	CurrentColor card.Color `json:"currentColor"`
}

// ToPropertiesRequest moves a property card from hand to a color's set.
type ToPropertiesRequest struct {
	Player string       `json:"player"`
	Card   CardColorRef `json:"card"`
}

// PassGoRequest discards a PassGo card and draws 2 for the acting player.
type PassGoRequest struct {
	Player string `json:"player"`
	Card   int    `json:"card"`
}

// ItsYourBirthdayRequest requests 2 from every other player.
type ItsYourBirthdayRequest struct {
	Player string `json:"player"`
	Card   int    `json:"card"`
}

// DebtCollectorRequest requests 5 from one opponent.
type DebtCollectorRequest struct {
	Player       string `json:"player"`
	Card         int    `json:"card"`
	TargetPlayer string `json:"targetPlayer"`
}

// RentRequest plays a two-color rent card against every opponent.
type RentRequest struct {
	Player     string `json:"player"`
	Card       int    `json:"card"`
	RentAmount int    `json:"rentAmount"`
}

// MulticolorRentRequest plays a multicolor wild rent card against one opponent.
type MulticolorRentRequest struct {
	Player       string `json:"player"`
	Card         int    `json:"card"`
	RentAmount   int    `json:"rentAmount"`
	TargetPlayer string `json:"targetPlayer"`
}

// DoubleTheRentRequest plays a Rent card (Card) together with a
// DoubleTheRent card in one request.
type DoubleTheRentRequest struct {
	Player             string `json:"player"`
	Card               int    `json:"card"`
	DoubleTheRentCard  int    `json:"double_the_rent_card"`
	RentAmount         int    `json:"rentAmount"`
	TargetPlayer       string `json:"targetPlayer,omitempty"`
}

// SlyDealRequest steals a single property from an opponent's incomplete set.
type SlyDealRequest struct {
	Player         string `json:"player"`
	Card           int    `json:"card"`
	TargetProperty int    `json:"target_property"`
}

// ForcedDealRequest swaps one own property for one opponent property.
type ForcedDealRequest struct {
	Player         string `json:"player"`
	Card           int    `json:"card"`
	TargetProperty int    `json:"target_property"`
	UserProperty   int    `json:"user_property"`
}

// DealBreakerRequest steals an opponent's complete set.
type DealBreakerRequest struct {
	Player       string     `json:"player"`
	Card         int        `json:"card"`
	TargetPlayer string     `json:"targetPlayer"`
	TargetColor  card.Color `json:"target_color"`
	// TargetSet names the exact property ids to take when the opponent's
	// set holds more than the color's full-set size. Empty otherwise.
	TargetSet []int `json:"target_set,omitempty"`
}

// ReassignWildRequest moves a wild property card already on the table to a
// new legal color.
type ReassignWildRequest struct {
	Player   string     `json:"player"`
	Card     int        `json:"card"`
	NewColor card.Color `json:"new_color"`
}

// RentPaymentRequest settles a pending rent obligation with a multiset of
// card ids drawn from bank and/or property sets.
type RentPaymentRequest struct {
	Player        string `json:"player"`
	RecipientID   string `json:"recipient_id"`
	SelectedCards []int  `json:"selected_cards"`
}

// RefusalChoiceRequest is the decision holder's response at one step of a
// refusal chain. Refuse=true means "play Just Say No", extending the
// chain; Refuse=false declines, resolving it.
type RefusalChoiceRequest struct {
	PlayerID   string `json:"playerId"`
	OpponentID string `json:"opponentId"`
	Refuse     bool   `json:"refuse"`
	// Card is the Just Say No card id discarded when Refuse is true.
	Card int `json:"card,omitempty"`
}

// --- Outbound payloads ---

// CardView is the client-facing representation of a card.
type CardView struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Value        *int       `json:"value"`
	Kind         card.Kind  `json:"kind"`
	LegalColors  []card.Color `json:"legalColors,omitempty"`
	CurrentColor card.Color `json:"currentColor,omitempty"`
	IsWild       bool       `json:"isWild,omitempty"`
	Action       card.ActionName `json:"action,omitempty"`
	RentColors   []card.Color `json:"rentColors,omitempty"`
	Denomination int        `json:"denomination,omitempty"`
}

// ToCardView converts an engine card to its wire representation.
func ToCardView(c *card.Card) CardView {
	return CardView{
		ID: c.ID, Name: c.Name, Value: c.Value, Kind: c.Kind,
		LegalColors: c.LegalColors, CurrentColor: c.CurrentColor, IsWild: c.IsWild,
		Action: c.Action, RentColors: c.RentColors, Denomination: c.Denomination,
	}
}

// PlayerView is the client-facing representation of one player's state.
type PlayerView struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	HandCount  int                       `json:"handCount"`
	Hand       []CardView                `json:"hand,omitempty"` // populated only in the payload rendered for that player
	Bank       []CardView                `json:"bank"`
	Properties map[card.Color][]CardView `json:"properties"`
}

// RosterEntry describes one member of a room's lobby roster.
type RosterEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsReady bool   `json:"isReady"`
}

// RejectionPayload is sent when the hub refuses a connection or lobby
// request (admission failure, malformed payload, a request before joining,
// a failed player_ready); the channel stays open.
type RejectionPayload struct {
	Reason string `json:"reason"`
}

// RosterUpdatePayload reflects the current lobby roster.
type RosterUpdatePayload struct {
	Players []RosterEntry `json:"players"`
}

// GameUpdatePayload carries either a full state snapshot or a diff. See
// internal/room for diff computation.
type GameUpdatePayload struct {
	IsFullState      bool                  `json:"is_full_state"`
	DeckCount        *int                  `json:"deck_count,omitempty"`
	CurrentTurn      *int                  `json:"current_turn,omitempty"`
	ActionsRemaining *int                  `json:"actions_remaining,omitempty"`
	Winner           *string               `json:"winner,omitempty"`
	DiscardPile      []CardView            `json:"discard_pile,omitempty"`
	Players          map[string]PlayerView `json:"players,omitempty"`
}

// CardPlayedPayload announces a successful card play.
type CardPlayedPayload struct {
	PlayerID string   `json:"playerId"`
	Card     CardView `json:"card"`
}

// RentPreRequestPayload announces that a rent-like action is awaiting the
// refusal chain for one target.
type RentPreRequestPayload struct {
	ActingPlayer string `json:"actingPlayer"`
	TargetPlayer string `json:"targetPlayer"`
	Amount       int    `json:"amount"`
}

// RentRequestPayload announces the holder currently responsible for a
// refusal_choice.
type RentRequestPayload struct {
	Holder       string `json:"holder"`
	ActingPlayer string `json:"actingPlayer"`
	TargetPlayer string `json:"targetPlayer"`
}

// RentPaidPayload announces settlement of a rent payment.
type RentPaidPayload struct {
	Payer     string     `json:"payer"`
	Recipient string     `json:"recipient"`
	Cards     []CardView `json:"cards"`
}

// PropertyStolenPayload announces a SlyDeal transfer.
type PropertyStolenPayload struct {
	ActingPlayer string   `json:"actingPlayer"`
	TargetPlayer string   `json:"targetPlayer"`
	Card         CardView `json:"card"`
}

// PropertySwapPayload announces a ForcedDeal transfer.
type PropertySwapPayload struct {
	ActingPlayer   string   `json:"actingPlayer"`
	TargetPlayer   string   `json:"targetPlayer"`
	ToActing       CardView `json:"toActing"`
	ToTarget       CardView `json:"toTarget"`
}

// DealBreakerOverlayPayload announces a DealBreaker transfer.
type DealBreakerOverlayPayload struct {
	ActingPlayer string     `json:"actingPlayer"`
	TargetPlayer string     `json:"targetPlayer"`
	Color        card.Color `json:"color"`
	Cards        []CardView `json:"cards"`
}

// RefusalChoicePayload announces that a player must decide whether to play
// Just Say No.
type RefusalChoicePayload struct {
	Holder       string `json:"holder"`
	ActingPlayer string `json:"actingPlayer"`
	Target       string `json:"target"`
}

// RefusalResponsePayload announces a refusal chain decision was recorded.
type RefusalResponsePayload struct {
	PlayerID string `json:"playerId"`
	Refused  bool   `json:"refused"`
}

// PlayerDisconnectedPayload announces a mid-game disconnect.
type PlayerDisconnectedPayload struct {
	PlayerID string `json:"playerId"`
}
