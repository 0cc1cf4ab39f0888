package room

import (
	"reflect"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// roomSnapshot is the canonical, viewer-independent state captured after
// one broadcast, kept around purely so the next broadcast can tell which
// top-level fields actually changed.
type roomSnapshot struct {
	deckCount        int
	turnIndex        int
	actionsRemaining int
	winner           string // "" if no winner yet
	discardPile      []dto.CardView
	players          map[string]playerSnapshot
}

type playerSnapshot struct {
	name       string
	handCount  int
	hand       []dto.CardView
	bank       []dto.CardView
	properties map[card.Color][]dto.CardView
}

func captureSnapshot(g *engine.Game) roomSnapshot {
	winner := ""
	if w := g.Winner(); w != nil {
		winner = w.ID
	}
	players := make(map[string]playerSnapshot, len(g.Players()))
	for _, p := range g.Players() {
		players[p.ID] = playerSnapshot{
			name:       p.DisplayName,
			handCount:  len(p.Hand()),
			hand:       cardViews(p.Hand()),
			bank:       cardViews(p.Bank()),
			properties: propertyViews(p.Properties()),
		}
	}
	return roomSnapshot{
		deckCount:        g.DeckCount(),
		turnIndex:        g.TurnIndex(),
		actionsRemaining: g.ActionsRemaining(),
		winner:           winner,
		discardPile:      cardViews(g.DiscardPile()),
		players:          players,
	}
}

// GameUpdate is a room-wide diff computed once per broadcast. Render it for
// each connected viewer with RenderForPlayer, which layers per-player hand
// visibility on top of the shared diff.
type GameUpdate struct {
	full          bool
	snapshot      roomSnapshot
	playerChanged map[string]bool // player ids whose bank/properties/handCount/hand differ from the prior snapshot
	deckChanged   bool
	turnChanged   bool
	actionsChanged bool
	winnerChanged bool
	discardChanged bool
}

// BuildGameUpdate diffs g's current state against the room's last broadcast
// snapshot, then remembers the new state as the baseline for next time. The
// hub calls this once per state-changing event and renders the result for
// every connection at the table (see RenderForPlayer).
func (r *Room) BuildGameUpdate(g *engine.Game) *GameUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := captureSnapshot(g)
	prev := r.lastSnapshot
	r.lastSnapshot = &next

	if prev == nil {
		changed := make(map[string]bool, len(next.players))
		for id := range next.players {
			changed[id] = true
		}
		return &GameUpdate{full: true, snapshot: next, playerChanged: changed,
			deckChanged: true, turnChanged: true, actionsChanged: true, winnerChanged: true, discardChanged: true}
	}

	changed := make(map[string]bool, len(next.players))
	for id, ps := range next.players {
		old, existed := prev.players[id]
		if !existed || ps.handCount != old.handCount || !reflect.DeepEqual(ps.hand, old.hand) ||
			!reflect.DeepEqual(ps.bank, old.bank) || !reflect.DeepEqual(ps.properties, old.properties) {
			changed[id] = true
		}
	}

	return &GameUpdate{
		full:           false,
		snapshot:       next,
		playerChanged:  changed,
		deckChanged:    next.deckCount != prev.deckCount,
		turnChanged:    next.turnIndex != prev.turnIndex,
		actionsChanged: next.actionsRemaining != prev.actionsRemaining,
		winnerChanged:  next.winner != prev.winner,
		discardChanged: !reflect.DeepEqual(next.discardPile, prev.discardPile),
	}
}

// RenderForPlayer renders one viewer's payload from a precomputed diff:
// unchanged top-level fields and unchanged player entries are omitted
// entirely (is_full_state: false); hand contents are included only for the
// requesting player, and only among the players whose state changed.
func (u *GameUpdate) RenderForPlayer(forPlayerID string) dto.GameUpdatePayload {
	payload := dto.GameUpdatePayload{IsFullState: u.full}

	if u.full || u.deckChanged {
		v := u.snapshot.deckCount
		payload.DeckCount = &v
	}
	if u.full || u.turnChanged {
		v := u.snapshot.turnIndex
		payload.CurrentTurn = &v
	}
	if u.full || u.actionsChanged {
		v := u.snapshot.actionsRemaining
		payload.ActionsRemaining = &v
	}
	if (u.full || u.winnerChanged) && u.snapshot.winner != "" {
		v := u.snapshot.winner
		payload.Winner = &v
	}
	if u.full || u.discardChanged {
		payload.DiscardPile = u.snapshot.discardPile
	}

	if len(u.playerChanged) == 0 {
		return payload
	}
	players := make(map[string]dto.PlayerView, len(u.playerChanged))
	for id := range u.playerChanged {
		ps := u.snapshot.players[id]
		view := dto.PlayerView{
			ID:         id,
			Name:       ps.name,
			HandCount:  ps.handCount,
			Bank:       ps.bank,
			Properties: ps.properties,
		}
		if id == forPlayerID {
			view.Hand = ps.hand
		}
		players[id] = view
	}
	payload.Players = players
	return payload
}

func cardViews(cards []*card.Card) []dto.CardView {
	out := make([]dto.CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, dto.ToCardView(c))
	}
	return out
}

func propertyViews(properties map[card.Color][]*card.Card) map[card.Color][]dto.CardView {
	out := make(map[card.Color][]dto.CardView, len(properties))
	for color, cards := range properties {
		out[color] = cardViews(cards)
	}
	return out
}
