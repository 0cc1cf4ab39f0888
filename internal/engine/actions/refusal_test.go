package actions_test

import (
	"testing"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
	"monopolydeal-server/internal/engine/actions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRentChain(t *testing.T, g *engine.Game) (current, target string) {
	t.Helper()
	current = g.CurrentPlayer().ID
	target = g.Opponents(current)[0]
	addProperty(g, current, 6001, card.Brown)
	g.PlayerByID(current).AddToHand(&card.Card{ID: 6002, Kind: card.KindRent, RentColors: []card.Color{card.Brown}})
	require.NoError(t, actions.Rent(g, dto.RentRequest{Player: current, Card: 6002}))
	return
}

func TestRefusalChoice_DeclineResolvesToPendingRent(t *testing.T) {
	g := newTestGame(t)
	_, target := startRentChain(t, g)

	err := actions.RefusalChoice(g, dto.RefusalChoiceRequest{PlayerID: target, Refuse: false})
	require.NoError(t, err)
	assert.Equal(t, engine.StatePendingRent, g.State())
}

func TestRefusalChoice_RefuseRequiresJustSayNoCard(t *testing.T) {
	g := newTestGame(t)
	_, target := startRentChain(t, g)

	err := actions.RefusalChoice(g, dto.RefusalChoiceRequest{PlayerID: target, Refuse: true, Card: 9999})
	assert.Error(t, err)
}

func TestRefusalChoice_RefuseTwiceAppliesEffect(t *testing.T) {
	g := newTestGame(t)
	current, target := startRentChain(t, g)

	g.PlayerByID(target).AddToHand(&card.Card{ID: 6003, Kind: card.KindAction, Action: card.ActionJustSayNo})
	require.NoError(t, actions.RefusalChoice(g, dto.RefusalChoiceRequest{PlayerID: target, Refuse: true, Card: 6003}))

	g.PlayerByID(current).AddToHand(&card.Card{ID: 6004, Kind: card.KindAction, Action: card.ActionJustSayNo})
	require.NoError(t, actions.RefusalChoice(g, dto.RefusalChoiceRequest{PlayerID: current, Refuse: true, Card: 6004}))

	// the decision is back with the target; declining ends the chain with an
	// even refusal count, so the rent applies
	require.NoError(t, actions.RefusalChoice(g, dto.RefusalChoiceRequest{PlayerID: target, Refuse: false}))

	assert.Equal(t, engine.StatePendingRent, g.State())
}
