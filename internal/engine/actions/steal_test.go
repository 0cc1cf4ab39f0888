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

func TestSlyDeal_RejectsCompleteSet(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7001, card.Brown)
	addProperty(g, target, 7002, card.Brown) // completes Brown (full set size 2)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7003, Kind: card.KindAction, Action: card.ActionSlyDeal})
	err := actions.SlyDeal(g, dto.SlyDealRequest{Player: current, Card: 7003, TargetProperty: 7001})
	assert.Error(t, err)
}

func TestSlyDeal_StartsRefusalChainAgainstOwner(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7004, card.Green) // Green needs 3, incomplete with 1

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7005, Kind: card.KindAction, Action: card.ActionSlyDeal})
	err := actions.SlyDeal(g, dto.SlyDealRequest{Player: current, Card: 7005, TargetProperty: 7004})
	require.NoError(t, err)

	refusal, ok := g.RefusalState()
	require.True(t, ok)
	assert.Equal(t, target, refusal.Target)
	assert.Equal(t, engine.EffectSlyDeal, refusal.Effect.Kind)
}

func TestSlyDeal_ResolvedTransfersProperty(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7006, card.Green)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7007, Kind: card.KindAction, Action: card.ActionSlyDeal})
	require.NoError(t, actions.SlyDeal(g, dto.SlyDealRequest{Player: current, Card: 7007, TargetProperty: 7006}))

	refusal, ok := g.RefusalState()
	require.True(t, ok)
	require.NoError(t, g.ResolveRefusal(refusal.Holder, false))

	assert.Empty(t, g.PlayerByID(target).Properties()[card.Green])
	assert.Len(t, g.PlayerByID(current).Properties()[card.Green], 1)
}

func TestForcedDeal_RequiresOwnPropertyExists(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7008, card.Green)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7009, Kind: card.KindAction, Action: card.ActionForcedDeal})
	err := actions.ForcedDeal(g, dto.ForcedDealRequest{Player: current, Card: 7009, TargetProperty: 7008, UserProperty: 9999})
	assert.Error(t, err)
}

func TestForcedDeal_SwapsBothProperties(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, current, 7010, card.Pink)
	addProperty(g, target, 7011, card.Green)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7012, Kind: card.KindAction, Action: card.ActionForcedDeal})
	require.NoError(t, actions.ForcedDeal(g, dto.ForcedDealRequest{Player: current, Card: 7012, TargetProperty: 7011, UserProperty: 7010}))

	refusal, ok := g.RefusalState()
	require.True(t, ok)
	require.NoError(t, g.ResolveRefusal(refusal.Holder, false))

	assert.Len(t, g.PlayerByID(current).Properties()[card.Green], 1)
	assert.Len(t, g.PlayerByID(target).Properties()[card.Pink], 1)
	assert.Empty(t, g.PlayerByID(current).Properties()[card.Pink])
	assert.Empty(t, g.PlayerByID(target).Properties()[card.Green])
}

func TestDealBreaker_RequiresCompleteTargetSet(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7013, card.Green) // incomplete (needs 3)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7014, Kind: card.KindAction, Action: card.ActionDealBreaker})
	err := actions.DealBreaker(g, dto.DealBreakerRequest{Player: current, Card: 7014, TargetPlayer: target, TargetColor: card.Green})
	assert.Error(t, err)
}

func TestDealBreaker_TakesEntireCompleteSet(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID
	target := g.Opponents(current)[0]
	addProperty(g, target, 7015, card.Brown)
	addProperty(g, target, 7016, card.Brown)

	g.PlayerByID(current).AddToHand(&card.Card{ID: 7017, Kind: card.KindAction, Action: card.ActionDealBreaker})
	require.NoError(t, actions.DealBreaker(g, dto.DealBreakerRequest{Player: current, Card: 7017, TargetPlayer: target, TargetColor: card.Brown}))

	refusal, ok := g.RefusalState()
	require.True(t, ok)
	require.NoError(t, g.ResolveRefusal(refusal.Holder, false))

	assert.Empty(t, g.PlayerByID(target).Properties()[card.Brown])
	assert.Len(t, g.PlayerByID(current).Properties()[card.Brown], 2)
}
