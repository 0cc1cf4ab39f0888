package engine_test

import (
	"testing"

	"monopolydeal-server/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *engine.Game {
	t.Helper()
	ids := []string{"p1", "p2", "p3"}
	names := map[string]string{"p1": "Alice", "p2": "Bob", "p3": "Carol"}
	g := engine.New(42, ids, names)
	require.NoError(t, g.Start())
	return g
}

func TestStart_DealsFiveCardsAndEntersActions(t *testing.T) {
	g := newGame(t)
	current := g.CurrentPlayer().ID
	for _, p := range g.Players() {
		if p.ID == current {
			// the first player also draws 2 at the start of their turn
			assert.Len(t, p.Hand(), 7)
		} else {
			assert.Len(t, p.Hand(), 5)
		}
	}
	assert.Equal(t, engine.StateActions, g.State())
	assert.Equal(t, 3, g.ActionsRemaining())
}

func TestStart_Twice_Fails(t *testing.T) {
	g := newGame(t)
	assert.Error(t, g.Start())
}

func TestRequireCurrentPlayer_RejectsWrongPlayer(t *testing.T) {
	g := newGame(t)
	current := g.CurrentPlayer().ID
	for _, p := range g.Players() {
		if p.ID != current {
			assert.Error(t, g.RequireCurrentPlayer(p.ID))
		}
	}
	assert.NoError(t, g.RequireCurrentPlayer(current))
}

func TestCommitAction_ExhaustsBudgetAndAdvancesTurn(t *testing.T) {
	g := newGame(t)
	current := g.CurrentPlayer().ID

	require.NoError(t, g.CommitAction(current))
	assert.Equal(t, 2, g.ActionsRemaining())
	require.NoError(t, g.CommitAction(current))
	assert.Equal(t, 1, g.ActionsRemaining())
	require.NoError(t, g.CommitAction(current))

	assert.NotEqual(t, current, g.CurrentPlayer().ID)
	assert.Equal(t, 3, g.ActionsRemaining())
}

func TestSkipTurn_ZeroesBudgetAndAdvances(t *testing.T) {
	g := newGame(t)
	current := g.CurrentPlayer().ID
	require.NoError(t, g.SkipTurn(current))
	assert.NotEqual(t, current, g.CurrentPlayer().ID)
	assert.Equal(t, 3, g.ActionsRemaining())
}

func TestOpponents_ExcludesActingPlayerAndPreservesOrder(t *testing.T) {
	g := newGame(t)
	ids := make([]string, 0, 3)
	for _, p := range g.Players() {
		ids = append(ids, p.ID)
	}
	opponents := g.Opponents(ids[0])
	assert.Len(t, opponents, 2)
	assert.NotContains(t, opponents, ids[0])
	assert.Equal(t, []string{ids[1], ids[2]}, opponents)
}

func TestMarkRentPlayed_ReflectsInRentPlayedThisTurn(t *testing.T) {
	g := newGame(t)
	assert.False(t, g.RentPlayedThisTurn())
	g.MarkRentPlayed()
	assert.True(t, g.RentPlayedThisTurn())
}

func TestDeckCount_DecreasesAfterDealingOpeningHands(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, 108-15-2, g.DeckCount())
}
