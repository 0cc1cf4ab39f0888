package room_test

import (
	"testing"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/engine"
	"monopolydeal-server/internal/engine/actions"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedRoom(t *testing.T) (*room.Room, *engine.Game) {
	t.Helper()
	r := room.New("ROOM01", 4)
	require.NoError(t, r.AddMember("p1", "Alice"))
	require.NoError(t, r.AddMember("p2", "Bob"))
	g, err := r.Start(7)
	require.NoError(t, err)
	return r, g
}

func TestBuildGameUpdate_FirstBroadcastIsFullStateWithOwnerOnlyHand(t *testing.T) {
	r, g := startedRoom(t)

	selfView := r.BuildGameUpdate(g).RenderForPlayer("p1")
	assert.True(t, selfView.IsFullState)
	require.NotNil(t, selfView.DeckCount)
	assert.Equal(t, g.DeckCount(), *selfView.DeckCount)
	require.NotNil(t, selfView.ActionsRemaining)
	assert.Equal(t, 3, *selfView.ActionsRemaining)
	assert.Nil(t, selfView.Winner)

	require.Contains(t, selfView.Players, "p1")
	assert.NotEmpty(t, selfView.Players["p1"].Hand)
	assert.Equal(t, 7, selfView.Players["p1"].HandCount, "p1 moves first and has drawn 2 on top of the 5 dealt")

	require.Contains(t, selfView.Players, "p2")
	assert.Empty(t, selfView.Players["p2"].Hand, "other players' hand contents must not leak")
	assert.Equal(t, 5, selfView.Players["p2"].HandCount, "hand count is visible to everyone")
}

func TestBuildGameUpdate_SecondBroadcastOmitsUnchangedFields(t *testing.T) {
	r, g := startedRoom(t)
	r.BuildGameUpdate(g) // first broadcast establishes the baseline

	update := r.BuildGameUpdate(g) // nothing changed in between
	view := update.RenderForPlayer("p1")

	assert.False(t, view.IsFullState)
	assert.Nil(t, view.DeckCount)
	assert.Nil(t, view.CurrentTurn)
	assert.Nil(t, view.ActionsRemaining)
	assert.Nil(t, view.DiscardPile)
	assert.Empty(t, view.Players)
}

func TestBuildGameUpdate_OnlyChangedPlayerAppearsAfterAction(t *testing.T) {
	r, g := startedRoom(t)
	r.BuildGameUpdate(g)

	current := g.CurrentPlayer().ID
	p := g.PlayerByID(current)
	p.AddToHand(&card.Card{ID: 9001, Kind: card.KindMoney, Value: intPtr(1)})
	require.NoError(t, actions.ToBank(g, dto.ToBankRequest{Player: current, Card: 9001}))

	update := r.BuildGameUpdate(g)
	view := update.RenderForPlayer(current)

	assert.False(t, view.IsFullState)
	require.NotNil(t, view.ActionsRemaining)
	assert.Equal(t, 2, *view.ActionsRemaining)
	require.Contains(t, view.Players, current)
	assert.NotContains(t, view.Players, g.Opponents(current)[0], "unaffected opponent should be omitted from the diff")
}

func intPtr(v int) *int { return &v }
