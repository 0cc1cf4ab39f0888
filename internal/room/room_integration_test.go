package room_test

import (
	"context"
	"testing"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/directory"
	"monopolydeal-server/internal/engine"
	"monopolydeal-server/internal/events"
	"monopolydeal-server/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullTableLifecycle walks a room through admission, game start, a
// rent play with a declined refusal, and settlement, mirroring the
// end-to-end flow a live client would drive.
func TestFullTableLifecycle(t *testing.T) {
	s := room.NewService(directory.NewRepository(), events.NewEventBus("", nil))
	ctx := context.Background()

	record, err := s.CreateRoom(ctx, 4)
	require.NoError(t, err)

	require.NoError(t, s.Join(ctx, record.RoomCode, "p1", "Alice"))
	require.NoError(t, s.Join(ctx, record.RoomCode, "p2", "Bob"))
	require.NoError(t, s.SetReady(ctx, record.RoomCode, "p1", true))

	r, ok := s.GetRoom(record.RoomCode)
	require.True(t, ok)
	assert.False(t, r.IsStarted())

	require.NoError(t, s.StartGame(ctx, record.RoomCode, "p1", 11))
	assert.True(t, r.IsStarted())

	g := r.Game()
	require.NotNil(t, g)

	current := g.CurrentPlayer().ID
	opponent := g.Opponents(current)[0]

	p := g.PlayerByID(current)
	p.AddToHand(&card.Card{ID: 5001, Kind: card.KindProperty, LegalColors: []card.Color{card.Brown}, CurrentColor: card.Brown})
	require.NoError(t, p.PlaceToProperties(5001, card.Brown))
	p.AddToHand(&card.Card{ID: 5002, Kind: card.KindRent, RentColors: []card.Color{card.Brown}})

	err = s.Dispatch(record.RoomCode, "rent", dto.RentRequest{Player: current, Card: 5002})
	require.NoError(t, err)
	assert.Equal(t, engine.StatePendingRefusal, g.State())

	refusal, ok := g.RefusalState()
	require.True(t, ok)
	assert.Equal(t, opponent, refusal.Holder)

	err = s.Dispatch(record.RoomCode, "refusal_choice", dto.RefusalChoiceRequest{PlayerID: opponent, Refuse: false})
	require.NoError(t, err)
	assert.Equal(t, engine.StatePendingRent, g.State())

	v := 1
	g.PlayerByID(opponent).AddToBank(&card.Card{ID: 5003, Kind: card.KindMoney, Value: &v})
	err = s.Dispatch(record.RoomCode, "rent_payment", dto.RentPaymentRequest{Player: opponent, SelectedCards: []int{5003}})
	require.NoError(t, err)

	assert.Equal(t, engine.StateActions, g.State())
	assert.Len(t, g.PlayerByID(current).Bank(), 1)
}
