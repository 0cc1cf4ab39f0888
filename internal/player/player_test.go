package player_test

import (
	"testing"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyCard(id int, color card.Color) *card.Card {
	return &card.Card{ID: id, Kind: card.KindProperty, LegalColors: []card.Color{color}, CurrentColor: color}
}

func houseCard(id int) *card.Card {
	v := 3
	return &card.Card{ID: id, Kind: card.KindAction, Action: card.ActionHouse, Value: &v}
}

func TestPlaceToProperties_RejectsIllegalColor(t *testing.T) {
	p := player.New("p1", "Alice")
	wild := &card.Card{ID: 1, Kind: card.KindProperty, IsWild: true, LegalColors: []card.Color{card.Blue, card.Green}}
	p.AddToHand(wild)

	err := p.PlaceToProperties(1, card.Red)
	assert.Error(t, err)

	err = p.PlaceToProperties(1, card.Blue)
	require.NoError(t, err)
	assert.Equal(t, card.Blue, wild.CurrentColor)
}

func TestCountFullSets_BrownNeedsTwo(t *testing.T) {
	p := player.New("p1", "Alice")
	p.AddToHand(propertyCard(1, card.Brown))
	require.NoError(t, p.PlaceToProperties(1, card.Brown))
	assert.Equal(t, 0, p.CountFullSets())

	p.AddToHand(propertyCard(2, card.Brown))
	require.NoError(t, p.PlaceToProperties(2, card.Brown))
	assert.Equal(t, 1, p.CountFullSets())
	assert.False(t, p.HasWon())
}

func TestUpkeep_MigratesSurplusHouseWhenSetBreaks(t *testing.T) {
	p := player.New("p1", "Alice")
	p.AddToHand(propertyCard(1, card.Blue))
	p.AddToHand(propertyCard(2, card.Blue))
	require.NoError(t, p.PlaceToProperties(1, card.Blue))
	require.NoError(t, p.PlaceToProperties(2, card.Blue))
	require.NoError(t, p.AttachHouseOrHotel(houseCard(3), card.Blue))

	assert.Empty(t, p.Bank())

	_, err := p.RemovePropertyCard(card.Blue, 2)
	require.NoError(t, err)

	bank := p.Bank()
	require.Len(t, bank, 1)
	assert.Equal(t, 3, bank[0].ID, "house should migrate to bank once the set is no longer complete")
	require.Len(t, p.Properties()[card.Blue], 1, "the remaining blue property stays on the table")
	assert.Equal(t, 1, p.Properties()[card.Blue][0].ID)
}

func TestAttachHouseOrHotel_RequiresCompleteSet(t *testing.T) {
	p := player.New("p1", "Alice")
	p.AddToHand(propertyCard(1, card.Blue))
	require.NoError(t, p.PlaceToProperties(1, card.Blue))

	err := p.AttachHouseOrHotel(houseCard(2), card.Blue)
	assert.Error(t, err)
}

func TestSelectAndRemoveFromSet_HouseFollowsSelectedCards(t *testing.T) {
	p := player.New("p2", "Bob")
	wild := &card.Card{ID: 4, Kind: card.KindProperty, IsWild: true, LegalColors: append([]card.Color{}, card.PropertyColors...)}
	p.AddToHand(propertyCard(1, card.Red))
	p.AddToHand(propertyCard(2, card.Red))
	p.AddToHand(propertyCard(3, card.Red))
	p.AddToHand(wild)
	require.NoError(t, p.PlaceToProperties(1, card.Red))
	require.NoError(t, p.PlaceToProperties(2, card.Red))
	require.NoError(t, p.PlaceToProperties(3, card.Red))
	require.NoError(t, p.PlaceToProperties(4, card.Red))
	require.NoError(t, p.AttachHouseOrHotel(houseCard(5), card.Red))

	taken, err := p.SelectAndRemoveFromSet(card.Red, []int{1, 2, 3})
	require.NoError(t, err)

	ids := make(map[int]bool)
	for _, c := range taken {
		ids[c.ID] = true
	}
	assert.True(t, ids[5], "house must follow the transferred cards")
	assert.Len(t, taken, 4)

	remaining := p.Properties()[card.Red]
	require.Len(t, remaining, 1)
	assert.Equal(t, 4, remaining[0].ID, "unselected wild stays with the original owner")
}

func TestRemoveForPayment_FindsCardInBankOrProperties(t *testing.T) {
	p := player.New("p1", "Alice")
	v := 5
	money := &card.Card{ID: 10, Kind: card.KindMoney, Denomination: 5, Value: &v}
	p.AddToBank(money)

	c, fromColor, found := p.RemoveForPayment(10)
	require.True(t, found)
	assert.Equal(t, "", string(fromColor))
	assert.Equal(t, 10, c.ID)

	_, _, found = p.RemoveForPayment(10)
	assert.False(t, found)
}
