package negotiation_test

import (
	"testing"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/engine/negotiation"
	"monopolydeal-server/internal/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplies_EvenCountApplies(t *testing.T) {
	assert.True(t, negotiation.Applies(0))
	assert.True(t, negotiation.Applies(2))
	assert.False(t, negotiation.Applies(1))
	assert.False(t, negotiation.Applies(3))
}

func moneyCard(id, value int) *card.Card {
	v := value
	return &card.Card{ID: id, Kind: card.KindMoney, Value: &v}
}

func propertyCard(id int, color card.Color, value int) *card.Card {
	v := value
	return &card.Card{ID: id, Kind: card.KindProperty, LegalColors: []card.Color{color}, CurrentColor: color, Value: &v}
}

func TestSettlePayment_ExactAmountFromBank(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToBank(moneyCard(1, 3), moneyCard(2, 2))

	err := negotiation.SettlePayment(payer, recipient, []int{1, 2}, 5)
	require.NoError(t, err)
	assert.Empty(t, payer.Bank())
	assert.Len(t, recipient.Bank(), 2)
}

func TestSettlePayment_OverpaymentNotRefunded(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToBank(moneyCard(1, 10))

	err := negotiation.SettlePayment(payer, recipient, []int{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, payer.Bank())
	assert.Len(t, recipient.Bank(), 1)
}

func TestSettlePayment_InsufficientFundsAcceptsEverything(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToBank(moneyCard(1, 1))

	err := negotiation.SettlePayment(payer, recipient, []int{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, payer.Bank())
	assert.Len(t, recipient.Bank(), 1)
}

func TestSettlePayment_PartialNominationBelowAmountRejected(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToBank(moneyCard(1, 1), moneyCard(2, 1))

	err := negotiation.SettlePayment(payer, recipient, []int{1}, 5)
	assert.Error(t, err)
	assert.Len(t, payer.Bank(), 2, "rejected settlement must not mutate either player")
}

func TestSettlePayment_PropertyCardTransfersIntoRecipientSet(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToHand(propertyCard(1, card.Blue, 4))
	require.NoError(t, payer.PlaceToProperties(1, card.Blue))

	err := negotiation.SettlePayment(payer, recipient, []int{1}, 4)
	require.NoError(t, err)
	assert.Empty(t, payer.Properties()[card.Blue])
	assert.Len(t, recipient.Properties()[card.Blue], 1)
}

func TestSettlePayment_DuplicateNominationRejected(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")
	payer.AddToBank(moneyCard(1, 5))

	err := negotiation.SettlePayment(payer, recipient, []int{1, 1}, 5)
	assert.Error(t, err)
}

func TestSettlePayment_UnknownCardRejected(t *testing.T) {
	payer := player.New("payer", "Payer")
	recipient := player.New("recipient", "Recipient")

	err := negotiation.SettlePayment(payer, recipient, []int{99}, 5)
	assert.Error(t, err)
}
