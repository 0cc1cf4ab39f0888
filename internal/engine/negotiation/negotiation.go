// Package negotiation holds the pure rules of the refusal chain and
// payment settlement, independent of the engine's turn/action bookkeeping
// so they can be tested and reasoned about in isolation.
package negotiation

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/player"
)

// Applies reports whether a rent-like effect takes place given the number
// of Just Say No cards played across a resolved refusal chain: the effect
// applies iff the count is even (zero plays, or every play was answered
// by a counter-play).
func Applies(justSayNoCount int) bool {
	return justSayNoCount%2 == 0
}

// SettlePayment moves the cards the payer nominated from wherever they
// currently sit (bank or a property set) to the recipient. It validates
// feasibility before mutating anything, so a rejected request leaves both
// players untouched.
//
// Overpayment is not refunded: if the nominated cards sum to more than
// amount, the recipient simply keeps the excess. A payer whose total
// available value is less than amount may nominate everything they own
// instead of exactly amount's worth; SettlePayment accepts a nomination
// that falls short of amount only when it exhausts every card the payer
// holds.
func SettlePayment(payer, recipient *player.Player, selectedCardIDs []int, amount int) error {
	available := payer.AvailablePaymentCards()
	availableByID := make(map[int]*card.Card, len(available))
	for _, c := range available {
		availableByID[c.ID] = c
	}

	seen := make(map[int]bool, len(selectedCardIDs))
	total := 0
	for _, id := range selectedCardIDs {
		if seen[id] {
			return fmt.Errorf("card %d nominated twice", id)
		}
		seen[id] = true
		c, ok := availableByID[id]
		if !ok {
			return fmt.Errorf("card %d is not available to %s", id, payer.ID)
		}
		total += c.ValueOrZero()
	}

	if total < amount && len(selectedCardIDs) < len(available) {
		return fmt.Errorf("payment of %d falls short of %d and does not use everything %s has", total, amount, payer.ID)
	}

	for _, id := range selectedCardIDs {
		c, fromColor, found := payer.RemoveForPayment(id)
		if !found {
			// Shouldn't happen: validated above under the same lock-free
			// single-writer assumption. Treat as an invariant violation.
			return fmt.Errorf("card %d vanished from %s mid-settlement", id, payer.ID)
		}
		transfer(c, fromColor, recipient)
	}
	return nil
}

func transfer(c *card.Card, fromColor card.Color, recipient *player.Player) {
	switch {
	case c.Kind == card.KindAction && (c.Action == card.ActionHouse || c.Action == card.ActionHotel):
		recipient.AddToBank(c)
	case fromColor != "":
		recipient.AddCardsToSet(fromColor, []*card.Card{c})
	default:
		recipient.AddToBank(c)
	}
}
