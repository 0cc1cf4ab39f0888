// Package player holds per-player state: hand, bank, and property sets, and
// the set-completeness upkeep that migrates surplus House/Hotel cards to
// the bank whenever a color's complete-set count drops.
package player

import (
	"fmt"
	"sync"

	"monopolydeal-server/internal/card"
)

// Player is one seat at the table. All mutating operations take an
// internal lock; callers never need to synchronize externally even though
// the room model guarantees single-writer access per room.
type Player struct {
	ID          string
	DisplayName string

	mu         sync.RWMutex
	hand       []*card.Card
	bank       []*card.Card
	properties map[card.Color][]*card.Card
}

// New constructs an empty player.
func New(id, displayName string) *Player {
	return &Player{
		ID:          id,
		DisplayName: displayName,
		properties:  make(map[card.Color][]*card.Card),
	}
}

// Hand returns a snapshot copy of the player's hand.
func (p *Player) Hand() []*card.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*card.Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// Bank returns a snapshot copy of the player's bank.
func (p *Player) Bank() []*card.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*card.Card, len(p.bank))
	copy(out, p.bank)
	return out
}

// Properties returns a snapshot copy of the property map.
func (p *Player) Properties() map[card.Color][]*card.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[card.Color][]*card.Card, len(p.properties))
	for color, list := range p.properties {
		cp := make([]*card.Card, len(list))
		copy(cp, list)
		out[color] = cp
	}
	return out
}

// drawer is the subset of *deck.Deck that player needs; kept as an
// interface so this package doesn't import deck (deck doesn't need to
// import player either, but this keeps the dependency direction explicit
// and testable with a fake).
type drawer interface {
	Draw(n int) []*card.Card
}

// Draw transfers up to n cards from the deck to the hand and returns how
// many were actually drawn.
func (p *Player) Draw(d drawer, n int) int {
	cards := d.Draw(n)
	if len(cards) == 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hand = append(p.hand, cards...)
	return len(cards)
}

// AddToHand appends cards directly to the hand (used when dealing the
// opening hand and by actions that return cards to a player's hand).
func (p *Player) AddToHand(cards ...*card.Card) {
	if len(cards) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hand = append(p.hand, cards...)
}

// RemoveFromHand removes and returns the card with the given id from hand.
func (p *Player) RemoveFromHand(cardID int) (*card.Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.hand {
		if c.ID == cardID {
			p.hand = append(p.hand[:i:i], p.hand[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("card %d not in hand", cardID)
}

// AddToBank appends cards to the bank.
func (p *Player) AddToBank(cards ...*card.Card) {
	if len(cards) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bank = append(p.bank, cards...)
}

// RemoveFromBank removes and returns the card with the given id from bank.
func (p *Player) RemoveFromBank(cardID int) (*card.Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.bank {
		if c.ID == cardID {
			p.bank = append(p.bank[:i:i], p.bank[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("card %d not in bank", cardID)
}

// PlaceToBank moves a card from hand to bank. Precondition: card is
// currently in hand and is not a Property card.
func (p *Player) PlaceToBank(cardID int) error {
	c, err := p.RemoveFromHand(cardID)
	if err != nil {
		return err
	}
	if c.IsProperty() {
		p.AddToHand(c)
		return fmt.Errorf("property card %d cannot be placed to bank", cardID)
	}
	p.AddToBank(c)
	return nil
}

// PlaceToProperties moves a Property card from hand to properties[chosenColor].
// For non-wilds, chosenColor must equal the card's sole legal color; for
// wilds it must be one of the legal colors, and becomes the card's
// CurrentColor.
func (p *Player) PlaceToProperties(cardID int, chosenColor card.Color) error {
	c, err := p.RemoveFromHand(cardID)
	if err != nil {
		return err
	}
	if !c.IsProperty() {
		p.AddToHand(c)
		return fmt.Errorf("card %d is not a property card", cardID)
	}
	if !legalColor(c, chosenColor) {
		p.AddToHand(c)
		return fmt.Errorf("color %s is not legal for card %d", chosenColor, cardID)
	}
	c.CurrentColor = chosenColor

	p.mu.Lock()
	p.properties[chosenColor] = append(p.properties[chosenColor], c)
	p.upkeepLocked(chosenColor)
	p.mu.Unlock()
	return nil
}

// ReassignWild changes the current color of a wild property card already
// on the table, subject to the same set-upkeep invariants on both the old
// and new color.
func (p *Player) ReassignWild(cardID int, newColor card.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	oldColor, c, found := p.findPropertyLocked(cardID)
	if !found {
		return fmt.Errorf("property card %d not found", cardID)
	}
	if !c.IsWild {
		return fmt.Errorf("card %d is not a wild property", cardID)
	}
	if !legalColor(c, newColor) {
		return fmt.Errorf("color %s is not legal for card %d", newColor, cardID)
	}

	list := p.properties[oldColor]
	for i, lc := range list {
		if lc.ID == cardID {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(p.properties, oldColor)
	} else {
		p.properties[oldColor] = list
	}
	p.upkeepLocked(oldColor)

	c.CurrentColor = newColor
	p.properties[newColor] = append(p.properties[newColor], c)
	p.upkeepLocked(newColor)
	return nil
}

func legalColor(c *card.Card, color card.Color) bool {
	for _, lc := range c.LegalColors {
		if lc == color {
			return true
		}
	}
	return false
}

// FindProperty locates a card anywhere in the property map by id.
func (p *Player) FindProperty(cardID int) (c *card.Card, color card.Color, found bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	color, c, found = p.findPropertyLocked(cardID)
	return c, color, found
}

func (p *Player) findPropertyLocked(cardID int) (card.Color, *card.Card, bool) {
	for color, list := range p.properties {
		for _, c := range list {
			if c.ID == cardID {
				return color, c, true
			}
		}
	}
	return "", nil, false
}

// IsSetComplete reports whether the color currently has at least one
// complete set.
func (p *Player) IsSetComplete(color card.Color) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.completeSetCountLocked(color) > 0
}

func (p *Player) completeSetCountLocked(color card.Color) int {
	size := card.FullSetSize[color]
	if size == 0 {
		return 0
	}
	propCount := 0
	for _, c := range p.properties[color] {
		if c.IsProperty() {
			propCount++
		}
	}
	return propCount / size
}

// RemovePropertyCard removes a single, non-house/hotel property card from a
// color's set. Precondition (enforced by the caller, per action
// semantics): the color is not currently a complete set.
func (p *Player) RemovePropertyCard(color card.Color, cardID int) (*card.Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := p.properties[color]
	for i, c := range list {
		if c.ID == cardID && c.IsProperty() {
			taken := c
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(p.properties, color)
			} else {
				p.properties[color] = list
			}
			p.upkeepLocked(color)
			return taken, nil
		}
	}
	return nil, fmt.Errorf("property card %d not found at %s", cardID, color)
}

// AddCardsToSet appends cards (property or attached House/Hotel) to a
// color's set and runs upkeep.
func (p *Player) AddCardsToSet(color card.Color, cards []*card.Card) {
	if len(cards) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.properties[color] = append(p.properties[color], cards...)
	p.upkeepLocked(color)
}

// RemoveEntireSet removes and returns every card (property plus any
// attached House/Hotel) at a color, clearing the set.
func (p *Player) RemoveEntireSet(color card.Color) []*card.Card {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := p.properties[color]
	delete(p.properties, color)
	return list
}

// SelectAndRemoveFromSet is used when DealBreaker targets a set holding
// more than full_set_size property cards: the acting player names exactly
// the property ids to take. Any House/Hotel attached to the color follow
// the set as a whole regardless of which property ids were selected.
// Unselected property cards remain with this player.
func (p *Player) SelectAndRemoveFromSet(color card.Color, selectedIDs []int) ([]*card.Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.properties[color]
	wanted := make(map[int]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}

	var taken, remaining []*card.Card
	for _, c := range list {
		switch {
		case c.Kind == card.KindAction && (c.Action == card.ActionHouse || c.Action == card.ActionHotel):
			taken = append(taken, c)
		case wanted[c.ID]:
			taken = append(taken, c)
			delete(wanted, c.ID)
		default:
			remaining = append(remaining, c)
		}
	}
	if len(wanted) > 0 {
		return nil, fmt.Errorf("selected card not found in set %s", color)
	}

	if len(remaining) == 0 {
		delete(p.properties, color)
	} else {
		p.properties[color] = remaining
	}
	p.upkeepLocked(color)
	return taken, nil
}

// AttachHouseOrHotel places a House or Hotel card onto a complete set.
func (p *Player) AttachHouseOrHotel(c *card.Card, color card.Color) error {
	if c.Action != card.ActionHouse && c.Action != card.ActionHotel {
		return fmt.Errorf("card %d is not a house or hotel", c.ID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.completeSetCountLocked(color) == 0 {
		return fmt.Errorf("%s is not a complete set", color)
	}
	hasHouse, hasHotel := false, false
	for _, existing := range p.properties[color] {
		if existing.Kind == card.KindAction && existing.Action == card.ActionHouse {
			hasHouse = true
		}
		if existing.Kind == card.KindAction && existing.Action == card.ActionHotel {
			hasHotel = true
		}
	}
	if c.Action == card.ActionHouse && hasHouse {
		return fmt.Errorf("%s already has a house", color)
	}
	if c.Action == card.ActionHotel && (hasHotel || !hasHouse) {
		return fmt.Errorf("%s cannot take a hotel yet", color)
	}

	p.properties[color] = append(p.properties[color], c)
	return nil
}

// RemoveForPayment removes a card by id from the bank or from any property
// set (wherever it's found), for use settling a rent payment. fromColor is
// empty when the card came from the bank.
func (p *Player) RemoveForPayment(cardID int) (c *card.Card, fromColor card.Color, found bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, bc := range p.bank {
		if bc.ID == cardID {
			p.bank = append(p.bank[:i:i], p.bank[i+1:]...)
			return bc, "", true
		}
	}
	for color, list := range p.properties {
		for i, pc := range list {
			if pc.ID == cardID {
				list = append(list[:i:i], list[i+1:]...)
				if len(list) == 0 {
					delete(p.properties, color)
				} else {
					p.properties[color] = list
				}
				p.upkeepLocked(color)
				return pc, color, true
			}
		}
	}
	return nil, "", false
}

// AvailablePaymentCards returns every card the player could nominate to
// settle a rent payment: the entire bank plus every card currently in a
// property set (property cards and attached House/Hotel alike).
func (p *Player) AvailablePaymentCards() []*card.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*card.Card, 0, len(p.bank))
	out = append(out, p.bank...)
	for _, list := range p.properties {
		out = append(out, list...)
	}
	return out
}

// CountFullSets sums, over colors, the number of complete sets.
func (p *Player) CountFullSets() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for color := range p.properties {
		total += p.completeSetCountLocked(color)
	}
	return total
}

// HasWon reports whether the player holds at least three complete sets.
func (p *Player) HasWon() bool {
	return p.CountFullSets() >= 3
}

// upkeepLocked recomputes the complete-set count for a color and migrates
// any House/Hotel cards beyond that count to the bank. Caller must hold mu.
func (p *Player) upkeepLocked(color card.Color) {
	list := p.properties[color]
	if len(list) == 0 {
		delete(p.properties, color)
		return
	}

	completeSets := p.completeSetCountLocked(color)

	houseIdx := -1
	hotelIdx := -1
	for i, c := range list {
		if c.Kind != card.KindAction {
			continue
		}
		switch c.Action {
		case card.ActionHouse:
			houseIdx = i
		case card.ActionHotel:
			hotelIdx = i
		}
	}

	houseCount := 0
	if houseIdx >= 0 {
		houseCount = 1
	}
	hotelCount := 0
	if hotelIdx >= 0 {
		hotelCount = 1
	}
	if completeSets >= houseCount && completeSets >= hotelCount {
		return
	}

	var migrate []*card.Card
	var kept []*card.Card
	for i, c := range list {
		if completeSets == 0 && i == houseIdx {
			migrate = append(migrate, c)
			continue
		}
		if completeSets == 0 && i == hotelIdx {
			migrate = append(migrate, c)
			continue
		}
		kept = append(kept, c)
	}
	p.properties[color] = kept
	p.bank = append(p.bank, migrate...)
}
