// Package deck implements the Monopoly Deal draw/discard piles: a shuffled
// LIFO draw pile that refills from the discard pile when exhausted.
package deck

import (
	"math/rand"
	"sync"
	"time"

	"monopolydeal-server/internal/card"
)

// Deck owns the draw pile and discard pile for one game. A Deck is created
// once per game and its cards are never copied, only moved.
type Deck struct {
	mu      sync.Mutex
	draw    []*card.Card // tail is the top of the pile
	discard []*card.Card
	rng     *rand.Rand
}

// New constructs a freshly shuffled deck from the canonical card
// composition. seed is an explicit input so tests can reproduce a draw
// order deterministically; callers that don't care may pass
// time.Now().UnixNano().
func New(seed int64) *Deck {
	templates := card.Templates()
	cards := make([]*card.Card, len(templates))
	for i := range templates {
		c := templates[i]
		c.ID = i + 1
		cards[i] = &c
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	return &Deck{draw: cards, rng: rng}
}

// NewWithTimeSeed is a convenience constructor for non-test callers.
func NewWithTimeSeed() *Deck {
	return New(time.Now().UnixNano())
}

// Size returns the number of cards remaining in the draw pile.
func (d *Deck) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.draw)
}

// DiscardSize returns the number of cards in the discard pile.
func (d *Deck) DiscardSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.discard)
}

// Draw removes up to n cards from the top of the draw pile, refilling from
// the discard pile (reshuffled) if the draw pile empties mid-draw. It
// returns fewer than n cards if the deck and discard together don't have
// enough, including zero if both are empty — this is not an error.
func (d *Deck) Draw(n int) []*card.Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*card.Card, 0, n)
	for len(out) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			d.refillLocked()
			if len(d.draw) == 0 {
				break
			}
		}
		top := len(d.draw) - 1
		out = append(out, d.draw[top])
		d.draw = d.draw[:top]
	}
	return out
}

// refillLocked reshuffles the discard pile into the draw pile. Caller must
// hold mu.
func (d *Deck) refillLocked() {
	d.draw = d.discard
	d.discard = nil
	d.rng.Shuffle(len(d.draw), func(i, j int) { d.draw[i], d.draw[j] = d.draw[j], d.draw[i] })
}

// Discard appends cards to the discard pile.
func (d *Deck) Discard(cards ...*card.Card) {
	if len(cards) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discard = append(d.discard, cards...)
}

// DiscardPile returns a snapshot copy of the discard pile, top-of-pile last.
func (d *Deck) DiscardPile() []*card.Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*card.Card, len(d.discard))
	copy(out, d.discard)
	return out
}
