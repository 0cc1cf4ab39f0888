package engine

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/engine/negotiation"
)

// EffectKind tags what a refusal chain is guarding.
type EffectKind string

const (
	EffectRentCollect EffectKind = "rent_collect"
	EffectSlyDeal     EffectKind = "sly_deal"
	EffectForcedDeal  EffectKind = "forced_deal"
	EffectDealBreaker EffectKind = "deal_breaker"
)

// PendingEffect describes what happens if a refusal chain resolves to
// "applies". Handlers build this up-front with every choice already made
// (per the source's re-architecture note: parametrized messages, never
// blocking mid-handler on further player input).
type PendingEffect struct {
	Kind EffectKind

	Amount int // rent-like effects

	TargetPropertyID int        // sly deal, forced deal
	UserPropertyID    int        // forced deal: acting player's own offered property
	TargetColor       card.Color // deal breaker
	SelectedIDs       []int      // deal breaker: property ids to take from an over-full set
}

// Refusal is the active cancel/counter-cancel negotiation: Holder is whose
// decision is next; it alternates between ActingPlayer and Target. Count
// is the number of Just Say No cards played so far in this chain.
type Refusal struct {
	ActingPlayer string
	Target       string
	Holder       string
	Count        int
	Effect       PendingEffect
}

// groupAction tracks the opponents still queued behind the one currently
// negotiating, for multi-target effects (ItsYourBirthday, two-color Rent).
type groupAction struct {
	ActingPlayer string
	Amount       int
	Remaining    []string
}

// BeginEffect starts the refusal sub-chain for the first of one or more
// targets. Additional targets are queued and each gets its own refusal
// chain in turn, as earlier ones resolve. actionCost is how many action
// slots the whole play consumes once every target has been settled (2 for
// a Rent doubled by DoubleTheRent, 1 otherwise).
func (g *Game) BeginEffect(actingPlayer string, targets []string, effect PendingEffect, actionCost int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireCurrentPlayerLocked(actingPlayer); err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets for effect")
	}
	if actionCost <= 0 {
		actionCost = 1
	}

	first := targets[0]
	rest := targets[1:]
	if len(rest) > 0 {
		g.group = &groupAction{ActingPlayer: actingPlayer, Amount: effect.Amount, Remaining: append([]string{}, rest...)}
	} else {
		g.group = nil
	}
	g.pendingActionCost = actionCost
	g.refusal = &Refusal{ActingPlayer: actingPlayer, Target: first, Holder: first, Effect: effect}
	g.state = StatePendingRefusal
	return nil
}

// RefusalState returns a copy of the active refusal negotiation, if any.
func (g *Game) RefusalState() (Refusal, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refusal == nil {
		return Refusal{}, false
	}
	return *g.refusal, true
}

// PendingRentState returns a copy of the active rent obligation, if any.
func (g *Game) PendingRentState() (RentRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pendingRent == nil {
		return RentRequest{}, false
	}
	return *g.pendingRent, true
}

// ResolveRefusal applies one decision-holder's choice. refuse=true plays a
// Just Say No, extending the chain to the other side (the card itself must
// already have been validated and discarded by the caller); refuse=false
// declines, resolving the chain immediately: the effect applies iff the
// number of Just Say No plays was even.
func (g *Game) ResolveRefusal(playerID string, refuse bool) error {
	g.mu.Lock()

	if g.state != StatePendingRefusal || g.refusal == nil {
		g.mu.Unlock()
		return fmt.Errorf("no refusal in progress")
	}
	if g.refusal.Holder != playerID {
		g.mu.Unlock()
		return fmt.Errorf("not %s's turn to respond", playerID)
	}

	if refuse {
		g.refusal.Count++
		if g.refusal.Holder == g.refusal.Target {
			g.refusal.Holder = g.refusal.ActingPlayer
		} else {
			g.refusal.Holder = g.refusal.Target
		}
		g.mu.Unlock()
		return nil
	}

	applies := negotiation.Applies(g.refusal.Count)
	actingPlayer := g.refusal.ActingPlayer
	target := g.refusal.Target
	effect := g.refusal.Effect
	g.refusal = nil

	if !applies {
		g.advanceGroupOrFinishLocked(actingPlayer)
		g.mu.Unlock()
		return nil
	}

	if effect.Kind == EffectRentCollect {
		g.pendingRent = &RentRequest{Recipient: actingPlayer, Payer: target, Amount: effect.Amount}
		g.state = StatePendingRent
		g.mu.Unlock()
		return nil
	}

	// Preconditions for these effects were validated by the action handler
	// before the refusal chain began; a failure here means the table state
	// changed in a way that should never happen under single-writer
	// access. Treat it as a fatal engine-invariant violation.
	if err := g.applyEffectLocked(actingPlayer, target, effect); err != nil {
		g.mu.Unlock()
		return fmt.Errorf("fatal: %w", err)
	}

	g.advanceGroupOrFinishLocked(actingPlayer)
	g.mu.Unlock()
	return nil
}

// advanceGroupOrFinishLocked moves to the next queued target, or — once
// every target has been processed — finishes the action by consuming its
// action-slot cost.
func (g *Game) advanceGroupOrFinishLocked(actingPlayer string) {
	if g.group != nil && len(g.group.Remaining) > 0 {
		next := g.group.Remaining[0]
		g.group.Remaining = g.group.Remaining[1:]
		g.refusal = &Refusal{
			ActingPlayer: actingPlayer,
			Target:       next,
			Holder:       next,
			Effect:       PendingEffect{Kind: EffectRentCollect, Amount: g.group.Amount},
		}
		g.state = StatePendingRefusal
		return
	}

	g.group = nil
	g.state = StateActions
	cost := g.pendingActionCost
	if cost <= 0 {
		cost = 1
	}
	g.pendingActionCost = 0
	g.commitActionsLocked(actingPlayer, cost)
}

// RentPayment settles the active rent obligation. Caller must hold no
// lock; it validates payerID is the bound payer.
func (g *Game) RentPayment(payerID string, selectedCardIDs []int) error {
	g.mu.Lock()

	if g.state != StatePendingRent || g.pendingRent == nil {
		g.mu.Unlock()
		return fmt.Errorf("no rent payment pending")
	}
	if g.pendingRent.Payer != payerID {
		g.mu.Unlock()
		return fmt.Errorf("not %s's payment to settle", payerID)
	}

	payer := g.playerByIDLocked(payerID)
	recipient := g.playerByIDLocked(g.pendingRent.Recipient)
	if payer == nil || recipient == nil {
		g.mu.Unlock()
		return fmt.Errorf("unknown player in pending rent")
	}
	amount := g.pendingRent.Amount
	actingPlayer := g.pendingRent.Recipient

	if err := negotiation.SettlePayment(payer, recipient, selectedCardIDs, amount); err != nil {
		g.mu.Unlock()
		return err
	}

	g.pendingRent = nil
	g.state = StateActions
	g.checkWinLocked(recipient)
	g.advanceGroupOrFinishLocked(actingPlayer)
	g.mu.Unlock()
	return nil
}

// applyEffectLocked carries out an immediate (non-rent) effect: SlyDeal,
// ForcedDeal, or DealBreaker. Caller holds mu.
func (g *Game) applyEffectLocked(actingPlayerID, targetPlayerID string, effect PendingEffect) error {
	acting := g.playerByIDLocked(actingPlayerID)
	target := g.playerByIDLocked(targetPlayerID)
	if acting == nil || target == nil {
		return fmt.Errorf("unknown player in effect")
	}

	switch effect.Kind {
	case EffectSlyDeal:
		c, color, found := target.FindProperty(effect.TargetPropertyID)
		if !found {
			return fmt.Errorf("property %d not found on %s", effect.TargetPropertyID, targetPlayerID)
		}
		if target.IsSetComplete(color) {
			return fmt.Errorf("cannot sly-deal from a complete set")
		}
		taken, err := target.RemovePropertyCard(color, c.ID)
		if err != nil {
			return err
		}
		acting.AddCardsToSet(color, []*card.Card{taken})
		g.checkWinLocked(acting)
		return nil

	case EffectForcedDeal:
		targetCard, targetColor, found := target.FindProperty(effect.TargetPropertyID)
		if !found {
			return fmt.Errorf("property %d not found on %s", effect.TargetPropertyID, targetPlayerID)
		}
		userCard, userColor, found2 := acting.FindProperty(effect.UserPropertyID)
		if !found2 {
			return fmt.Errorf("property %d not found on %s", effect.UserPropertyID, actingPlayerID)
		}
		if target.IsSetComplete(targetColor) || acting.IsSetComplete(userColor) {
			return fmt.Errorf("cannot forced-deal a complete set")
		}
		fromTarget, err := target.RemovePropertyCard(targetColor, targetCard.ID)
		if err != nil {
			return err
		}
		fromActing, err := acting.RemovePropertyCard(userColor, userCard.ID)
		if err != nil {
			return err
		}
		acting.AddCardsToSet(targetColor, []*card.Card{fromTarget})
		target.AddCardsToSet(userColor, []*card.Card{fromActing})
		g.checkWinLocked(acting)
		g.checkWinLocked(target)
		return nil

	case EffectDealBreaker:
		if !target.IsSetComplete(effect.TargetColor) {
			return fmt.Errorf("%s does not have a complete %s set", targetPlayerID, effect.TargetColor)
		}
		props := target.Properties()[effect.TargetColor]
		propCount := 0
		for _, c := range props {
			if c.IsProperty() {
				propCount++
			}
		}
		fullSize := card.FullSetSize[effect.TargetColor]

		var taken []*card.Card
		var err error
		if propCount > fullSize {
			taken, err = target.SelectAndRemoveFromSet(effect.TargetColor, effect.SelectedIDs)
		} else {
			taken = target.RemoveEntireSet(effect.TargetColor)
		}
		if err != nil {
			return err
		}
		acting.AddCardsToSet(effect.TargetColor, taken)
		g.checkWinLocked(acting)
		return nil
	}

	return fmt.Errorf("unknown effect kind %q", effect.Kind)
}
