package actions

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
	"monopolydeal-server/internal/player"
)

// computeRentAmount picks, among the colors a rent card may be played for,
// the one that yields the highest rent given the acting player's current
// properties, and returns that amount. The engine computes this
// authoritatively rather than trusting a client-supplied amount.
func computeRentAmount(p *player.Player, colors []card.Color) int {
	best := 0
	properties := p.Properties()
	for _, color := range colors {
		list := properties[color]
		propCount := 0
		hasHouse, hasHotel := false, false
		for _, c := range list {
			if c.IsProperty() {
				propCount++
			}
			if c.Kind == card.KindAction && c.Action == card.ActionHouse {
				hasHouse = true
			}
			if c.Kind == card.KindAction && c.Action == card.ActionHotel {
				hasHotel = true
			}
		}
		if propCount == 0 {
			continue
		}
		ladder := card.RentLadder[color]
		if len(ladder) == 0 {
			continue
		}
		idx := propCount
		if idx > len(ladder) {
			idx = len(ladder)
		}
		amount := ladder[idx-1]
		if hasHouse {
			amount += 3
		}
		if hasHotel {
			amount += 4
		}
		if amount > best {
			best = amount
		}
	}
	return best
}

func takeAndDiscard(g *engine.Game, p *player.Player, cardID int, kind card.Kind) (*card.Card, error) {
	c, err := p.RemoveFromHand(cardID)
	if err != nil {
		return nil, err
	}
	if c.Kind != kind {
		p.AddToHand(c)
		return nil, fmt.Errorf("card %d is not a %s card", cardID, kind)
	}
	g.Deck().Discard(c)
	return c, nil
}

// ItsYourBirthday requests 2 from every other player.
func ItsYourBirthday(g *engine.Game, req dto.ItsYourBirthdayRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	c, err := takeAndDiscard(g, p, req.Card, card.KindAction)
	if err != nil {
		return err
	}
	if c.Action != card.ActionItsYourBirthday {
		return fmt.Errorf("card %d is not It's Your Birthday", req.Card)
	}
	targets := g.Opponents(req.Player)
	return g.BeginEffect(req.Player, targets, engine.PendingEffect{Kind: engine.EffectRentCollect, Amount: 2}, 1)
}

// DebtCollector requests 5 from one chosen opponent.
func DebtCollector(g *engine.Game, req dto.DebtCollectorRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if g.PlayerByID(req.TargetPlayer) == nil {
		return fmt.Errorf("unknown target %s", req.TargetPlayer)
	}
	c, err := takeAndDiscard(g, p, req.Card, card.KindAction)
	if err != nil {
		return err
	}
	if c.Action != card.ActionDebtCollector {
		return fmt.Errorf("card %d is not Debt Collector", req.Card)
	}
	return g.BeginEffect(req.Player, []string{req.TargetPlayer}, engine.PendingEffect{Kind: engine.EffectRentCollect, Amount: 5}, 1)
}

// Rent plays a two-color rent card against every opponent.
func Rent(g *engine.Game, req dto.RentRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	c, err := takeAndDiscard(g, p, req.Card, card.KindRent)
	if err != nil {
		return err
	}
	if c.IsWild {
		return fmt.Errorf("card %d is a multicolor rent card, use multicolor_rent", req.Card)
	}
	amount := computeRentAmount(p, c.RentColors)
	g.MarkRentPlayed()
	return g.BeginEffect(req.Player, g.Opponents(req.Player), engine.PendingEffect{Kind: engine.EffectRentCollect, Amount: amount}, 1)
}

// MulticolorRent plays the ten-color wild rent card against one opponent.
func MulticolorRent(g *engine.Game, req dto.MulticolorRentRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if g.PlayerByID(req.TargetPlayer) == nil {
		return fmt.Errorf("unknown target %s", req.TargetPlayer)
	}
	c, err := takeAndDiscard(g, p, req.Card, card.KindRent)
	if err != nil {
		return err
	}
	if !c.IsWild {
		return fmt.Errorf("card %d is not the multicolor rent card", req.Card)
	}
	amount := computeRentAmount(p, card.PropertyColors)
	g.MarkRentPlayed()
	return g.BeginEffect(req.Player, []string{req.TargetPlayer}, engine.PendingEffect{Kind: engine.EffectRentCollect, Amount: amount}, 1)
}

// DoubleTheRent plays a Rent card together with a Double The Rent card in
// one combined message — the two are discarded together and a single
// refusal chain is opened for double the computed amount, costing both
// action slots at once (§9 Open Question 1: chosen to fit within the
// existing 3-action budget).
func DoubleTheRent(g *engine.Game, req dto.DoubleTheRentRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	if g.ActionsRemaining() < 2 {
		return fmt.Errorf("no action slots remain for double the rent")
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}

	var rentCardIsWild bool
	found := false
	for _, c := range p.Hand() {
		if c.ID == req.Card {
			if c.Kind != card.KindRent {
				return fmt.Errorf("card %d is not a rent card", req.Card)
			}
			rentCardIsWild = c.IsWild
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("card %d not in hand", req.Card)
	}
	if rentCardIsWild && (req.TargetPlayer == "" || g.PlayerByID(req.TargetPlayer) == nil) {
		return fmt.Errorf("unknown target for multicolor double the rent")
	}

	rentCard, err := takeAndDiscard(g, p, req.Card, card.KindRent)
	if err != nil {
		return err
	}
	doubleCard, err := p.RemoveFromHand(req.DoubleTheRentCard)
	if err != nil {
		p.AddToHand(rentCard)
		return err
	}
	if doubleCard.Kind != card.KindAction || doubleCard.Action != card.ActionDoubleTheRent {
		p.AddToHand(rentCard)
		p.AddToHand(doubleCard)
		return fmt.Errorf("card %d is not Double The Rent", req.DoubleTheRentCard)
	}
	g.Deck().Discard(doubleCard)

	var targets []string
	var colors []card.Color
	if rentCard.IsWild {
		targets = []string{req.TargetPlayer}
		colors = card.PropertyColors
	} else {
		targets = g.Opponents(req.Player)
		colors = rentCard.RentColors
	}

	amount := computeRentAmount(p, colors) * 2
	g.MarkRentPlayed()
	return g.BeginEffect(req.Player, targets, engine.PendingEffect{Kind: engine.EffectRentCollect, Amount: amount}, 2)
}
