package actions

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// SlyDeal steals a single property card from an opponent's incomplete set.
func SlyDeal(g *engine.Game, req dto.SlyDealRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	target, targetID, err := findPropertyOwner(g, req.Player, req.TargetProperty)
	if err != nil {
		return err
	}
	if target.IsSetComplete(mustColor(target, req.TargetProperty)) {
		return fmt.Errorf("cannot sly-deal from a complete set")
	}

	c, err := takeAndDiscard(g, p, req.Card, card.KindAction)
	if err != nil {
		return err
	}
	if c.Action != card.ActionSlyDeal {
		return fmt.Errorf("card %d is not Sly Deal", req.Card)
	}

	return g.BeginEffect(req.Player, []string{targetID}, engine.PendingEffect{
		Kind:             engine.EffectSlyDeal,
		TargetPropertyID: req.TargetProperty,
	}, 1)
}

// ForcedDeal swaps one of the acting player's properties for one of an
// opponent's, neither of which may belong to a complete set.
func ForcedDeal(g *engine.Game, req dto.ForcedDealRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if _, _, found := p.FindProperty(req.UserProperty); !found {
		return fmt.Errorf("property %d not found on %s", req.UserProperty, req.Player)
	}
	_, targetID, err := findPropertyOwner(g, req.Player, req.TargetProperty)
	if err != nil {
		return err
	}

	c, err := takeAndDiscard(g, p, req.Card, card.KindAction)
	if err != nil {
		return err
	}
	if c.Action != card.ActionForcedDeal {
		return fmt.Errorf("card %d is not Forced Deal", req.Card)
	}

	return g.BeginEffect(req.Player, []string{targetID}, engine.PendingEffect{
		Kind:             engine.EffectForcedDeal,
		TargetPropertyID: req.TargetProperty,
		UserPropertyID:   req.UserProperty,
	}, 1)
}

// DealBreaker steals an opponent's complete property set outright.
func DealBreaker(g *engine.Game, req dto.DealBreakerRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	target := g.PlayerByID(req.TargetPlayer)
	if target == nil {
		return fmt.Errorf("unknown target %s", req.TargetPlayer)
	}
	if !target.IsSetComplete(req.TargetColor) {
		return fmt.Errorf("%s does not have a complete %s set", req.TargetPlayer, req.TargetColor)
	}

	c, err := takeAndDiscard(g, p, req.Card, card.KindAction)
	if err != nil {
		return err
	}
	if c.Action != card.ActionDealBreaker {
		return fmt.Errorf("card %d is not Deal Breaker", req.Card)
	}

	return g.BeginEffect(req.Player, []string{req.TargetPlayer}, engine.PendingEffect{
		Kind:        engine.EffectDealBreaker,
		TargetColor: req.TargetColor,
		SelectedIDs: req.TargetSet,
	}, 1)
}

// findPropertyOwner locates the opponent holding propertyID, since the wire
// request names only the card, not its owner.
func findPropertyOwner(g *engine.Game, actingPlayer string, propertyID int) (owner playerLike, ownerID string, err error) {
	for _, id := range g.Opponents(actingPlayer) {
		op := g.PlayerByID(id)
		if op == nil {
			continue
		}
		if _, _, found := op.FindProperty(propertyID); found {
			return op, id, nil
		}
	}
	return nil, "", fmt.Errorf("property %d not found on any opponent", propertyID)
}

// playerLike is the minimal surface steal.go needs from *player.Player,
// kept narrow so findPropertyOwner stays easy to test.
type playerLike interface {
	FindProperty(cardID int) (c *card.Card, color card.Color, found bool)
	IsSetComplete(color card.Color) bool
}

// mustColor looks up the color a property id currently sits under; it is
// only called after FindProperty already confirmed the card exists.
func mustColor(p playerLike, cardID int) card.Color {
	_, color, _ := p.FindProperty(cardID)
	return color
}
