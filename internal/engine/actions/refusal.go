package actions

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// RefusalChoice records one decision-holder's response within an active
// refusal chain. Refusing requires discarding a Just Say No card from hand
// first; declining needs no card.
func RefusalChoice(g *engine.Game, req dto.RefusalChoiceRequest) error {
	if !req.Refuse {
		return g.ResolveRefusal(req.PlayerID, false)
	}

	p := g.PlayerByID(req.PlayerID)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.PlayerID)
	}
	c, err := p.RemoveFromHand(req.Card)
	if err != nil {
		return err
	}
	if c.Kind != card.KindAction || c.Action != card.ActionJustSayNo {
		p.AddToHand(c)
		return fmt.Errorf("card %d is not Just Say No", req.Card)
	}

	if err := g.ResolveRefusal(req.PlayerID, true); err != nil {
		p.AddToHand(c)
		return err
	}
	g.Deck().Discard(c)
	return nil
}
