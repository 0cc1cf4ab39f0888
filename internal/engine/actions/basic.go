package actions

import (
	"fmt"

	"monopolydeal-server/internal/card"
	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// ToBank moves a non-property card from hand to bank.
func ToBank(g *engine.Game, req dto.ToBankRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if err := p.PlaceToBank(req.Card); err != nil {
		return err
	}
	return g.CommitAction(req.Player)
}

// ToProperties moves a property card from hand into a color's set.
func ToProperties(g *engine.Game, req dto.ToPropertiesRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if err := p.PlaceToProperties(req.Card.ID, req.Card.CurrentColor); err != nil {
		return err
	}
	return g.CommitAction(req.Player)
}

// PassGo discards the PassGo card and draws 2 for the acting player.
func PassGo(g *engine.Game, req dto.PassGoRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	c, err := p.RemoveFromHand(req.Card)
	if err != nil {
		return err
	}
	if c.Kind != card.KindAction || c.Action != card.ActionPassGo {
		p.AddToHand(c)
		return fmt.Errorf("card %d is not Pass Go", req.Card)
	}
	g.Deck().Discard(c)
	p.Draw(g.Deck(), 2)
	return g.CommitAction(req.Player)
}

// HouseOrHotel attaches a House (hotel=false) or Hotel (hotel=true) to one
// of the acting player's complete sets.
func HouseOrHotel(g *engine.Game, req dto.ToBankRequest, hotel bool) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	c, err := p.RemoveFromHand(req.Card)
	if err != nil {
		return err
	}
	wantAction := card.ActionHouse
	if hotel {
		wantAction = card.ActionHotel
	}
	if c.Kind != card.KindAction || c.Action != wantAction {
		p.AddToHand(c)
		return fmt.Errorf("card %d is not a %s", req.Card, wantAction)
	}

	color, ok := chooseAttachColor(p, hotel)
	if !ok {
		p.AddToHand(c)
		return fmt.Errorf("no eligible complete set for a %s", wantAction)
	}
	// Hotel/House may not attach to black or mint (spec §4.4).
	if color == card.Black || color == card.Mint {
		p.AddToHand(c)
		return fmt.Errorf("%s cannot take a %s", color, wantAction)
	}
	if err := p.AttachHouseOrHotel(c, color); err != nil {
		p.AddToHand(c)
		return err
	}
	return g.CommitAction(req.Player)
}

// chooseAttachColor picks the first eligible complete color set: any
// complete set without a house yet (for House), or any complete set that
// already holds a house but no hotel (for Hotel). Real clients choose the
// color explicitly; since the wire message for house/hotel only carries a
// card id, the engine attaches to the first eligible set in canonical
// color order.
func chooseAttachColor(p interface {
	IsSetComplete(card.Color) bool
	Properties() map[card.Color][]*card.Card
}, hotel bool) (card.Color, bool) {
	for _, color := range card.PropertyColors {
		if color == card.Black || color == card.Mint {
			continue
		}
		if !p.IsSetComplete(color) {
			continue
		}
		hasHouse, hasHotel := false, false
		for _, c := range p.Properties()[color] {
			if c.Kind == card.KindAction && c.Action == card.ActionHouse {
				hasHouse = true
			}
			if c.Kind == card.KindAction && c.Action == card.ActionHotel {
				hasHotel = true
			}
		}
		if !hotel && !hasHouse {
			return color, true
		}
		if hotel && hasHouse && !hasHotel {
			return color, true
		}
	}
	return "", false
}

// ReassignWild moves a wild property card already on the table to a new
// legal color, subject to set-upkeep on both the old and new color.
func ReassignWild(g *engine.Game, req dto.ReassignWildRequest) error {
	if err := g.RequireCurrentPlayer(req.Player); err != nil {
		return err
	}
	p := g.PlayerByID(req.Player)
	if p == nil {
		return fmt.Errorf("unknown player %s", req.Player)
	}
	if err := p.ReassignWild(req.Card, req.NewColor); err != nil {
		return err
	}
	return g.CommitAction(req.Player)
}
