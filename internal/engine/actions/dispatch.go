// Package actions implements the one-handler-per-card-kind action layer:
// each handler validates a request against current engine/player state and
// mutates them, consuming an action slot only on success.
package actions

import (
	"fmt"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine"
)

// Apply dispatches one inbound action request against a game.
// req is the already-unmarshalled concrete request type for the wire
// action named by kind.
func Apply(g *engine.Game, kind string, req interface{}) error {
	switch kind {
	case "skip_turn":
		r := req.(dto.SkipTurnRequest)
		return g.SkipTurn(r.Player)
	case "to_bank":
		r := req.(dto.ToBankRequest)
		return ToBank(g, r)
	case "to_properties":
		r := req.(dto.ToPropertiesRequest)
		return ToProperties(g, r)
	case "pass_go":
		r := req.(dto.PassGoRequest)
		return PassGo(g, r)
	case "its_your_birthday":
		r := req.(dto.ItsYourBirthdayRequest)
		return ItsYourBirthday(g, r)
	case "debt_collector":
		r := req.(dto.DebtCollectorRequest)
		return DebtCollector(g, r)
	case "rent":
		r := req.(dto.RentRequest)
		return Rent(g, r)
	case "multicolor_rent":
		r := req.(dto.MulticolorRentRequest)
		return MulticolorRent(g, r)
	case "double_the_rent":
		r := req.(dto.DoubleTheRentRequest)
		return DoubleTheRent(g, r)
	case "sly_deal":
		r := req.(dto.SlyDealRequest)
		return SlyDeal(g, r)
	case "forced_deal":
		r := req.(dto.ForcedDealRequest)
		return ForcedDeal(g, r)
	case "deal_breaker":
		r := req.(dto.DealBreakerRequest)
		return DealBreaker(g, r)
	case "house":
		r := req.(dto.ToBankRequest) // same shape: {player, card}
		return HouseOrHotel(g, r, false)
	case "hotel":
		r := req.(dto.ToBankRequest)
		return HouseOrHotel(g, r, true)
	case "reassign_wild":
		r := req.(dto.ReassignWildRequest)
		return ReassignWild(g, r)
	case "refusal_choice":
		r := req.(dto.RefusalChoiceRequest)
		return RefusalChoice(g, r)
	case "rent_payment":
		r := req.(dto.RentPaymentRequest)
		return g.RentPayment(r.Player, r.SelectedCards)
	default:
		return fmt.Errorf("unsupported action %q", kind)
	}
}
