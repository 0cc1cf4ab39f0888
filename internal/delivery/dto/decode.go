package dto

import (
	"encoding/json"
	"fmt"
)

// StartGameRequest closes a room's lobby roster and deals opening hands.
type StartGameRequest struct {
	Player string `json:"player"`
}

// DecodeAction unmarshals a raw inbound frame into the concrete request
// type named by action, returning it as the value (not pointer) type the
// engine/actions dispatcher expects.
func DecodeAction(action string, raw []byte) (interface{}, error) {
	switch action {
	case "start_game":
		var r StartGameRequest
		return r, json.Unmarshal(raw, &r)
	case "player_ready":
		var r PlayerReadyRequest
		return r, json.Unmarshal(raw, &r)
	case "skip_turn":
		var r SkipTurnRequest
		return r, json.Unmarshal(raw, &r)
	case "to_bank", "house", "hotel":
		var r ToBankRequest
		return r, json.Unmarshal(raw, &r)
	case "to_properties":
		var r ToPropertiesRequest
		return r, json.Unmarshal(raw, &r)
	case "pass_go":
		var r PassGoRequest
		return r, json.Unmarshal(raw, &r)
	case "its_your_birthday":
		var r ItsYourBirthdayRequest
		return r, json.Unmarshal(raw, &r)
	case "debt_collector":
		var r DebtCollectorRequest
		return r, json.Unmarshal(raw, &r)
	case "rent":
		var r RentRequest
		return r, json.Unmarshal(raw, &r)
	case "multicolor_rent":
		var r MulticolorRentRequest
		return r, json.Unmarshal(raw, &r)
	case "double_the_rent":
		var r DoubleTheRentRequest
		return r, json.Unmarshal(raw, &r)
	case "sly_deal":
		var r SlyDealRequest
		return r, json.Unmarshal(raw, &r)
	case "forced_deal":
		var r ForcedDealRequest
		return r, json.Unmarshal(raw, &r)
	case "deal_breaker":
		var r DealBreakerRequest
		return r, json.Unmarshal(raw, &r)
	case "reassign_wild":
		var r ReassignWildRequest
		return r, json.Unmarshal(raw, &r)
	case "refusal_choice":
		var r RefusalChoiceRequest
		return r, json.Unmarshal(raw, &r)
	case "rent_payment":
		var r RentPaymentRequest
		return r, json.Unmarshal(raw, &r)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}
