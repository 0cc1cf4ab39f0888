// Package card holds the immutable Monopoly Deal card catalog: the fixed
// composition of the 108-card deck, canonical display names and values, rent
// ladders, and full-set sizes. Cards are templates here; a deck assigns ids
// and shuffles, per internal/deck.
package card

// Color identifies a property color group.
type Color string

const (
	Brown     Color = "brown"
	Mint      Color = "mint"
	LightBlue Color = "light_blue"
	Pink      Color = "pink"
	Orange    Color = "orange"
	Red       Color = "red"
	Yellow    Color = "yellow"
	Green     Color = "green"
	Blue      Color = "blue"
	Black     Color = "black"
)

// PropertyColors lists the ten canonical property colors in catalog order.
var PropertyColors = []Color{Brown, Mint, LightBlue, Pink, Orange, Red, Yellow, Green, Blue, Black}

// FullSetSize gives the property-card count that completes a set of each color.
var FullSetSize = map[Color]int{
	Brown: 2, Mint: 2, LightBlue: 3, Pink: 3, Orange: 3,
	Red: 3, Yellow: 3, Green: 3, Blue: 2, Black: 4,
}

// RentLadder gives, per color, the rent charged for 1..full_set_size
// properties of that color in one's set.
var RentLadder = map[Color][]int{
	Brown:     {1, 2},
	Mint:      {1, 2},
	LightBlue: {1, 2, 3},
	Pink:      {1, 2, 4},
	Orange:    {1, 3, 5},
	Red:       {2, 3, 6},
	Yellow:    {2, 4, 6},
	Green:     {2, 4, 7},
	Blue:      {3, 8},
	Black:     {1, 2, 3, 4},
}

// Kind is the tag of the card's variant.
type Kind string

const (
	KindProperty Kind = "property"
	KindAction   Kind = "action"
	KindRent     Kind = "rent"
	KindMoney    Kind = "money"
)

// ActionName enumerates the closed set of action card names.
type ActionName string

const (
	ActionDealBreaker     ActionName = "deal_breaker"
	ActionForcedDeal      ActionName = "forced_deal"
	ActionSlyDeal         ActionName = "sly_deal"
	ActionDebtCollector   ActionName = "debt_collector"
	ActionDoubleTheRent   ActionName = "double_the_rent"
	ActionItsYourBirthday ActionName = "its_your_birthday"
	ActionPassGo          ActionName = "pass_go"
	ActionHouse           ActionName = "house"
	ActionHotel           ActionName = "hotel"
	ActionJustSayNo       ActionName = "just_say_no"
)

// Card is a single card instance. Fields are a flat tagged variant keyed by
// Kind rather than an interface hierarchy: a property card never looks at
// Action or Denomination, an action card never looks at LegalColors, and so
// on. ID is assigned by the deck at construction and is stable for the
// card's lifetime; CurrentColor is the only field that ever mutates after
// construction (a wild property's reassigned color).
type Card struct {
	ID    int
	Name  string
	Value *int // monetary/display value; nil for the ten-color multicolor wild
	Kind  Kind

	// Property fields.
	LegalColors  []Color // legal colors a wild may be assigned; singleton for non-wilds
	CurrentColor Color   // assigned color; empty until a wild is placed
	IsWild       bool

	// Action fields.
	Action ActionName

	// Rent fields: colors this rent card may be played against. Two entries
	// for a two-color rent card, all ten for a multicolor rent card.
	RentColors []Color

	// Money fields.
	Denomination int
}

// IsProperty reports whether the card is a property card.
func (c *Card) IsProperty() bool { return c.Kind == KindProperty }

// IsMulticolorWild reports whether the card is the ten-color wild property.
func (c *Card) IsMulticolorWild() bool {
	return c.Kind == KindProperty && c.IsWild && len(c.LegalColors) == len(PropertyColors)
}

// ValueOrZero returns the card's display value, or 0 for the multicolor
// wild property whose value is absent.
func (c *Card) ValueOrZero() int {
	if c.Value == nil {
		return 0
	}
	return *c.Value
}

func intPtr(v int) *int { return &v }

const (
	propBrownValue     = 1
	propMintValue      = 2
	propLightBlueValue = 1
	propPinkValue      = 2
	propOrangeValue    = 2
	propRedValue       = 3
	propYellowValue    = 3
	propGreenValue     = 4
	propBlueValue      = 4
	propBlackValue     = 2
)

var propertyNames = map[Color][]string{
	Brown:     {"Mediterranean Avenue", "Baltic Avenue"},
	Mint:      {"Water Works", "Electric Company"},
	LightBlue: {"Connecticut Avenue", "Vermont Avenue", "Oriental Avenue"},
	Pink:      {"St. Charles Place", "States Avenue", "Virginia Avenue"},
	Orange:    {"Tennessee Avenue", "New York Avenue", "St. James Place"},
	Red:       {"Illinois Avenue", "Indiana Avenue", "Kentucky Avenue"},
	Yellow:    {"Atlantic Avenue", "Marvin Gardens", "Ventnor Avenue"},
	Green:     {"Pacific Avenue", "North Carolina Avenue", "Pennsylvania Avenue"},
	Blue:      {"Boardwalk", "Park Place"},
	Black:     {"Short Line", "Pennsylvania Railroad", "Reading Railroad", "B. & O. Railroad"},
}

var propertyValues = map[Color]int{
	Brown: propBrownValue, Mint: propMintValue, LightBlue: propLightBlueValue,
	Pink: propPinkValue, Orange: propOrangeValue, Red: propRedValue,
	Yellow: propYellowValue, Green: propGreenValue, Blue: propBlueValue, Black: propBlackValue,
}

type wildSpec struct {
	name        string
	colors      []Color
	value       *int
	count       int
}

var wildProperties = []wildSpec{
	{"Wild Property (Blue/Green)", []Color{Blue, Green}, intPtr(4), 1},
	{"Wild Property (Red/Yellow)", []Color{Red, Yellow}, intPtr(3), 2},
	{"Wild Property (Pink/Orange)", []Color{Pink, Orange}, intPtr(2), 2},
	{"Wild Property (Black/Mint)", []Color{Black, Mint}, intPtr(2), 1},
	{"Wild Property (Black/Light Blue)", []Color{Black, LightBlue}, intPtr(4), 1},
	{"Wild Property (Black/Green)", []Color{Black, Green}, intPtr(4), 1},
	{"Wild Property (Brown/Light Blue)", []Color{Brown, LightBlue}, intPtr(1), 1},
	{"Wild Property (Multicolor)", append([]Color{}, PropertyColors...), nil, 2},
}

type rentSpec struct {
	name   string
	colors []Color
	value  int
	count  int
}

var rentCards = []rentSpec{
	{"Rent (Multicolor)", append([]Color{}, PropertyColors...), 3, 3},
	{"Rent (Blue/Green)", []Color{Blue, Green}, 1, 2},
	{"Rent (Mint/Black)", []Color{Mint, Black}, 1, 2},
	{"Rent (Red/Yellow)", []Color{Red, Yellow}, 1, 2},
	{"Rent (Orange/Pink)", []Color{Orange, Pink}, 1, 2},
	{"Rent (Brown/Light Blue)", []Color{Brown, LightBlue}, 1, 2},
}

type actionSpec struct {
	name   string
	action ActionName
	value  int
	count  int
}

var actionCards = []actionSpec{
	{"Deal Breaker", ActionDealBreaker, 5, 2},
	{"Debt Collector", ActionDebtCollector, 3, 3},
	{"Double The Rent", ActionDoubleTheRent, 1, 2},
	{"Just Say No!", ActionJustSayNo, 4, 3},
	{"Sly Deal", ActionSlyDeal, 3, 3},
	{"It's Your Birthday", ActionItsYourBirthday, 2, 3},
	{"House", ActionHouse, 3, 3},
	{"Hotel", ActionHotel, 4, 3},
	{"Pass Go", ActionPassGo, 1, 10},
	{"Forced Deal", ActionForcedDeal, 3, 4},
}

type moneySpec struct {
	denomination int
	count        int
}

var moneyCards = []moneySpec{
	{1, 6}, {2, 5}, {3, 3}, {4, 3}, {5, 2}, {10, 1},
}

// Templates returns the full, unshuffled canonical card composition with
// ID left at zero; the deck assigns ids when it constructs a fresh instance.
func Templates() []Card {
	var out []Card

	for _, color := range PropertyColors {
		names := propertyNames[color]
		value := propertyValues[color]
		for i := 0; i < len(names); i++ {
			v := value
			out = append(out, Card{
				Name:         names[i],
				Value:        &v,
				Kind:         KindProperty,
				LegalColors:  []Color{color},
				CurrentColor: color,
			})
		}
	}

	for _, w := range wildProperties {
		for i := 0; i < w.count; i++ {
			var current Color
			if len(w.colors) == 1 {
				current = w.colors[0]
			}
			out = append(out, Card{
				Name:         w.name,
				Value:        w.value,
				Kind:         KindProperty,
				LegalColors:  append([]Color{}, w.colors...),
				CurrentColor: current,
				IsWild:       true,
			})
		}
	}

	for _, r := range rentCards {
		for i := 0; i < r.count; i++ {
			v := r.value
			out = append(out, Card{
				Name:       r.name,
				Value:      &v,
				Kind:       KindRent,
				RentColors: append([]Color{}, r.colors...),
				IsWild:     len(r.colors) == len(PropertyColors),
			})
		}
	}

	for _, a := range actionCards {
		for i := 0; i < a.count; i++ {
			v := a.value
			out = append(out, Card{
				Name:   a.name,
				Value:  &v,
				Kind:   KindAction,
				Action: a.action,
			})
		}
	}

	for _, m := range moneyCards {
		for i := 0; i < m.count; i++ {
			v := m.denomination
			out = append(out, Card{
				Name:         "Money",
				Value:        &v,
				Kind:         KindMoney,
				Denomination: m.denomination,
			})
		}
	}

	return out
}
