package models

// Direction is the trade direction of an action.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Title returns the capitalized form used in recommendation labels.
func (d Direction) Title() string {
	switch d {
	case DirectionBuy:
		return "Buy"
	case DirectionSell:
		return "Sell"
	}
	return string(d)
}

// Side is the contract side an action trades.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// Title returns the capitalized form used in recommendation labels.
func (s Side) Title() string {
	switch s {
	case SideYes:
		return "Yes"
	case SideNo:
		return "No"
	}
	return string(s)
}

// ActionLabel renders the human recommendation for one action, for example
// "Buy Yes on the Democrat" or "Sell No on the Republican".
func ActionLabel(d Direction, s Side, p Party) string {
	return d.Title() + " " + s.Title() + " on the " + p.FullName()
}

// ActionCandidate is one of the eight (direction, side, party) actions
// evaluated per race. Profit is nil when the price it depends on has no
// quote.
type ActionCandidate struct {
	Direction Direction
	Side      Side
	Party     Party
	Profit    *float64
}

// Opportunity is the chosen best action for one race and direction, carrying
// everything the renderers need. ActionProfit is rounded to two decimal
// places.
type Opportunity struct {
	MarketName   string      `json:"market_name"`
	MarketURL    string      `json:"market_url"`
	Seat         string      `json:"seat"`
	Democratic   PartyQuotes `json:"democratic"`
	Republican   PartyQuotes `json:"republican"`
	ForecastD    float64     `json:"forecast_d"`
	ForecastR    float64     `json:"forecast_r"`
	ActionRec    string      `json:"action_rec"`
	ActionSide   Direction   `json:"action_side"`
	ActionProfit float64     `json:"action_profit"`
}

// ActionSummary is one group of the per-action rollup: how many seats share a
// recommendation and which ones.
type ActionSummary struct {
	ActionRec string   `json:"action_rec"`
	Count     int      `json:"count"`
	Seats     []string `json:"seats"`
}
