package models

// RaceKey identifies a single race across both datasets: a two-letter region
// code plus a short contest token, rendered like "OH-SEN".
type RaceKey struct {
	Region  string `json:"region"`
	Contest string `json:"contest"`
}

func (k RaceKey) String() string {
	return k.Region + "-" + k.Contest
}

// IsZero reports whether the key is unset.
func (k RaceKey) IsZero() bool {
	return k.Region == "" && k.Contest == ""
}

// PartyQuotes holds the four tradable prices of one party's contract.
type PartyQuotes struct {
	BuyYes  *float64 `json:"buy_yes"`
	BuyNo   *float64 `json:"buy_no"`
	SellYes *float64 `json:"sell_yes"`
	SellNo  *float64 `json:"sell_no"`
}

// JoinedRace is one race with both parties' contract prices and both parties'
// forecast win probabilities attached. Forecast probabilities are rounded to
// two decimal places when the row is built.
type JoinedRace struct {
	MarketName string      `json:"market_name"`
	MarketURL  string      `json:"market_url"`
	Key        RaceKey     `json:"key"`
	Democratic PartyQuotes `json:"democratic"`
	Republican PartyQuotes `json:"republican"`
	ForecastD  float64     `json:"forecast_d"`
	ForecastR  float64     `json:"forecast_r"`
}
