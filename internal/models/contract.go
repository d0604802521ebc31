package models

import "fmt"

// Party identifies one of the two major parties, using the contract name the
// venue lists ("Democratic" / "Republican").
type Party string

const (
	PartyDemocratic Party = "Democratic"
	PartyRepublican Party = "Republican"
)

// FullName returns the party noun used in recommendation labels.
func (p Party) FullName() string {
	switch p {
	case PartyDemocratic:
		return "Democrat"
	case PartyRepublican:
		return "Republican"
	}
	return string(p)
}

// MarketContract is one tradable contract flattened from the venue's market
// data feed. Prices are win probabilities in [0,1]; a nil price means the
// venue currently shows no quote on that side.
type MarketContract struct {
	MarketName string   `json:"market_name"`
	MarketURL  string   `json:"market_url"`
	Party      Party    `json:"party"`
	BuyYes     *float64 `json:"buy_yes"`
	BuyNo      *float64 `json:"buy_no"`
	SellYes    *float64 `json:"sell_yes"`
	SellNo     *float64 `json:"sell_no"`
}

// Quotes returns the contract's four prices as a PartyQuotes value.
func (c *MarketContract) Quotes() PartyQuotes {
	return PartyQuotes{
		BuyYes:  c.BuyYes,
		BuyNo:   c.BuyNo,
		SellYes: c.SellYes,
		SellNo:  c.SellNo,
	}
}

// Fingerprint returns a stable identity string covering every field. The feed
// occasionally repeats rows; exact duplicates collapse on this key.
func (c *MarketContract) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		c.MarketName, c.MarketURL, c.Party,
		fmtPrice(c.BuyYes), fmtPrice(c.BuyNo), fmtPrice(c.SellYes), fmtPrice(c.SellNo))
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *p)
}
