package engine

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/race-edge/internal/models"
)

// round2 rounds to two decimal places through exact decimal arithmetic so
// boundary values like 0.615 land on 0.62 instead of drifting on float error.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// buyProfit is the expected profit per share of buying a contract side at
// price when the event it pays on has the given win probability. Nil price
// means no quote, which yields no candidate rather than a zero.
func buyProfit(winProb float64, price *float64) *float64 {
	if price == nil {
		return nil
	}
	p := round2(winProb - *price)
	return &p
}

// sellProfit mirrors buyProfit for the sell direction: premium received minus
// the probability the sold side pays out.
func sellProfit(price *float64, winProb float64) *float64 {
	if price == nil {
		return nil
	}
	p := round2(*price - winProb)
	return &p
}

// ActionCandidates returns the four candidates for one race and direction in
// fixed evaluation order: yes-Democratic, no-Republican, yes-Republican,
// no-Democratic. Yes on one party and No on the other both pay on the same
// outcome, so they price against the same forecast probability.
func ActionCandidates(race models.JoinedRace, dir models.Direction) []models.ActionCandidate {
	d, r := race.Democratic, race.Republican

	switch dir {
	case models.DirectionBuy:
		return []models.ActionCandidate{
			{Direction: dir, Side: models.SideYes, Party: models.PartyDemocratic, Profit: buyProfit(race.ForecastD, d.BuyYes)},
			{Direction: dir, Side: models.SideNo, Party: models.PartyRepublican, Profit: buyProfit(race.ForecastD, r.BuyNo)},
			{Direction: dir, Side: models.SideYes, Party: models.PartyRepublican, Profit: buyProfit(race.ForecastR, r.BuyYes)},
			{Direction: dir, Side: models.SideNo, Party: models.PartyDemocratic, Profit: buyProfit(race.ForecastR, d.BuyNo)},
		}
	case models.DirectionSell:
		return []models.ActionCandidate{
			{Direction: dir, Side: models.SideYes, Party: models.PartyDemocratic, Profit: sellProfit(d.SellYes, race.ForecastD)},
			{Direction: dir, Side: models.SideNo, Party: models.PartyRepublican, Profit: sellProfit(r.SellNo, race.ForecastD)},
			{Direction: dir, Side: models.SideYes, Party: models.PartyRepublican, Profit: sellProfit(r.SellYes, race.ForecastR)},
			{Direction: dir, Side: models.SideNo, Party: models.PartyDemocratic, Profit: sellProfit(d.SellNo, race.ForecastR)},
		}
	}
	return nil
}
