package engine

import "github.com/yourusername/race-edge/internal/models"

// SelectAction picks the highest-profit candidate for one race and direction.
// Candidates are compared in their fixed evaluation order, so an exact tie
// keeps the first one seen. When no candidate has a quoted price the race
// yields no opportunity for this direction.
func SelectAction(race models.JoinedRace, dir models.Direction) (models.Opportunity, bool) {
	var best models.ActionCandidate
	found := false
	for _, cand := range ActionCandidates(race, dir) {
		if cand.Profit == nil {
			continue
		}
		if !found || *cand.Profit > *best.Profit {
			best = cand
			found = true
		}
	}
	if !found {
		return models.Opportunity{}, false
	}

	return models.Opportunity{
		MarketName:   race.MarketName,
		MarketURL:    race.MarketURL,
		Seat:         race.Key.String(),
		Democratic:   race.Democratic,
		Republican:   race.Republican,
		ForecastD:    race.ForecastD,
		ForecastR:    race.ForecastR,
		ActionRec:    models.ActionLabel(best.Direction, best.Side, best.Party),
		ActionSide:   dir,
		ActionProfit: *best.Profit,
	}, true
}
