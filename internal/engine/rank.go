package engine

import (
	"sort"

	"github.com/yourusername/race-edge/internal/models"
)

// FilterOpportunities keeps opportunities whose rounded profit meets the
// per-share minimum. The threshold is inclusive: a profit exactly at the
// minimum survives.
func FilterOpportunities(opps []models.Opportunity, minProfit float64) []models.Opportunity {
	kept := make([]models.Opportunity, 0, len(opps))
	for _, o := range opps {
		if o.ActionProfit >= minProfit {
			kept = append(kept, o)
		}
	}
	return kept
}

// RankOpportunities sorts in place: profit descending as the dominant key,
// with equal profits listing sell actions before buy actions and otherwise
// keeping their incoming order. Two stable passes make that ordering exact.
func RankOpportunities(opps []models.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		return sideRank(opps[i].ActionSide) < sideRank(opps[j].ActionSide)
	})
	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].ActionProfit > opps[j].ActionProfit
	})
}

func sideRank(d models.Direction) int {
	if d == models.DirectionSell {
		return 0
	}
	return 1
}
