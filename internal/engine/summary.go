package engine

import (
	"sort"

	"github.com/yourusername/race-edge/internal/models"
)

// SummarizeActions groups ranked opportunities by recommendation label and
// counts seats per group. Groups are ordered by descending count; equal
// counts keep first-seen order, and each group's seats keep ranked order.
func SummarizeActions(opps []models.Opportunity) []models.ActionSummary {
	index := make(map[string]int)
	summaries := make([]models.ActionSummary, 0)

	for _, o := range opps {
		i, ok := index[o.ActionRec]
		if !ok {
			i = len(summaries)
			index[o.ActionRec] = i
			summaries = append(summaries, models.ActionSummary{ActionRec: o.ActionRec})
		}
		summaries[i].Count++
		summaries[i].Seats = append(summaries[i].Seats, o.Seat)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	return summaries
}
