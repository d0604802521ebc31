package engine

import (
	"testing"

	"github.com/yourusername/race-edge/internal/models"
)

func opp(seat string, side models.Direction, profit float64) models.Opportunity {
	return models.Opportunity{Seat: seat, ActionSide: side, ActionProfit: profit}
}

func TestFilterOpportunitiesInclusiveThreshold(t *testing.T) {
	opps := []models.Opportunity{
		opp("OH-SEN", models.DirectionBuy, 0.20),
		opp("PA-SEN", models.DirectionBuy, 0.05),
		opp("NV-SEN", models.DirectionBuy, 0.04),
		opp("GA-SEN", models.DirectionSell, -0.10),
	}

	kept := FilterOpportunities(opps, 0.05)
	if len(kept) != 2 {
		t.Fatalf("kept %d, want 2", len(kept))
	}
	if kept[0].Seat != "OH-SEN" || kept[1].Seat != "PA-SEN" {
		t.Errorf("kept = %q, %q", kept[0].Seat, kept[1].Seat)
	}
}

func TestFilterOpportunitiesEmpty(t *testing.T) {
	if kept := FilterOpportunities(nil, 0.05); len(kept) != 0 {
		t.Errorf("kept %d from nil input", len(kept))
	}
}

func TestRankOpportunitiesProfitDescending(t *testing.T) {
	opps := []models.Opportunity{
		opp("A", models.DirectionBuy, 0.05),
		opp("B", models.DirectionBuy, 0.30),
		opp("C", models.DirectionSell, 0.12),
	}

	RankOpportunities(opps)

	for i := 1; i < len(opps); i++ {
		if opps[i].ActionProfit > opps[i-1].ActionProfit {
			t.Fatalf("profit increased at %d: %v after %v", i, opps[i].ActionProfit, opps[i-1].ActionProfit)
		}
	}
	if opps[0].Seat != "B" || opps[1].Seat != "C" || opps[2].Seat != "A" {
		t.Errorf("order = %q %q %q", opps[0].Seat, opps[1].Seat, opps[2].Seat)
	}
}

func TestRankOpportunitiesSellBeforeBuyOnTies(t *testing.T) {
	opps := []models.Opportunity{
		opp("A", models.DirectionBuy, 0.10),
		opp("B", models.DirectionSell, 0.10),
		opp("C", models.DirectionBuy, 0.10),
		opp("D", models.DirectionSell, 0.10),
	}

	RankOpportunities(opps)

	wantOrder := []string{"B", "D", "A", "C"}
	for i, want := range wantOrder {
		if opps[i].Seat != want {
			t.Errorf("position %d = %q, want %q", i, opps[i].Seat, want)
		}
	}
}

// Ranking the same input twice must give the same order.
func TestRankOpportunitiesDeterministic(t *testing.T) {
	build := func() []models.Opportunity {
		return []models.Opportunity{
			opp("A", models.DirectionBuy, 0.10),
			opp("B", models.DirectionSell, 0.10),
			opp("C", models.DirectionBuy, 0.25),
			opp("D", models.DirectionSell, 0.05),
			opp("E", models.DirectionBuy, 0.10),
		}
	}

	first := build()
	second := build()
	RankOpportunities(first)
	RankOpportunities(second)

	for i := range first {
		if first[i].Seat != second[i].Seat {
			t.Fatalf("position %d differs between runs: %q vs %q", i, first[i].Seat, second[i].Seat)
		}
	}
}
