package engine

import (
	"testing"

	"github.com/yourusername/race-edge/internal/models"
)

func TestSelectActionPicksMax(t *testing.T) {
	race := testRace()

	opp, ok := SelectAction(race, models.DirectionBuy)
	if !ok {
		t.Fatal("no opportunity selected")
	}
	if opp.ActionRec != "Buy Yes on the Democrat" {
		t.Errorf("action = %q, want %q", opp.ActionRec, "Buy Yes on the Democrat")
	}
	if opp.ActionProfit != 0.20 {
		t.Errorf("profit = %v, want 0.20", opp.ActionProfit)
	}
	if opp.ActionSide != models.DirectionBuy {
		t.Errorf("side = %q, want buy", opp.ActionSide)
	}
	if opp.Seat != "OH-SEN" {
		t.Errorf("seat = %q, want OH-SEN", opp.Seat)
	}

	opp, ok = SelectAction(race, models.DirectionSell)
	if !ok {
		t.Fatal("no sell opportunity selected")
	}
	if opp.ActionRec != "Sell No on the Democrat" {
		t.Errorf("action = %q, want %q", opp.ActionRec, "Sell No on the Democrat")
	}
	if opp.ActionProfit != 0.22 {
		t.Errorf("profit = %v, want 0.22", opp.ActionProfit)
	}
}

// SelectAction must agree with a brute-force max over the candidate list.
func TestSelectActionMatchesBruteForce(t *testing.T) {
	races := []models.JoinedRace{testRace()}

	skewed := testRace()
	skewed.ForecastD = 0.15
	skewed.ForecastR = 0.85
	races = append(races, skewed)

	sparse := testRace()
	sparse.Democratic.BuyYes = nil
	sparse.Republican.BuyNo = nil
	races = append(races, sparse)

	for _, dir := range []models.Direction{models.DirectionBuy, models.DirectionSell} {
		for i, race := range races {
			var want *float64
			for _, cand := range ActionCandidates(race, dir) {
				if cand.Profit == nil {
					continue
				}
				if want == nil || *cand.Profit > *want {
					want = cand.Profit
				}
			}

			opp, ok := SelectAction(race, dir)
			if want == nil {
				if ok {
					t.Errorf("race %d %s: selected from all-nil candidates", i, dir)
				}
				continue
			}
			if !ok {
				t.Errorf("race %d %s: nothing selected, want %v", i, dir, *want)
				continue
			}
			if opp.ActionProfit != *want {
				t.Errorf("race %d %s: profit = %v, want %v", i, dir, opp.ActionProfit, *want)
			}
		}
	}
}

func TestSelectActionTieKeepsFirst(t *testing.T) {
	race := testRace()
	// yes-Democratic and no-Republican both profit 0.20.
	race.Democratic.BuyYes = fptr(0.40)
	race.Republican.BuyNo = fptr(0.40)

	opp, ok := SelectAction(race, models.DirectionBuy)
	if !ok {
		t.Fatal("no opportunity selected")
	}
	if opp.ActionRec != "Buy Yes on the Democrat" {
		t.Errorf("tie broke to %q, want first candidate %q", opp.ActionRec, "Buy Yes on the Democrat")
	}
}

func TestSelectActionAllNil(t *testing.T) {
	race := testRace()
	race.Democratic.BuyYes = nil
	race.Democratic.BuyNo = nil
	race.Republican.BuyYes = nil
	race.Republican.BuyNo = nil

	if _, ok := SelectAction(race, models.DirectionBuy); ok {
		t.Error("selected an opportunity with no quoted buy candidate")
	}
	if _, ok := SelectAction(race, models.DirectionSell); !ok {
		t.Error("sell side should still select")
	}
}

func TestSelectActionCarriesRaceFields(t *testing.T) {
	race := testRace()
	opp, ok := SelectAction(race, models.DirectionBuy)
	if !ok {
		t.Fatal("no opportunity selected")
	}
	if opp.MarketName != race.MarketName || opp.MarketURL != race.MarketURL {
		t.Error("market identity not carried over")
	}
	if opp.ForecastD != race.ForecastD || opp.ForecastR != race.ForecastR {
		t.Error("forecast probabilities not carried over")
	}
	if opp.Democratic != race.Democratic || opp.Republican != race.Republican {
		t.Error("party quotes not carried over")
	}
}
