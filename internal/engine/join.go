package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/models"
)

type pairKey struct {
	name string
	url  string
	key  models.RaceKey
}

// prepareForecasts filters toplines rows to the configured model variant,
// keeps the first row per district, and keys the survivors by race key. Rows
// dropped here never surface as errors.
func (e *Engine) prepareForecasts(chamber Chamber, rows []models.ForecastRecord, diag *Diagnostics) map[models.RaceKey]models.ForecastRecord {
	diag.ForecastRows += len(rows)

	seen := make(map[string]bool, len(rows))
	out := make(map[models.RaceKey]models.ForecastRecord, len(rows))
	for _, row := range rows {
		if row.Expression != e.cfg.Expression {
			diag.ForecastVariantDropped++
			continue
		}
		if seen[row.District] {
			diag.ForecastDuplicates++
			continue
		}
		seen[row.District] = true
		key := models.RaceKey{Region: row.Region(), Contest: chamber.Contest}
		out[key] = row
	}
	return out
}

// joinChamber pairs each race's Democratic and Republican contracts on
// (market name, market URL, race key) and attaches the chamber's forecast.
// Iteration drives from the Democratic side so output order follows feed
// order, which keeps identical inputs producing identical output.
func (e *Engine) joinChamber(chamber Chamber, contracts []models.MarketContract, forecasts map[models.RaceKey]models.ForecastRecord, diag *Diagnostics) []models.JoinedRace {
	type demContract struct {
		pk     pairKey
		quotes models.PartyQuotes
	}

	var dems []demContract
	demSeen := make(map[pairKey]bool)
	reps := make(map[pairKey]models.PartyQuotes)

	keyed := 0
	for _, c := range contracts {
		key, ok := chamber.ExtractRaceKey(c.MarketName)
		if !ok {
			continue
		}
		keyed++
		pk := pairKey{name: c.MarketName, url: c.MarketURL, key: key}
		switch c.Party {
		case models.PartyDemocratic:
			if demSeen[pk] {
				continue
			}
			demSeen[pk] = true
			dems = append(dems, demContract{pk: pk, quotes: c.Quotes()})
		case models.PartyRepublican:
			if _, dup := reps[pk]; dup {
				continue
			}
			reps[pk] = c.Quotes()
		default:
			// third-party contracts never pair
		}
	}
	diag.ContractsKeyed += keyed

	paired := 0
	joined := make([]models.JoinedRace, 0, len(dems))
	for _, d := range dems {
		r, ok := reps[d.pk]
		if !ok {
			diag.PartiesUnpaired++
			continue
		}
		paired++

		fc, ok := forecasts[d.pk.key]
		if !ok {
			diag.RacesWithoutForecast++
			e.logger.WithFields(logrus.Fields{
				"chamber": chamber.Name,
				"seat":    d.pk.key.String(),
				"market":  d.pk.name,
			}).Debug("No forecast row for market race")
			continue
		}

		joined = append(joined, models.JoinedRace{
			MarketName: d.pk.name,
			MarketURL:  d.pk.url,
			Key:        d.pk.key,
			Democratic: d.quotes,
			Republican: r,
			ForecastD:  round2(fc.WinProbD),
			ForecastR:  round2(fc.WinProbR),
		})
	}
	diag.PartiesUnpaired += len(reps) - paired
	diag.RacesJoined += len(joined)

	return joined
}
