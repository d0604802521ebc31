package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yourusername/race-edge/internal/models"
)

// Chamber describes one race type the scanner understands: how to recognize
// its market labels and which forecast toplines file covers it.
type Chamber struct {
	Name    string
	Contest string
	Pattern *regexp.Regexp
}

// The pattern's first capture group is the two-letter region, the second a
// short contest token that is uppercased into the race key ("OH-SEN",
// "TX-GOV"). Labels that match neither pattern are not races we cover.
var (
	Senate = Chamber{
		Name:    "senate",
		Contest: "SEN",
		Pattern: regexp.MustCompile(`Which party will win the ([A-Z]{2}) (Sen)ate race`),
	}
	Governor = Chamber{
		Name:    "governor",
		Contest: "GOV",
		Pattern: regexp.MustCompile(`Which party will win ([A-Z]{2}) (gov)ernor's race`),
	}
)

// AllChambers returns the covered chambers in scan order.
func AllChambers() []Chamber {
	return []Chamber{Senate, Governor}
}

// ChamberByName looks up a chamber by its config name.
func ChamberByName(name string) (Chamber, bool) {
	for _, c := range AllChambers() {
		if c.Name == name {
			return c, true
		}
	}
	return Chamber{}, false
}

// ToplinesFile returns the chamber's forecast filename for an election cycle,
// e.g. "senate_state_toplines_2022.csv".
func (c Chamber) ToplinesFile(cycle int) string {
	return fmt.Sprintf("%s_state_toplines_%d.csv", c.Name, cycle)
}

// ExtractRaceKey derives the canonical race key from a market label. The
// boolean is false when the label is not a race this chamber covers; that is
// an exclusion, never an error.
func (c Chamber) ExtractRaceKey(label string) (models.RaceKey, bool) {
	m := c.Pattern.FindStringSubmatch(label)
	if len(m) < 3 {
		return models.RaceKey{}, false
	}
	return models.RaceKey{Region: m[1], Contest: strings.ToUpper(m[2])}, true
}
