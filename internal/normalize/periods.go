// Package normalize turns parsed page fragments into the canonical row
// records: resolving team identity, deriving fields the payload doesn't
// carry, and enforcing ordering invariants.
package normalize

import (
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

// Women's games switched from two 20-minute halves to four 10-minute
// quarters starting with the 2015-16 season.
var womensQuarterDate = time.Date(2015, time.May, 1, 0, 0, 0, 0, time.UTC)

const (
	halfSecs    = 1200
	quarterSecs = 600
)

// periodType says whether a game divides regulation into halves or quarters,
// which depends on the league and (for women) the game date.
func periodType(league espn.League, gameDate time.Time) records.PeriodType {
	if league == espn.Womens && !gameDate.Before(womensQuarterDate) {
		return records.PeriodQuarter
	}
	return records.PeriodHalf
}

// regulationPeriods is how many periods a regulation game has.
func regulationPeriods(pt records.PeriodType) int {
	if pt == records.PeriodQuarter {
		return 4
	}
	return 2
}

// secsLeftReg computes seconds remaining in regulation from the period
// number and the in-period clock. Overtime periods clamp to the in-period
// value since regulation is already over.
func secsLeftReg(pt records.PeriodType, period, clockSecs int) int {
	reg := regulationPeriods(pt)
	if period >= reg {
		return clockSecs
	}
	perPeriod := halfSecs
	if pt == records.PeriodQuarter {
		perPeriod = quarterSecs
	}
	return (reg-period)*perPeriod + clockSecs
}
