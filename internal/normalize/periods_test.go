package normalize

import (
	"testing"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

func TestPeriodType(t *testing.T) {
	old := time.Date(2014, time.December, 1, 0, 0, 0, 0, time.UTC)
	modern := time.Date(2016, time.January, 15, 0, 0, 0, 0, time.UTC)

	if got := periodType(espn.Mens, modern); got != records.PeriodHalf {
		t.Errorf("mens modern = %q, want half", got)
	}
	if got := periodType(espn.Womens, old); got != records.PeriodHalf {
		t.Errorf("womens pre-2015 = %q, want half", got)
	}
	if got := periodType(espn.Womens, modern); got != records.PeriodQuarter {
		t.Errorf("womens post-2015 = %q, want quarter", got)
	}
	// The cutover date itself already plays quarters.
	if got := periodType(espn.Womens, womensQuarterDate); got != records.PeriodQuarter {
		t.Errorf("womens on cutover = %q, want quarter", got)
	}
}

func TestSecsLeftReg(t *testing.T) {
	cases := []struct {
		pt     records.PeriodType
		period int
		clock  int
		want   int
	}{
		{records.PeriodHalf, 1, 600, 1800},
		{records.PeriodHalf, 2, 84, 84},
		// Overtime clamps to the in-period clock.
		{records.PeriodHalf, 3, 30, 30},
		{records.PeriodQuarter, 1, 0, 1800},
		{records.PeriodQuarter, 2, 300, 1500},
		{records.PeriodQuarter, 4, 10, 10},
		{records.PeriodQuarter, 5, 45, 45},
	}
	for _, tc := range cases {
		if got := secsLeftReg(tc.pt, tc.period, tc.clock); got != tc.want {
			t.Errorf("secsLeftReg(%s, %d, %d) = %d, want %d", tc.pt, tc.period, tc.clock, got, tc.want)
		}
	}
}
