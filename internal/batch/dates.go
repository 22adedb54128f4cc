package batch

import (
	"fmt"
	"time"
)

// Accepted layouts for user-supplied dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01-02-2006",
	"01/02/2006",
}

// ParseDate parses a user-supplied date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q (want YYYY-MM-DD or MM/DD/YYYY)", s)
}

// SeasonWindow is the date range a season's games can fall in: November 1 of
// the year before through May 1 of the season year.
func SeasonWindow(season int) (time.Time, time.Time) {
	start := time.Date(season-1, time.November, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(season, time.May, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// CurrentSeason names the season in progress (or next up) as of now. Seasons
// are named by their ending year, and a new one starts with October.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}

func enumerateDates(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := truncateDate(start); !d.After(truncateDate(end)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
