package records

import (
	"regexp"
	"sort"
	"time"
)

// Batch outputs are sorted into a fixed order so repeated scrapes of the
// same window produce identical tables.

var tzSuffixRe = regexp.MustCompile(` P[SD]T$`)

// SortGameInfo orders rows by game day, then tip time, then game id.
func SortGameInfo(rows []GameInfo) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := infoDay(rows[i]), infoDay(rows[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		ti, tj := infoTime(rows[i]), infoTime(rows[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return rows[i].GameID < rows[j].GameID
	})
}

// SortBoxscore orders rows by game id descending, then team descending.
func SortBoxscore(rows []BoxscoreRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GameID != rows[j].GameID {
			return rows[i].GameID > rows[j].GameID
		}
		return rows[i].Team > rows[j].Team
	})
}

// SortPlayEvents orders rows by game id descending, keeping each game's
// internal play order.
func SortPlayEvents(rows []PlayEvent) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].GameID > rows[j].GameID
	})
}

// SortPlaysByClock orders one game's plays by period ascending and clock
// descending, the canonical in-game order.
func SortPlaysByClock(rows []PlayEvent) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period < rows[j].Period
		}
		return rows[i].SecsLeftPeriod > rows[j].SecsLeftPeriod
	})
}

// SortSchedule orders rows by team, then game day.
func SortSchedule(rows []ScheduleRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		di, _ := time.Parse("January 02, 2006", rows[i].GameDay)
		dj, _ := time.Parse("January 02, 2006", rows[j].GameDay)
		return di.Before(dj)
	})
}

// Sort applies the canonical batch ordering to all three tables.
func (d *Dataset) Sort() {
	SortGameInfo(d.Info)
	SortBoxscore(d.Box)
	SortPlayEvents(d.PBP)
}

func infoDay(r GameInfo) time.Time {
	if r.GameDay == nil {
		return time.Time{}
	}
	t, _ := time.Parse("January 02, 2006", *r.GameDay)
	return t
}

func infoTime(r GameInfo) time.Time {
	if r.GameTime == nil {
		return time.Time{}
	}
	t, _ := time.Parse("03:04 PM", tzSuffixRe.ReplaceAllString(*r.GameTime, ""))
	return t
}
