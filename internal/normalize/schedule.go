package normalize

import (
	"fmt"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

// Schedule builds per-game schedule rows for one team's season. Events
// without a parseable date are dropped; results render "W 72-69" style for
// finished games and "N/A" otherwise, matching the source site.
func Schedule(events []espn.ScheduleEvent, team, teamID string, season int) []records.ScheduleRow {
	rows := make([]records.ScheduleRow, 0, len(events))
	for _, ev := range events {
		if !ev.HasDate {
			continue
		}

		row := records.ScheduleRow{
			Team:       team,
			TeamID:     teamID,
			Season:     season,
			GameID:     ev.GameID,
			GameDay:    formatDay(ev.Date),
			GameTime:   formatTime(ev.Date),
			Opponent:   ev.Opponent,
			OpponentID: ev.OpponentID,
			SeasonType: ev.SeasonType,
			TVNetwork:  ev.Network,
			GameStatus: ev.Status,
			GameResult: "N/A",
		}
		if row.GameStatus == "" {
			row.GameStatus = records.StatusNA
		}
		if ev.Status == records.StatusFinal && ev.WinLoss != "" {
			row.GameResult = fmt.Sprintf("%s %s-%s", ev.WinLoss, ev.TeamScore, ev.OppScore)
		}
		rows = append(rows, row)
	}

	records.SortSchedule(rows)
	return rows
}
