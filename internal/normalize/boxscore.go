package normalize

import (
	"strings"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

// Boxscore builds per-player stat rows from a parsed gamepackage. Each team
// contributes its starters, bench, and one TEAM totals row. The result is
// nil when the page carries no boxscore section; callers treat that as a
// degradation, not an error.
func Boxscore(pkg *espn.GamePackage) []records.BoxscoreRow {
	if len(pkg.Box) == 0 {
		return nil
	}

	var rows []records.BoxscoreRow
	for _, box := range pkg.Box {
		idx := labelIndex(box.Labels)
		for _, line := range box.Starters {
			rows = append(rows, playerRow(pkg.GameID, box.Team, line, idx, true))
		}
		for _, line := range box.Bench {
			rows = append(rows, playerRow(pkg.GameID, box.Team, line, idx, false))
		}
		if len(box.Totals) > 0 {
			rows = append(rows, totalsRow(pkg.GameID, box.Team, box.Totals, idx))
		}
	}
	return rows
}

// labelIndex maps lowercased stat labels to their column position. The site
// reorders columns between seasons, so nothing is parsed by fixed index.
func labelIndex(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, label := range labels {
		idx[strings.ToLower(label)] = i
	}
	return idx
}

func playerRow(gameID, team string, line espn.PlayerLine, idx map[string]int, starter bool) records.BoxscoreRow {
	row := records.BoxscoreRow{
		GameID:   gameID,
		Team:     team,
		Player:   line.Name,
		PlayerID: line.ID,
		Position: line.Position,
		Starter:  starter,
	}
	fillStats(&row, line.Stats, idx)
	return row
}

// totalsRow carries the team's aggregate line. Minutes stay null: the totals
// cell holds a dash or the team minute sum depending on the season, neither
// of which is a player minute count.
func totalsRow(gameID, team string, totals []string, idx map[string]int) records.BoxscoreRow {
	row := records.BoxscoreRow{
		GameID:   gameID,
		Team:     team,
		Player:   "TEAM",
		PlayerID: "TOTAL",
		Position: "TOTAL",
	}
	fillStats(&row, totals, idx)
	row.Minutes = nil
	return row
}

func fillStats(row *records.BoxscoreRow, stats []string, idx map[string]int) {
	// Players with no recorded line (DNP) keep every stat field null.
	if len(stats) == 0 {
		return
	}

	cell := func(label string) string {
		i, ok := idx[label]
		if !ok || i >= len(stats) {
			return ""
		}
		return stats[i]
	}

	row.Minutes = coerceStat(cell("min"))
	row.FieldGoalsMade, row.FieldGoalsAttempted = splitPair(cell("fg"))
	row.ThreePointersMade, row.ThreePointersAttempted = splitPair(cell("3pt"))
	row.FreeThrowsMade, row.FreeThrowsAttempted = splitPair(cell("ft"))
	row.OffensiveRebounds = coerceStat(cell("oreb"))
	row.DefensiveRebounds = coerceStat(cell("dreb"))
	row.Rebounds = coerceStat(cell("reb"))
	row.Assists = coerceStat(cell("ast"))
	row.Steals = coerceStat(cell("stl"))
	row.Blocks = coerceStat(cell("blk"))
	row.Turnovers = coerceStat(cell("to"))
	row.PersonalFouls = coerceStat(cell("pf"))
	row.Points = coerceStat(cell("pts"))

	row.TwoPointersMade = subtract(row.FieldGoalsMade, row.ThreePointersMade)
	row.TwoPointersAttempted = subtract(row.FieldGoalsAttempted, row.ThreePointersAttempted)
}

func subtract(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	n := *a - *b
	return &n
}
