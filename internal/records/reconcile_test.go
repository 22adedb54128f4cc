package records

import (
	"strings"
	"testing"
)

func intPtr(n int) *int { return &n }

func totals(gameID, team string, pts *int) BoxscoreRow {
	return BoxscoreRow{GameID: gameID, Team: team, Player: "TEAM", PlayerID: "TOTAL", Position: "TOTAL", Points: pts}
}

func TestReconcileScoresClean(t *testing.T) {
	info := GameInfo{
		GameID:    "401712345",
		HomeTeam:  "Kansas Jayhawks",
		HomeScore: intPtr(72),
		AwayTeam:  "North Carolina Tar Heels",
		AwayScore: intPtr(69),
	}
	box := []BoxscoreRow{
		{GameID: "401712345", Team: "Kansas Jayhawks", Player: "H. Dickinson", PlayerID: "4433137", Points: intPtr(22)},
		totals("401712345", "Kansas Jayhawks", intPtr(72)),
		totals("401712345", "North Carolina Tar Heels", intPtr(69)),
	}

	if got := ReconcileScores(info, box); len(got) != 0 {
		t.Errorf("mismatches = %v, want none", got)
	}
}

func TestReconcileScoresMismatch(t *testing.T) {
	info := GameInfo{
		GameID:    "401712345",
		HomeTeam:  "Kansas Jayhawks",
		HomeScore: intPtr(72),
		AwayTeam:  "North Carolina Tar Heels",
		AwayScore: intPtr(69),
	}
	box := []BoxscoreRow{
		totals("401712345", "Kansas Jayhawks", intPtr(70)),
		totals("401712345", "North Carolina Tar Heels", intPtr(69)),
	}

	got := ReconcileScores(info, box)
	if len(got) != 1 {
		t.Fatalf("mismatches = %v, want exactly one", got)
	}
	m := got[0]
	if m.Team != "Kansas Jayhawks" || m.BoxPoints != 70 || m.OfficialScore != 72 {
		t.Errorf("mismatch = %+v", m)
	}
	if !strings.Contains(m.String(), "70") || !strings.Contains(m.String(), "72") {
		t.Errorf("String() = %q", m.String())
	}
}

func TestReconcileScoresSkips(t *testing.T) {
	info := GameInfo{
		GameID:   "401712345",
		HomeTeam: "Kansas Jayhawks",
		AwayTeam: "North Carolina Tar Heels",
		// No official scores on record yet.
	}
	box := []BoxscoreRow{
		totals("401712345", "Kansas Jayhawks", intPtr(70)),
		// Individual player lines never participate.
		{GameID: "401712345", Team: "Kansas Jayhawks", Player: "H. Dickinson", PlayerID: "4433137", Points: intPtr(99)},
		// Totals rows from another game are ignored.
		totals("401799999", "Kansas Jayhawks", intPtr(50)),
		// Dash-valued totals are unusable.
		totals("401712345", "North Carolina Tar Heels", nil),
	}

	if got := ReconcileScores(info, box); len(got) != 0 {
		t.Errorf("mismatches = %v, want none", got)
	}
}

func TestReconcileDataset(t *testing.T) {
	d := Dataset{
		Info: []GameInfo{
			{GameID: "1", HomeTeam: "A", HomeScore: intPtr(60), AwayTeam: "B", AwayScore: intPtr(55)},
			{GameID: "2", HomeTeam: "C", HomeScore: intPtr(80), AwayTeam: "D", AwayScore: intPtr(75)},
		},
		Box: []BoxscoreRow{
			totals("1", "A", intPtr(60)),
			totals("1", "B", intPtr(55)),
			totals("2", "C", intPtr(78)),
			totals("2", "D", intPtr(75)),
		},
	}

	got := ReconcileDataset(d)
	if len(got) != 1 {
		t.Fatalf("mismatches = %v, want one", got)
	}
	if got[0].GameID != "2" || got[0].Team != "C" {
		t.Errorf("mismatch = %+v", got[0])
	}
}
