package records

import "fmt"

// The boxscore and the game header come from different blocks of the same
// page and occasionally disagree on final scores. That disagreement is a
// data-quality signal, not a failure: callers log it and keep both rows.

// ScoreMismatch reports a team whose summed boxscore points differ from the
// official score in the game header.
type ScoreMismatch struct {
	GameID        string `json:"game_id"`
	Team          string `json:"team"`
	BoxPoints     int    `json:"box_points"`
	OfficialScore int    `json:"official_score"`
}

func (m ScoreMismatch) String() string {
	return fmt.Sprintf("%s boxscore sums to %d points but the official score is %d",
		m.Team, m.BoxPoints, m.OfficialScore)
}

// ReconcileScores compares each team's boxscore totals row against the
// official score for that game. Teams missing either side are skipped.
func ReconcileScores(info GameInfo, box []BoxscoreRow) []ScoreMismatch {
	official := map[string]*int{
		info.HomeTeam: info.HomeScore,
		info.AwayTeam: info.AwayScore,
	}

	var mismatches []ScoreMismatch
	for _, row := range box {
		if row.GameID != info.GameID || !row.IsTeamTotal() || row.Points == nil {
			continue
		}
		score, ok := official[row.Team]
		if !ok || score == nil {
			continue
		}
		if *row.Points != *score {
			mismatches = append(mismatches, ScoreMismatch{
				GameID:        info.GameID,
				Team:          row.Team,
				BoxPoints:     *row.Points,
				OfficialScore: *score,
			})
		}
	}
	return mismatches
}

// ReconcileDataset runs the score check across every game in a dataset.
func ReconcileDataset(d Dataset) []ScoreMismatch {
	byGame := make(map[string][]BoxscoreRow)
	for _, row := range d.Box {
		byGame[row.GameID] = append(byGame[row.GameID], row)
	}

	var mismatches []ScoreMismatch
	for _, info := range d.Info {
		mismatches = append(mismatches, ReconcileScores(info, byGame[info.GameID])...)
	}
	return mismatches
}
