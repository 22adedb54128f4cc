package normalize

import (
	"log"
	"strings"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
)

// Play descriptions are classified against a prioritized rule table: the
// non-shot vocabulary wins over the shot vocabulary because descriptions
// like "Block" or "Rebound" often also name the shot they answer. An
// unmatched description degrades to PlayTypeOther with the raw text
// preserved in the row; plays are never dropped for being unrecognized.

// PlayTypeOther is the fallback classification for descriptions no rule
// matches.
const PlayTypeOther = "other"

type playRule struct {
	pattern string
	shot    bool
}

var playRules = []playRule{
	{"TV Timeout", false},
	{"Jump Ball", false},
	{"Turnover", false},
	{"Timeout", false},
	{"Rebound", false},
	{"Block", false},
	{"Steal", false},
	{"Foul", false},
	{"End", false},
	{"Three Point Jumper", true},
	{"Two Point Tip Shot", true},
	{"Free Throw", true},
	{"Jumper", true},
	{"Layup", true},
	{"Dunk", true},
}

// classifyPlay matches a description against the rule table, returning the
// lowercased play type and whether it is a shooting play.
func classifyPlay(text string) (string, bool) {
	for _, rule := range playRules {
		if strings.Contains(text, rule.pattern) {
			return strings.ToLower(rule.pattern), rule.shot
		}
	}
	return PlayTypeOther, false
}

// PlayByPlay builds ordered play rows from a parsed gamepackage. The result
// is nil when the page carries no play-by-play section. Rows come back
// sorted by (period ascending, clock descending) even when the source
// violates that order.
func PlayByPlay(pkg *espn.GamePackage, league espn.League) []records.PlayEvent {
	if pkg.PBP == nil || len(pkg.PBP.Plays) == 0 {
		return nil
	}
	frag := pkg.PBP

	pt := periodType(league, pkg.Tipoff)
	rows := make([]records.PlayEvent, 0, len(frag.Plays))
	for _, play := range frag.Plays {
		rows = append(rows, playRow(pkg.GameID, frag, play, pt))
	}

	matchShotChart(pkg.GameID, rows, frag)
	records.SortPlaysByClock(rows)
	return rows
}

func playRow(gameID string, frag *espn.PlayByPlayFragment, play espn.PlayFragment, pt records.PeriodType) records.PlayEvent {
	row := records.PlayEvent{
		GameID:         gameID,
		HomeTeam:       frag.HomeTeam,
		AwayTeam:       frag.AwayTeam,
		HomeScore:      play.HomeScore,
		AwayScore:      play.AwayScore,
		Period:         play.Period,
		PeriodType:     pt,
		SecsLeftPeriod: play.ClockSecs,
		SecsLeftReg:    secsLeftReg(pt, play.Period, play.ClockSecs),
		ScoringPlay:    play.Scoring,
	}

	if play.Text != "" {
		text := play.Text
		row.PlayDesc = &text
	}

	switch play.HomeAway {
	case "home":
		row.PlayTeam = &frag.HomeTeam
	case "away":
		row.PlayTeam = &frag.AwayTeam
	}

	row.PlayType, row.ShootingPlay = classifyPlay(play.Text)
	row.IsThree = strings.Contains(strings.ToLower(play.Text), "three point")

	if shooter := extractShooter(play.Text, row.ShootingPlay, play.Scoring); shooter != "" {
		row.Shooter = &shooter
	}
	if assist := extractAssist(play.Text); assist != "" {
		row.IsAssisted = true
		row.AssistPlayer = &assist
	}
	return row
}

// extractShooter pulls the acting player off the front of a shot
// description: everything before " made " or " missed ".
func extractShooter(text string, shooting, scoring bool) string {
	if scoring {
		if name, _, ok := strings.Cut(text, " made "); ok {
			return name
		}
	}
	if shooting && !scoring {
		if name, _, ok := strings.Cut(text, " missed "); ok {
			return name
		}
	}
	return ""
}

// extractAssist pulls the assisting player from the trailing
// "Assisted by {name}." clause.
func extractAssist(text string) string {
	if !strings.Contains(strings.ToLower(text), "assisted") {
		return ""
	}
	i := strings.LastIndex(text, "Assisted by ")
	if i < 0 {
		return ""
	}
	name := text[i+len("Assisted by "):]
	return strings.TrimSuffix(strings.TrimSpace(name), ".")
}

// matchShotChart walks shot chart entries against shooting plays in source
// order. Free throws consume a chart slot but take no coordinates. Leftover
// chart entries are logged and dropped; plays that did pair up keep their
// coordinates.
func matchShotChart(gameID string, rows []records.PlayEvent, frag *espn.PlayByPlayFragment) {
	if !frag.HasChart || len(frag.ShotChart) == 0 {
		return
	}
	chart := frag.ShotChart

	next := 0
	for i := range rows {
		if next >= len(chart) || !rows[i].ShootingPlay || rows[i].PlayDesc == nil {
			continue
		}
		desc := *rows[i].PlayDesc

		if strings.Contains(strings.ToLower(desc), "free throw") {
			next++
			continue
		}

		if desc == chart[next].Text {
			// The chart's x axis runs opposite the court diagram; mirror it.
			x, y := 50-chart[next].X, chart[next].Y
			rows[i].ShotX, rows[i].ShotY = &x, &y
			next++
		}
	}

	if next != len(chart) {
		log.Printf("[normalize] ⚠️ %s - shot chart has %d unmatched entries",
			gameID, len(chart)-next)
	}
}
