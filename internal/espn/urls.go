package espn

import (
	"fmt"
	"time"
)

// League selects which college basketball section of the site to scrape.
// Every operation takes it as a parameter; the two leagues share all code.
type League string

const (
	Mens   League = "mens"
	Womens League = "womens"
)

// Valid reports whether the league is one of the two supported values.
func (l League) Valid() bool {
	return l == Mens || l == Womens
}

func (l League) slug() string {
	return string(l) + "-college-basketball"
}

const siteRoot = "https://www.espn.com"

// GameURL is the game summary page for one game.
func GameURL(l League, gameID string) string {
	return fmt.Sprintf("%s/%s/game/_/gameId/%s", siteRoot, l.slug(), gameID)
}

// BoxscoreURL is the boxscore page for one game.
func BoxscoreURL(l League, gameID string) string {
	return fmt.Sprintf("%s/%s/boxscore/_/gameId/%s", siteRoot, l.slug(), gameID)
}

// PlayByPlayURL is the play-by-play page for one game.
func PlayByPlayURL(l League, gameID string) string {
	return fmt.Sprintf("%s/%s/playbyplay/_/gameId/%s", siteRoot, l.slug(), gameID)
}

// PlayerURL is the bio page for one player.
func PlayerURL(l League, playerID string) string {
	return fmt.Sprintf("%s/%s/player/_/id/%s", siteRoot, l.slug(), playerID)
}

// ScheduleURL is a team's schedule page for one season.
func ScheduleURL(l League, teamID string, season int) string {
	return fmt.Sprintf("%s/%s/team/schedule/_/id/%s/season/%d", siteRoot, l.slug(), teamID, season)
}

// ScoreboardURL is the regular-season scoreboard for one date, across all
// conferences (group 50).
func ScoreboardURL(l League, date time.Time) string {
	return fmt.Sprintf("%s/%s/scoreboard/_/date/%s/seasontype/2/group/50",
		siteRoot, l.slug(), date.Format("20060102"))
}
