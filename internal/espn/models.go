package espn

import "time"

// Fragments are the typed, tolerantly-coerced view of one page's payload.
// They stay close to the payload's own shape; turning them into row records
// is the normalizer's job.

// TeamFragment is one side of the game header strip (gmStrp.tms).
type TeamFragment struct {
	DisplayName string
	ID          string
	Rank        *int
	Record      *string
	Score       *int
	Linescores  int
	HasLine     bool
	HasLinks    bool
	HasRecords  bool
}

// GamePackage is the parsed page.content.gamepackage section shared by the
// game, boxscore, and play-by-play pages. Box is nil when the page carries
// no boxscore section; PBP is nil when it carries no play-by-play section.
type GamePackage struct {
	GameID       string
	Status       string
	SeasonType   int
	IsConference bool
	IsNeutral    bool
	Tournament   *string

	Home TeamFragment
	Away TeamFragment

	Tipoff    time.Time
	HasTipoff bool

	Arena      *string
	Location   *string
	Capacity   *int
	Attendance *int
	Network    *string
	Referees   []string
	HomeSpread *string

	Box []TeamBox
	PBP *PlayByPlayFragment
}

// TeamBox is one team's boxscore block: the stat label row plus starters,
// bench, and the team totals line.
type TeamBox struct {
	Team     string
	Labels   []string
	Starters []PlayerLine
	Bench    []PlayerLine
	Totals   []string
}

// PlayerLine is one player's raw stat row. Stats are positional against the
// team's Labels; an empty Stats slice means the player has no recorded line.
type PlayerLine struct {
	Name     string
	ID       string
	Position string
	Stats    []string
}

// PlayByPlayFragment is the pbp section plus the shot chart when present.
type PlayByPlayFragment struct {
	HomeTeam  string
	AwayTeam  string
	Plays     []PlayFragment
	ShotChart []ShotFragment
	HasChart  bool
}

// PlayFragment is one play as the payload renders it. Plays lacking a period
// or clock are unusable and dropped by the parser.
type PlayFragment struct {
	Text      string
	HomeAway  string
	HomeScore *int
	AwayScore *int
	Period    int
	ClockSecs int
	Scoring   bool
}

// ShotFragment is one shot chart entry; coordinates are raw payload values.
type ShotFragment struct {
	Text string
	X    int
	Y    int
}

// ScoreboardEvent is one game on a date's scoreboard page.
type ScoreboardEvent struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	Status    string
}

// ScheduleEvent is one game on a team's schedule page.
type ScheduleEvent struct {
	GameID     *string
	Date       time.Time
	HasDate    bool
	Opponent   string
	OpponentID string
	Network    *string
	SeasonType string
	Status     string
	WinLoss    string
	TeamScore  string
	OppScore   string
}

// PlayerFragment is the parsed player bio page: the header block merged with
// the common-API athlete block.
type PlayerFragment struct {
	FirstName    *string
	LastName     *string
	JerseyNumber *string
	Position     *string
	Status       string
	Pro          bool
	Team         *string
	CollegeTeam  *string
	Experience   *string
	Height       *string
	Weight       *string
	Birthplace   *string
	DateOfBirth  *string
}
