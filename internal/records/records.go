// Package records defines the flat row schemas produced by the scraping
// pipeline. Every record is an immutable value; optional fields are pointers
// so a missing value is a real null, not a zero stand-in.
package records

// PeriodType says how a game divides regulation time.
type PeriodType string

const (
	PeriodHalf    PeriodType = "half"
	PeriodQuarter PeriodType = "quarter"
)

// Game statuses as the source site spells them.
const (
	StatusFinal      = "Final"
	StatusInProgress = "In Progress"
	StatusScheduled  = "Scheduled"
	StatusPostponed  = "Postponed"
	StatusNA         = "N/A"
)

// GameInfo is one row of game metadata.
type GameInfo struct {
	GameID          string  `json:"game_id"`
	GameStatus      string  `json:"game_status"`
	HomeTeam        string  `json:"home_team"`
	HomeID          string  `json:"home_id"`
	HomeRank        *int    `json:"home_rank"`
	HomeRecord      *string `json:"home_record"`
	HomeScore       *int    `json:"home_score"`
	AwayTeam        string  `json:"away_team"`
	AwayID          string  `json:"away_id"`
	AwayRank        *int    `json:"away_rank"`
	AwayRecord      *string `json:"away_record"`
	AwayScore       *int    `json:"away_score"`
	HomePointSpread *string `json:"home_point_spread"`
	HomeWin         bool    `json:"home_win"`
	NumOTs          int     `json:"num_ots"`
	IsConference    bool    `json:"is_conference"`
	IsNeutral       bool    `json:"is_neutral"`
	IsPostseason    bool    `json:"is_postseason"`
	Tournament      *string `json:"tournament"`
	GameDay         *string `json:"game_day"`
	GameTime        *string `json:"game_time"`
	GameLoc         *string `json:"game_loc"`
	Arena           *string `json:"arena"`
	ArenaCapacity   *int    `json:"arena_capacity"`
	Attendance      *int    `json:"attendance"`
	TVNetwork       *string `json:"tv_network"`
	Referee1        *string `json:"referee_1"`
	Referee2        *string `json:"referee_2"`
	Referee3        *string `json:"referee_3"`
}

// BoxscoreRow is one player's line for one game. Each team also gets a
// totals row with Player "TEAM" and PlayerID/Position "TOTAL".
type BoxscoreRow struct {
	GameID                 string `json:"game_id"`
	Team                   string `json:"team"`
	Player                 string `json:"player"`
	PlayerID               string `json:"player_id"`
	Position               string `json:"position"`
	Starter                bool   `json:"starter"`
	Minutes                *int   `json:"min"`
	FieldGoalsMade         *int   `json:"fgm"`
	FieldGoalsAttempted    *int   `json:"fga"`
	TwoPointersMade        *int   `json:"2pm"`
	TwoPointersAttempted   *int   `json:"2pa"`
	ThreePointersMade      *int   `json:"3pm"`
	ThreePointersAttempted *int   `json:"3pa"`
	FreeThrowsMade         *int   `json:"ftm"`
	FreeThrowsAttempted    *int   `json:"fta"`
	OffensiveRebounds      *int   `json:"oreb"`
	DefensiveRebounds      *int   `json:"dreb"`
	Rebounds               *int   `json:"reb"`
	Assists                *int   `json:"ast"`
	Steals                 *int   `json:"stl"`
	Blocks                 *int   `json:"blk"`
	Turnovers              *int   `json:"to"`
	PersonalFouls          *int   `json:"pf"`
	Points                 *int   `json:"pts"`
}

// IsTeamTotal reports whether the row is a team totals row rather than an
// individual player line.
func (r BoxscoreRow) IsTeamTotal() bool {
	return r.Player == "TEAM" && r.PlayerID == "TOTAL"
}

// PlayEvent is one play within a game. Period counts halves for men's games
// (and women's games played under the old rules) and quarters otherwise;
// PeriodType records which. SecsLeftReg is seconds remaining in regulation,
// clamped to the in-period clock once regulation is over.
type PlayEvent struct {
	GameID         string     `json:"game_id"`
	HomeTeam       string     `json:"home_team"`
	AwayTeam       string     `json:"away_team"`
	PlayDesc       *string    `json:"play_desc"`
	HomeScore      *int       `json:"home_score"`
	AwayScore      *int       `json:"away_score"`
	Period         int        `json:"period"`
	PeriodType     PeriodType `json:"period_type"`
	SecsLeftPeriod int        `json:"secs_left_period"`
	SecsLeftReg    int        `json:"secs_left_reg"`
	PlayTeam       *string    `json:"play_team"`
	PlayType       string     `json:"play_type"`
	ShootingPlay   bool       `json:"shooting_play"`
	ScoringPlay    bool       `json:"scoring_play"`
	IsThree        bool       `json:"is_three"`
	Shooter        *string    `json:"shooter"`
	IsAssisted     bool       `json:"is_assisted"`
	AssistPlayer   *string    `json:"assist_player"`
	ShotX          *int       `json:"shot_x"`
	ShotY          *int       `json:"shot_y"`
}

// ScheduleRow is one game on a team's schedule. GameResult is "W 72-69"
// style for finished games and "N/A" otherwise, matching the source site.
type ScheduleRow struct {
	Team       string  `json:"team"`
	TeamID     string  `json:"team_id"`
	Season     int     `json:"season"`
	GameID     *string `json:"game_id"`
	GameDay    string  `json:"game_day"`
	GameTime   string  `json:"game_time"`
	Opponent   string  `json:"opponent"`
	OpponentID string  `json:"opponent_id"`
	SeasonType string  `json:"season_type"`
	GameStatus string  `json:"game_status"`
	TVNetwork  *string `json:"tv_network"`
	GameResult string  `json:"game_result"`
}

// PlayerInfo is one player's bio. Pros carry the league label in Experience
// and their college team in Team; jersey numbers only exist for college
// players.
type PlayerInfo struct {
	PlayerID     string  `json:"player_id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	JerseyNumber *string `json:"jersey_number"`
	Position     *string `json:"pos"`
	Status       string  `json:"status"`
	Team         *string `json:"team"`
	Experience   *string `json:"experience"`
	Height       *string `json:"height"`
	Weight       *string `json:"weight"`
	Birthplace   *string `json:"birthplace"`
	DateOfBirth  *string `json:"date_of_birth"`
}

// Dataset bundles the three per-game tables a batch scrape produces.
type Dataset struct {
	Info []GameInfo    `json:"info"`
	Box  []BoxscoreRow `json:"box"`
	PBP  []PlayEvent   `json:"pbp"`
}

// Append concatenates another dataset onto this one.
func (d *Dataset) Append(other Dataset) {
	d.Info = append(d.Info, other.Info...)
	d.Box = append(d.Box, other.Box...)
	d.PBP = append(d.PBP, other.PBP...)
}

// Empty reports whether no rows of any kind were collected.
func (d *Dataset) Empty() bool {
	return len(d.Info) == 0 && len(d.Box) == 0 && len(d.PBP) == 0
}

// Rows returns the total row count across all three tables.
func (d *Dataset) Rows() int {
	return len(d.Info) + len(d.Box) + len(d.PBP)
}
