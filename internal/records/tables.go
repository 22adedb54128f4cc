package records

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Table is a rendered tabular view of a record slice: ordered headers plus
// string cells. Null fields render as empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// WriteCSV writes the table using the standard CSV encoding.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var gameInfoHeaders = []string{
	"game_id", "game_status", "home_team", "home_id", "home_rank",
	"home_record", "home_score", "away_team", "away_id", "away_rank",
	"away_record", "away_score", "home_point_spread", "home_win", "num_ots",
	"is_conference", "is_neutral", "is_postseason", "tournament", "game_day",
	"game_time", "game_loc", "arena", "arena_capacity", "attendance",
	"tv_network", "referee_1", "referee_2", "referee_3",
}

// GameInfoTable renders game info rows in the canonical column order.
func GameInfoTable(rows []GameInfo) Table {
	t := Table{Headers: gameInfoHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.GameID, r.GameStatus, r.HomeTeam, r.HomeID, cellInt(r.HomeRank),
			cellStr(r.HomeRecord), cellInt(r.HomeScore), r.AwayTeam, r.AwayID,
			cellInt(r.AwayRank), cellStr(r.AwayRecord), cellInt(r.AwayScore),
			cellStr(r.HomePointSpread), cellBool(r.HomeWin),
			strconv.Itoa(r.NumOTs), cellBool(r.IsConference),
			cellBool(r.IsNeutral), cellBool(r.IsPostseason),
			cellStr(r.Tournament), cellStr(r.GameDay), cellStr(r.GameTime),
			cellStr(r.GameLoc), cellStr(r.Arena), cellInt(r.ArenaCapacity),
			cellInt(r.Attendance), cellStr(r.TVNetwork), cellStr(r.Referee1),
			cellStr(r.Referee2), cellStr(r.Referee3),
		})
	}
	return t
}

var boxscoreHeaders = []string{
	"game_id", "team", "player", "player_id", "position", "starter", "min",
	"fgm", "fga", "2pm", "2pa", "3pm", "3pa", "ftm", "fta", "oreb", "dreb",
	"reb", "ast", "stl", "blk", "to", "pf", "pts",
}

// BoxscoreTable renders boxscore rows in the canonical column order.
func BoxscoreTable(rows []BoxscoreRow) Table {
	t := Table{Headers: boxscoreHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.GameID, r.Team, r.Player, r.PlayerID, r.Position,
			cellBool(r.Starter), cellInt(r.Minutes),
			cellInt(r.FieldGoalsMade), cellInt(r.FieldGoalsAttempted),
			cellInt(r.TwoPointersMade), cellInt(r.TwoPointersAttempted),
			cellInt(r.ThreePointersMade), cellInt(r.ThreePointersAttempted),
			cellInt(r.FreeThrowsMade), cellInt(r.FreeThrowsAttempted),
			cellInt(r.OffensiveRebounds), cellInt(r.DefensiveRebounds),
			cellInt(r.Rebounds), cellInt(r.Assists), cellInt(r.Steals),
			cellInt(r.Blocks), cellInt(r.Turnovers), cellInt(r.PersonalFouls),
			cellInt(r.Points),
		})
	}
	return t
}

// PlayEventTable renders play-by-play rows. The period column pair is named
// after the game's period type (half/quarter), taken from the first row.
func PlayEventTable(rows []PlayEvent) Table {
	periodCol, secsCol := "half", "secs_left_half"
	if len(rows) > 0 && rows[0].PeriodType == PeriodQuarter {
		periodCol, secsCol = "quarter", "secs_left_qt"
	}

	t := Table{Headers: []string{
		"game_id", "home_team", "away_team", "play_desc", "home_score",
		"away_score", periodCol, secsCol, "secs_left_reg", "play_team",
		"play_type", "shooting_play", "scoring_play", "is_three", "shooter",
		"is_assisted", "assist_player", "shot_x", "shot_y",
	}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.GameID, r.HomeTeam, r.AwayTeam, cellStr(r.PlayDesc),
			cellInt(r.HomeScore), cellInt(r.AwayScore),
			strconv.Itoa(r.Period), strconv.Itoa(r.SecsLeftPeriod),
			strconv.Itoa(r.SecsLeftReg), cellStr(r.PlayTeam), r.PlayType,
			cellBool(r.ShootingPlay), cellBool(r.ScoringPlay),
			cellBool(r.IsThree), cellStr(r.Shooter), cellBool(r.IsAssisted),
			cellStr(r.AssistPlayer), cellInt(r.ShotX), cellInt(r.ShotY),
		})
	}
	return t
}

var scheduleHeaders = []string{
	"team", "team_id", "season", "game_id", "game_day", "game_time",
	"opponent", "opponent_id", "season_type", "game_status", "tv_network",
	"game_result",
}

// ScheduleTable renders schedule rows in the canonical column order.
func ScheduleTable(rows []ScheduleRow) Table {
	t := Table{Headers: scheduleHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Team, r.TeamID, strconv.Itoa(r.Season), cellStr(r.GameID),
			r.GameDay, r.GameTime, r.Opponent, r.OpponentID, r.SeasonType,
			r.GameStatus, cellStr(r.TVNetwork), r.GameResult,
		})
	}
	return t
}

var playerHeaders = []string{
	"player_id", "first_name", "last_name", "jersey_number", "pos", "status",
	"team", "experience", "height", "weight", "birthplace", "date_of_birth",
}

// PlayerTable renders player bio rows in the canonical column order.
func PlayerTable(rows []PlayerInfo) Table {
	t := Table{Headers: playerHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.PlayerID, cellStr(r.FirstName), cellStr(r.LastName),
			cellStr(r.JerseyNumber), cellStr(r.Position), r.Status,
			cellStr(r.Team), cellStr(r.Experience), cellStr(r.Height),
			cellStr(r.Weight), cellStr(r.Birthplace), cellStr(r.DateOfBirth),
		})
	}
	return t
}

func cellStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func cellInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cellBool(v bool) string {
	return strconv.FormatBool(v)
}
