package service

import (
	"context"
	"fmt"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// AnalyticsService derives shooting efficiency metrics from boxscores.
type AnalyticsService struct {
	scraper *scrape.Scraper
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(scraper *scrape.Scraper) *AnalyticsService {
	return &AnalyticsService{scraper: scraper}
}

// GetGameShooting computes a shooting line for every player (and each team's
// totals row) in one game's boxscore.
func (s *AnalyticsService) GetGameShooting(ctx context.Context, league espn.League, gameID string) ([]ShootingLine, error) {
	box, err := s.scraper.GameBoxscore(ctx, league, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching boxscore: %w", err)
	}

	lines := make([]ShootingLine, 0, len(box))
	for _, row := range box {
		lines = append(lines, shootingLine(row))
	}
	return lines, nil
}

// ShootingLine is one player's (or team's) shooting efficiency for a game.
type ShootingLine struct {
	GameID    string  `json:"game_id"`
	Team      string  `json:"team"`
	Player    string  `json:"player"`
	PlayerID  string  `json:"player_id"`
	TeamTotal bool    `json:"team_total"`
	Points    int     `json:"points"`
	FGPct     float64 `json:"fg_pct"`
	ThreePct  float64 `json:"three_pct"`
	FTPct     float64 `json:"ft_pct"`
	EFGPct    float64 `json:"efg_pct"`
	TSPct     float64 `json:"ts_pct"`
}

func shootingLine(row records.BoxscoreRow) ShootingLine {
	fgm := statVal(row.FieldGoalsMade)
	fga := statVal(row.FieldGoalsAttempted)
	tpm := statVal(row.ThreePointersMade)
	tpa := statVal(row.ThreePointersAttempted)
	ftm := statVal(row.FreeThrowsMade)
	fta := statVal(row.FreeThrowsAttempted)
	pts := statVal(row.Points)

	return ShootingLine{
		GameID:    row.GameID,
		Team:      row.Team,
		Player:    row.Player,
		PlayerID:  row.PlayerID,
		TeamTotal: row.IsTeamTotal(),
		Points:    int(pts),
		FGPct:     safeDiv(fgm, fga),
		ThreePct:  safeDiv(tpm, tpa),
		FTPct:     safeDiv(ftm, fta),
		EFGPct:    safeDiv(fgm+0.5*tpm, fga),
		TSPct:     safeDiv(pts, 2*(fga+0.44*fta)),
	}
}

func statVal(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

// safeDiv performs division with zero check.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
