// Package service is the read API over the scraping pipeline: thin,
// request-shaped wrappers the REST layer and CLI call into.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// GameService handles game-level requests.
type GameService struct {
	scraper *scrape.Scraper
}

// NewGameService creates a new game service.
func NewGameService(scraper *scrape.Scraper) *GameService {
	return &GameService{scraper: scraper}
}

// GetGame scrapes the selected tables for one game.
func (s *GameService) GetGame(ctx context.Context, league espn.League, gameID string, parts scrape.Parts) (records.Dataset, error) {
	ds, err := s.scraper.Game(ctx, league, gameID, parts)
	if err != nil {
		return records.Dataset{}, fmt.Errorf("fetching game: %w", err)
	}
	return ds, nil
}

// GetGameInfo scrapes the metadata row for one game.
func (s *GameService) GetGameInfo(ctx context.Context, league espn.League, gameID string) (records.GameInfo, error) {
	info, err := s.scraper.GameInfo(ctx, league, gameID)
	if err != nil {
		return records.GameInfo{}, fmt.Errorf("fetching game info: %w", err)
	}
	return info, nil
}

// GetGamesByDate lists the games on a date's scoreboard with current scores
// and statuses.
func (s *GameService) GetGamesByDate(ctx context.Context, league espn.League, date time.Time) ([]GameSummary, error) {
	events, err := s.scraper.Scoreboard(ctx, league, date)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	summaries := make([]GameSummary, 0, len(events))
	for _, ev := range events {
		summaries = append(summaries, GameSummary{
			GameID:    ev.ID,
			HomeTeam:  ev.HomeTeam,
			AwayTeam:  ev.AwayTeam,
			HomeScore: ev.HomeScore,
			AwayScore: ev.AwayScore,
			Status:    ev.Status,
		})
	}
	return summaries, nil
}

// GetTodaysGames lists today's games.
func (s *GameService) GetTodaysGames(ctx context.Context, league espn.League) ([]GameSummary, error) {
	return s.GetGamesByDate(ctx, league, time.Now())
}

// GetGameIDs lists the game ids played on a date.
func (s *GameService) GetGameIDs(ctx context.Context, league espn.League, date time.Time) ([]string, error) {
	ids, err := s.scraper.GameIDs(ctx, league, date)
	if err != nil {
		return nil, fmt.Errorf("fetching game ids: %w", err)
	}
	return ids, nil
}

// GetTeamSchedule scrapes a team's schedule. A season of zero means the
// season currently in progress.
func (s *GameService) GetTeamSchedule(ctx context.Context, league espn.League, team string, season int) ([]records.ScheduleRow, error) {
	if season <= 0 {
		season = batch.CurrentSeason(time.Now())
	}
	rows, err := s.scraper.TeamSchedule(ctx, league, team, season)
	if err != nil {
		return nil, fmt.Errorf("fetching team schedule: %w", err)
	}
	return rows, nil
}

// GameSummary is one scoreboard entry.
type GameSummary struct {
	GameID    string `json:"game_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Status    string `json:"status"`
}
