package service

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// StatsService handles boxscore and play-by-play requests.
type StatsService struct {
	scraper *scrape.Scraper
}

// NewStatsService creates a new stats service.
func NewStatsService(scraper *scrape.Scraper) *StatsService {
	return &StatsService{scraper: scraper}
}

// GetBoxscore scrapes the boxscore rows for one game.
func (s *StatsService) GetBoxscore(ctx context.Context, league espn.League, gameID string) ([]records.BoxscoreRow, error) {
	rows, err := s.scraper.GameBoxscore(ctx, league, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching boxscore: %w", err)
	}
	return rows, nil
}

// GetPlayByPlay scrapes the play rows for one game.
func (s *StatsService) GetPlayByPlay(ctx context.Context, league espn.League, gameID string) ([]records.PlayEvent, error) {
	rows, err := s.scraper.GamePlayByPlay(ctx, league, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching play-by-play: %w", err)
	}
	return rows, nil
}

// CheckScores scrapes both the game header and the boxscore and reports teams
// whose summed boxscore points disagree with the official score. Mismatches
// are a data-quality signal, not an error.
func (s *StatsService) CheckScores(ctx context.Context, league espn.League, gameID string) ([]records.ScoreMismatch, error) {
	ds, err := s.scraper.Game(ctx, league, gameID, scrape.Parts{Info: true, Box: true})
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	mismatches := records.ReconcileDataset(ds)
	for _, m := range mismatches {
		log.Printf("[service] ⚠️ %s - %s", m.GameID, m)
	}
	return mismatches, nil
}
