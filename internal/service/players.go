package service

import (
	"context"
	"fmt"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// PlayerService handles player bio requests.
type PlayerService struct {
	scraper *scrape.Scraper
}

// NewPlayerService creates a new player service.
func NewPlayerService(scraper *scrape.Scraper) *PlayerService {
	return &PlayerService{scraper: scraper}
}

// GetPlayer scrapes one player's bio row.
func (s *PlayerService) GetPlayer(ctx context.Context, league espn.League, playerID string) (records.PlayerInfo, error) {
	info, err := s.scraper.Player(ctx, league, playerID)
	if err != nil {
		return records.PlayerInfo{}, fmt.Errorf("fetching player: %w", err)
	}
	return info, nil
}
