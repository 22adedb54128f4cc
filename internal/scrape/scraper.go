// Package scrape is the single-entity scraping facade: it fetches one page,
// parses it, and normalizes it into records. Batch operations compose these
// calls; they live in the batch package.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/fetch"
	"github.com/fortuna/fieldhouse/internal/normalize"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/registry"
)

// Parts selects which tables a combined game scrape produces.
type Parts struct {
	Info bool
	Box  bool
	PBP  bool
}

// AllParts selects every table.
func AllParts() Parts {
	return Parts{Info: true, Box: true, PBP: true}
}

// Scraper turns site pages into records. It remembers game ids the site has
// said don't exist and never fetches them again within its lifetime.
type Scraper struct {
	fetcher fetch.Fetcher
	reg     *registry.Registry

	mu   sync.Mutex
	dead map[string]bool
}

// New builds a scraper on top of a fetcher and a name registry.
func New(fetcher fetch.Fetcher, reg *registry.Registry) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		reg:     reg,
		dead:    make(map[string]bool),
	}
}

// GameInfo scrapes the metadata row for one game.
func (s *Scraper) GameInfo(ctx context.Context, league espn.League, gameID string) (records.GameInfo, error) {
	pkg, err := s.gamePackage(ctx, league, espn.GameURL(league, gameID), gameID, espn.KindGameInfo)
	if err != nil {
		return records.GameInfo{}, err
	}
	return normalize.GameInfo(pkg, league), nil
}

// GameBoxscore scrapes the boxscore rows for one game. Games that have not
// started (or were postponed) have no boxscore; those return empty with a
// warning rather than an error.
func (s *Scraper) GameBoxscore(ctx context.Context, league espn.League, gameID string) ([]records.BoxscoreRow, error) {
	pkg, err := s.gamePackage(ctx, league, espn.BoxscoreURL(league, gameID), gameID, espn.KindBoxscore)
	if err != nil {
		return nil, err
	}
	if !hasGameData(pkg.Status) {
		log.Printf("[scrape] ⚠️ %s - %s game, no boxscore available", gameID, pkg.Status)
		return nil, nil
	}
	rows := normalize.Boxscore(pkg)
	if rows == nil {
		log.Printf("[scrape] ⚠️ %s - no boxscore data on page", gameID)
	}
	return rows, nil
}

// GamePlayByPlay scrapes the play rows for one game, ordered by period and
// clock. Games without play data return empty with a warning.
func (s *Scraper) GamePlayByPlay(ctx context.Context, league espn.League, gameID string) ([]records.PlayEvent, error) {
	pkg, err := s.gamePackage(ctx, league, espn.PlayByPlayURL(league, gameID), gameID, espn.KindPlayByPlay)
	if err != nil {
		return nil, err
	}
	if !hasGameData(pkg.Status) {
		log.Printf("[scrape] ⚠️ %s - %s game, no play-by-play available", gameID, pkg.Status)
		return nil, nil
	}
	rows := normalize.PlayByPlay(pkg, league)
	if rows == nil {
		log.Printf("[scrape] ⚠️ %s - no play-by-play data on page", gameID)
	}
	return rows, nil
}

// Game scrapes the selected tables for one game. A game the site reports as
// nonexistent yields an empty dataset, not an error, and is remembered so
// repeat requests skip the network entirely.
func (s *Scraper) Game(ctx context.Context, league espn.League, gameID string, parts Parts) (records.Dataset, error) {
	var ds records.Dataset

	if s.isDead(gameID) {
		log.Printf("[scrape] → %s - known dead game, skipping", gameID)
		return ds, nil
	}

	if parts.Info {
		info, err := s.GameInfo(ctx, league, gameID)
		if err != nil {
			return records.Dataset{}, s.gameError(gameID, err)
		}
		ds.Info = append(ds.Info, info)
	}
	if parts.Box {
		box, err := s.GameBoxscore(ctx, league, gameID)
		if err != nil {
			return records.Dataset{}, s.gameError(gameID, err)
		}
		ds.Box = append(ds.Box, box...)
	}
	if parts.PBP {
		pbp, err := s.GamePlayByPlay(ctx, league, gameID)
		if err != nil {
			return records.Dataset{}, s.gameError(gameID, err)
		}
		ds.PBP = append(ds.PBP, pbp...)
	}

	if parts.Info && parts.Box {
		for _, m := range records.ReconcileDataset(ds) {
			log.Printf("[scrape] ⚠️ %s - %s", gameID, m)
		}
	}
	return ds, nil
}

// GameIDs lists the game ids on a date's scoreboard.
func (s *Scraper) GameIDs(ctx context.Context, league espn.League, date time.Time) ([]string, error) {
	url := espn.ScoreboardURL(league, date)
	markup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	events, err := espn.ParseScoreboard(markup, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids, nil
}

// Scoreboard returns the raw scoreboard events for a date, with live scores
// and statuses. The live watcher polls this.
func (s *Scraper) Scoreboard(ctx context.Context, league espn.League, date time.Time) ([]espn.ScoreboardEvent, error) {
	markup, err := s.fetcher.Fetch(ctx, espn.ScoreboardURL(league, date))
	if err != nil {
		return nil, err
	}
	return espn.ParseScoreboard(markup, date.Format("2006-01-02"))
}

// Player scrapes one player's bio row.
func (s *Scraper) Player(ctx context.Context, league espn.League, playerID string) (records.PlayerInfo, error) {
	markup, err := s.fetcher.Fetch(ctx, espn.PlayerURL(league, playerID))
	if err != nil {
		return records.PlayerInfo{}, err
	}

	frag, err := espn.ParsePlayer(markup, playerID)
	if err != nil {
		return records.PlayerInfo{}, err
	}
	return normalize.Player(frag, playerID, league), nil
}

// TeamSchedule scrapes a team's schedule for one season. The team name is
// resolved against the registry before any page is fetched, so misspellings
// fail fast (or get corrected) without burning requests.
func (s *Scraper) TeamSchedule(ctx context.Context, league espn.League, team string, season int) ([]records.ScheduleRow, error) {
	match, err := s.reg.ResolveTeam(string(league), team, season)
	if err != nil {
		return nil, err
	}

	markup, err := s.fetcher.Fetch(ctx, espn.ScheduleURL(league, match.ID, season))
	if err != nil {
		return nil, err
	}

	events, err := espn.ParseSchedule(markup, match.ID)
	if err != nil {
		return nil, err
	}
	return normalize.Schedule(events, match.Name, match.ID, season), nil
}

// ConferenceTeams lists a conference's member teams for a season, resolving
// the conference name fuzzily.
func (s *Scraper) ConferenceTeams(league espn.League, conference string, season int) ([]registry.Team, error) {
	return s.reg.ConferenceTeams(string(league), conference, season)
}

// gamePackage fetches and parses one of the three game pages.
func (s *Scraper) gamePackage(ctx context.Context, league espn.League, url, gameID string, kind espn.PageKind) (*espn.GamePackage, error) {
	markup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	pkg, err := espn.ParseGamePackage(markup, gameID, kind)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// gameError converts a not-found page into a remembered dead game; anything
// else passes through.
func (s *Scraper) gameError(gameID string, err error) error {
	var pnf *fetch.PageNotFoundError
	if errors.As(err, &pnf) {
		s.markDead(gameID)
		log.Printf("[scrape] ⚠️ %s - page does not exist, marking dead", gameID)
		return nil
	}
	return fmt.Errorf("game %s: %w", gameID, err)
}

func (s *Scraper) isDead(gameID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dead[gameID]
}

func (s *Scraper) markDead(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dead[gameID] = true
}

// hasGameData reports whether a game status implies boxscore and
// play-by-play data exist.
func hasGameData(status string) bool {
	return status == records.StatusFinal || status == records.StatusInProgress
}
