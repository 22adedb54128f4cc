package batch

import (
	"context"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/registry"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// Pipeline is what a batch needs from the single-entity scraper. The runner
// only composes these calls; scrape.Scraper is the production implementation.
type Pipeline interface {
	Game(ctx context.Context, league espn.League, gameID string, parts scrape.Parts) (records.Dataset, error)
	GameIDs(ctx context.Context, league espn.League, date time.Time) ([]string, error)
	TeamSchedule(ctx context.Context, league espn.League, team string, season int) ([]records.ScheduleRow, error)
	ConferenceTeams(league espn.League, conference string, season int) ([]registry.Team, error)
}

// Reporter receives lifecycle callbacks from a running batch. Implementations
// must be safe for concurrent OnGameDone calls.
type Reporter interface {
	OnBatchStart(total int)
	OnGameDone(gameID string, err error)
	OnProgress(message string, current, total int)
	OnBatchComplete()
}

// NopReporter ignores all callbacks.
type NopReporter struct{}

func (NopReporter) OnBatchStart(int)            {}
func (NopReporter) OnGameDone(string, error)    {}
func (NopReporter) OnProgress(string, int, int) {}
func (NopReporter) OnBatchComplete()            {}
