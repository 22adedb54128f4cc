// Package batch composes single-game scrapes into date, season, team, and
// conference sweeps with bounded concurrency.
package batch

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// Runner executes batch scrapes against a Pipeline.
type Runner struct {
	pipeline Pipeline
	workers  int
	reporter Reporter
}

// NewRunner builds a runner. workers <= 0 means one worker per CPU; a nil
// reporter is replaced with a no-op.
func NewRunner(pipeline Pipeline, workers int, reporter Reporter) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{pipeline: pipeline, workers: workers, reporter: reporter}
}

// Games scrapes a set of game ids concurrently. A game that fails is logged
// and skipped; the batch only errors when every game fails. Results come back
// in stable batch order regardless of completion order.
func (r *Runner) Games(ctx context.Context, league espn.League, ids []string, parts scrape.Parts) (records.Dataset, error) {
	if len(ids) == 0 {
		return records.Dataset{}, nil
	}

	r.reporter.OnBatchStart(len(ids))

	results := make([]records.Dataset, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i], errs[i] = r.pipeline.Game(gctx, league, id, parts)
			r.reporter.OnGameDone(id, errs[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return records.Dataset{}, err
	}

	var ds records.Dataset
	failed := 0
	for i := range results {
		if errs[i] != nil {
			failed++
			log.Printf("[batch] ❌ %s - %v", ids[i], errs[i])
			continue
		}
		ds.Append(results[i])
	}
	r.reporter.OnBatchComplete()

	if failed == len(ids) {
		return records.Dataset{}, &BatchError{Total: len(ids), Failed: failed}
	}
	if failed > 0 {
		log.Printf("[batch] ⚠️ %d of %d games failed", failed, len(ids))
	}

	ds.Sort()
	return ds, nil
}

// GamesRange scrapes every game played between two dates, inclusive. An end
// date in the future silently clamps to today; a start date in the future or
// after the end date is an InvalidDateRangeError.
func (r *Runner) GamesRange(ctx context.Context, league espn.League, start, end time.Time, parts scrape.Parts) (records.Dataset, error) {
	start, end = truncateDate(start), truncateDate(end)
	today := truncateDate(time.Now())

	if start.After(end) {
		return records.Dataset{}, &InvalidDateRangeError{Start: start, End: end,
			Reason: "start date must not be after end date"}
	}
	if start.After(today) {
		return records.Dataset{}, &InvalidDateRangeError{Start: start, End: end,
			Reason: "start date must not be in the future"}
	}
	if end.After(today) {
		log.Printf("[batch] → end date %s is in the future, clamping to today", end.Format("2006-01-02"))
		end = today
	}

	dates := enumerateDates(start, end)
	var ids []string
	seen := make(map[string]bool)
	for i, d := range dates {
		if err := ctx.Err(); err != nil {
			return records.Dataset{}, err
		}
		r.reporter.OnProgress(fmt.Sprintf("listing games for %s", d.Format("2006-01-02")), i+1, len(dates))

		dayIDs, err := r.pipeline.GameIDs(ctx, league, d)
		if err != nil {
			log.Printf("[batch] ⚠️ %s - could not list games: %v", d.Format("2006-01-02"), err)
			continue
		}
		for _, id := range dayIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return r.Games(ctx, league, ids, parts)
}

// GamesSeason scrapes every game of one season.
func (r *Runner) GamesSeason(ctx context.Context, league espn.League, season int, parts scrape.Parts) (records.Dataset, error) {
	start, end := SeasonWindow(season)
	return r.GamesRange(ctx, league, start, end, parts)
}

// GamesTeam scrapes every game on one team's schedule for a season.
func (r *Runner) GamesTeam(ctx context.Context, league espn.League, team string, season int, parts scrape.Parts) (records.Dataset, error) {
	ids, err := r.teamGameIDs(ctx, league, team, season, make(map[string]bool))
	if err != nil {
		return records.Dataset{}, err
	}
	return r.Games(ctx, league, ids, parts)
}

// GamesConference scrapes every game played by a conference's members in a
// season. Intra-conference games appear on two schedules but are scraped
// once.
func (r *Runner) GamesConference(ctx context.Context, league espn.League, conference string, season int, parts scrape.Parts) (records.Dataset, error) {
	teams, err := r.pipeline.ConferenceTeams(league, conference, season)
	if err != nil {
		return records.Dataset{}, err
	}

	var ids []string
	seen := make(map[string]bool)
	for i, t := range teams {
		if err := ctx.Err(); err != nil {
			return records.Dataset{}, err
		}
		r.reporter.OnProgress(fmt.Sprintf("listing games for %s", t.Location), i+1, len(teams))

		teamIDs, err := r.teamGameIDs(ctx, league, t.Location, season, seen)
		if err != nil {
			log.Printf("[batch] ⚠️ %s - could not list games: %v", t.Location, err)
			continue
		}
		ids = append(ids, teamIDs...)
	}

	return r.Games(ctx, league, ids, parts)
}

// teamGameIDs lists the game ids on a team's schedule, skipping games that
// have not been played (or are postponed/canceled) and ids already in seen,
// recording the new ones there.
func (r *Runner) teamGameIDs(ctx context.Context, league espn.League, team string, season int, seen map[string]bool) ([]string, error) {
	schedule, err := r.pipeline.TeamSchedule(ctx, league, team, season)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, row := range schedule {
		if row.GameID == nil {
			continue
		}
		if row.GameStatus != records.StatusFinal && row.GameStatus != records.StatusInProgress {
			continue
		}
		if seen[*row.GameID] {
			continue
		}
		seen[*row.GameID] = true
		ids = append(ids, *row.GameID)
	}
	return ids, nil
}
