// Package live polls the day's scoreboard and turns score or status changes
// into update events for websocket clients and Redis stream consumers.
package live

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
)

// Update is one observed change to a game.
type Update struct {
	League    string    `json:"league"`
	GameID    string    `json:"game_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	Status    string    `json:"status"`
	Change    string    `json:"change"`
	At        time.Time `json:"at"`
}

// Change kinds.
const (
	ChangeNew    = "new"
	ChangeScore  = "score"
	ChangeStatus = "status"
)

// Scoreboard is the watcher's view of the scraper.
type Scoreboard interface {
	Scoreboard(ctx context.Context, league espn.League, date time.Time) ([]espn.ScoreboardEvent, error)
}

// Broadcaster fans an update out to connected websocket clients.
type Broadcaster interface {
	BroadcastUpdate(update Update)
}

// Publisher pushes an update onto a durable stream.
type Publisher interface {
	PublishGameUpdate(ctx context.Context, league string, update interface{}) error
}

// Watcher polls one league's scoreboard on an interval. Broadcaster and
// Publisher are both optional; a watcher with neither still logs changes.
type Watcher struct {
	scoreboard  Scoreboard
	league      espn.League
	interval    time.Duration
	broadcaster Broadcaster
	publisher   Publisher

	last map[string]espn.ScoreboardEvent
}

// NewWatcher builds a watcher. interval <= 0 defaults to 30 seconds.
func NewWatcher(scoreboard Scoreboard, league espn.League, interval time.Duration, broadcaster Broadcaster, publisher Publisher) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		scoreboard:  scoreboard,
		league:      league,
		interval:    interval,
		broadcaster: broadcaster,
		publisher:   publisher,
		last:        make(map[string]espn.ScoreboardEvent),
	}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Printf("[live] → watching %s scoreboard every %s", w.league, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[live] → stopping %s watcher", w.league)
			return
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				log.Printf("[live] ⚠️ poll failed: %v", err)
			}
		}
	}
}

// poll fetches the scoreboard once and emits an update per changed game.
func (w *Watcher) poll(ctx context.Context) error {
	events, err := w.scoreboard.Scoreboard(ctx, w.league, time.Now())
	if err != nil {
		return err
	}

	for _, ev := range events {
		change, changed := w.diff(ev)
		if !changed {
			continue
		}
		w.last[ev.ID] = ev
		w.emit(ctx, Update{
			League:    string(w.league),
			GameID:    ev.ID,
			HomeTeam:  ev.HomeTeam,
			AwayTeam:  ev.AwayTeam,
			HomeScore: ev.HomeScore,
			AwayScore: ev.AwayScore,
			Status:    ev.Status,
			Change:    change,
			At:        time.Now().UTC(),
		})
	}
	return nil
}

func (w *Watcher) diff(ev espn.ScoreboardEvent) (string, bool) {
	prev, seen := w.last[ev.ID]
	switch {
	case !seen:
		return ChangeNew, true
	case prev.Status != ev.Status:
		return ChangeStatus, true
	case !scoreEqual(prev.HomeScore, ev.HomeScore) || !scoreEqual(prev.AwayScore, ev.AwayScore):
		return ChangeScore, true
	}
	return "", false
}

func (w *Watcher) emit(ctx context.Context, update Update) {
	log.Printf("[live] ✓ %s - %s vs %s (%s: %s)",
		update.GameID, update.AwayTeam, update.HomeTeam, update.Change, update.Status)

	if w.broadcaster != nil {
		w.broadcaster.BroadcastUpdate(update)
	}
	if w.publisher != nil {
		if err := w.publisher.PublishGameUpdate(ctx, update.League, update); err != nil {
			log.Printf("[live] ⚠️ publish failed for %s: %v", update.GameID, err)
		}
	}
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
