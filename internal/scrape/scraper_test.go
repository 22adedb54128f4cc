package scrape

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/fetch"
	"github.com/fortuna/fieldhouse/internal/registry"
)

// fakeFetcher serves canned markup by URL and counts the calls it sees.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return "", err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return "", fmt.Errorf("unexpected fetch of %s", url)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func gameFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../espn/testdata/game.html")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return string(data)
}

func statePage(content string) string {
	return `<html><body><script>window['__espnfitt__']={"page":{"content":` +
		content + `}};</script></body></html>`
}

func newTestScraper(fetcher fetch.Fetcher) *Scraper {
	return New(fetcher, registry.New(""))
}

func TestGameAllParts(t *testing.T) {
	const gameID = "401712345"
	markup := gameFixture(t)
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.GameURL(espn.Mens, gameID):       markup,
		espn.BoxscoreURL(espn.Mens, gameID):   markup,
		espn.PlayByPlayURL(espn.Mens, gameID): markup,
	}}

	s := newTestScraper(fetcher)
	ds, err := s.Game(context.Background(), espn.Mens, gameID, AllParts())
	if err != nil {
		t.Fatalf("Game: %v", err)
	}

	if len(ds.Info) != 1 {
		t.Fatalf("len(Info) = %d, want 1", len(ds.Info))
	}
	info := ds.Info[0]
	if info.HomeTeam != "Kansas Jayhawks" || !info.HomeWin {
		t.Errorf("info = %+v", info)
	}

	// Kansas: two starters, two bench, totals. UNC: one starter, one bench, totals.
	if len(ds.Box) != 8 {
		t.Errorf("len(Box) = %d, want 8", len(ds.Box))
	}
	if len(ds.PBP) != 6 {
		t.Errorf("len(PBP) = %d, want 6", len(ds.PBP))
	}
}

func TestGamePartsSubset(t *testing.T) {
	const gameID = "401712345"
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.GameURL(espn.Mens, gameID): gameFixture(t),
	}}

	s := newTestScraper(fetcher)
	ds, err := s.Game(context.Background(), espn.Mens, gameID, Parts{Info: true})
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if len(ds.Info) != 1 || len(ds.Box) != 0 || len(ds.PBP) != 0 {
		t.Errorf("dataset = %d/%d/%d rows, want info only", len(ds.Info), len(ds.Box), len(ds.PBP))
	}
	if fetcher.callCount() != 1 {
		t.Errorf("fetches = %d, want 1", fetcher.callCount())
	}
}

func TestGameNotFoundMarksDead(t *testing.T) {
	const gameID = "999999"
	url := espn.GameURL(espn.Mens, gameID)
	fetcher := &fakeFetcher{errs: map[string]error{
		url: &fetch.PageNotFoundError{URL: url},
	}}

	s := newTestScraper(fetcher)
	ds, err := s.Game(context.Background(), espn.Mens, gameID, AllParts())
	if err != nil {
		t.Fatalf("Game: %v (a dead game is not an error)", err)
	}
	if !ds.Empty() {
		t.Errorf("dataset has %d rows, want empty", ds.Rows())
	}
	if fetcher.callCount() != 1 {
		t.Fatalf("fetches = %d, want 1 (stop at the first missing page)", fetcher.callCount())
	}

	// Asking again never touches the network.
	ds, err = s.Game(context.Background(), espn.Mens, gameID, AllParts())
	if err != nil || !ds.Empty() {
		t.Errorf("repeat = (%d rows, %v), want empty and nil", ds.Rows(), err)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("fetches = %d after repeat, want still 1", fetcher.callCount())
	}
}

func TestGameBoxscoreNotStarted(t *testing.T) {
	const gameID = "401712399"
	markup := statePage(`{"gamepackage":{"gmStrp":{"status":{"desc":"Scheduled"},"tms":[{"displayName":"Kansas Jayhawks","homeAway":"home"},{"displayName":"North Carolina Tar Heels","homeAway":"away"}]}}}`)
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.BoxscoreURL(espn.Mens, gameID): markup,
	}}

	s := newTestScraper(fetcher)
	rows, err := s.GameBoxscore(context.Background(), espn.Mens, gameID)
	if err != nil {
		t.Fatalf("GameBoxscore: %v", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil for a game that has not started", rows)
	}
}

func TestGameIDs(t *testing.T) {
	date := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	markup := statePage(`{"scoreboard":{"evts":[{"id":"401712345","status":{"desc":"Final"},"teams":[]},{"id":"401712346","status":{"desc":"Final"},"teams":[]}]}}`)
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.ScoreboardURL(espn.Mens, date): markup,
	}}

	s := newTestScraper(fetcher)
	ids, err := s.GameIDs(context.Background(), espn.Mens, date)
	if err != nil {
		t.Fatalf("GameIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "401712345" || ids[1] != "401712346" {
		t.Errorf("ids = %v", ids)
	}
}

func TestTeamSchedule(t *testing.T) {
	markup := statePage(`{"scheduleData":{"teamSchedule":[{"events":{"pre":[{"date":{"date":"2024-11-04T23:30Z"},"opponent":{"displayName":"UMBC Retrievers","id":"2378"},"seasonType":{"name":"Regular Season"},"status":{"description":"Final"},"time":{"link":"/mens-college-basketball/game/_/gameId/401712300/x"},"result":{"winLossSymbol":"W","currentTeamScore":"81","opponentTeamScore":"70"}}]}}]}}`)
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.ScheduleURL(espn.Mens, "2305", 2025): markup,
	}}

	s := newTestScraper(fetcher)
	rows, err := s.TeamSchedule(context.Background(), espn.Mens, "Kansas", 2025)
	if err != nil {
		t.Fatalf("TeamSchedule: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Team != "Kansas" || rows[0].TeamID != "2305" {
		t.Errorf("row = %+v, want the registry's canonical team", rows[0])
	}
	if rows[0].GameResult != "W 81-70" {
		t.Errorf("GameResult = %q", rows[0].GameResult)
	}
}

func TestTeamScheduleUnknownTeam(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := newTestScraper(fetcher)

	_, err := s.TeamSchedule(context.Background(), espn.Mens, "qqqqqqqqqqqq", 2025)
	if err == nil {
		t.Fatal("expected a resolution error")
	}
	if fetcher.callCount() != 0 {
		t.Errorf("fetches = %d, want 0 (resolve before fetching)", fetcher.callCount())
	}
}

func TestPlayer(t *testing.T) {
	markup := statePage(`{"player":{"plyrHdr":{"ath":{"fNm":"Hunter","lNm":"Dickinson","dspNum":"#1","position":{"displayName":"Center"}}},"prtlCmnApiRsp":{"athlete":{"status":{"name":"Active"},"displayExperience":"Senior","team":{"displayName":"Kansas Jayhawks"}}}}}`)
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.PlayerURL(espn.Mens, "4433137"): markup,
	}}

	s := newTestScraper(fetcher)
	info, err := s.Player(context.Background(), espn.Mens, "4433137")
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if info.FirstName == nil || *info.FirstName != "Hunter" {
		t.Errorf("FirstName = %v", info.FirstName)
	}
	if info.Team == nil || *info.Team != "Kansas Jayhawks" {
		t.Errorf("Team = %v", info.Team)
	}
}

func TestConferenceTeams(t *testing.T) {
	s := newTestScraper(&fakeFetcher{})
	teams, err := s.ConferenceTeams(espn.Mens, "America East Conference", 2025)
	if err != nil {
		t.Fatalf("ConferenceTeams: %v", err)
	}
	if len(teams) != 9 {
		t.Errorf("len(teams) = %d, want 9", len(teams))
	}
}
