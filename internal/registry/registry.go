// Package registry holds the reference tables of team and conference names
// used to turn user-supplied names into site ids. Data loads lazily from a
// bundled snapshot (or an override file) and is read-only afterwards, so it
// is safe to share across workers without locking once loaded.
package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xrash/smetrics"
)

// acceptScore is the minimum fuzzy-match score a candidate needs before the
// registry will substitute it for the query.
const acceptScore = 0.7

// Standard Jaro-Winkler parameters: the prefix bonus kicks in above 0.7 and
// covers at most the first four characters.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// Team is one row of the reference table: a team's site id and conference
// membership for one season.
type Team struct {
	Season        int
	ID            string
	Location      string
	Conference    string
	ConferenceAbb string
}

// Match is a resolved name: the canonical entry plus how it was found.
type Match struct {
	Name  string
	ID    string
	Score float64
	Exact bool
}

// NotFoundError means no reference entry scored above the acceptance
// threshold for a query.
type NotFoundError struct {
	Query string
	Kind  string
	Best  string
	Score float64
}

func (e *NotFoundError) Error() string {
	if e.Best == "" {
		return fmt.Sprintf("no %s reference entries to match %q against", e.Kind, e.Query)
	}
	return fmt.Sprintf("no %s match for %q (closest %q scored %.2f, need %.2f)",
		e.Kind, e.Query, e.Best, e.Score, acceptScore)
}

// Registry resolves team and conference names per league. The zero value is
// not usable; construct with New.
type Registry struct {
	overrideDir string

	mu      sync.Mutex
	leagues map[string][]Team
}

// New creates a registry. overrideDir, when non-empty, names a directory
// searched for <league>_teams.csv files that replace the bundled snapshot.
func New(overrideDir string) *Registry {
	return &Registry{
		overrideDir: overrideDir,
		leagues:     make(map[string][]Team),
	}
}

// ResolveTeam maps a team name to its reference entry for a season. Exact
// case-insensitive matches win; otherwise the best fuzzy candidate above the
// acceptance threshold is substituted (and logged).
func (r *Registry) ResolveTeam(league, name string, season int) (Match, error) {
	teams, err := r.seasonTeams(league, season)
	if err != nil {
		return Match{}, err
	}

	byLower := make(map[string]Team, len(teams))
	candidates := make([]string, 0, len(teams))
	for _, t := range teams {
		byLower[strings.ToLower(t.Location)] = t
		candidates = append(candidates, t.Location)
	}

	if t, ok := byLower[strings.ToLower(name)]; ok {
		return Match{Name: t.Location, ID: t.ID, Score: 1, Exact: true}, nil
	}

	best, score := closest(name, candidates)
	if score < acceptScore {
		return Match{}, &NotFoundError{Query: name, Kind: "team", Best: best, Score: score}
	}

	log.Printf("[registry] no exact match for %q, using closest team %q", name, best)
	t := byLower[strings.ToLower(best)]
	return Match{Name: t.Location, ID: t.ID, Score: score}, nil
}

// ResolveConference maps a conference name or abbreviation to the full
// conference name. An abbreviation match is swapped for the name it stands
// for.
func (r *Registry) ResolveConference(league, name string, season int) (Match, error) {
	teams, err := r.seasonTeams(league, season)
	if err != nil {
		return Match{}, err
	}

	abbToName := make(map[string]string)
	seen := make(map[string]bool)
	var candidates []string
	for _, t := range teams {
		if t.Conference == "" {
			continue
		}
		if !seen[t.Conference] {
			seen[t.Conference] = true
			candidates = append(candidates, t.Conference)
		}
		if t.ConferenceAbb != "" && !seen[t.ConferenceAbb] {
			seen[t.ConferenceAbb] = true
			candidates = append(candidates, t.ConferenceAbb)
			abbToName[t.ConferenceAbb] = t.Conference
		}
	}

	resolve := func(hit string, score float64, exact bool) Match {
		if full, ok := abbToName[hit]; ok {
			hit = full
		}
		return Match{Name: hit, Score: score, Exact: exact}
	}

	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return resolve(c, 1, true), nil
		}
	}

	best, score := closest(name, candidates)
	if score < acceptScore {
		return Match{}, &NotFoundError{Query: name, Kind: "conference", Best: best, Score: score}
	}

	log.Printf("[registry] no exact match for %q, using closest conference %q", name, best)
	return resolve(best, score, false), nil
}

// ConferenceTeams lists the member teams of a conference for a season. The
// conference name goes through ResolveConference first, so abbreviations
// and near-misses work here too.
func (r *Registry) ConferenceTeams(league, conference string, season int) ([]Team, error) {
	match, err := r.ResolveConference(league, conference, season)
	if err != nil {
		return nil, err
	}

	teams, err := r.seasonTeams(league, season)
	if err != nil {
		return nil, err
	}

	var members []Team
	for _, t := range teams {
		if t.Conference == match.Name {
			members = append(members, t)
		}
	}
	return members, nil
}

// seasonTeams returns the reference rows for a season, falling back to the
// nearest season the snapshot covers when the requested one is absent.
func (r *Registry) seasonTeams(league string, season int) ([]Team, error) {
	all, err := r.leagueTeams(league)
	if err != nil {
		return nil, err
	}

	var rows []Team
	for _, t := range all {
		if t.Season == season {
			rows = append(rows, t)
		}
	}
	if len(rows) > 0 {
		return rows, nil
	}

	nearest := nearestSeason(all, season)
	if nearest == 0 {
		return nil, fmt.Errorf("no team reference data for %s", league)
	}
	log.Printf("[registry] no %s team data for season %d, using season %d", league, season, nearest)
	for _, t := range all {
		if t.Season == nearest {
			rows = append(rows, t)
		}
	}
	return rows, nil
}

func (r *Registry) leagueTeams(league string) ([]Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if teams, ok := r.leagues[league]; ok {
		return teams, nil
	}

	teams, err := r.load(league)
	if err != nil {
		return nil, err
	}
	r.leagues[league] = teams
	return teams, nil
}

func (r *Registry) load(league string) ([]Team, error) {
	name := league + "_teams.csv"

	if r.overrideDir != "" {
		path := filepath.Join(r.overrideDir, name)
		if f, err := os.Open(path); err == nil {
			defer f.Close()
			teams, err := parseTeams(f)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			log.Printf("[registry] loaded %d %s teams from %s", len(teams), league, path)
			return teams, nil
		}
	}

	f, err := teamData.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("no bundled team data for league %q", league)
	}
	defer f.Close()
	teams, err := parseTeams(f)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled %s: %w", name, err)
	}
	return teams, nil
}

func parseTeams(r io.Reader) ([]Team, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("team table has no data rows")
	}

	var teams []Team
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		season, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		teams = append(teams, Team{
			Season:        season,
			ID:            strings.TrimSpace(row[1]),
			Location:      strings.TrimSpace(row[2]),
			Conference:    strings.TrimSpace(row[3]),
			ConferenceAbb: strings.TrimSpace(row[4]),
		})
	}
	return teams, nil
}

func nearestSeason(teams []Team, want int) int {
	var seasons []int
	seen := make(map[int]bool)
	for _, t := range teams {
		if !seen[t.Season] {
			seen[t.Season] = true
			seasons = append(seasons, t.Season)
		}
	}
	if len(seasons) == 0 {
		return 0
	}
	sort.Ints(seasons)

	best := seasons[0]
	for _, s := range seasons {
		if abs(s-want) < abs(best-want) {
			best = s
		}
	}
	return best
}

// closest scores every candidate against the query and returns the winner.
// Ties keep the first-seen candidate.
func closest(query string, candidates []string) (string, float64) {
	normQuery := normalizeName(query)

	var best string
	bestScore := -1.0
	for _, c := range candidates {
		score := similarity(normQuery, normalizeName(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < 0 {
		bestScore = 0
	}
	return best, bestScore
}

// similarity is the best Jaro-Winkler score of the query against the whole
// candidate and against each contiguous token window of it, so a short
// partial name like "am east" still lands on the long canonical form it
// abbreviates.
func similarity(query, candidate string) float64 {
	best := smetrics.JaroWinkler(query, candidate, jwBoostThreshold, jwPrefixSize)
	tokens := strings.Fields(candidate)
	if len(tokens) < 2 {
		return best
	}
	for i := range tokens {
		for j := i + 1; j <= len(tokens); j++ {
			window := strings.Join(tokens[i:j], " ")
			if s := smetrics.JaroWinkler(query, window, jwBoostThreshold, jwPrefixSize); s > best {
				best = s
			}
		}
	}
	return best
}

// normalizeName lowercases and collapses runs of non-alphanumeric characters
// to single spaces so punctuation differences don't dominate the distance.
func normalizeName(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
