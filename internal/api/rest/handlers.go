package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/fetch"
	"github.com/fortuna/fieldhouse/internal/registry"
	"github.com/fortuna/fieldhouse/internal/scrape"
	"github.com/fortuna/fieldhouse/internal/service"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	gameService      *service.GameService
	playerService    *service.PlayerService
	statsService     *service.StatsService
	analyticsService *service.AnalyticsService
}

// NewHandler creates a new handler over the scraping services.
func NewHandler(scraper *scrape.Scraper) *Handler {
	return &Handler{
		gameService:      service.NewGameService(scraper),
		playerService:    service.NewPlayerService(scraper),
		statsService:     service.NewStatsService(scraper),
		analyticsService: service.NewAnalyticsService(scraper),
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "fieldhouse",
	})
}

// GetGamesByDate returns the scoreboard for a date (default today).
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	games, err := h.gameService.GetGamesByDate(r.Context(), league, date)
	if err != nil {
		respondScrapeError(w, "Failed to fetch games", err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// GetGameIDs returns the game ids played on a date (default today).
func (h *Handler) GetGameIDs(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	ids, err := h.gameService.GetGameIDs(r.Context(), league, date)
	if err != nil {
		respondScrapeError(w, "Failed to fetch game ids", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"game_ids": ids,
	})
}

// GetGame returns the full dataset for one game. Query params info, box, and
// pbp (true/false) select tables; all default to true.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	gameID := mux.Vars(r)["gameID"]

	parts := scrape.Parts{
		Info: boolParam(r, "info", true),
		Box:  boolParam(r, "box", true),
		PBP:  boolParam(r, "pbp", true),
	}

	ds, err := h.gameService.GetGame(r.Context(), league, gameID, parts)
	if err != nil {
		respondScrapeError(w, "Failed to fetch game", err)
		return
	}
	respondJSON(w, http.StatusOK, ds)
}

// GetGameInfo returns the metadata row for one game.
func (h *Handler) GetGameInfo(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	info, err := h.gameService.GetGameInfo(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondScrapeError(w, "Failed to fetch game info", err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// GetGameBoxscore returns the boxscore rows for one game.
func (h *Handler) GetGameBoxscore(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	rows, err := h.statsService.GetBoxscore(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondScrapeError(w, "Failed to fetch boxscore", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetGamePlayByPlay returns the play rows for one game.
func (h *Handler) GetGamePlayByPlay(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	rows, err := h.statsService.GetPlayByPlay(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondScrapeError(w, "Failed to fetch play-by-play", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetGameShooting returns per-player shooting efficiency for one game.
func (h *Handler) GetGameShooting(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	lines, err := h.analyticsService.GetGameShooting(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondScrapeError(w, "Failed to compute shooting lines", err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

// GetGameScoreCheck returns score mismatches between the game header and the
// boxscore, empty when they agree.
func (h *Handler) GetGameScoreCheck(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	mismatches, err := h.statsService.CheckScores(r.Context(), league, mux.Vars(r)["gameID"])
	if err != nil {
		respondScrapeError(w, "Failed to check scores", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":    mux.Vars(r)["gameID"],
		"mismatches": mismatches,
		"consistent": len(mismatches) == 0,
	})
}

// GetPlayer returns one player's bio.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}

	info, err := h.playerService.GetPlayer(r.Context(), league, mux.Vars(r)["playerID"])
	if err != nil {
		respondScrapeError(w, "Failed to fetch player", err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// GetTeamSchedule returns a team's schedule for a season (default: the
// current one). The team name is resolved fuzzily.
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	season := intParam(r, "season", 0)

	rows, err := h.gameService.GetTeamSchedule(r.Context(), league, mux.Vars(r)["team"], season)
	if err != nil {
		respondScrapeError(w, "Failed to fetch schedule", err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// leagueParam reads the league query param, defaulting to mens. It writes the
// error response itself when the value is unknown.
func leagueParam(w http.ResponseWriter, r *http.Request) (espn.League, bool) {
	raw := r.URL.Query().Get("league")
	if raw == "" {
		return espn.Mens, true
	}
	league := espn.League(raw)
	if !league.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown league (use mens or womens)", nil)
		return "", false
	}
	return league, true
}

// dateParam reads the date query param, defaulting to today.
func dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := batch.ParseDate(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return time.Time{}, false
	}
	return date, true
}

func boolParam(r *http.Request, name string, def bool) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	var n int
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return def
	}
	return n
}

// respondScrapeError maps pipeline errors onto HTTP statuses: missing pages
// and unknown names are 404s, everything else is a 502 because the upstream
// site (not this server) failed.
func respondScrapeError(w http.ResponseWriter, message string, err error) {
	var pnf *fetch.PageNotFoundError
	var nf *registry.NotFoundError
	switch {
	case errors.As(err, &pnf), errors.As(err, &nf):
		respondError(w, http.StatusNotFound, message, err)
	default:
		respondError(w, http.StatusBadGateway, message, err)
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	json.NewEncoder(w).Encode(response)
}
