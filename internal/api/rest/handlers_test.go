package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/fetch"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/registry"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return "", fmt.Errorf("unexpected fetch of %s", url)
}

func gameFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../espn/testdata/game.html")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return string(data)
}

func testRouter(fetcher fetch.Fetcher) *mux.Router {
	h := NewHandler(scrape.New(fetcher, registry.New("")))
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/games/{gameID}", h.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{gameID}/info", h.GetGameInfo).Methods(http.MethodGet)
	api.HandleFunc("/games/{gameID}/score-check", h.GetGameScoreCheck).Methods(http.MethodGet)
	return r
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(&fakeFetcher{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "fieldhouse" {
		t.Errorf("body = %v", body)
	}
}

func TestGetGameInfo(t *testing.T) {
	const gameID = "401712345"
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.GameURL(espn.Mens, gameID): gameFixture(t),
	}}

	rec := httptest.NewRecorder()
	testRouter(fetcher).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/info", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var info records.GameInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if info.HomeTeam != "Kansas Jayhawks" || info.HomeScore == nil || *info.HomeScore != 72 {
		t.Errorf("info = %+v", info)
	}
}

func TestGetGameSelectsParts(t *testing.T) {
	const gameID = "401712345"
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.GameURL(espn.Mens, gameID):     gameFixture(t),
		espn.BoxscoreURL(espn.Mens, gameID): gameFixture(t),
	}}

	rec := httptest.NewRecorder()
	testRouter(fetcher).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"?pbp=false", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var ds records.Dataset
	if err := json.NewDecoder(rec.Body).Decode(&ds); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(ds.Info) != 1 || len(ds.Box) == 0 {
		t.Errorf("dataset = %d/%d/%d rows", len(ds.Info), len(ds.Box), len(ds.PBP))
	}
	if len(ds.PBP) != 0 {
		t.Errorf("pbp = %d rows, want none when pbp=false", len(ds.PBP))
	}
}

func TestGetGameInfoNotFound(t *testing.T) {
	const gameID = "999999"
	url := espn.GameURL(espn.Mens, gameID)
	fetcher := &fakeFetcher{errs: map[string]error{
		url: &fetch.PageNotFoundError{URL: url},
	}}

	rec := httptest.NewRecorder()
	testRouter(fetcher).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/info", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetGameInfoUpstreamFailure(t *testing.T) {
	const gameID = "401712345"
	url := espn.GameURL(espn.Mens, gameID)
	fetcher := &fakeFetcher{errs: map[string]error{
		url: &fetch.FetchError{URL: url, Attempts: 15, Err: fmt.Errorf("unexpected status 500")},
	}}

	rec := httptest.NewRecorder()
	testRouter(fetcher).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/info", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestGetGameInfoBadLeague(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(&fakeFetcher{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/1/info?league=minor", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetGameScoreCheck(t *testing.T) {
	const gameID = "401712345"
	fetcher := &fakeFetcher{pages: map[string]string{
		espn.GameURL(espn.Mens, gameID):     gameFixture(t),
		espn.BoxscoreURL(espn.Mens, gameID): gameFixture(t),
	}}

	rec := httptest.NewRecorder()
	testRouter(fetcher).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/score-check", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var body struct {
		GameID     string        `json:"game_id"`
		Mismatches []interface{} `json:"mismatches"`
		Consistent bool          `json:"consistent"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.GameID != gameID || !body.Consistent {
		t.Errorf("body = %+v, want a consistent game", body)
	}
}

func TestBoolAndIntParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?a=true&b=false&c=junk&n=7&bad=x", nil)

	if !boolParam(req, "a", false) {
		t.Error("a should parse true")
	}
	if boolParam(req, "b", true) {
		t.Error("b should parse false")
	}
	if !boolParam(req, "c", true) {
		t.Error("junk should keep the default")
	}
	if !boolParam(req, "missing", true) {
		t.Error("missing should keep the default")
	}
	if got := intParam(req, "n", 0); got != 7 {
		t.Errorf("n = %d, want 7", got)
	}
	if got := intParam(req, "bad", 3); got != 3 {
		t.Errorf("bad = %d, want default 3", got)
	}
}

func jobRouter(svc *batch.Service) *mux.Router {
	h := NewJobHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/scrapes", h.CreateJob).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/scrapes", h.ListJobs).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/scrapes/{jobID}", h.GetJob).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/scrapes/{jobID}/result", h.GetJobResult).Methods(http.MethodGet)
	return r
}

func TestCreateJob(t *testing.T) {
	svc := batch.NewService(scrape.New(&fakeFetcher{}, registry.New("")), 1)
	router := jobRouter(svc)

	body := bytes.NewBufferString(`{"game_ids":["401712345","401712346"],"pbp":false}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scrapes", body))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (body %s)", rec.Code, rec.Body)
	}
	var job batch.Job
	if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if job.ID == "" || job.Type != batch.JobTypeGames || job.Status != batch.JobStatusQueued {
		t.Errorf("job = %+v", job)
	}

	// The queued job is visible through the read endpoints.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scrapes/"+job.ID, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GetJob status = %d, want 200", rec.Code)
	}

	// Its result is not ready yet.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scrapes/"+job.ID+"/result", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("result status = %d, want 409 while queued", rec.Code)
	}
}

func TestCreateJobInvalid(t *testing.T) {
	svc := batch.NewService(scrape.New(&fakeFetcher{}, registry.New("")), 1)
	router := jobRouter(svc)

	// Malformed body, no derivable job type, unknown league, bad date.
	cases := []string{
		`{`,
		`{}`,
		`{"league":"minor","season":2025}`,
		`{"start_date":"soon","end_date":"2025-03-01"}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scrapes", bytes.NewBufferString(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGetJobMissing(t *testing.T) {
	svc := batch.NewService(scrape.New(&fakeFetcher{}, registry.New("")), 1)
	rec := httptest.NewRecorder()
	jobRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scrapes/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
