package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// JobHandler proxies API calls to the batch job service.
type JobHandler struct {
	service *batch.Service
}

// NewJobHandler wires the REST layer to the batch service.
func NewJobHandler(service *batch.Service) *JobHandler {
	return &JobHandler{service: service}
}

type apiScrapeRequest struct {
	League     string   `json:"league"`
	Season     int      `json:"season"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Team       string   `json:"team"`
	Conference string   `json:"conference"`
	GameID     string   `json:"game_id"`
	GameIDs    []string `json:"game_ids"`
	Info       *bool    `json:"info"`
	Box        *bool    `json:"box"`
	PBP        *bool    `json:"pbp"`
}

// CreateJob handles POST /api/v1/scrapes.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req apiScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.League == "" {
		req.League = string(espn.Mens)
	}

	batchReq := batch.Request{
		League:     espn.League(req.League),
		Season:     req.Season,
		Team:       req.Team,
		Conference: req.Conference,
		Parts: scrape.Parts{
			Info: req.Info == nil || *req.Info,
			Box:  req.Box == nil || *req.Box,
			PBP:  req.PBP == nil || *req.PBP,
		},
	}

	if len(req.GameIDs) > 0 {
		batchReq.GameIDs = append(batchReq.GameIDs, req.GameIDs...)
	}
	if req.GameID != "" {
		batchReq.GameIDs = append(batchReq.GameIDs, req.GameID)
	}

	if req.StartDate != "" {
		start, err := batch.ParseDate(req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start_date", err)
			return
		}
		batchReq.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := batch.ParseDate(req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end_date", err)
			return
		}
		batchReq.EndDate = &end
	}

	job, err := h.service.Enqueue(batchReq)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue scrape job", err)
		return
	}
	respondJSON(w, http.StatusAccepted, job)
}

// ListJobs handles GET /api/v1/scrapes.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 10)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.service.Recent(limit),
	})
}

// GetJob handles GET /api/v1/scrapes/{jobID}.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := h.service.Job(mux.Vars(r)["jobID"])
	if !ok {
		respondError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// GetJobResult handles GET /api/v1/scrapes/{jobID}/result.
func (h *JobHandler) GetJobResult(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["jobID"]

	job, ok := h.service.Job(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	if job.Status != batch.JobStatusCompleted {
		respondError(w, http.StatusConflict, "Job has not completed", nil)
		return
	}

	ds, ok := h.service.Result(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Job result unavailable", nil)
		return
	}
	respondJSON(w, http.StatusOK, ds)
}
