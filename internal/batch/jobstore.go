package batch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/fieldhouse/internal/records"
)

// JobType enumerates the batch job variants.
type JobType string

const (
	JobTypeGames      JobType = "games"
	JobTypeDateRange  JobType = "date_range"
	JobTypeSeason     JobType = "season"
	JobTypeTeam       JobType = "team"
	JobTypeConference JobType = "conference"
)

// JobStatus is a job's lifecycle state.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job is one queued batch scrape and its progress.
type Job struct {
	ID         string    `json:"job_id"`
	Type       JobType   `json:"job_type"`
	League     string    `json:"league"`
	Season     int       `json:"season,omitempty"`
	StartDate  string    `json:"start_date,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	Team       string    `json:"team,omitempty"`
	Conference string    `json:"conference,omitempty"`
	GameIDs    []string  `json:"game_ids,omitempty"`
	Status     JobStatus `json:"status"`
	Message    string    `json:"message,omitempty"`
	Current    int       `json:"progress_current"`
	Total      int       `json:"progress_total"`
	Error      string    `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (j *Job) copy() *Job {
	cpy := *j
	cpy.GameIDs = append([]string(nil), j.GameIDs...)
	return &cpy
}

// Store holds jobs and their results in memory. Jobs do not survive a
// restart; durable queuing is out of scope for a scraper.
type Store struct {
	mu      sync.Mutex
	jobs    map[string]*Job
	order   []string
	results map[string]*records.Dataset
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs:    make(map[string]*Job),
		results: make(map[string]*records.Dataset),
	}
}

// Create assigns the job an id and queues it.
func (s *Store) Create(job *Job) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	job.ID = uuid.NewString()
	job.Status = JobStatusQueued
	job.Message = "queued"
	job.CreatedAt = now
	job.UpdatedAt = now

	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	return job.copy()
}

// Get returns a snapshot of one job.
func (s *Store) Get(id string) (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	return job.copy(), true
}

// Recent returns snapshots of the most recently created jobs, newest first.
func (s *Store) Recent(limit int) []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Job
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.jobs[s.order[i]].copy())
	}
	return out
}

// Result returns a completed job's dataset.
func (s *Store) Result(id string) (*records.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.results[id]
	return ds, ok
}

// claimNext marks the oldest queued job running and returns it.
func (s *Store) claimNext() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		job := s.jobs[id]
		if job.Status != JobStatusQueued {
			continue
		}
		now := time.Now().UTC()
		job.Status = JobStatusRunning
		job.Message = "running"
		job.StartedAt = &now
		job.UpdatedAt = now
		return job.copy()
	}
	return nil
}

func (s *Store) setProgress(id, message string, current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return
	}
	job.Message = message
	job.Current = current
	if total > 0 {
		job.Total = total
	}
	job.UpdatedAt = time.Now().UTC()
}

func (s *Store) finish(id string, ds *records.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return
	}
	now := time.Now().UTC()
	job.UpdatedAt = now
	job.CompletedAt = &now

	if err != nil {
		job.Status = JobStatusFailed
		job.Message = "failed"
		job.Error = err.Error()
		return
	}
	job.Status = JobStatusCompleted
	job.Message = "completed"
	job.Current = job.Total
	s.results[id] = ds
}
