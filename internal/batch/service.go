package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/records"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// Request is an API-facing batch invocation. Exactly one of GameIDs, the date
// pair, Team, Conference, or Season alone must be populated.
type Request struct {
	League     espn.League
	Season     int
	StartDate  *time.Time
	EndDate    *time.Time
	Team       string
	Conference string
	GameIDs    []string
	Parts      scrape.Parts
}

// DeriveType infers the job type from which fields are populated.
func (r Request) DeriveType() (JobType, error) {
	switch {
	case len(r.GameIDs) > 0:
		return JobTypeGames, nil
	case r.Team != "":
		return JobTypeTeam, nil
	case r.Conference != "":
		return JobTypeConference, nil
	case r.StartDate != nil && r.EndDate != nil:
		return JobTypeDateRange, nil
	case r.Season > 0:
		return JobTypeSeason, nil
	}
	return "", fmt.Errorf("unable to determine job type from request")
}

// Service queues batch scrapes and executes them one at a time on a
// background worker. One job at a time keeps the site's rate limits intact no
// matter how many jobs pile up.
type Service struct {
	store  *Store
	runner func(reporter Reporter) *Runner

	// requests keeps the original request per job id; the store only holds
	// the serializable view.
	requests sync.Map

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService builds a job service over a pipeline. Call Start to launch the
// worker.
func NewService(pipeline Pipeline, workers int) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store: NewStore(),
		runner: func(reporter Reporter) *Runner {
			return NewRunner(pipeline, workers, reporter)
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for the in-flight job to finish, up to
// the context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue validates a request and queues it as a job.
func (s *Service) Enqueue(req Request) (*Job, error) {
	if !req.League.Valid() {
		return nil, fmt.Errorf("unknown league %q", req.League)
	}
	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	season := req.Season
	if season == 0 && (jobType == JobTypeTeam || jobType == JobTypeConference) {
		season = CurrentSeason(time.Now())
	}

	job := &Job{
		Type:       jobType,
		League:     string(req.League),
		Season:     season,
		Team:       req.Team,
		Conference: req.Conference,
		GameIDs:    req.GameIDs,
		Total:      len(req.GameIDs),
	}
	if req.StartDate != nil {
		job.StartDate = req.StartDate.Format("2006-01-02")
	}
	if req.EndDate != nil {
		job.EndDate = req.EndDate.Format("2006-01-02")
	}

	stored := s.store.Create(job)
	s.requests.Store(stored.ID, req)
	log.Printf("[batch] → queued %s job %s", jobType, stored.ID)
	return stored, nil
}

// Job returns a snapshot of one job.
func (s *Service) Job(id string) (*Job, bool) {
	return s.store.Get(id)
}

// Recent returns the most recently created jobs, newest first.
func (s *Service) Recent(limit int) []*Job {
	return s.store.Recent(limit)
}

// Result returns a completed job's dataset.
func (s *Service) Result(id string) (*records.Dataset, bool) {
	return s.store.Result(id)
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		job := s.store.claimNext()
		if job == nil {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				continue
			}
		}

		s.execute(job)

		if s.ctx.Err() != nil {
			return
		}
	}
}

func (s *Service) execute(job *Job) {
	reqVal, ok := s.requests.Load(job.ID)
	if !ok {
		s.store.finish(job.ID, nil, fmt.Errorf("job request lost"))
		return
	}
	req := reqVal.(Request)
	defer s.requests.Delete(job.ID)

	reporter := &jobReporter{store: s.store, jobID: job.ID}
	runner := s.runner(reporter)
	league := espn.League(job.League)

	var ds records.Dataset
	var err error
	switch job.Type {
	case JobTypeGames:
		ds, err = runner.Games(s.ctx, league, job.GameIDs, req.Parts)
	case JobTypeDateRange:
		ds, err = runner.GamesRange(s.ctx, league, *req.StartDate, *req.EndDate, req.Parts)
	case JobTypeSeason:
		ds, err = runner.GamesSeason(s.ctx, league, job.Season, req.Parts)
	case JobTypeTeam:
		ds, err = runner.GamesTeam(s.ctx, league, job.Team, job.Season, req.Parts)
	case JobTypeConference:
		ds, err = runner.GamesConference(s.ctx, league, job.Conference, job.Season, req.Parts)
	default:
		err = fmt.Errorf("unsupported job type %s", job.Type)
	}

	if err != nil {
		log.Printf("[batch] ❌ job %s failed: %v", job.ID, err)
	} else {
		log.Printf("[batch] ✓ job %s completed with %d rows", job.ID, ds.Rows())
	}
	s.store.finish(job.ID, &ds, err)
}

// jobReporter mirrors batch progress into the job store.
type jobReporter struct {
	store *Store
	jobID string
	done  atomic.Int64
	total atomic.Int64
}

func (r *jobReporter) OnBatchStart(total int) {
	r.total.Store(int64(total))
	r.store.setProgress(r.jobID, fmt.Sprintf("scraping %d games", total), 0, total)
}

func (r *jobReporter) OnGameDone(gameID string, err error) {
	done := r.done.Add(1)
	msg := fmt.Sprintf("scraped %s", gameID)
	if err != nil {
		msg = fmt.Sprintf("failed %s", gameID)
	}
	r.store.setProgress(r.jobID, msg, int(done), int(r.total.Load()))
}

func (r *jobReporter) OnProgress(message string, current, total int) {
	r.store.setProgress(r.jobID, message, current, total)
}

func (r *jobReporter) OnBatchComplete() {
	r.store.setProgress(r.jobID, "finishing", int(r.done.Load()), int(r.total.Load()))
}
