package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is the trackable record of one background batch run. Submitting a
// batch returns a job id immediately; the goroutine running it updates the
// record instead of running fire-and-forget.
type Job struct {
	ID        string                   `json:"id"`
	Framework string                   `json:"framework"`
	Status    JobStatus                `json:"status"`
	Progress  domain.BatchProgress     `json:"progress"`
	Results   []domain.BatchItemResult `json:"results,omitempty"`
	Error     string                   `json:"error,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

type batchRunner func(ctx context.Context, onProgress domain.ProgressFunc) ([]domain.BatchItemResult, error)

type JobStore struct {
	logger *logrus.Logger
	mu     sync.RWMutex
	jobs   map[string]*Job
}

func NewJobStore(logger *logrus.Logger) *JobStore {
	return &JobStore{
		logger: logger,
		jobs:   make(map[string]*Job),
	}
}

// Launch registers a job and starts the batch in a tracked goroutine. The
// run is detached from the submitting request's context on purpose: an HTTP
// client disconnecting must not cancel a half-finished batch.
func (s *JobStore) Launch(framework string, run batchRunner) *Job {
	now := time.Now()
	job := &Job{
		ID:        uuid.New().String(),
		Framework: framework,
		Status:    JobPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.execute(job.ID, run)
	return job
}

func (s *JobStore) execute(jobID string, run batchRunner) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("job_id", jobID).Errorf("batch job panicked: %v", r)
			s.update(jobID, func(job *Job) {
				job.Status = JobFailed
				job.Error = fmt.Sprintf("internal error: %v", r)
			})
		}
	}()

	s.update(jobID, func(job *Job) {
		job.Status = JobRunning
	})

	results, err := run(context.Background(), func(progress domain.BatchProgress) {
		s.update(jobID, func(job *Job) {
			job.Progress = progress
		})
	})

	s.update(jobID, func(job *Job) {
		job.Results = results
		if err != nil {
			job.Status = JobFailed
			job.Error = err.Error()
			return
		}
		job.Status = JobCompleted
		job.Progress.PercentComplete = 100
		job.Progress.CompletedCount = job.Progress.TotalCount
	})
}

func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	snapshot := *job
	snapshot.Results = append([]domain.BatchItemResult(nil), job.Results...)
	return &snapshot, true
}

func (s *JobStore) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
		job.UpdatedAt = time.Now()
	}
}
