package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nmodha/docvani/internal/doctree"
)

// JobStatus represents the state of a background processing job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusExtracting   JobStatus = "extracting"
	StatusTranslating  JobStatus = "translating"
	StatusSynthesizing JobStatus = "synthesizing"
	StatusResolving    JobStatus = "resolving"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Job tracks the state of a single queued document run.
type Job struct {
	mu sync.Mutex

	ID         string
	Filename   string
	Topics     []string
	SaveStages bool

	Status    JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	fileData []byte
	result   *Result
	errMsg   string
}

// NewJob creates a queued job holding the uploaded document bytes.
func NewJob(filename string, data []byte, topics []string, saveStages bool) *Job {
	now := time.Now()
	return &Job{
		ID:         uuid.NewString(),
		Filename:   filename,
		Topics:     topics,
		SaveStages: saveStages,
		Status:     StatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
		fileData:   data,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Complete marks the job done and releases the upload bytes.
func (j *Job) Complete(res Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.result = &res
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed and releases the upload bytes.
func (j *Job) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.errMsg = err.Error()
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state. Data and
// ProcessingTime are present only once the job completed.
type JobSnapshot struct {
	ID             string        `json:"job_id"`
	Status         JobStatus     `json:"status"`
	Filename       string        `json:"filename"`
	Error          string        `json:"error,omitempty"`
	Data           *doctree.Tree `json:"data,omitempty"`
	ProcessingTime float64       `json:"processing_time,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Filename:  j.Filename,
		Error:     j.errMsg,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.result != nil {
		snap.Data = j.result.Tree
		snap.ProcessingTime = j.result.Duration.Seconds()
	}
	return snap
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
