package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/language"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusAnalyzing JobStatus = "analyzing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document analysis request.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Language     language.Language `json:"language,omitempty"`
	LangDetected bool              `json:"language_detected,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	cfg      analyze.Config
	text     string
	result   *analyze.Result
	errMsg   string
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

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with a user-facing message.
func (j *Job) Fail(phase, msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Phase = phase
	j.errMsg = msg
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// SetConfig sets the analysis config for this job.
func (j *Job) SetConfig(cfg analyze.Config) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cfg = cfg
}

// Config returns the analysis config for this job.
func (j *Job) Config() analyze.Config {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cfg
}

// SetLanguage records the (possibly detected) document language.
func (j *Job) SetLanguage(lang language.Language, detected bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Language = lang
	j.LangDetected = detected
	j.UpdatedAt = time.Now()
}

// Lang returns the job's language and whether one has been set.
func (j *Job) Lang() (language.Language, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Language, j.Language != ""
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult records the completed analysis and releases the raw file
// bytes, which are no longer needed.
func (j *Job) SetResult(text string, res analyze.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.text = text
	j.result = &res
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the analysis result and extracted text, or ok=false
// when the job has not completed.
func (j *Job) Result() (text string, res analyze.Result, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.result == nil {
		return "", analyze.Result{}, false
	}
	return j.text, *j.result, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string            `json:"job_id"`
	DocID        string            `json:"doc_id"`
	Status       JobStatus         `json:"status"`
	Phase        string            `json:"phase"`
	Filename     string            `json:"filename"`
	Language     language.Language `json:"language,omitempty"`
	LangDetected bool              `json:"language_detected,omitempty"`
	Error        string            `json:"error,omitempty"`
	Result       *analyze.Result   `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := JobSnapshot{
		ID:           j.ID,
		DocID:        j.DocID,
		Status:       j.Status,
		Phase:        j.Phase,
		Filename:     j.Filename,
		Language:     j.Language,
		LangDetected: j.LangDetected,
		Error:        j.errMsg,
	}
	if j.result != nil {
		res := *j.result
		snap.Result = &res
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
