package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Store Sync Job Types
// ---------------------------------------------------------------------------

// JobStatus represents the status of a store sync job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSuccess   JobStatus = "SUCCESS"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// IsTerminal reports whether the job has finished
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSuccess || s == JobStatusFailed || s == JobStatusCancelled
}

// StoreSyncJob represents one background synchronization of a store
type StoreSyncJob struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"storeId"`
	UserID      uuid.UUID  `json:"userId"`
	Status      JobStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Sync results
	ProductsSynced int `json:"productsSynced"`
	OrdersSynced   int `json:"ordersSynced"`

	cancel          context.CancelFunc
	cancelRequested bool
}

// NewStoreSyncJob creates a new pending job
func NewStoreSyncJob(storeID, userID uuid.UUID) *StoreSyncJob {
	return &StoreSyncJob{
		ID:          uuid.New(),
		StoreID:     storeID,
		UserID:      userID,
		Status:      JobStatusPending,
		SubmittedAt: time.Now(),
	}
}

// Start marks the job as running
func (j *StoreSyncJob) Start(now time.Time) {
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *StoreSyncJob) Complete(now time.Time, result StoreSyncResult) {
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
	j.ProductsSynced = result.Products
	j.OrdersSynced = result.Orders
}

// Fail marks the job as failed
func (j *StoreSyncJob) Fail(now time.Time, err string) {
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// MarkCancelled marks the job as cancelled
func (j *StoreSyncJob) MarkCancelled(now time.Time) {
	j.Status = JobStatusCancelled
	j.CompletedAt = &now
	j.Error = context.Canceled.Error()
}

// snapshot returns a copy safe to hand out to readers
func (j *StoreSyncJob) snapshot() StoreSyncJob {
	c := *j
	c.cancel = nil
	return c
}

// StoreSyncResult reports what a job ingested
type StoreSyncResult struct {
	Products int
	Orders   int
}

// ---------------------------------------------------------------------------
// StoreSyncExecutor Interface
// ---------------------------------------------------------------------------

// StoreSyncExecutor executes store sync jobs.
// Execute is called for every accepted job, including jobs cancelled while
// still queued (their context is already done), so the executor can always
// release per-store resources.
type StoreSyncExecutor interface {
	Execute(ctx context.Context, job StoreSyncJob) (StoreSyncResult, error)
}

// JobObserver is notified when a job reaches a terminal state
type JobObserver interface {
	ObserveSyncJob(status string, duration time.Duration)
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds configuration for the store sync scheduler
type Config struct {
	// Workers is the number of concurrent sync jobs
	Workers int
	// QueueSize bounds the number of jobs waiting for a worker
	QueueSize int
	// JobTimeout is the maximum time a job can run
	JobTimeout time.Duration
	// HistorySize is the number of finished jobs kept in memory
	HistorySize int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   100,
		JobTimeout:  2 * time.Minute,
		HistorySize: 100,
	}
}

// Validate reports the first field that cannot run a scheduler
func (c *Config) Validate() error {
	switch {
	case c.Workers <= 0:
		return invalidConfig("workers", c.Workers, "must be positive")
	case c.QueueSize <= 0:
		return invalidConfig("queue_size", c.QueueSize, "must be positive")
	case c.JobTimeout <= 0:
		return invalidConfig("job_timeout", c.JobTimeout, "must be positive")
	case c.HistorySize < 0:
		return invalidConfig("history_size", c.HistorySize, "must not be negative")
	}
	return nil
}

// ---------------------------------------------------------------------------
// StoreSyncScheduler
// ---------------------------------------------------------------------------

// Option configures a StoreSyncScheduler
type Option func(*StoreSyncScheduler)

// WithObserver registers a job observer (metrics)
func WithObserver(o JobObserver) Option {
	return func(s *StoreSyncScheduler) {
		s.observer = o
	}
}

// StoreSyncScheduler runs store sync jobs on a bounded worker pool
type StoreSyncScheduler struct {
	config   Config
	executor StoreSyncExecutor
	logger   *zap.Logger
	observer JobObserver
	now      func() time.Time

	jobs      chan *StoreSyncJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// active holds queued and running jobs by store
	active map[uuid.UUID]*StoreSyncJob

	// Job history for monitoring (in-memory, limited size, newest first)
	history []StoreSyncJob
}

// NewStoreSyncScheduler creates a new store sync scheduler
func NewStoreSyncScheduler(config Config, executor StoreSyncExecutor, logger *zap.Logger, opts ...Option) (*StoreSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &StoreSyncScheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		now:      time.Now,
		active:   make(map[uuid.UUID]*StoreSyncJob),
		history:  make([]StoreSyncJob, 0, config.HistorySize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start starts the worker pool
func (s *StoreSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan *StoreSyncJob, s.config.QueueSize)
	s.isRunning = true

	for i := 0; i < s.config.Workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx, s.jobs, i)
	}

	s.logger.Info("Store sync scheduler started",
		zap.Int("workers", s.config.Workers),
		zap.Int("queue_size", s.config.QueueSize),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop cancels running jobs and waits for workers to drain the queue.
// Queued jobs are still handed to the executor with a cancelled context.
func (s *StoreSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	close(s.jobs)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Store sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Store sync scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the scheduler accepts jobs
func (s *StoreSyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Submit queues a sync job for the store and returns its snapshot
func (s *StoreSyncScheduler) Submit(storeID, userID uuid.UUID) (StoreSyncJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return StoreSyncJob{}, ErrSchedulerNotRunning
	}
	if _, busy := s.active[storeID]; busy {
		return StoreSyncJob{}, ErrJobAlreadyActive
	}

	job := NewStoreSyncJob(storeID, userID)
	job.SubmittedAt = s.now()

	select {
	case s.jobs <- job:
	default:
		return StoreSyncJob{}, ErrJobQueueFull
	}

	s.active[storeID] = job
	s.logger.Debug("Store sync job submitted",
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", storeID.String()),
	)
	return job.snapshot(), nil
}

// Cancel cancels the queued or running job of a store.
// It returns false when the store has no active job.
func (s *StoreSyncScheduler) Cancel(storeID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.active[storeID]
	if !ok {
		return false
	}
	job.cancelRequested = true
	if job.cancel != nil {
		job.cancel()
	}
	s.logger.Info("Store sync job cancellation requested",
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", storeID.String()),
	)
	return true
}

// LatestForStore returns the active job of a store, or its most recent finished one
func (s *StoreSyncScheduler) LatestForStore(storeID uuid.UUID) (StoreSyncJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.active[storeID]; ok {
		return job.snapshot(), true
	}
	for _, job := range s.history {
		if job.StoreID == storeID {
			return job, true
		}
	}
	return StoreSyncJob{}, false
}

// History returns up to limit finished jobs, newest first
func (s *StoreSyncScheduler) History(limit int) []StoreSyncJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	result := make([]StoreSyncJob, limit)
	copy(result, s.history[:limit])
	return result
}

// worker processes jobs until the queue is closed
func (s *StoreSyncScheduler) worker(ctx context.Context, jobs <-chan *StoreSyncJob, workerID int) {
	defer s.wg.Done()

	s.logger.Debug("Store sync worker started", zap.Int("worker_id", workerID))
	for job := range jobs {
		s.processJob(ctx, job, workerID)
	}
	s.logger.Debug("Store sync worker stopping", zap.Int("worker_id", workerID))
}

// processJob executes a single job under the job timeout
func (s *StoreSyncScheduler) processJob(ctx context.Context, job *StoreSyncJob, workerID int) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	s.mu.Lock()
	job.cancel = cancel
	if job.cancelRequested {
		cancel()
	}
	startedAt := s.now()
	job.Start(startedAt)
	snapshot := job.snapshot()
	s.mu.Unlock()

	s.logger.Info("Processing store sync job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", job.StoreID.String()),
	)

	result, err := s.executor.Execute(jobCtx, snapshot)

	s.mu.Lock()
	finishedAt := s.now()
	switch {
	case err == nil:
		job.Complete(finishedAt, result)
	case job.cancelRequested:
		job.MarkCancelled(finishedAt)
	default:
		job.Fail(finishedAt, err.Error())
	}
	delete(s.active, job.StoreID)
	s.addToHistory(job.snapshot())
	status := job.Status
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveSyncJob(string(status), finishedAt.Sub(startedAt))
	}

	if err != nil {
		s.logger.Error("Store sync job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("store_id", job.StoreID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Store sync job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", job.StoreID.String()),
		zap.Int("products", result.Products),
		zap.Int("orders", result.Orders),
	)
}

// addToHistory records a finished job; caller holds s.mu
func (s *StoreSyncScheduler) addToHistory(job StoreSyncJob) {
	if s.config.HistorySize == 0 {
		return
	}
	s.history = append([]StoreSyncJob{job}, s.history...)
	if len(s.history) > s.config.HistorySize {
		s.history = s.history[:s.config.HistorySize]
	}
}
