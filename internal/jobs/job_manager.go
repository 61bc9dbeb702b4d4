package jobs

import (
	"fmt"
	"log/slog"

	"returns/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	idempotencyPurgeJob *IdempotencyPurgeJob
}

// NewJobManager creates a job manager wired with all background jobs.
func NewJobManager(
	idempotencyRepo ports.IdempotencyRepository,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		idempotencyPurgeJob: NewIdempotencyPurgeJob(idempotencyRepo, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.idempotencyPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start idempotency purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.idempotencyPurgeJob.Stop()
}
