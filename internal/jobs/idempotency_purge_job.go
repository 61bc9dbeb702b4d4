package jobs

import (
	"context"
	"log/slog"
	"time"

	"returns/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// IdempotencyPurgeJob deletes expired idempotency ledger records. Expired
// records are already invisible to reads; the purge keeps the table from
// growing without bound.
type IdempotencyPurgeJob struct {
	repo   ports.IdempotencyRepository
	cron   *cron.Cron
	logger *slog.Logger
}

// NewIdempotencyPurgeJob creates a job purging the ledger hourly.
func NewIdempotencyPurgeJob(repo ports.IdempotencyRepository, logger *slog.Logger) *IdempotencyPurgeJob {
	return &IdempotencyPurgeJob{
		repo:   repo,
		cron:   cron.New(),
		logger: logger.With("component", "idempotency_purge_job"),
	}
}

// Start begins the purge job on an hourly schedule.
func (j *IdempotencyPurgeJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		deleted, err := j.repo.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Idempotency purge failed", "error", err)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Purged expired idempotency records", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency purge job started (running hourly)")
	return nil
}

// Stop stops the purge job.
func (j *IdempotencyPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Idempotency purge job stopped")
}
