// Package jobs provides the scheduled background tasks of the marketplace
// service, built on github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deadLetterRetryJob *DeadLetterRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	deadLetters ports.DeadLetterRepository,
	blobs ports.BlobStore,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deadLetterRetryJob: NewDeadLetterRetryJob(deadLetters, blobs, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deadLetterRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dead letter retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deadLetterRetryJob.Stop()
}
