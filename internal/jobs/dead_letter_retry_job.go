package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// retryBatchSize bounds how many dead letters one sweep picks up.
const retryBatchSize = 50

// DeadLetterRetryJob periodically re-attempts the blob actions recorded as
// dead letters: orphan deletions and moves back to original keys. Both are
// idempotent, so a letter that was already repaired out of band resolves
// cleanly on the next sweep. Record-write letters are not mechanically
// retryable; the job surfaces them for operator attention and leaves them
// unresolved.
type DeadLetterRetryJob struct {
	deadLetters ports.DeadLetterRepository
	blobs       ports.BlobStore
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDeadLetterRetryJob creates the retry job over the dead-letter repository
// and the blob store.
func NewDeadLetterRetryJob(
	deadLetters ports.DeadLetterRepository,
	blobs ports.BlobStore,
	logger *slog.Logger,
) *DeadLetterRetryJob {
	return &DeadLetterRetryJob{
		deadLetters: deadLetters,
		blobs:       blobs,
		cron:        cron.New(),
		logger:      logger.With("component", "dead_letter_retry_job"),
	}
}

// Start begins the retry job, sweeping once per minute.
func (j *DeadLetterRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dead letter retry job started (running every minute)")
	return nil
}

// Stop stops the retry job.
func (j *DeadLetterRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dead letter retry job stopped")
}

// sweep processes one batch of unresolved dead letters. Each letter is retried
// independently; one failure never blocks the rest of the batch.
func (j *DeadLetterRetryJob) sweep(ctx context.Context) {
	letters, err := j.deadLetters.GetUnresolved(ctx, retryBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to load dead letters", "error", err)
		return
	}

	for _, letter := range letters {
		j.retry(ctx, letter)
	}
}

func (j *DeadLetterRetryJob) retry(ctx context.Context, letter *ports.DeadLetter) {
	var err error
	switch letter.Kind {
	case ports.DeadLetterBlobDelete:
		err = j.blobs.Delete(ctx, letter.SourceKey)
	case ports.DeadLetterBlobMove:
		err = j.blobs.Move(ctx, letter.SourceKey, letter.DestKey)
	case ports.DeadLetterRecordWrite:
		j.logger.WarnContext(ctx, "record compensation requires manual resolution",
			"dead_letter_id", letter.ID.String(),
			"plan", letter.PlanLabel, "step", letter.StepLabel, "reason", letter.Reason)
		return
	default:
		j.logger.ErrorContext(ctx, "unknown dead letter kind",
			"dead_letter_id", letter.ID.String(), "kind", string(letter.Kind))
		return
	}

	if err != nil {
		j.logger.WarnContext(ctx, "dead letter retry failed",
			"dead_letter_id", letter.ID.String(),
			"plan", letter.PlanLabel, "step", letter.StepLabel, "error", err)
		return
	}

	if err = j.deadLetters.MarkResolved(ctx, letter.ID, time.Now().UTC()); err != nil {
		// The blob action succeeded; the next sweep will redo it (idempotent)
		// and mark it then.
		j.logger.ErrorContext(ctx, "failed to mark dead letter resolved",
			"dead_letter_id", letter.ID.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "dead letter resolved",
		"dead_letter_id", letter.ID.String(),
		"plan", letter.PlanLabel, "step", letter.StepLabel)
}
