package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// DeadLetterKind tags the kind of blob action a dead letter retries.
type DeadLetterKind string

const (
	// DeadLetterBlobDelete retries deleting an orphaned object.
	DeadLetterBlobDelete DeadLetterKind = "blob_delete"
	// DeadLetterBlobMove retries moving an object back to its original key.
	DeadLetterBlobMove DeadLetterKind = "blob_move"
	// DeadLetterRecordWrite marks a failed record compensation. It cannot be
	// retried mechanically and is surfaced for operator attention.
	DeadLetterRecordWrite DeadLetterKind = "record_write"
)

// DeadLetter is the durable record of a compensation or cleanup action that
// failed and requires out-of-band retry. The workflow engine writes one per
// failed action before returning to the caller; a background job re-attempts
// them until resolved. Dead letters are never silently dropped.
type DeadLetter struct {
	ID         kernel.UUID
	PlanLabel  string
	StepLabel  string
	Kind       DeadLetterKind
	SourceKey  string
	DestKey    string
	Reason     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// DeadLetterRepository persists dead letters outside any business
// transaction. It must write on the main connection: a dead letter recorded
// during a failing workflow has to survive that workflow's rollback.
type DeadLetterRepository interface {
	// Add persists a new dead letter.
	Add(ctx context.Context, letter *DeadLetter) error

	// GetUnresolved returns dead letters that still need a retry, oldest first.
	GetUnresolved(ctx context.Context, limit int) ([]*DeadLetter, error)

	// MarkResolved stamps the dead letter as successfully retried.
	MarkResolved(ctx context.Context, id kernel.UUID, at time.Time) error
}
