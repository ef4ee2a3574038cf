package saga

import (
	"context"

	"marketplace/internal/core/ports"
)

// Step is one atomic sub-operation of a MutationPlan. Every step carries its
// own compensation, computed when the plan is built, not improvised after
// failure. The interface is sealed: the only implementations are the four
// tagged variants below (blob upload, blob move, blob delete, record write).
type Step interface {
	// Label names the step for results, logs and dead letters.
	Label() string

	// Execute performs the step's forward effect.
	Execute(ctx context.Context) error

	// Compensate undoes the step's forward effect. Compensations must be
	// idempotent: re-running one after a partial failure must not error.
	Compensate(ctx context.Context) error

	// deadLetter describes how a failed compensation of this step is
	// persisted for out-of-band retry.
	deadLetter() (kind ports.DeadLetterKind, srcKey, destKey string)
}

// BlobUploadStep uploads data to a destination key.
// Compensation deletes the destination key.
type BlobUploadStep struct {
	blobs       ports.BlobStore
	label       string
	destKey     string
	data        []byte
	contentType string
}

// NewBlobUpload creates an upload step. The destination key must be generated
// up front with UploadKey so the compensation target is known before
// execution begins.
func NewBlobUpload(blobs ports.BlobStore, label, destKey string, data []byte, contentType string) *BlobUploadStep {
	return &BlobUploadStep{
		blobs:       blobs,
		label:       label,
		destKey:     destKey,
		data:        data,
		contentType: contentType,
	}
}

// Label returns the step label.
func (s *BlobUploadStep) Label() string { return s.label }

// DestKey returns the destination key the upload will land on.
func (s *BlobUploadStep) DestKey() string { return s.destKey }

// Execute uploads the data to the destination key.
func (s *BlobUploadStep) Execute(ctx context.Context) error {
	_, err := s.blobs.Upload(ctx, s.destKey, s.data, s.contentType)
	return err
}

// Compensate deletes the uploaded object. Deleting a missing key is success,
// so a compensation retry never errors on an already-deleted blob.
func (s *BlobUploadStep) Compensate(ctx context.Context) error {
	return s.blobs.Delete(ctx, s.destKey)
}

func (s *BlobUploadStep) deadLetter() (ports.DeadLetterKind, string, string) {
	return ports.DeadLetterBlobDelete, s.destKey, ""
}

// BlobMoveStep moves an object from a source key to a destination key.
// Compensation moves it back in the reverse direction.
type BlobMoveStep struct {
	blobs   ports.BlobStore
	label   string
	srcKey  string
	destKey string
}

// NewBlobMove creates a move step.
func NewBlobMove(blobs ports.BlobStore, label, srcKey, destKey string) *BlobMoveStep {
	return &BlobMoveStep{blobs: blobs, label: label, srcKey: srcKey, destKey: destKey}
}

// Label returns the step label.
func (s *BlobMoveStep) Label() string { return s.label }

// Execute moves the object from source to destination.
func (s *BlobMoveStep) Execute(ctx context.Context) error {
	return s.blobs.Move(ctx, s.srcKey, s.destKey)
}

// Compensate moves the object back from destination to source.
func (s *BlobMoveStep) Compensate(ctx context.Context) error {
	return s.blobs.Move(ctx, s.destKey, s.srcKey)
}

func (s *BlobMoveStep) deadLetter() (ports.DeadLetterKind, string, string) {
	return ports.DeadLetterBlobMove, s.destKey, s.srcKey
}

// BlobDeleteStep permanently deletes an object. It has no compensation and is
// only valid as a cleanup step after the plan's commit point; within the plan
// body, deletions must be staged as moves into the trash prefix instead.
type BlobDeleteStep struct {
	blobs ports.BlobStore
	label string
	key   string
}

// NewBlobDelete creates a delete step for post-success cleanup.
func NewBlobDelete(blobs ports.BlobStore, label, key string) *BlobDeleteStep {
	return &BlobDeleteStep{blobs: blobs, label: label, key: key}
}

// Label returns the step label.
func (s *BlobDeleteStep) Label() string { return s.label }

// Execute deletes the object. Deleting a missing key is success.
func (s *BlobDeleteStep) Execute(ctx context.Context) error {
	return s.blobs.Delete(ctx, s.key)
}

// Compensate is a no-op: a permanent delete is irreversible, which is why the
// engine only accepts this variant in the cleanup section of a plan.
func (s *BlobDeleteStep) Compensate(_ context.Context) error {
	return nil
}

func (s *BlobDeleteStep) deadLetter() (ports.DeadLetterKind, string, string) {
	return ports.DeadLetterBlobDelete, s.key, ""
}

// RecordWriteStep applies a record-store mutation through closures bound to
// the caller's repositories. The compensation is operation-specific: a create
// compensates with a delete, an update compensates by re-applying the prior
// snapshot. Both closures are captured when the plan is built.
type RecordWriteStep struct {
	label      string
	apply      func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// NewRecordWrite creates a record-write step. compensate may be nil when the
// write is the final step of a plan and nothing can fail after it.
func NewRecordWrite(label string, apply, compensate func(ctx context.Context) error) *RecordWriteStep {
	return &RecordWriteStep{label: label, apply: apply, compensate: compensate}
}

// Label returns the step label.
func (s *RecordWriteStep) Label() string { return s.label }

// Execute applies the record mutation.
func (s *RecordWriteStep) Execute(ctx context.Context) error {
	return s.apply(ctx)
}

// Compensate re-applies the prior snapshot or deletes the created row.
func (s *RecordWriteStep) Compensate(ctx context.Context) error {
	if s.compensate == nil {
		return nil
	}
	return s.compensate(ctx)
}

func (s *RecordWriteStep) deadLetter() (ports.DeadLetterKind, string, string) {
	return ports.DeadLetterRecordWrite, "", ""
}
