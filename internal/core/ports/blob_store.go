package ports

import "context"

// BlobRef identifies an uploaded object: its bucket key and its public URL.
type BlobRef struct {
	Key string
	URL string
}

// BlobStore is the object storage collaborator used by the workflow engine.
// It has no transaction concept, which is precisely why the compensation
// protocol exists: atomicity across the record store and the blob store is
// emulated via the trash-then-commit-then-purge sequence.
//
// Implementations must treat Delete of a missing key as success, so retried
// compensations are idempotent.
type BlobStore interface {
	// Upload stores data under the given key and returns its reference.
	Upload(ctx context.Context, key string, data []byte, contentType string) (BlobRef, error)

	// Delete removes the object under key. Deleting a missing key is success.
	Delete(ctx context.Context, key string) error

	// Copy duplicates the object at srcKey to destKey.
	Copy(ctx context.Context, srcKey, destKey string) error

	// Move is copy-then-delete-of-source. Not atomic: a crash between the two
	// calls leaves both objects present, an accepted limitation.
	Move(ctx context.Context, srcKey, destKey string) error
}
