// Package saga implements the compensating-action workflow engine at the
// heart of the marketplace backend. Multi-step mutations that span the record
// store and the blob store are expressed as MutationPlans of tagged Steps,
// each carrying a symmetric compensation computed before execution begins:
//
//	BlobUpload(data, destKey)   compensates with  BlobDelete(destKey)
//	BlobMove(src, dest)         compensates with  BlobMove(dest, src)
//	BlobDelete(key)             cleanup only, irreversible
//	RecordWrite(apply)          compensates with  delete / prior-snapshot re-apply
//
// The ordering rule for "replace" operations: move-old-to-trash happens
// before upload-new, so a successful trash-move with a failed re-upload still
// leaves recoverable original data. Trash is only permanently deleted, as a
// cleanup step, after the database write referencing the new keys succeeded.
package saga
