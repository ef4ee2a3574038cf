package saga

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const (
	uploadPrefix = "_uploads"
	trashPrefix  = "_trash"
)

// UploadKey generates a destination key for a fresh upload:
// "_uploads/{uniqueToken}-{originalFilename}". The token makes retried
// uploads collision-free, so a re-run of a failed plan never overwrites an
// object a previous attempt left behind.
func UploadKey(originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s", uploadPrefix, uuid.NewString(), originalFilename)
}

// TrashKey generates the staging key for a soon-to-be-deleted object:
// "_trash/{entityId}/{timestamp}/{kind}_{originalKey}". The trash namespace
// holds the object until the database write that stops referencing it has
// committed; only then is it purged.
func TrashKey(entityID kernel.UUID, at time.Time, kind, originalKey string) string {
	return fmt.Sprintf("%s/%s/%d/%s_%s", trashPrefix, entityID, at.Unix(), kind, originalKey)
}
