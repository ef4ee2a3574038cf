package saga_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlobStore is an in-memory blob store with per-key failure injection.
// Delete of a missing key succeeds, matching the idempotency contract.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  map[string]error // operation+key -> error
	ops     []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		failOn:  make(map[string]error),
	}
}

func (f *fakeBlobStore) fail(op, key string, err error) {
	f.failOn[op+":"+key] = err
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) (ports.BlobRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "upload:"+key)
	if err := f.failOn["upload:"+key]; err != nil {
		return ports.BlobRef{}, err
	}
	f.objects[key] = data
	return ports.BlobRef{Key: key, URL: "https://bucket.example.com/" + key}, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "delete:"+key)
	if err := f.failOn["delete:"+key]; err != nil {
		return err
	}
	delete(f.objects, key) // missing key is success
	return nil
}

func (f *fakeBlobStore) Copy(_ context.Context, srcKey, destKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, fmt.Sprintf("copy:%s->%s", srcKey, destKey))
	if err := f.failOn["copy:"+srcKey]; err != nil {
		return err
	}
	data, ok := f.objects[srcKey]
	if !ok {
		return errors.New("no such key: " + srcKey)
	}
	f.objects[destKey] = data
	return nil
}

func (f *fakeBlobStore) Move(ctx context.Context, srcKey, destKey string) error {
	if err := f.Copy(ctx, srcKey, destKey); err != nil {
		return err
	}
	return f.Delete(ctx, srcKey)
}

func (f *fakeBlobStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

// fakeDeadLetters records added dead letters in memory.
type fakeDeadLetters struct {
	mu      sync.Mutex
	letters []*ports.DeadLetter
}

func (f *fakeDeadLetters) Add(_ context.Context, letter *ports.DeadLetter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.letters = append(f.letters, letter)
	return nil
}

func (f *fakeDeadLetters) GetUnresolved(_ context.Context, _ int) ([]*ports.DeadLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*ports.DeadLetter(nil), f.letters...), nil
}

func (f *fakeDeadLetters) MarkResolved(_ context.Context, _ kernel.UUID, _ time.Time) error {
	return nil
}

func newEngine(letters *fakeDeadLetters) *saga.Engine {
	return saga.NewEngine(letters, slog.New(slog.DiscardHandler))
}

func recordStep(label string, journal *[]string, failExec, failComp bool) saga.Step {
	return saga.NewRecordWrite(label,
		func(_ context.Context) error {
			*journal = append(*journal, "exec:"+label)
			if failExec {
				return errors.New(label + " exec failed")
			}
			return nil
		},
		func(_ context.Context) error {
			*journal = append(*journal, "comp:"+label)
			if failComp {
				return errors.New(label + " comp failed")
			}
			return nil
		})
}

func TestEngine_Run_AllStepsSucceed(t *testing.T) {
	var journal []string
	letters := &fakeDeadLetters{}

	plan := saga.NewPlan("test").
		Add(
			recordStep("s1", &journal, false, false),
			recordStep("s2", &journal, false, false),
			recordStep("s3", &journal, false, false),
		)

	err := newEngine(letters).Run(t.Context(), plan)

	require.NoError(t, err)
	assert.Equal(t, []string{"exec:s1", "exec:s2", "exec:s3"}, journal)
	assert.Empty(t, letters.letters)
}

func TestEngine_Run_FailureCompensatesInReverseOrder(t *testing.T) {
	var journal []string
	letters := &fakeDeadLetters{}

	plan := saga.NewPlan("test").
		Add(
			recordStep("s1", &journal, false, false),
			recordStep("s2", &journal, false, false),
			recordStep("s3", &journal, true, false), // fails
			recordStep("s4", &journal, false, false),
		)

	err := newEngine(letters).Run(t.Context(), plan)

	require.Error(t, err)

	// Steps 1..k-1 compensated in strict reverse order; step k itself is
	// never compensated (it never completed); step k+1 never executes.
	assert.Equal(t, []string{
		"exec:s1", "exec:s2", "exec:s3",
		"comp:s2", "comp:s1",
	}, journal)

	var execErr *saga.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "s3", execErr.FailedStep)
	assert.False(t, execErr.Incomplete())
	require.Len(t, execErr.Compensations, 2)
	assert.Equal(t, "s2", execErr.Compensations[0].StepLabel)
	assert.Equal(t, "s1", execErr.Compensations[1].StepLabel)
	assert.True(t, execErr.Compensations[0].Succeeded)
	assert.True(t, execErr.Compensations[1].Succeeded)
	assert.False(t, errors.Is(err, errs.ErrCompensationIncomplete))
}

func TestEngine_Run_FailedCompensationIsDeadLettered(t *testing.T) {
	var journal []string
	letters := &fakeDeadLetters{}

	plan := saga.NewPlan("test").
		Add(
			recordStep("s1", &journal, false, true), // compensation will fail
			recordStep("s2", &journal, false, false),
			recordStep("s3", &journal, true, false), // triggers unwind
		)

	err := newEngine(letters).Run(t.Context(), plan)

	require.Error(t, err)

	var execErr *saga.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.True(t, execErr.Incomplete())
	require.ErrorIs(t, err, errs.ErrCompensationIncomplete)

	// One compensation failure did not prevent attempting the other.
	assert.Equal(t, []string{
		"exec:s1", "exec:s2", "exec:s3",
		"comp:s2", "comp:s1",
	}, journal)

	require.Len(t, letters.letters, 1)
	assert.Equal(t, "s1", letters.letters[0].StepLabel)
	assert.Equal(t, ports.DeadLetterRecordWrite, letters.letters[0].Kind)
	assert.Contains(t, letters.letters[0].Reason, "s1 comp failed")
}

func TestEngine_Run_BlobStepsCompensateSymmetrically(t *testing.T) {
	blobs := newFakeBlobStore()
	letters := &fakeDeadLetters{}
	_, err := blobs.Upload(t.Context(), "live/v1", []byte("old video"), "video/mp4")
	require.NoError(t, err)

	// Replace media: trash-move old, upload new, record write fails.
	plan := saga.NewPlan("product media update").
		Add(
			saga.NewBlobMove(blobs, "move old video to trash", "live/v1", "_trash/p/1/video_live/v1"),
			saga.NewBlobUpload(blobs, "upload new video", "_uploads/tok-v2", []byte("new video"), "video/mp4"),
			saga.NewRecordWrite("update product row",
				func(_ context.Context) error { return errors.New("db down") },
				nil,
			),
		)

	err = newEngine(letters).Run(t.Context(), plan)

	require.Error(t, err)

	var execErr *saga.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.False(t, execErr.Incomplete(), "both compensations should have succeeded")

	// New upload was deleted, old video moved back from trash.
	assert.False(t, blobs.has("_uploads/tok-v2"))
	assert.False(t, blobs.has("_trash/p/1/video_live/v1"))
	assert.True(t, blobs.has("live/v1"))
	assert.Empty(t, letters.letters)
}

func TestEngine_Run_CompensationDeleteOfMissingKeySucceeds(t *testing.T) {
	blobs := newFakeBlobStore()
	letters := &fakeDeadLetters{}

	// The upload itself fails after partially executing (object never stored),
	// caused by a later step; compensation deletes a key that does not exist.
	plan := saga.NewPlan("test").
		Add(
			saga.NewBlobUpload(blobs, "upload", "_uploads/tok-a", []byte("a"), "image/png"),
			saga.NewRecordWrite("fail", func(_ context.Context) error { return errors.New("boom") }, nil),
		)

	err := newEngine(letters).Run(t.Context(), plan)
	require.Error(t, err)

	var execErr *saga.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Len(t, execErr.Compensations, 1)
	assert.True(t, execErr.Compensations[0].Succeeded)

	// Re-running the same compensation against the now-missing key is still
	// a success: delete-of-missing-key is treated as success.
	require.NoError(t, blobs.Delete(t.Context(), "_uploads/tok-a"))
	assert.Empty(t, letters.letters)
}

func TestEngine_Run_CleanupRunsAfterSuccess(t *testing.T) {
	blobs := newFakeBlobStore()
	letters := &fakeDeadLetters{}
	_, err := blobs.Upload(t.Context(), "_trash/p/1/video_v1", []byte("old"), "video/mp4")
	require.NoError(t, err)

	plan := saga.NewPlan("test").
		Add(saga.NewRecordWrite("update", func(_ context.Context) error { return nil }, nil)).
		AddCleanup(saga.NewBlobDelete(blobs, "purge trash", "_trash/p/1/video_v1"))

	require.NoError(t, newEngine(letters).Run(t.Context(), plan))

	// No trash objects remain after the plan's terminal cleanup.
	assert.False(t, blobs.has("_trash/p/1/video_v1"))
	assert.Empty(t, letters.letters)
}

func TestEngine_Run_CleanupFailureIsDeadLetteredNotSurfaced(t *testing.T) {
	blobs := newFakeBlobStore()
	letters := &fakeDeadLetters{}
	_, err := blobs.Upload(t.Context(), "_trash/p/1/video_v1", []byte("old"), "video/mp4")
	require.NoError(t, err)
	blobs.fail("delete", "_trash/p/1/video_v1", errors.New("throttled"))

	plan := saga.NewPlan("test").
		Add(saga.NewRecordWrite("update", func(_ context.Context) error { return nil }, nil)).
		AddCleanup(saga.NewBlobDelete(blobs, "purge trash", "_trash/p/1/video_v1"))

	// Cleanup failure must not fail the caller.
	require.NoError(t, newEngine(letters).Run(t.Context(), plan))

	require.Len(t, letters.letters, 1)
	assert.Equal(t, ports.DeadLetterBlobDelete, letters.letters[0].Kind)
	assert.Equal(t, "_trash/p/1/video_v1", letters.letters[0].SourceKey)
}

func TestEngine_Run_CleanupDoesNotRunAfterFailure(t *testing.T) {
	var journal []string
	blobs := newFakeBlobStore()
	letters := &fakeDeadLetters{}

	plan := saga.NewPlan("test").
		Add(recordStep("s1", &journal, true, false)).
		AddCleanup(saga.NewBlobDelete(blobs, "purge", "_trash/x"))

	require.Error(t, newEngine(letters).Run(t.Context(), plan))
	assert.NotContains(t, blobs.ops, "delete:_trash/x")
}

func TestUploadKey(t *testing.T) {
	k1 := saga.UploadKey("photo.png")
	k2 := saga.UploadKey("photo.png")

	assert.NotEqual(t, k1, k2, "unique token per upload, retried uploads never collide")
	assert.Regexp(t, `^_uploads/[0-9a-f-]{36}-photo\.png$`, k1)
}

func TestTrashKey(t *testing.T) {
	id := kernel.NewUUID()
	at := time.Unix(1700000000, 0)

	key := saga.TrashKey(id, at, "video", "_uploads/tok-v1")

	assert.Equal(t, "_trash/"+id.String()+"/1700000000/video__uploads/tok-v1", key)
}
