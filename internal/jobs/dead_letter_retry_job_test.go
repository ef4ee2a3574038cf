package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type fakeDeadLetterRepo struct {
	letters     []*ports.DeadLetter
	resolved    []kernel.UUID
	resolveFail bool
}

func (f *fakeDeadLetterRepo) Add(_ context.Context, letter *ports.DeadLetter) error {
	f.letters = append(f.letters, letter)
	return nil
}

func (f *fakeDeadLetterRepo) GetUnresolved(_ context.Context, limit int) ([]*ports.DeadLetter, error) {
	unresolved := make([]*ports.DeadLetter, 0)
	for _, letter := range f.letters {
		if letter.ResolvedAt == nil && len(unresolved) < limit {
			unresolved = append(unresolved, letter)
		}
	}
	return unresolved, nil
}

func (f *fakeDeadLetterRepo) MarkResolved(_ context.Context, id kernel.UUID, at time.Time) error {
	if f.resolveFail {
		return errors.New("write failed")
	}
	for _, letter := range f.letters {
		if letter.ID.IsEqual(id) {
			letter.ResolvedAt = &at
		}
	}
	f.resolved = append(f.resolved, id)
	return nil
}

type fakeBlobStore struct {
	deleted   []string
	moved     [][2]string
	deleteErr error
	moveErr   error
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, _ []byte, _ string) (ports.BlobRef, error) {
	return ports.BlobRef{Key: key}, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobStore) Copy(_ context.Context, _, _ string) error { return nil }

func (f *fakeBlobStore) Move(_ context.Context, srcKey, destKey string) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moved = append(f.moved, [2]string{srcKey, destKey})
	return nil
}

func newLetter(kind ports.DeadLetterKind, srcKey, destKey string) *ports.DeadLetter {
	return &ports.DeadLetter{
		ID:        kernel.NewUUID(),
		PlanLabel: "delete product",
		StepLabel: "purge trashed video",
		Kind:      kind,
		SourceKey: srcKey,
		DestKey:   destKey,
		Reason:    "connection reset",
		CreatedAt: time.Now().UTC(),
	}
}

func newJob(repo *fakeDeadLetterRepo, blobs *fakeBlobStore) *DeadLetterRetryJob {
	return NewDeadLetterRetryJob(repo, blobs, slog.New(slog.DiscardHandler))
}

func TestSweep_RetriesDeleteAndMarksResolved(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	blobs := &fakeBlobStore{}
	letter := newLetter(ports.DeadLetterBlobDelete, "_trash/p1/1700000000/video_v1.mp4", "")
	require.NoError(t, repo.Add(context.Background(), letter))

	newJob(repo, blobs).sweep(context.Background())

	require.Equal(t, []string{"_trash/p1/1700000000/video_v1.mp4"}, blobs.deleted)
	require.NotNil(t, letter.ResolvedAt)
}

func TestSweep_RetriesMoveBackToOriginalKey(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	blobs := &fakeBlobStore{}
	letter := newLetter(ports.DeadLetterBlobMove, "_trash/p1/1700000000/video_v1.mp4", "videos/v1.mp4")
	require.NoError(t, repo.Add(context.Background(), letter))

	newJob(repo, blobs).sweep(context.Background())

	require.Equal(t, [][2]string{{"_trash/p1/1700000000/video_v1.mp4", "videos/v1.mp4"}}, blobs.moved)
	require.NotNil(t, letter.ResolvedAt)
}

func TestSweep_RecordWriteLettersStayUnresolved(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	blobs := &fakeBlobStore{}
	letter := newLetter(ports.DeadLetterRecordWrite, "", "")
	require.NoError(t, repo.Add(context.Background(), letter))

	newJob(repo, blobs).sweep(context.Background())

	require.Nil(t, letter.ResolvedAt, "record letters need an operator, not a retry")
	require.Empty(t, blobs.deleted)
	require.Empty(t, blobs.moved)
}

func TestSweep_FailedRetryLeavesLetterForNextSweep(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	blobs := &fakeBlobStore{deleteErr: errors.New("still down")}
	letter := newLetter(ports.DeadLetterBlobDelete, "_trash/p1/1700000000/video_v1.mp4", "")
	require.NoError(t, repo.Add(context.Background(), letter))

	job := newJob(repo, blobs)
	job.sweep(context.Background())
	require.Nil(t, letter.ResolvedAt)

	// Store recovers; the next sweep resolves the same letter.
	blobs.deleteErr = nil
	job.sweep(context.Background())
	require.NotNil(t, letter.ResolvedAt)
}

func TestSweep_MoveLetterResolvesAfterFailedResolutionWrite(t *testing.T) {
	// First sweep performs the move but cannot stamp the letter. The next sweep
	// re-runs the move against a store where it already happened; the store
	// reports success and the letter finally resolves.
	repo := &fakeDeadLetterRepo{resolveFail: true}
	blobs := &fakeBlobStore{}
	letter := newLetter(ports.DeadLetterBlobMove, "_trash/p1/1700000000/video_v1.mp4", "videos/v1.mp4")
	require.NoError(t, repo.Add(context.Background(), letter))

	job := newJob(repo, blobs)
	job.sweep(context.Background())
	require.Len(t, blobs.moved, 1)
	require.Nil(t, letter.ResolvedAt)

	repo.resolveFail = false
	job.sweep(context.Background())
	require.Len(t, blobs.moved, 2)
	require.NotNil(t, letter.ResolvedAt)
}

func TestSweep_OneFailureDoesNotBlockTheBatch(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	blobs := &fakeBlobStore{moveErr: errors.New("denied")}
	moveLetter := newLetter(ports.DeadLetterBlobMove, "_trash/a", "videos/a.mp4")
	deleteLetter := newLetter(ports.DeadLetterBlobDelete, "_trash/b", "")
	require.NoError(t, repo.Add(context.Background(), moveLetter))
	require.NoError(t, repo.Add(context.Background(), deleteLetter))

	newJob(repo, blobs).sweep(context.Background())

	require.Nil(t, moveLetter.ResolvedAt)
	require.NotNil(t, deleteLetter.ResolvedAt)
}
