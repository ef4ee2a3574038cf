package s3

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	putCalls    []s3.PutObjectInput
	deleteCalls []s3.DeleteObjectInput
	copyCalls   []s3.CopyObjectInput
	headCalls   []s3.HeadObjectInput

	putErr    error
	deleteErr error
	copyErr   error
	headErr   error
}

func (f *fakeObjectAPI) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	f.putCalls = append(f.putCalls, *params)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(
	_ context.Context,
	params *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	f.deleteCalls = append(f.deleteCalls, *params)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeObjectAPI) CopyObject(
	_ context.Context,
	params *s3.CopyObjectInput,
	_ ...func(*s3.Options),
) (*s3.CopyObjectOutput, error) {
	f.copyCalls = append(f.copyCalls, *params)
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeObjectAPI) HeadObject(
	_ context.Context,
	params *s3.HeadObjectInput,
	_ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	f.headCalls = append(f.headCalls, *params)
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestBlobStore_UploadReturnsPublicURL(t *testing.T) {
	api := &fakeObjectAPI{}
	blobs := newBlobStore(api, "media", "https://cdn.example.com/")

	ref, err := blobs.Upload(context.Background(), "_uploads/abc-icon.webp", []byte("png"), "image/webp")
	require.NoError(t, err)
	require.Equal(t, "_uploads/abc-icon.webp", ref.Key)
	require.Equal(t, "https://cdn.example.com/_uploads/abc-icon.webp", ref.URL)

	require.Len(t, api.putCalls, 1)
	require.Equal(t, "media", *api.putCalls[0].Bucket)
	require.Equal(t, "image/webp", *api.putCalls[0].ContentType)
}

func TestBlobStore_UploadFailureIsUpstreamIO(t *testing.T) {
	api := &fakeObjectAPI{putErr: errors.New("connection reset")}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	_, err := blobs.Upload(context.Background(), "k", []byte("x"), "")
	require.ErrorIs(t, err, errs.ErrUpstreamIO)
}

func TestBlobStore_DeleteMissingKeyIsSuccess(t *testing.T) {
	api := &fakeObjectAPI{deleteErr: &types.NoSuchKey{}}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	err := blobs.Delete(context.Background(), "already-gone")
	require.NoError(t, err)
}

func TestBlobStore_MoveCopiesThenDeletesSource(t *testing.T) {
	api := &fakeObjectAPI{}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	err := blobs.Move(context.Background(), "videos/v1.mp4", "_trash/p1/1700000000/video_v1.mp4")
	require.NoError(t, err)

	require.Len(t, api.copyCalls, 1)
	require.Equal(t, "_trash/p1/1700000000/video_v1.mp4", *api.copyCalls[0].Key)
	require.Len(t, api.deleteCalls, 1)
	require.Equal(t, "videos/v1.mp4", *api.deleteCalls[0].Key)
}

func TestBlobStore_MoveStopsOnCopyFailure(t *testing.T) {
	api := &fakeObjectAPI{copyErr: errors.New("denied")}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	err := blobs.Move(context.Background(), "a", "b")
	require.ErrorIs(t, err, errs.ErrUpstreamIO)
	require.Empty(t, api.deleteCalls, "source must survive a failed copy")
}

func TestBlobStore_MoveOfAlreadyMovedObjectIsSuccess(t *testing.T) {
	// Source gone, destination present: an earlier attempt completed the move
	// before its bookkeeping did. Retrying must succeed without touching
	// anything.
	api := &fakeObjectAPI{copyErr: &types.NoSuchKey{}}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	err := blobs.Move(context.Background(), "_trash/p1/1700000000/video_v1.mp4", "videos/v1.mp4")
	require.NoError(t, err)

	require.Len(t, api.headCalls, 1)
	require.Equal(t, "videos/v1.mp4", *api.headCalls[0].Key)
	require.Empty(t, api.deleteCalls)
}

func TestBlobStore_MoveWithBothKeysMissingFails(t *testing.T) {
	api := &fakeObjectAPI{copyErr: &types.NoSuchKey{}, headErr: &types.NotFound{}}
	blobs := newBlobStore(api, "media", "https://cdn.example.com")

	err := blobs.Move(context.Background(), "gone", "also-gone")
	require.ErrorIs(t, err, errs.ErrUpstreamIO)
}
