// Package s3 implements the BlobStore port on Amazon S3 (or any S3-compatible
// endpoint). The store is deliberately dumb: keys in, bytes out. All ordering
// rules around uploads, trash staging and purges live in the workflow engine.
package s3

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// objectAPI is the subset of the S3 client the blob store uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// BlobStore is the S3-backed implementation of ports.BlobStore.
type BlobStore struct {
	api           objectAPI
	bucket        string
	publicBaseURL string
}

// NewBlobStore creates a blob store over the given S3 client. publicBaseURL is
// the prefix under which uploaded objects are publicly reachable, without a
// trailing slash.
func NewBlobStore(client *s3.Client, bucket, publicBaseURL string) *BlobStore {
	return newBlobStore(client, bucket, publicBaseURL)
}

func newBlobStore(api objectAPI, bucket, publicBaseURL string) *BlobStore {
	return &BlobStore{
		api:           api,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// Upload stores data under the given key and returns its reference.
func (b *BlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (ports.BlobRef, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.api.PutObject(ctx, input); err != nil {
		return ports.BlobRef{}, errs.NewUpstreamIOError("s3 put "+key, err)
	}

	return ports.BlobRef{Key: key, URL: b.publicBaseURL + "/" + key}, nil
}

// Delete removes the object under key. A missing key is success, which keeps
// compensation retries idempotent.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return errs.NewUpstreamIOError("s3 delete "+key, err)
	}

	return nil
}

// Copy duplicates the object at srcKey to destKey.
func (b *BlobStore) Copy(ctx context.Context, srcKey, destKey string) error {
	if err := b.copyObject(ctx, srcKey, destKey); err != nil {
		return errs.NewUpstreamIOError("s3 copy "+srcKey+" -> "+destKey, err)
	}

	return nil
}

// Move is copy-then-delete-of-source. Not atomic: a crash between the two
// calls leaves both objects present. A missing source with the destination
// already in place means the move happened on an earlier attempt; that counts
// as success, which keeps compensation retries idempotent.
func (b *BlobStore) Move(ctx context.Context, srcKey, destKey string) error {
	if err := b.copyObject(ctx, srcKey, destKey); err != nil {
		if isNotFound(err) && b.exists(ctx, destKey) {
			return nil
		}
		return errs.NewUpstreamIOError("s3 copy "+srcKey+" -> "+destKey, err)
	}

	return b.Delete(ctx, srcKey)
}

func (b *BlobStore) copyObject(ctx context.Context, srcKey, destKey string) error {
	_, err := b.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.bucket),
		Key:        aws.String(destKey),
		CopySource: aws.String(url.PathEscape(b.bucket + "/" + srcKey)),
	})
	return err
}

func (b *BlobStore) exists(ctx context.Context, key string) bool {
	_, err := b.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
