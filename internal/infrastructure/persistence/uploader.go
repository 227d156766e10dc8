package persistence

import (
	"context"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"google.golang.org/api/iterator"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

// A single compose call accepts at most this many source objects.
const composeBatch = 32

type Uploader struct {
	bucket *storage.BucketHandle
	name   string
}

func NewUploader(client *storage.Client, bucket string) *Uploader {
	return &Uploader{client.Bucket(bucket), bucket}
}

// Upload an entire file to the bucket in one streamed write.
func (u *Uploader) SimpleUpload(ctx context.Context, key string, body io.Reader, contentType string) error {
	w := u.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Initiates a multipart upload. The bucket has no server-side multipart
// session, so the upload ID only namespaces the part objects until they are
// composed into the final object.
func (u *Uploader) CreateMultipart(ctx context.Context, key, contentType string) (string, error) {
	return uuid.New().String(), nil
}

// Upload a file part as an object of its own. CompleteMultipart stitches the
// parts together.
func (u *Uploader) UploadPart(ctx context.Context, key, uploadId string, body io.Reader, length, partNumber int64) (*entity.Part, error) {
	w := u.bucket.Object(partKey(key, uploadId, partNumber)).NewWriter(ctx)
	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &entity.Part{ETag: w.Attrs().Etag, PartNumber: partNumber}, nil
}

// Compose the uploaded parts into the final object. Compose takes at most 32
// sources per call, so longer uploads fold into the destination in batches.
func (u *Uploader) CompleteMultipart(ctx context.Context, key, uploadId string, parts []*entity.Part) error {
	parts = slices.Clone(parts)
	slices.SortFunc(parts, func(a, b *entity.Part) int {
		return int(a.PartNumber - b.PartNumber)
	})

	dst := u.bucket.Object(key)
	remaining := parts
	composed := false
	for len(remaining) > 0 {
		srcs := make([]*storage.ObjectHandle, 0, composeBatch)
		if composed {
			srcs = append(srcs, dst)
		}
		for len(remaining) > 0 && len(srcs) < composeBatch {
			srcs = append(srcs, u.bucket.Object(partKey(key, uploadId, remaining[0].PartNumber)))
			remaining = remaining[1:]
		}
		if _, err := dst.ComposerFrom(srcs...).Run(ctx); err != nil {
			return err
		}
		composed = true
	}

	// The part objects are garbage once composed.
	for _, part := range parts {
		if err := u.bucket.Object(partKey(key, uploadId, part.PartNumber)).Delete(ctx); err != nil {
			log.Printf("failed to delete part %d of %s: %v", part.PartNumber, key, err)
		}
	}
	return nil
}

// Abort an unfinished multipart upload by dropping its part objects.
func (u *Uploader) AbortMultipart(ctx context.Context, key, uploadId string) error {
	it := u.bucket.Objects(ctx, &storage.Query{Prefix: fmt.Sprintf("%s.%s.", key, uploadId)})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := u.bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return err
		}
	}
}

// Make the stored object readable without credentials.
func (u *Uploader) MakePublic(ctx context.Context, key string) error {
	return u.bucket.Object(key).ACL().Set(ctx, storage.AllUsers, storage.RoleReader)
}

// The public URL for a stored object.
func (u *Uploader) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.name, key)
}

// Delete the stored object.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	return u.bucket.Object(key).Delete(ctx)
}

func partKey(key, uploadId string, partNumber int64) string {
	return fmt.Sprintf("%s.%s.%04d", key, uploadId, partNumber)
}
