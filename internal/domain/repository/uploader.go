package repository

import (
	"context"
	"io"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type Uploader interface {
	// Initiates a multipart upload and return an upload ID from the remote storage.
	CreateMultipart(ctx context.Context, key, contentType string) (string, error)
	// Mark the multipart upload as completed on the remote storage.
	CompleteMultipart(ctx context.Context, key, uploadId string, parts []*entity.Part) error
	// Abort an unfinished multipart upload and drop its stored parts.
	AbortMultipart(ctx context.Context, key, uploadId string) error
	// Upload an entire file to the remote storage.
	SimpleUpload(ctx context.Context, key string, body io.Reader, contentType string) error
	// Upload a file part to the remote storage.
	UploadPart(ctx context.Context, key, uploadId string, body io.Reader, length, partNumber int64) (*entity.Part, error)
	// Make the stored object readable without credentials so the transcoder
	// can pull it.
	MakePublic(ctx context.Context, key string) error
	// The public URL for a stored object. Only meaningful after MakePublic.
	PublicURL(key string) string
	// Delete the stored object.
	Delete(ctx context.Context, key string) error
}
