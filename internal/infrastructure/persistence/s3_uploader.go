package persistence

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

// S3Uploader stores video sources in an S3 bucket for deployments that keep
// object storage on AWS.
type S3Uploader struct {
	uploader *s3manager.Uploader
	bucket   string
}

func NewS3Uploader(sess *session.Session, bucket string) *S3Uploader {
	return &S3Uploader{s3manager.NewUploader(sess), bucket}
}

// Upload an entire file to the remote storage.
func (u *S3Uploader) SimpleUpload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

// Initiates a multipart upload and return an upload ID from the remote storage.
func (u *S3Uploader) CreateMultipart(ctx context.Context, key, contentType string) (string, error) {
	out, err := u.uploader.S3.CreateMultipartUploadWithContext(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return *out.UploadId, nil
}

// Upload a file part to the remote storage. Chunks are capped well below
// memory limits by the caller, so the part is buffered for signing.
func (u *S3Uploader) UploadPart(ctx context.Context, key, uploadId string, body io.Reader, length, partNumber int64) (*entity.Part, error) {
	buf, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	out, err := u.uploader.S3.UploadPartWithContext(ctx, &s3.UploadPartInput{
		Body:          bytes.NewReader(buf),
		Bucket:        aws.String(u.bucket),
		ContentLength: aws.Int64(length),
		Key:           aws.String(key),
		PartNumber:    aws.Int64(partNumber),
		UploadId:      aws.String(uploadId),
	})
	if err != nil {
		return nil, err
	}
	return &entity.Part{ETag: *out.ETag, PartNumber: partNumber}, nil
}

// Mark the multipart upload as completed on the remote storage.
func (u *S3Uploader) CompleteMultipart(ctx context.Context, key, uploadId string, parts []*entity.Part) error {
	var fileParts []*s3.CompletedPart
	for _, part := range parts {
		fileParts = append(fileParts, &s3.CompletedPart{
			ETag:       aws.String(part.ETag),
			PartNumber: aws.Int64(part.PartNumber),
		})
	}
	_, err := u.uploader.S3.CompleteMultipartUploadWithContext(ctx, &s3.CompleteMultipartUploadInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		MultipartUpload: &s3.CompletedMultipartUpload{
			Parts: fileParts,
		},
		UploadId: aws.String(uploadId),
	})
	return err
}

// Abort an unfinished multipart upload and drop its stored parts.
func (u *S3Uploader) AbortMultipart(ctx context.Context, key, uploadId string) error {
	_, err := u.uploader.S3.AbortMultipartUploadWithContext(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(u.bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadId),
	})
	return err
}

// Make the stored object readable without credentials.
func (u *S3Uploader) MakePublic(ctx context.Context, key string) error {
	_, err := u.uploader.S3.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err
}

// The public URL for a stored object.
func (u *S3Uploader) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
}

// Delete the stored object.
func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.uploader.S3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err
}
