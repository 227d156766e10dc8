// Bulk ingest for video sources dropped straight into the watch bucket. The
// object key must be the ID of an existing video record; the handler makes
// the source public, creates the transcoding asset and stamps the record,
// the same finalization the upload endpoint performs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/Hyperion302/swish/internal/domain/repository"
	"github.com/Hyperion302/swish/internal/infrastructure/persistence"
	"github.com/Hyperion302/swish/internal/infrastructure/transcode"
)

var (
	videos     repository.VideoRepository
	transcoder repository.Transcoder
	svc        *s3.S3
)

func init() {
	client, err := firestore.NewClient(context.Background(), os.Getenv("GOOGLE_PROJECT_ID"))
	if err != nil {
		log.Fatalf("failed to create the firestore client: %v", err)
	}
	videos = persistence.NewVideoRepository(client)
	transcoder = transcode.NewMuxTranscoder(os.Getenv("MUX_TOKEN_ID"), os.Getenv("MUX_TOKEN_SECRET"))
	svc = s3.New(session.Must(session.NewSession()))
}

// Invoke the AWS Lambda function to transcode the given videos.
func handler(ctx context.Context, event events.S3Event) error {
	for _, record := range event.Records {
		if err := ingest(ctx, record.S3.Bucket.Name, record.S3.Object.Key); err != nil {
			return err
		}
	}
	return nil
}

// Hand one uploaded object to the transcoder.
func ingest(ctx context.Context, bucket, key string) error {
	video, err := videos.GetById(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to retrieve the video: %v", err)
	}
	if video == nil {
		log.Printf("no video record for object %s, skipping", key)
		return nil
	}
	if video.AssetId != "" {
		log.Printf("video %s already has asset %s, skipping", video.Id, video.AssetId)
		return nil
	}
	_, err = svc.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to make the video source public: %v", err)
	}
	asset, err := transcoder.CreateAsset(ctx, fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key), video.Id)
	if err != nil {
		return fmt.Errorf("failed to create the transcoding asset: %v", err)
	}
	video.SetAsset(asset)
	if err := videos.Save(ctx, video); err != nil {
		return fmt.Errorf("failed to save the video: %v", err)
	}
	log.Printf("transcoding asset %s created for video %s", asset.Id, video.Id)
	return nil
}

func main() {
	lambda.Start(handler)
}
