package persistence

import (
	"context"

	"cloud.google.com/go/firestore"
	"golang.org/x/exp/slices"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

const videoCollection = "videos"

type VideoRepository struct {
	client *firestore.Client
}

func NewVideoRepository(client *firestore.Client) *VideoRepository {
	return &VideoRepository{client}
}

// Get the video by the video ID.
func (r *VideoRepository) GetById(ctx context.Context, id string) (*entity.Video, error) {
	snap, err := r.client.Collection(videoCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var video entity.Video
	if err := snap.DataTo(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

// List videos authored by the given user.
func (r *VideoRepository) ListByAuthor(ctx context.Context, author string, limit int) ([]*entity.Video, error) {
	return r.list(ctx, "author", author, limit)
}

// List videos published to the given channel.
func (r *VideoRepository) ListByChannel(ctx context.Context, channel string, limit int) ([]*entity.Video, error) {
	return r.list(ctx, "channel", channel, limit)
}

// Query videos on a single field. Ordering happens on the client so the
// query does not need a composite index.
func (r *VideoRepository) list(ctx context.Context, field, value string, limit int) ([]*entity.Video, error) {
	iter := r.client.Collection(videoCollection).Where(field, "==", value).Limit(limit).Documents(ctx)
	defer iter.Stop()
	var videos []*entity.Video
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var video entity.Video
		if err := snap.DataTo(&video); err != nil {
			return nil, err
		}
		videos = append(videos, &video)
	}
	slices.SortFunc(videos, func(a, b *entity.Video) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return videos, nil
}

// Save an entity to the persistence.
func (r *VideoRepository) Save(ctx context.Context, video *entity.Video) error {
	_, err := r.client.Collection(videoCollection).Doc(video.Id).Set(ctx, video)
	return err
}

// Delete the video record from the persistence.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(videoCollection).Doc(id).Delete(ctx)
	return err
}
