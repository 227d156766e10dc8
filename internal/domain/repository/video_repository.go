package repository

import (
	"context"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type VideoRepository interface {
	// Get the video by the video ID. A missing video is (nil, nil).
	GetById(ctx context.Context, id string) (*entity.Video, error)
	// List videos authored by the given user, newest first.
	ListByAuthor(ctx context.Context, author string, limit int) ([]*entity.Video, error)
	// List videos published to the given channel, newest first.
	ListByChannel(ctx context.Context, channel string, limit int) ([]*entity.Video, error)
	// Save an entity to the persistence.
	Save(ctx context.Context, video *entity.Video) error
	// Delete the video record from the persistence.
	Delete(ctx context.Context, id string) error
}
