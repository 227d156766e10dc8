package repository

import (
	"context"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type ChannelRepository interface {
	// Get the channel by the channel ID. A missing channel is (nil, nil).
	GetById(ctx context.Context, id string) (*entity.Channel, error)
	// List channels owned by the given user, newest first.
	ListByOwner(ctx context.Context, owner string, limit int) ([]*entity.Channel, error)
	// Save an entity to the persistence.
	Save(ctx context.Context, channel *entity.Channel) error
}
