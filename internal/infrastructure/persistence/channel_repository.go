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

const channelCollection = "channels"

type ChannelRepository struct {
	client *firestore.Client
}

func NewChannelRepository(client *firestore.Client) *ChannelRepository {
	return &ChannelRepository{client}
}

// Get the channel by the channel ID.
func (r *ChannelRepository) GetById(ctx context.Context, id string) (*entity.Channel, error) {
	snap, err := r.client.Collection(channelCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var channel entity.Channel
	if err := snap.DataTo(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// List channels owned by the given user.
func (r *ChannelRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*entity.Channel, error) {
	iter := r.client.Collection(channelCollection).Where("owner", "==", owner).Limit(limit).Documents(ctx)
	defer iter.Stop()
	var channels []*entity.Channel
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var channel entity.Channel
		if err := snap.DataTo(&channel); err != nil {
			return nil, err
		}
		channels = append(channels, &channel)
	}
	slices.SortFunc(channels, func(a, b *entity.Channel) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return channels, nil
}

// Save an entity to the persistence.
func (r *ChannelRepository) Save(ctx context.Context, channel *entity.Channel) error {
	_, err := r.client.Collection(channelCollection).Doc(channel.Id).Set(ctx, channel)
	return err
}
