package repository

import (
	"context"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type Transcoder interface {
	// Create a transcoding asset from a publicly readable source URL. The
	// passthrough value is echoed back on status callbacks.
	CreateAsset(ctx context.Context, sourceURL, passthrough string) (*entity.RemoteAsset, error)
	// Delete the remote asset and every playback ID minted for it.
	DeleteAsset(ctx context.Context, assetId string) error
}
