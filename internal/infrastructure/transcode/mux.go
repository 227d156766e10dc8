package transcode

import (
	"context"

	muxgo "github.com/muxinc/mux-go"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

// MuxTranscoder drives the remote transcoding API. Asset creation is
// pull-based: the transcoder downloads the source from the public URL it is
// handed.
type MuxTranscoder struct {
	client *muxgo.APIClient
}

func NewMuxTranscoder(tokenId, tokenSecret string) *MuxTranscoder {
	return &MuxTranscoder{
		client: muxgo.NewAPIClient(muxgo.NewConfiguration(
			muxgo.WithBasicAuth(tokenId, tokenSecret),
		)),
	}
}

// Create a transcoding asset from a publicly readable source URL. The
// passthrough value comes back on status callbacks. The generated client
// does not accept a context.
func (t *MuxTranscoder) CreateAsset(ctx context.Context, sourceURL, passthrough string) (*entity.RemoteAsset, error) {
	res, err := t.client.AssetsApi.CreateAsset(muxgo.CreateAssetRequest{
		Input:          []muxgo.InputSettings{{Url: sourceURL}},
		PlaybackPolicy: []muxgo.PlaybackPolicy{muxgo.PUBLIC},
		Passthrough:    passthrough,
	})
	if err != nil {
		return nil, err
	}
	asset := &entity.RemoteAsset{Id: res.Data.Id, Status: res.Data.Status}
	if len(res.Data.PlaybackIds) > 0 {
		asset.PlaybackId = res.Data.PlaybackIds[0].Id
	}
	return asset, nil
}

// Delete the remote asset and its playback IDs.
func (t *MuxTranscoder) DeleteAsset(ctx context.Context, assetId string) error {
	return t.client.AssetsApi.DeleteAsset(assetId)
}
