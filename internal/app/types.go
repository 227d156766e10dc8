package app

import (
	"time"

	"github.com/Hyperion302/swish/internal/domain/entity"
)

type ChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChannelResponse struct {
	Id          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newChannelResponse(channel *entity.Channel) *ChannelResponse {
	return &ChannelResponse{
		Id:          channel.Id,
		Owner:       channel.Owner,
		Name:        channel.Name,
		Description: channel.Description,
		CreatedAt:   channel.CreatedAt,
		UpdatedAt:   channel.UpdatedAt,
	}
}

type VideoRequest struct {
	Channel  string   `json:"channel"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type VideoResponse struct {
	Id          string    `json:"id"`
	Channel     string    `json:"channel"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Status      string    `json:"status"`
	AssetId     string    `json:"assetID"`
	PlaybackId  string    `json:"playbackID"`
	Duration    float64   `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newVideoResponse(video *entity.Video) *VideoResponse {
	return &VideoResponse{
		Id:          video.Id,
		Channel:     video.Channel,
		Author:      video.Author,
		Title:       video.Title,
		Description: video.Description,
		Tags:        video.Tags,
		ContentType: video.ContentType,
		Size:        video.Size,
		Status:      video.Status,
		AssetId:     video.AssetId,
		PlaybackId:  video.PlaybackId,
		Duration:    video.Duration,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
}

// TranscodeEvent is a status callback from the transcoding API. Passthrough
// carries the video ID handed over at asset creation.
type TranscodeEvent struct {
	Type string             `json:"type"`
	Data TranscodeEventData `json:"data"`
}

type TranscodeEventData struct {
	Id          string  `json:"id"`
	Status      string  `json:"status"`
	Duration    float64 `json:"duration"`
	Passthrough string  `json:"passthrough"`
	PlaybackIds []struct {
		Id string `json:"id"`
	} `json:"playback_ids"`
}
