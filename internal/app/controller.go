package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Hyperion302/swish/internal/domain/entity"
	"github.com/Hyperion302/swish/internal/domain/repository"
	"github.com/Hyperion302/swish/internal/httprange"
	"github.com/Hyperion302/swish/internal/infrastructure/auth"
)

const (
	minUploadChunkSize = 256 << 10
	maxUploadChunkSize = 5 << 20

	// Lookup endpoints return at most this many records.
	maxListResults = 100
)

// Controller serves the API endpoints over the domain interfaces.
type Controller struct {
	channels      repository.ChannelRepository
	videos        repository.VideoRepository
	uploader      repository.Uploader
	transcoder    repository.Transcoder
	webhookSecret string
}

func NewController(
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	uploader repository.Uploader,
	transcoder repository.Transcoder,
	webhookSecret string,
) *Controller {
	return &Controller{channels, videos, uploader, transcoder, webhookSecret}
}

// The authenticated caller, or an unauthenticated error for anonymous
// requests.
func caller(r *http.Request) (*entity.Identity, error) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		return nil, &AppError{http.StatusUnauthorized, "authentication required"}
	}
	return identity, nil
}

// Create a new channel owned by the caller.
func (c *Controller) createChannel(w http.ResponseWriter, r *http.Request) error {
	identity, err := caller(r)
	if err != nil {
		return err
	}
	var data ChannelRequest
	if err := parseJSON(w, r, &data); err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse JSON from request body: %v", err)}
	}
	if data.Name == "" {
		return &AppError{http.StatusBadRequest, "channel name must be required"}
	}
	channel := entity.NewChannel(uuid.New().String(), identity.UID, data.Name, data.Description)
	if err := c.channels.Save(r.Context(), channel); err != nil {
		return fmt.Errorf("failed to save the channel: %v", err)
	}
	return replyJSON(w, newChannelResponse(channel), http.StatusOK)
}

// List channels owned by the given user, the caller when no owner is given.
func (c *Controller) listChannels(w http.ResponseWriter, r *http.Request) error {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		identity, err := caller(r)
		if err != nil {
			return err
		}
		owner = identity.UID
	}
	channels, err := c.channels.ListByOwner(r.Context(), owner, maxListResults)
	if err != nil {
		return fmt.Errorf("failed to list channels: %v", err)
	}
	resp := make([]*ChannelResponse, 0, len(channels))
	for _, channel := range channels {
		resp = append(resp, newChannelResponse(channel))
	}
	return replyJSON(w, resp, http.StatusOK)
}

// Get a single channel.
func (c *Controller) getChannel(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]
	if id == "" {
		return &AppError{http.StatusBadRequest, "channel ID must be required"}
	}
	channel, err := c.channels.GetById(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to retrieve the channel: %v", err)
	}
	if channel == nil {
		return &AppError{http.StatusNotFound, "channel ID does not exist"}
	}
	return replyJSON(w, newChannelResponse(channel), http.StatusOK)
}

// Update the channel metadata. Only the owner may update a channel.
func (c *Controller) updateChannel(w http.ResponseWriter, r *http.Request) error {
	identity, err := caller(r)
	if err != nil {
		return err
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		return &AppError{http.StatusBadRequest, "channel ID must be required"}
	}
	var data ChannelRequest
	if err := parseJSON(w, r, &data); err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse JSON from request body: %v", err)}
	}
	channel, err := c.channels.GetById(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to retrieve the channel: %v", err)
	}
	if channel == nil {
		return &AppError{http.StatusNotFound, "channel ID does not exist"}
	}
	if channel.Owner != identity.UID {
		return &AppError{http.StatusForbidden, "caller does not own the channel"}
	}
	if data.Name != "" {
		channel.Name = data.Name
	}
	if data.Description != "" {
		channel.Description = data.Description
	}
	channel.UpdatedAt = time.Now().UTC()
	if err := c.channels.Save(r.Context(), channel); err != nil {
		return fmt.Errorf("failed to save the channel: %v", err)
	}
	return replyJSON(w, newChannelResponse(channel), http.StatusOK)
}

// Create a new video record on a channel the caller owns and initiate the
// source upload.
func (c *Controller) createVideo(w http.ResponseWriter, r *http.Request) error {
	identity, err := caller(r)
	if err != nil {
		return err
	}
	var data VideoRequest
	if err := parseJSON(w, r, &data); err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse JSON from request body: %v", err)}
	}
	contentType := r.Header.Get("X-Upload-Content-Type")
	if contentType == "" {
		return &AppError{http.StatusBadRequest, "X-Upload-Content-Type header must be required"}
	}
	if r.Header.Get("X-Upload-Content-Length") == "" {
		return &AppError{http.StatusBadRequest, "X-Upload-Content-Length header must be required"}
	}
	size, err := strconv.ParseInt(r.Header.Get("X-Upload-Content-Length"), 10, 64)
	if err != nil || size <= 0 {
		return &AppError{http.StatusBadRequest, "cannot parse X-Upload-Content-Length header"}
	}
	if !strings.HasPrefix(contentType, "video/") {
		return &AppError{http.StatusBadRequest, "content type must be a video format"}
	}
	if data.Channel == "" {
		return &AppError{http.StatusBadRequest, "channel ID must be required"}
	}
	channel, err := c.channels.GetById(r.Context(), data.Channel)
	if err != nil {
		return fmt.Errorf("failed to retrieve the channel: %v", err)
	}
	if channel == nil {
		return &AppError{http.StatusNotFound, "channel ID does not exist"}
	}
	if channel.Owner != identity.UID {
		return &AppError{http.StatusForbidden, "caller does not own the channel"}
	}

	id := uuid.New().String()
	video := entity.NewVideo(id, channel.Id, identity.UID, data.Metadata.Title, data.Metadata.Description, contentType, size, data.Metadata.Tags)
	switch r.URL.Query().Get("uploadType") {
	case "media":
	case "resumable":
		uploadId, err := c.uploader.CreateMultipart(r.Context(), id, contentType)
		if err != nil {
			return fmt.Errorf("failed to create multipart upload: %v", err)
		}
		video.NewUpload(uploadId)
	default:
		return &AppError{http.StatusBadRequest, "Invalid upload type"}
	}
	if err := c.videos.Save(r.Context(), video); err != nil {
		return fmt.Errorf("failed to save the video: %v", err)
	}
	return replyJSON(w, newVideoResponse(video), http.StatusOK)
}

// List videos by channel or by author, the caller when neither is given.
func (c *Controller) listVideos(w http.ResponseWriter, r *http.Request) error {
	var (
		videos []*entity.Video
		err    error
	)
	if channel := r.URL.Query().Get("channel"); channel != "" {
		videos, err = c.videos.ListByChannel(r.Context(), channel, maxListResults)
	} else {
		author := r.URL.Query().Get("author")
		if author == "" {
			identity, err := caller(r)
			if err != nil {
				return err
			}
			author = identity.UID
		}
		videos, err = c.videos.ListByAuthor(r.Context(), author, maxListResults)
	}
	if err != nil {
		return fmt.Errorf("failed to list videos: %v", err)
	}
	resp := make([]*VideoResponse, 0, len(videos))
	for _, video := range videos {
		resp = append(resp, newVideoResponse(video))
	}
	return replyJSON(w, resp, http.StatusOK)
}

// Get a single video with its playback information.
func (c *Controller) getVideo(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]
	if id == "" {
		return &AppError{http.StatusBadRequest, "video ID must be required"}
	}
	video, err := c.videos.GetById(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to retrieve the video: %v", err)
	}
	if video == nil {
		return &AppError{http.StatusNotFound, "video ID does not exist"}
	}
	return replyJSON(w, newVideoResponse(video), http.StatusOK)
}

// Upload the video source to the remote storage. Only the author may upload.
// The final byte hands the source to the transcoder.
func (c *Controller) uploadVideo(w http.ResponseWriter, r *http.Request) error {
	identity, err := caller(r)
	if err != nil {
		return err
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		return &AppError{http.StatusBadRequest, "video ID must be required"}
	}
	video, err := c.videos.GetById(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to retrieve the video: %v", err)
	}
	if video == nil {
		return &AppError{http.StatusNotFound, "video ID does not exist"}
	}
	if video.Author != identity.UID {
		return &AppError{http.StatusForbidden, "caller is not the author of the video"}
	}
	length, err := strconv.ParseInt(r.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse Content-Length header: %v", err)}
	}

	switch r.URL.Query().Get("uploadType") {
	case "media":
		if length != video.Size {
			return &AppError{http.StatusBadRequest, "Content-Length must match the declared content length"}
		}
		body := http.MaxBytesReader(w, r.Body, video.Size)
		if err := c.uploader.SimpleUpload(r.Context(), video.Id, body, video.ContentType); err != nil {
			return fmt.Errorf("failed to upload the video source: %v", err)
		}
	case "resumable":
		if video.Upload == nil {
			return &AppError{http.StatusBadRequest, "video was not created for resumable upload"}
		}
		if r.Header.Get("Content-Range") == "" {
			return &AppError{http.StatusBadRequest, "Content-Range must be required"}
		}
		cr, err := httprange.ParseContentRange(r.Header.Get("Content-Range"))
		if err != nil {
			return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse Content-Range header: %v", err)}
		}
		if length != cr.Length() {
			return &AppError{http.StatusBadRequest, "invalid length of Content-Range header"}
		}
		if cr.Size != video.Size {
			return &AppError{http.StatusBadRequest, "invalid size of Content-Range header"}
		}
		if cr.Start != video.Upload.Offset {
			return &AppError{http.StatusBadRequest, fmt.Sprintf("chunk must start at offset %d", video.Upload.Offset)}
		}
		if length > maxUploadChunkSize {
			return &AppError{http.StatusBadRequest, fmt.Sprintf("size must between %d and %d bytes", minUploadChunkSize, maxUploadChunkSize)}
		}
		// Every chunk but the last must align to the minimum chunk size.
		if !cr.IsFinal() && (length < minUploadChunkSize || length%minUploadChunkSize > 0) {
			return &AppError{http.StatusBadRequest, fmt.Sprintf("size must be the multiple of %d bytes", minUploadChunkSize)}
		}
		body := http.MaxBytesReader(w, r.Body, maxUploadChunkSize)
		part, err := c.uploader.UploadPart(r.Context(), video.Id, video.Upload.Id, body, length, video.Upload.NextPart())
		if err != nil {
			return fmt.Errorf("failed to upload the file part: %v", err)
		}
		video.AddUploadPart(part, length)
		// Respond to the client if the upload was not completed.
		if !cr.IsFinal() {
			if err := c.videos.Save(r.Context(), video); err != nil {
				return fmt.Errorf("failed to save the video: %v", err)
			}
			w.WriteHeader(http.StatusPartialContent)
			return nil
		}
		if err := c.uploader.CompleteMultipart(r.Context(), video.Id, video.Upload.Id, video.Upload.Parts); err != nil {
			return fmt.Errorf("failed to complete multipart upload: %v", err)
		}
	default:
		return &AppError{http.StatusBadRequest, "Invalid upload type"}
	}

	if err := c.finalize(r.Context(), video); err != nil {
		return err
	}
	if err := c.videos.Save(r.Context(), video); err != nil {
		return fmt.Errorf("failed to save the video: %v", err)
	}
	return replyJSON(w, newVideoResponse(video), http.StatusOK)
}

// Hand the uploaded source to the transcoder: the stored object is made
// publicly readable, then a single asset creation call carries the video ID
// as passthrough so status callbacks can find the record.
func (c *Controller) finalize(ctx context.Context, video *entity.Video) error {
	if err := c.uploader.MakePublic(ctx, video.Id); err != nil {
		return fmt.Errorf("failed to make the video source public: %v", err)
	}
	asset, err := c.transcoder.CreateAsset(ctx, c.uploader.PublicURL(video.Id), video.Id)
	if err != nil {
		return fmt.Errorf("failed to create the transcoding asset: %v", err)
	}
	video.SetAsset(asset)
	return nil
}

// Delete the video: the remote asset first, then the record, then the
// stored source on a best-effort basis. Only the author may delete.
func (c *Controller) deleteVideo(w http.ResponseWriter, r *http.Request) error {
	identity, err := caller(r)
	if err != nil {
		return err
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		return &AppError{http.StatusBadRequest, "video ID must be required"}
	}
	video, err := c.videos.GetById(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to retrieve the video: %v", err)
	}
	if video == nil {
		return &AppError{http.StatusNotFound, "video ID does not exist"}
	}
	if video.Author != identity.UID {
		return &AppError{http.StatusForbidden, "caller is not the author of the video"}
	}
	if video.AssetId != "" {
		if err := c.transcoder.DeleteAsset(r.Context(), video.AssetId); err != nil {
			return fmt.Errorf("failed to delete the remote asset: %v", err)
		}
	}
	if err := c.videos.Delete(r.Context(), id); err != nil {
		return fmt.Errorf("failed to delete the video: %v", err)
	}
	// An unfinished resumable upload leaves part objects behind.
	if video.Upload != nil && video.Status == entity.StatusUploading {
		if err := c.uploader.AbortMultipart(r.Context(), id, video.Upload.Id); err != nil {
			log.Printf("failed to abort multipart upload of %s: %v", id, err)
		}
	}
	if err := c.uploader.Delete(r.Context(), id); err != nil {
		log.Printf("failed to delete the video source %s: %v", id, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
