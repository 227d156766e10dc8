package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Hyperion302/swish/internal/domain/entity"
	"github.com/Hyperion302/swish/internal/infrastructure/transcode"
)

// Status callbacks from the transcoding API. The endpoint is not behind the
// auth middleware, so the HMAC signature is the only gate. Unknown events
// are acknowledged so the transcoder does not keep retrying them.
func (c *Controller) transcodeWebhook(w http.ResponseWriter, r *http.Request) error {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	if err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot read request body: %v", err)}
	}
	if err := transcode.VerifySignature(r.Header.Get("Mux-Signature"), payload, []byte(c.webhookSecret)); err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("invalid webhook signature: %v", err)}
	}
	var event TranscodeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return &AppError{http.StatusBadRequest, fmt.Sprintf("cannot parse JSON from request body: %v", err)}
	}

	switch event.Type {
	case "video.asset.ready", "video.asset.errored":
	default:
		log.Printf("ignoring webhook event %q", event.Type)
		w.WriteHeader(http.StatusOK)
		return nil
	}
	if event.Data.Passthrough == "" {
		log.Printf("webhook event %q for asset %s has no passthrough", event.Type, event.Data.Id)
		w.WriteHeader(http.StatusOK)
		return nil
	}
	video, err := c.videos.GetById(r.Context(), event.Data.Passthrough)
	if err != nil {
		return fmt.Errorf("failed to retrieve the video: %v", err)
	}
	if video == nil {
		log.Printf("no video %s for asset %s", event.Data.Passthrough, event.Data.Id)
		w.WriteHeader(http.StatusOK)
		return nil
	}

	switch event.Type {
	case "video.asset.ready":
		video.AssetId = event.Data.Id
		video.Duration = event.Data.Duration
		if len(event.Data.PlaybackIds) > 0 {
			video.PlaybackId = event.Data.PlaybackIds[0].Id
		}
		video.SetStatus(entity.StatusReady)
	case "video.asset.errored":
		video.SetStatus(entity.StatusFailed)
	}
	if err := c.videos.Save(r.Context(), video); err != nil {
		return fmt.Errorf("failed to save the video: %v", err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}
