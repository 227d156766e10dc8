package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Hyperion302/swish/internal/domain/entity"
	"github.com/Hyperion302/swish/internal/infrastructure/auth"
)

type mockChannelRepository struct {
	channels  map[string]*entity.Channel
	saved     []*entity.Channel
	lastLimit int
}

func (r *mockChannelRepository) GetById(ctx context.Context, id string) (*entity.Channel, error) {
	return r.channels[id], nil
}

func (r *mockChannelRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*entity.Channel, error) {
	r.lastLimit = limit
	var channels []*entity.Channel
	for _, channel := range r.channels {
		if channel.Owner == owner {
			channels = append(channels, channel)
		}
	}
	return channels, nil
}

func (r *mockChannelRepository) Save(ctx context.Context, channel *entity.Channel) error {
	r.saved = append(r.saved, channel)
	return nil
}

type mockVideoRepository struct {
	videos  map[string]*entity.Video
	saved   []*entity.Video
	deleted []string
}

func (r *mockVideoRepository) GetById(ctx context.Context, id string) (*entity.Video, error) {
	return r.videos[id], nil
}

func (r *mockVideoRepository) ListByAuthor(ctx context.Context, author string, limit int) ([]*entity.Video, error) {
	var videos []*entity.Video
	for _, video := range r.videos {
		if video.Author == author {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (r *mockVideoRepository) ListByChannel(ctx context.Context, channel string, limit int) ([]*entity.Video, error) {
	var videos []*entity.Video
	for _, video := range r.videos {
		if video.Channel == channel {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (r *mockVideoRepository) Save(ctx context.Context, video *entity.Video) error {
	r.saved = append(r.saved, video)
	return nil
}

func (r *mockVideoRepository) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type mockUploader struct {
	simple    []string
	parts     []int64
	completed []string
	aborted   []string
	public    []string
	deleted   []string
}

func (u *mockUploader) CreateMultipart(ctx context.Context, key, contentType string) (string, error) {
	return "upload-1", nil
}

func (u *mockUploader) CompleteMultipart(ctx context.Context, key, uploadId string, parts []*entity.Part) error {
	u.completed = append(u.completed, key)
	return nil
}

func (u *mockUploader) AbortMultipart(ctx context.Context, key, uploadId string) error {
	u.aborted = append(u.aborted, key)
	return nil
}

func (u *mockUploader) SimpleUpload(ctx context.Context, key string, body io.Reader, contentType string) error {
	u.simple = append(u.simple, key)
	return nil
}

func (u *mockUploader) UploadPart(ctx context.Context, key, uploadId string, body io.Reader, length, partNumber int64) (*entity.Part, error) {
	u.parts = append(u.parts, partNumber)
	return &entity.Part{ETag: fmt.Sprintf("etag-%d", partNumber), PartNumber: partNumber}, nil
}

func (u *mockUploader) MakePublic(ctx context.Context, key string) error {
	u.public = append(u.public, key)
	return nil
}

func (u *mockUploader) PublicURL(key string) string {
	return "https://storage.test/" + key
}

func (u *mockUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

type mockTranscoder struct {
	created []string
	deleted []string
}

func (t *mockTranscoder) CreateAsset(ctx context.Context, sourceURL, passthrough string) (*entity.RemoteAsset, error) {
	t.created = append(t.created, passthrough)
	return &entity.RemoteAsset{Id: "asset-1", PlaybackId: "play-1", Status: "preparing"}, nil
}

func (t *mockTranscoder) DeleteAsset(ctx context.Context, assetId string) error {
	t.deleted = append(t.deleted, assetId)
	return nil
}

type fixture struct {
	channels   *mockChannelRepository
	videos     *mockVideoRepository
	uploader   *mockUploader
	transcoder *mockTranscoder
	c          *Controller
}

func newFixture() *fixture {
	f := &fixture{
		channels:   &mockChannelRepository{channels: map[string]*entity.Channel{}},
		videos:     &mockVideoRepository{videos: map[string]*entity.Video{}},
		uploader:   &mockUploader{},
		transcoder: &mockTranscoder{},
	}
	f.c = NewController(f.channels, f.videos, f.uploader, f.transcoder, "whsec_test")
	return f
}

func request(method, target, body, uid string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if uid != "" {
		r = r.WithContext(auth.ContextWithIdentity(r.Context(), &entity.Identity{UID: uid}))
	}
	return r
}

// The HTTP status carried by the error, 0 for success.
func errCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var e *AppError
	if !errors.As(err, &e) {
		t.Fatalf("unexpected internal error: %v", err)
	}
	return e.Code
}

func TestCreateChannel(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		body string
		code int
	}{
		{"anonymous caller", "", `{"name":"skate"}`, http.StatusUnauthorized},
		{"malformed body", "u1", `{`, http.StatusBadRequest},
		{"missing name", "u1", `{"description":"clips"}`, http.StatusBadRequest},
		{"created", "u1", `{"name":"skate","description":"clips"}`, 0},
	}
	for _, tt := range tests {
		f := newFixture()
		r := request("POST", "/swish/v1/channels", tt.body, tt.uid)
		w := httptest.NewRecorder()
		err := f.c.createChannel(w, r)
		if code := errCode(t, err); code != tt.code {
			t.Errorf("%s: error code = %d, want %d", tt.name, code, tt.code)
		}
		if tt.code != 0 {
			if len(f.channels.saved) != 0 {
				t.Errorf("%s: channel was saved on a rejected request", tt.name)
			}
			continue
		}
		if len(f.channels.saved) != 1 {
			t.Fatalf("%s: saved %d channels, want 1", tt.name, len(f.channels.saved))
		}
		if got := f.channels.saved[0].Owner; got != tt.uid {
			t.Errorf("%s: channel owner = %q, want %q", tt.name, got, tt.uid)
		}
	}
}

func TestListChannels(t *testing.T) {
	f := newFixture()
	f.channels.channels["c1"] = entity.NewChannel("c1", "u1", "skate", "")
	f.channels.channels["c2"] = entity.NewChannel("c2", "u2", "bikes", "")

	// Anonymous lookups must name an owner.
	err := f.c.listChannels(httptest.NewRecorder(), request("GET", "/swish/v1/channels", "", ""))
	if code := errCode(t, err); code != http.StatusUnauthorized {
		t.Errorf("anonymous without owner: error code = %d, want %d", code, http.StatusUnauthorized)
	}

	w := httptest.NewRecorder()
	if err := f.c.listChannels(w, request("GET", "/swish/v1/channels?owner=u2", "", "")); err != nil {
		t.Fatalf("lookup by owner: %v", err)
	}
	if !strings.Contains(w.Body.String(), `"id":"c2"`) || strings.Contains(w.Body.String(), `"id":"c1"`) {
		t.Errorf("lookup by owner returned %s", w.Body.String())
	}
	if f.channels.lastLimit != maxListResults {
		t.Errorf("lookup limit = %d, want %d", f.channels.lastLimit, maxListResults)
	}

	// Without an owner the caller's own channels come back.
	w = httptest.NewRecorder()
	if err := f.c.listChannels(w, request("GET", "/swish/v1/channels", "", "u1")); err != nil {
		t.Fatalf("lookup by caller: %v", err)
	}
	if !strings.Contains(w.Body.String(), `"id":"c1"`) {
		t.Errorf("lookup by caller returned %s", w.Body.String())
	}
}

func TestGetChannel(t *testing.T) {
	f := newFixture()
	f.channels.channels["c1"] = entity.NewChannel("c1", "u1", "skate", "")

	r := mux.SetURLVars(request("GET", "/swish/v1/channels/nope", "", ""), map[string]string{"id": "nope"})
	if code := errCode(t, f.c.getChannel(httptest.NewRecorder(), r)); code != http.StatusNotFound {
		t.Errorf("missing channel: error code = %d, want %d", code, http.StatusNotFound)
	}

	r = mux.SetURLVars(request("GET", "/swish/v1/channels/c1", "", ""), map[string]string{"id": "c1"})
	w := httptest.NewRecorder()
	if err := f.c.getChannel(w, r); err != nil {
		t.Fatalf("existing channel: %v", err)
	}
	if !strings.Contains(w.Body.String(), `"owner":"u1"`) {
		t.Errorf("existing channel returned %s", w.Body.String())
	}
}

func TestUpdateChannel(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		id   string
		code int
	}{
		{"anonymous caller", "", "c1", http.StatusUnauthorized},
		{"missing channel", "u1", "nope", http.StatusNotFound},
		{"not the owner", "u2", "c1", http.StatusForbidden},
		{"updated", "u1", "c1", 0},
	}
	for _, tt := range tests {
		f := newFixture()
		f.channels.channels["c1"] = entity.NewChannel("c1", "u1", "skate", "")
		r := mux.SetURLVars(request("PATCH", "/swish/v1/channels/"+tt.id, `{"name":"downhill"}`, tt.uid), map[string]string{"id": tt.id})
		err := f.c.updateChannel(httptest.NewRecorder(), r)
		if code := errCode(t, err); code != tt.code {
			t.Errorf("%s: error code = %d, want %d", tt.name, code, tt.code)
		}
		if tt.code != 0 {
			if len(f.channels.saved) != 0 {
				t.Errorf("%s: channel was saved on a rejected request", tt.name)
			}
			continue
		}
		if got := f.channels.channels["c1"].Name; got != "downhill" {
			t.Errorf("%s: channel name = %q, want %q", tt.name, got, "downhill")
		}
	}
}

func TestCreateVideo(t *testing.T) {
	const body = `{"channel":"c1","metadata":{"title":"first run","tags":["skate"]}}`
	tests := []struct {
		name    string
		uid     string
		body    string
		headers http.Header
		query   string
		code    int
	}{
		{"anonymous caller", "", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusUnauthorized},
		{"missing content type", "u1", body, http.Header{"X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusBadRequest},
		{"missing content length", "u1", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}}, "uploadType=media", http.StatusBadRequest},
		{"bad content length", "u1", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"forty"}}, "uploadType=media", http.StatusBadRequest},
		{"not a video", "u1", body, http.Header{"X-Upload-Content-Type": {"image/png"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusBadRequest},
		{"missing channel", "u1", `{"metadata":{"title":"x"}}`, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusBadRequest},
		{"unknown channel", "u1", `{"channel":"nope"}`, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusNotFound},
		{"not the channel owner", "u2", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", http.StatusForbidden},
		{"invalid upload type", "u1", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "", http.StatusBadRequest},
		{"media upload", "u1", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=media", 0},
		{"resumable upload", "u1", body, http.Header{"X-Upload-Content-Type": {"video/mp4"}, "X-Upload-Content-Length": {"41943040"}}, "uploadType=resumable", 0},
	}
	for _, tt := range tests {
		f := newFixture()
		f.channels.channels["c1"] = entity.NewChannel("c1", "u1", "skate", "")
		r := request("POST", "/swish/v1/videos?"+tt.query, tt.body, tt.uid)
		for k, v := range tt.headers {
			r.Header[k] = v
		}
		err := f.c.createVideo(httptest.NewRecorder(), r)
		if code := errCode(t, err); code != tt.code {
			t.Errorf("%s: error code = %d, want %d", tt.name, code, tt.code)
		}
		if tt.code != 0 {
			if len(f.videos.saved) != 0 {
				t.Errorf("%s: video was saved on a rejected request", tt.name)
			}
			continue
		}
		if len(f.videos.saved) != 1 {
			t.Fatalf("%s: saved %d videos, want 1", tt.name, len(f.videos.saved))
		}
		video := f.videos.saved[0]
		if video.Author != "u1" || video.Channel != "c1" || video.Status != entity.StatusUploading {
			t.Errorf("%s: saved video = %+v", tt.name, video)
		}
		if tt.query == "uploadType=resumable" && (video.Upload == nil || video.Upload.Id != "upload-1") {
			t.Errorf("%s: resumable upload was not initiated", tt.name)
		}
	}
}

func uploadRequest(id, query, uid string, length int64, contentRange string) *http.Request {
	r := request("PUT", fmt.Sprintf("/upload/swish/v1/videos/%s?%s", id, query), "", uid)
	r.Header.Set("Content-Length", strconv.FormatInt(length, 10))
	if contentRange != "" {
		r.Header.Set("Content-Range", contentRange)
	}
	return mux.SetURLVars(r, map[string]string{"id": id})
}

func TestUploadVideoRejections(t *testing.T) {
	tests := []struct {
		name   string
		uid    string
		id     string
		query  string
		length int64
		cr     string
		code   int
	}{
		{"anonymous caller", "", "v1", "uploadType=media", 1048576, "", http.StatusUnauthorized},
		{"missing video", "u1", "nope", "uploadType=media", 1048576, "", http.StatusNotFound},
		{"not the author", "u2", "v1", "uploadType=media", 1048576, "", http.StatusForbidden},
		{"invalid upload type", "u1", "v1", "uploadType=", 1048576, "", http.StatusBadRequest},
		{"missing content range", "u1", "v1", "uploadType=resumable", 1048576, "", http.StatusBadRequest},
		{"malformed content range", "u1", "v1", "uploadType=resumable", 1048576, "bytes x-y/z", http.StatusBadRequest},
		{"length mismatch", "u1", "v1", "uploadType=resumable", 1048576, "bytes 0-2097151/10485760", http.StatusBadRequest},
		{"size mismatch", "u1", "v1", "uploadType=resumable", 1048576, "bytes 0-1048575/20971520", http.StatusBadRequest},
		{"chunk out of order", "u1", "v1", "uploadType=resumable", 1048576, "bytes 1048576-2097151/10485760", http.StatusBadRequest},
		{"chunk above maximum", "u1", "v1", "uploadType=resumable", 6291456, "bytes 0-6291455/10485760", http.StatusBadRequest},
		{"chunk below minimum", "u1", "v1", "uploadType=resumable", 131072, "bytes 0-131071/10485760", http.StatusBadRequest},
		{"chunk not aligned", "u1", "v1", "uploadType=resumable", 307200, "bytes 0-307199/10485760", http.StatusBadRequest},
	}
	for _, tt := range tests {
		f := newFixture()
		video := entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 10485760, nil)
		video.NewUpload("upload-1")
		f.videos.videos["v1"] = video
		err := f.c.uploadVideo(httptest.NewRecorder(), uploadRequest(tt.id, tt.query, tt.uid, tt.length, tt.cr))
		if code := errCode(t, err); code != tt.code {
			t.Errorf("%s: error code = %d, want %d", tt.name, code, tt.code)
		}
		if len(f.uploader.simple)+len(f.uploader.parts) != 0 {
			t.Errorf("%s: storage was touched on a rejected request", tt.name)
		}
		if len(f.transcoder.created) != 0 {
			t.Errorf("%s: transcoder was called on a rejected request", tt.name)
		}
	}
}

func TestUploadVideoMedia(t *testing.T) {
	f := newFixture()
	video := entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 1048576, nil)
	f.videos.videos["v1"] = video

	w := httptest.NewRecorder()
	if err := f.c.uploadVideo(w, uploadRequest("v1", "uploadType=media", "u1", 1048576, "")); err != nil {
		t.Fatal(err)
	}
	if len(f.uploader.simple) != 1 || f.uploader.simple[0] != "v1" {
		t.Errorf("simple uploads = %v, want [v1]", f.uploader.simple)
	}
	if len(f.uploader.public) != 1 || f.uploader.public[0] != "v1" {
		t.Errorf("public objects = %v, want [v1]", f.uploader.public)
	}
	if len(f.transcoder.created) != 1 || f.transcoder.created[0] != "v1" {
		t.Errorf("created assets = %v, want one with passthrough v1", f.transcoder.created)
	}
	if video.Status != entity.StatusProcessing || video.AssetId != "asset-1" || video.PlaybackId != "play-1" {
		t.Errorf("video after upload = %+v", video)
	}
	if len(f.videos.saved) != 1 {
		t.Errorf("saved %d videos, want 1", len(f.videos.saved))
	}
}

func TestUploadVideoResumable(t *testing.T) {
	f := newFixture()
	video := entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 2097152, nil)
	video.NewUpload("upload-1")
	f.videos.videos["v1"] = video

	// First chunk leaves the upload incomplete.
	w := httptest.NewRecorder()
	if err := f.c.uploadVideo(w, uploadRequest("v1", "uploadType=resumable", "u1", 1048576, "bytes 0-1048575/2097152")); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusPartialContent {
		t.Errorf("first chunk status = %d, want %d", w.Code, http.StatusPartialContent)
	}
	if len(f.transcoder.created) != 0 || len(f.uploader.completed) != 0 {
		t.Error("upload was finalized before the last chunk")
	}
	if video.Upload.Offset != 1048576 {
		t.Errorf("upload offset = %d, want 1048576", video.Upload.Offset)
	}

	// Final chunk completes the multipart upload and hands off the source.
	w = httptest.NewRecorder()
	if err := f.c.uploadVideo(w, uploadRequest("v1", "uploadType=resumable", "u1", 1048576, "bytes 1048576-2097151/2097152")); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Errorf("final chunk status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := f.uploader.parts; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("uploaded part numbers = %v, want [1 2]", got)
	}
	if len(f.uploader.completed) != 1 {
		t.Errorf("completed uploads = %v, want [v1]", f.uploader.completed)
	}
	if len(f.transcoder.created) != 1 {
		t.Errorf("created assets = %v, want 1", f.transcoder.created)
	}
	if video.Status != entity.StatusProcessing {
		t.Errorf("video status = %q, want %q", video.Status, entity.StatusProcessing)
	}
}

func TestDeleteVideo(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		id   string
		code int
	}{
		{"anonymous caller", "", "v1", http.StatusUnauthorized},
		{"missing video", "u1", "nope", http.StatusNotFound},
		{"not the author", "u2", "v1", http.StatusForbidden},
		{"deleted", "u1", "v1", 0},
	}
	for _, tt := range tests {
		f := newFixture()
		video := entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 1048576, nil)
		video.SetAsset(&entity.RemoteAsset{Id: "asset-1", PlaybackId: "play-1"})
		f.videos.videos["v1"] = video
		r := mux.SetURLVars(request("DELETE", "/swish/v1/videos/"+tt.id, "", tt.uid), map[string]string{"id": tt.id})
		err := f.c.deleteVideo(httptest.NewRecorder(), r)
		if code := errCode(t, err); code != tt.code {
			t.Errorf("%s: error code = %d, want %d", tt.name, code, tt.code)
		}
		if tt.code != 0 {
			if len(f.transcoder.deleted)+len(f.videos.deleted) != 0 {
				t.Errorf("%s: delete happened on a rejected request", tt.name)
			}
			continue
		}
		if len(f.transcoder.deleted) != 1 || f.transcoder.deleted[0] != "asset-1" {
			t.Errorf("%s: deleted assets = %v, want [asset-1]", tt.name, f.transcoder.deleted)
		}
		if len(f.videos.deleted) != 1 || f.videos.deleted[0] != "v1" {
			t.Errorf("%s: deleted records = %v, want [v1]", tt.name, f.videos.deleted)
		}
		if len(f.uploader.deleted) != 1 || f.uploader.deleted[0] != "v1" {
			t.Errorf("%s: deleted objects = %v, want [v1]", tt.name, f.uploader.deleted)
		}
	}
}

func TestDeleteVideoMidUpload(t *testing.T) {
	f := newFixture()
	video := entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 10485760, nil)
	video.NewUpload("upload-1")
	video.AddUploadPart(&entity.Part{ETag: "etag-1", PartNumber: 1}, 1048576)
	f.videos.videos["v1"] = video

	r := mux.SetURLVars(request("DELETE", "/swish/v1/videos/v1", "", "u1"), map[string]string{"id": "v1"})
	if err := f.c.deleteVideo(httptest.NewRecorder(), r); err != nil {
		t.Fatal(err)
	}
	if len(f.uploader.aborted) != 1 || f.uploader.aborted[0] != "v1" {
		t.Errorf("aborted uploads = %v, want [v1]", f.uploader.aborted)
	}
	if len(f.videos.deleted) != 1 || f.videos.deleted[0] != "v1" {
		t.Errorf("deleted records = %v, want [v1]", f.videos.deleted)
	}

	// A completed upload has nothing left to abort.
	f = newFixture()
	video = entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 10485760, nil)
	video.NewUpload("upload-1")
	video.SetAsset(&entity.RemoteAsset{Id: "asset-1"})
	f.videos.videos["v1"] = video
	r = mux.SetURLVars(request("DELETE", "/swish/v1/videos/v1", "", "u1"), map[string]string{"id": "v1"})
	if err := f.c.deleteVideo(httptest.NewRecorder(), r); err != nil {
		t.Fatal(err)
	}
	if len(f.uploader.aborted) != 0 {
		t.Errorf("aborted uploads = %v, want none", f.uploader.aborted)
	}
}

func TestGetVideo(t *testing.T) {
	f := newFixture()
	f.videos.videos["v1"] = entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 1048576, nil)

	r := mux.SetURLVars(request("GET", "/swish/v1/videos/nope", "", ""), map[string]string{"id": "nope"})
	if code := errCode(t, f.c.getVideo(httptest.NewRecorder(), r)); code != http.StatusNotFound {
		t.Errorf("missing video: error code = %d, want %d", code, http.StatusNotFound)
	}

	r = mux.SetURLVars(request("GET", "/swish/v1/videos/v1", "", ""), map[string]string{"id": "v1"})
	w := httptest.NewRecorder()
	if err := f.c.getVideo(w, r); err != nil {
		t.Fatalf("existing video: %v", err)
	}
	if !strings.Contains(w.Body.String(), `"author":"u1"`) {
		t.Errorf("existing video returned %s", w.Body.String())
	}
}

func TestListVideos(t *testing.T) {
	f := newFixture()
	f.videos.videos["v1"] = entity.NewVideo("v1", "c1", "u1", "first run", "", "video/mp4", 1, nil)
	f.videos.videos["v2"] = entity.NewVideo("v2", "c2", "u2", "second run", "", "video/mp4", 1, nil)

	w := httptest.NewRecorder()
	if err := f.c.listVideos(w, request("GET", "/swish/v1/videos?channel=c2", "", "")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), `"id":"v2"`) || strings.Contains(w.Body.String(), `"id":"v1"`) {
		t.Errorf("lookup by channel returned %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	if err := f.c.listVideos(w, request("GET", "/swish/v1/videos?author=u1", "", "")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), `"id":"v1"`) {
		t.Errorf("lookup by author returned %s", w.Body.String())
	}

	err := f.c.listVideos(httptest.NewRecorder(), request("GET", "/swish/v1/videos", "", ""))
	if code := errCode(t, err); code != http.StatusUnauthorized {
		t.Errorf("anonymous without author: error code = %d, want %d", code, http.StatusUnauthorized)
	}
}
