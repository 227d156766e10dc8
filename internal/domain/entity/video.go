package entity

import "time"

const (
	StatusUploading  = "UPLOADING"
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusFailed     = "FAILED"
)

// The entity of a shared video. AssetId and PlaybackId are assigned by the
// remote transcoder once the source upload has been handed off.
type Video struct {
	Id          string          `firestore:"id"`
	Channel     string          `firestore:"channel"`
	Author      string          `firestore:"author"`
	Title       string          `firestore:"title"`
	Description string          `firestore:"description"`
	Tags        []string        `firestore:"tags"`
	ContentType string          `firestore:"contentType"`
	Size        int64           `firestore:"size"`
	Status      string          `firestore:"status"`
	AssetId     string          `firestore:"assetID"`
	PlaybackId  string          `firestore:"playbackID"`
	Duration    float64         `firestore:"duration"`
	CreatedAt   time.Time       `firestore:"createdAt"`
	UpdatedAt   time.Time       `firestore:"updatedAt"`
	Upload      *UploadProgress `firestore:"upload"`
}

func NewVideo(id, channel, author, title, description, contentType string, size int64, tags []string) *Video {
	now := time.Now().UTC()
	return &Video{
		Id:          id,
		Channel:     channel,
		Author:      author,
		Title:       title,
		Description: description,
		ContentType: contentType,
		Size:        size,
		Status:      StatusUploading,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (v *Video) NewUpload(id string) { v.Upload = &UploadProgress{Id: id} }

// Add a file part to the video and advance the upload offset.
func (v *Video) AddUploadPart(part *Part, length int64) {
	v.Upload.Parts = append(v.Upload.Parts, part)
	v.Upload.Offset += length
}

// Mark the upload status of the video.
func (v *Video) SetStatus(status string) {
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
}

// Attach the transcoder asset to the video and move it to PROCESSING.
func (v *Video) SetAsset(asset *RemoteAsset) {
	v.AssetId = asset.Id
	v.PlaybackId = asset.PlaybackId
	v.SetStatus(StatusProcessing)
}

// The upload progress is used for multipart upload. Chunks arrive strictly
// in order, so the next expected byte is the sum of the accepted parts.
type UploadProgress struct {
	Id     string  `firestore:"id"`     // The upload identifier in multipart upload.
	Offset int64   `firestore:"offset"` // The next expected byte of the source file.
	Parts  []*Part `firestore:"parts"`  // A set of parts in multipart upload.
}

// The part number for the next chunk, 1-based.
func (u *UploadProgress) NextPart() int64 { return int64(len(u.Parts)) + 1 }

// The part portion of video data.
type Part struct {
	ETag       string `firestore:"etag"`       // Entity tag for the uploaded object.
	PartNumber int64  `firestore:"partNumber"` // Part number that identifies the part.
}
