package entity

// The asset created by the remote transcoder for an uploaded source video.
type RemoteAsset struct {
	Id         string // Asset identifier on the transcoder side.
	PlaybackId string // Public playback identifier, empty until minted.
	Status     string // Transcoder-side status, e.g. "preparing".
}
