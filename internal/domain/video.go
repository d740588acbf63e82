package domain

import "time"

// Video is a published (or draft) video entry. VideoFile and Thumbnail hold
// public URLs on the media store; the matching *Key fields identify the
// stored objects for later deletion.
type Video struct {
	ID           string
	OwnerID      string
	VideoFile    string
	VideoFileKey string
	Thumbnail    string
	ThumbnailKey string
	Title        string
	Description  string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VideoOwner is the owner summary embedded when fetching a single video.
type VideoOwner struct {
	Username string
	FullName string
	Email    string
}

// VideoWithOwner pairs a video with its resolved owner summary.
type VideoWithOwner struct {
	Video
	Owner VideoOwner
}
