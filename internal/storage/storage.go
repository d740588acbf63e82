package storage

import "context"

// ObjectRef identifies an uploaded media object: its public URL and the key
// needed to delete it later.
type ObjectRef struct {
	URL string
	Key string
}

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service stores media files (avatars, covers, videos, thumbnails) on remote
// object storage.
type Service interface {
	UploadFile(ctx context.Context, localPath string, opts UploadOptions) (ObjectRef, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
