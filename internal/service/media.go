package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"vidtube/internal/storage"
)

// FileUpload points at a multipart upload already written to local scratch
// space by the HTTP layer.
type FileUpload struct {
	LocalPath string
	Filename  string
}

// mediaStore wraps the storage service with bucket/key-prefix wiring shared
// by every service that moves media.
type mediaStore struct {
	store     storage.Service
	bucket    string
	keyPrefix string
}

// upload pushes a local file under <prefix>/<kind>/<uuid><ext> and removes
// the local copy regardless of outcome.
func (m *mediaStore) upload(ctx context.Context, kind string, file FileUpload) (storage.ObjectRef, error) {
	defer os.Remove(file.LocalPath)

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s/%s%s", strings.Trim(m.keyPrefix, "/"), kind, uuid.NewString(), ext)

	ref, err := m.store.UploadFile(ctx, file.LocalPath, storage.UploadOptions{
		Bucket: m.bucket,
		Key:    key,
	})
	if err != nil {
		return storage.ObjectRef{}, fmt.Errorf("upload %s: %w", kind, err)
	}
	return ref, nil
}

// remove deletes a previously uploaded object; a blank key is a no-op so
// optional media (cover images) can be replaced unconditionally.
func (m *mediaStore) remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return m.store.DeleteObject(ctx, m.bucket, key)
}
