package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
)

func newTestVideoService(t *testing.T) (VideoService, *fakeVideoRepo, *fakeCommentRepo, *fakeUserRepo, *fakeMediaStore) {
	t.Helper()
	videos := newFakeVideoRepo()
	comments := newFakeCommentRepo()
	users := newFakeUserRepo()
	media := &fakeMediaStore{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewVideoService(videos, comments, users, media, "test-bucket", "vidtube-media", logger)
	return svc, videos, comments, users, media
}

func publishTestVideo(t *testing.T, svc VideoService, ownerID string) *domain.Video {
	t.Helper()
	video, err := svc.Publish(context.Background(), ownerID, PublishInput{
		Title:       "First video",
		Description: "A description",
		Duration:    42.5,
		Video:       &FileUpload{LocalPath: "/nonexistent/v.mp4", Filename: "v.mp4"},
		Thumbnail:   &FileUpload{LocalPath: "/nonexistent/t.png", Filename: "t.png"},
	})
	require.NoError(t, err)
	return video
}

func TestPublishVideo(t *testing.T) {
	svc, videos, _, _, media := newTestVideoService(t)

	video := publishTestVideo(t, svc, "owner-1")
	require.True(t, video.IsPublished)
	require.NotEmpty(t, video.VideoFile)
	require.NotEmpty(t, video.Thumbnail)
	require.Len(t, media.uploaded, 2)

	stored, err := videos.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, "owner-1", stored.OwnerID)
	require.Equal(t, 42.5, stored.Duration)
}

func TestPublishValidation(t *testing.T) {
	svc, _, _, _, _ := newTestVideoService(t)

	_, err := svc.Publish(context.Background(), "owner-1", PublishInput{
		Title:       "",
		Description: "desc",
		Video:       &FileUpload{LocalPath: "/x", Filename: "v.mp4"},
		Thumbnail:   &FileUpload{LocalPath: "/x", Filename: "t.png"},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Publish(context.Background(), "owner-1", PublishInput{
		Title:       "title",
		Description: "desc",
		Thumbnail:   &FileUpload{LocalPath: "/x", Filename: "t.png"},
	})
	require.ErrorIs(t, err, ErrValidation) // video file missing

	_, err = svc.Publish(context.Background(), "owner-1", PublishInput{
		Title:       "title",
		Description: "desc",
		Video:       &FileUpload{LocalPath: "/x", Filename: "v.mp4"},
	})
	require.ErrorIs(t, err, ErrValidation) // thumbnail missing
}

func TestGetVideoCountsView(t *testing.T) {
	svc, videos, _, users, _ := newTestVideoService(t)
	videos.owners["owner-1"] = domain.VideoOwner{Username: "alice", FullName: "Alice A", Email: "alice@x.com"}
	require.NoError(t, users.Create(context.Background(), &domain.User{ID: "viewer-1", Username: "bob", Email: "bob@x.com"}))

	video := publishTestVideo(t, svc, "owner-1")

	got, err := svc.Get(context.Background(), video.ID, "viewer-1")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Owner.Username)

	stored, err := videos.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stored.Views)
	require.Equal(t, []string{video.ID}, users.stored("viewer-1").WatchHistory)

	_, err = svc.Get(context.Background(), "missing", "viewer-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVideoOwnership(t *testing.T) {
	svc, videos, _, _, media := newTestVideoService(t)
	video := publishTestVideo(t, svc, "owner-1")
	oldThumbKey := video.ThumbnailKey

	_, err := svc.Update(context.Background(), video.ID, "intruder", "New title", "New desc", nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	updated, err := svc.Update(context.Background(), video.ID, "owner-1", "New title", "New desc", &FileUpload{
		LocalPath: "/nonexistent/t2.png",
		Filename:  "t2.png",
	})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.NotEqual(t, oldThumbKey, updated.ThumbnailKey)
	require.Contains(t, media.deleted, oldThumbKey)

	// Without a new thumbnail the existing one stays.
	updated, err = svc.Update(context.Background(), video.ID, "owner-1", "Third title", "desc", nil)
	require.NoError(t, err)
	require.Equal(t, "Third title", updated.Title)
	require.NotEmpty(t, updated.ThumbnailKey)

	_, err = videos.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
}

func TestDeleteVideoCleansUp(t *testing.T) {
	svc, videos, comments, _, media := newTestVideoService(t)
	video := publishTestVideo(t, svc, "owner-1")

	require.NoError(t, comments.Create(context.Background(), &domain.Comment{
		ID: "c-1", VideoID: video.ID, OwnerID: "viewer-1", Content: "nice",
	}))

	require.ErrorIs(t, svc.Delete(context.Background(), video.ID, "intruder"), ErrUnauthorized)

	require.NoError(t, svc.Delete(context.Background(), video.ID, "owner-1"))
	require.Contains(t, media.deleted, video.VideoFileKey)
	require.Contains(t, media.deleted, video.ThumbnailKey)

	_, err := videos.GetByID(context.Background(), video.ID)
	require.Error(t, err)
	remaining, err := comments.ListByVideo(context.Background(), video.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestTogglePublish(t *testing.T) {
	svc, videos, _, _, _ := newTestVideoService(t)
	video := publishTestVideo(t, svc, "owner-1")

	toggled, err := svc.TogglePublish(context.Background(), video.ID, "owner-1")
	require.NoError(t, err)
	require.False(t, toggled.IsPublished)

	stored, err := videos.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	require.False(t, stored.IsPublished)

	toggled, err = svc.TogglePublish(context.Background(), video.ID, "owner-1")
	require.NoError(t, err)
	require.True(t, toggled.IsPublished)

	_, err = svc.TogglePublish(context.Background(), video.ID, "intruder")
	require.ErrorIs(t, err, ErrUnauthorized)
}
