package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// PublishInput collects the fields and media uploads for a new video.
type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	Video       *FileUpload
	Thumbnail   *FileUpload
}

// VideoService owns the video publishing lifecycle. Mutating operations are
// restricted to the owning user.
type VideoService interface {
	Publish(ctx context.Context, ownerID string, in PublishInput) (*domain.Video, error)
	Get(ctx context.Context, videoID, viewerID string) (*domain.VideoWithOwner, error)
	Update(ctx context.Context, videoID, ownerID, title, description string, thumbnail *FileUpload) (*domain.Video, error)
	Delete(ctx context.Context, videoID, ownerID string) error
	TogglePublish(ctx context.Context, videoID, ownerID string) (*domain.Video, error)
}

type videoService struct {
	videos   repository.VideoRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	media    mediaStore
	logger   *logrus.Logger
}

func NewVideoService(videos repository.VideoRepository, comments repository.CommentRepository, users repository.UserRepository, media storage.Service, bucket, keyPrefix string, logger *logrus.Logger) VideoService {
	return &videoService{
		videos:   videos,
		comments: comments,
		users:    users,
		media:    mediaStore{store: media, bucket: bucket, keyPrefix: keyPrefix},
		logger:   logger,
	}
}

func (s *videoService) Publish(ctx context.Context, ownerID string, in PublishInput) (*domain.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if in.Video == nil {
		return nil, fmt.Errorf("%w: video file is required", ErrValidation)
	}
	if in.Thumbnail == nil {
		return nil, fmt.Errorf("%w: video thumbnail is required", ErrValidation)
	}

	videoRef, err := s.media.upload(ctx, "videos", *in.Video)
	if err != nil {
		return nil, fmt.Errorf("%w: video upload failed", ErrValidation)
	}
	thumbRef, err := s.media.upload(ctx, "thumbnails", *in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail upload failed", ErrValidation)
	}

	video := &domain.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		VideoFile:    videoRef.URL,
		VideoFileKey: videoRef.Key,
		Thumbnail:    thumbRef.URL,
		ThumbnailKey: thumbRef.Key,
		Title:        title,
		Description:  description,
		Duration:     in.Duration,
		Views:        0,
		IsPublished:  true,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) Get(ctx context.Context, videoID, viewerID string) (*domain.VideoWithOwner, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrValidation)
	}

	video, err := s.videos.GetWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no video with id %s", ErrNotFound, videoID)
		}
		return nil, err
	}

	// View bookkeeping is best effort; a fetched video is returned even if
	// the counters fail to update.
	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		s.logger.Warnf("increment views for %s: %v", videoID, err)
	}
	if viewerID != "" {
		if err := s.users.AddToWatchHistory(ctx, viewerID, videoID); err != nil {
			s.logger.Warnf("record watch history for %s: %v", viewerID, err)
		}
	}

	return video, nil
}

func (s *videoService) Update(ctx context.Context, videoID, ownerID, title, description string, thumbnail *FileUpload) (*domain.Video, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	video, err := s.ownedVideo(ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	var newThumb storage.ObjectRef
	if thumbnail != nil {
		newThumb, err = s.media.upload(ctx, "thumbnails", *thumbnail)
		if err != nil {
			return nil, fmt.Errorf("%w: thumbnail upload failed", ErrValidation)
		}
	}

	if err := s.videos.UpdateDetails(ctx, videoID, title, description, newThumb.URL, newThumb.Key); err != nil {
		return nil, err
	}

	if thumbnail != nil {
		if err := s.media.remove(ctx, video.ThumbnailKey); err != nil {
			s.logger.Warnf("delete old thumbnail %s: %v", video.ThumbnailKey, err)
		}
	}

	return s.videos.GetByID(ctx, videoID)
}

func (s *videoService) Delete(ctx context.Context, videoID, ownerID string) error {
	video, err := s.ownedVideo(ctx, videoID, ownerID)
	if err != nil {
		return err
	}

	if err := s.media.remove(ctx, video.VideoFileKey); err != nil {
		return fmt.Errorf("delete video object: %w", err)
	}
	if err := s.media.remove(ctx, video.ThumbnailKey); err != nil {
		return fmt.Errorf("delete thumbnail object: %w", err)
	}

	if err := s.comments.DeleteByVideo(ctx, videoID); err != nil {
		s.logger.Warnf("delete comments for video %s: %v", videoID, err)
	}

	return s.videos.Delete(ctx, videoID)
}

func (s *videoService) TogglePublish(ctx context.Context, videoID, ownerID string) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.videos.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func (s *videoService) ownedVideo(ctx context.Context, videoID, ownerID string) (*domain.Video, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrValidation)
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the video owner", ErrUnauthorized)
	}
	return video, nil
}
