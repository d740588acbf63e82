package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

// CommentService owns comments attached to videos.
type CommentService interface {
	Add(ctx context.Context, videoID, ownerID, content string) (*domain.Comment, error)
	ListForVideo(ctx context.Context, videoID string) ([]domain.Comment, error)
	Update(ctx context.Context, commentID, ownerID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, ownerID string) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{comments: comments, videos: videos}
}

func (s *commentService) Add(ctx context.Context, videoID, ownerID, content string) (*domain.Comment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrValidation)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.NewString(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListForVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrValidation)
	}
	return s.comments.ListByVideo(ctx, videoID)
}

func (s *commentService) Update(ctx context.Context, commentID, ownerID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	}

	comment, err := s.ownedComment(ctx, commentID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, ownerID string) error {
	if _, err := s.ownedComment(ctx, commentID, ownerID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *commentService) ownedComment(ctx context.Context, commentID, ownerID string) (*domain.Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("%w: comment id is required", ErrValidation)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: comment does not exist", ErrNotFound)
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the comment owner", ErrUnauthorized)
	}
	return comment, nil
}
