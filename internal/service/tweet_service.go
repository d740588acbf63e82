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

// TweetService owns short text posts. Only the owner may edit or delete a
// tweet.
type TweetService interface {
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error)
	Update(ctx context.Context, tweetID, ownerID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, tweetID, ownerID string) error
}

type tweetService struct {
	tweets repository.TweetRepository
}

func NewTweetService(tweets repository.TweetRepository) TweetService {
	return &tweetService{tweets: tweets}
}

func (s *tweetService) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: tweet cannot be empty", ErrValidation)
	}

	tweet := &domain.Tweet{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *tweetService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	return s.tweets.ListByOwner(ctx, ownerID)
}

func (s *tweetService) Update(ctx context.Context, tweetID, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: tweet cannot be empty", ErrValidation)
	}

	tweet, err := s.ownedTweet(ctx, tweetID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.tweets.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, err
	}
	tweet.Content = content
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, tweetID, ownerID string) error {
	if _, err := s.ownedTweet(ctx, tweetID, ownerID); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweetID)
}

func (s *tweetService) ownedTweet(ctx context.Context, tweetID, ownerID string) (*domain.Tweet, error) {
	if tweetID == "" {
		return nil, fmt.Errorf("%w: tweet id is required", ErrValidation)
	}

	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tweet does not exist", ErrNotFound)
		}
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the tweet owner", ErrUnauthorized)
	}
	return tweet, nil
}
