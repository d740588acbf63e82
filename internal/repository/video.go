package repository

import (
	"context"

	"vidtube/internal/domain"
)

// VideoRepository defines persistence operations for Video entities.
type VideoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	GetWithOwner(ctx context.Context, id string) (*domain.VideoWithOwner, error)
	UpdateDetails(ctx context.Context, id, title, description, thumbnail, thumbnailKey string) error
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TweetRepository defines persistence operations for Tweet entities.
type TweetRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id string) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence operations for Comment entities.
type CommentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	DeleteByVideo(ctx context.Context, videoID string) error
}

// SubscriptionRepository defines persistence operations for Subscription
// entities. (subscriber, channel) pairs are unique.
type SubscriptionRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, subscriberID, channelID string) error
}
