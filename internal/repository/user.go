package repository

import (
	"context"

	"vidtube/internal/domain"
)

// UserRepository defines persistence operations for User entities. The
// refresh token is a single nullable field on the user document; updates to
// it are unconditional single-field writes (last write wins).
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAccount(ctx context.Context, id, fullName, email string) error
	UpdateAvatar(ctx context.Context, id, url, key string) error
	UpdateCoverImage(ctx context.Context, id, url, key string) error
	AddToWatchHistory(ctx context.Context, id, videoID string) error
	WatchHistory(ctx context.Context, id string) ([]domain.Video, error)
}
