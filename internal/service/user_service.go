package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/auth"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// AuthConfig carries the token secrets and validity windows. It is built
// once at startup and passed explicitly; nothing reads ambient environment
// at call time.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair is a freshly issued (access, refresh) token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput collects the registration fields and media uploads.
type RegisterInput struct {
	Username   string
	FullName   string
	Email      string
	Password   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// UserService owns the account and session lifecycle: registration, login,
// logout, token refresh, password change and profile updates. Exactly one
// refresh token is valid per user at a time; each successful refresh rotates
// it and logout clears it.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error)
	Logout(ctx context.Context, userID string) error
	RefreshSession(ctx context.Context, presented string) (TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	ResolveAccessToken(ctx context.Context, token string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, avatar FileUpload) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID string, cover FileUpload) (*domain.User, error)
	WatchHistory(ctx context.Context, userID string) ([]domain.Video, error)
}

type userService struct {
	users  repository.UserRepository
	media  mediaStore
	cfg    AuthConfig
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, media storage.Service, bucket, keyPrefix string, cfg AuthConfig, logger *logrus.Logger) UserService {
	return &userService{
		users:  users,
		media:  mediaStore{store: media, bucket: bucket, keyPrefix: keyPrefix},
		cfg:    cfg,
		logger: logger,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	password := strings.TrimSpace(in.Password)

	if username == "" || email == "" || fullName == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if in.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar is required", ErrValidation)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatar, err := s.media.upload(ctx, "avatars", *in.Avatar)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar upload failed", ErrValidation)
	}

	var cover storage.ObjectRef
	if in.CoverImage != nil {
		cover, err = s.media.upload(ctx, "covers", *in.CoverImage)
		if err != nil {
			return nil, fmt.Errorf("%w: cover image upload failed", ErrValidation)
		}
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatar.URL,
		AvatarKey:    avatar.Key,
		CoverImage:   cover.URL,
		CoverKey:     cover.Key,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with email or username already exists", ErrConflict)
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: password is required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, TokenPair{}, err
	}

	return sanitizeUser(user), pair, nil
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	// Clearing an already empty token is a no-op, which makes logout
	// idempotent.
	return s.users.UpdateRefreshToken(ctx, userID, "")
}

func (s *userService) RefreshSession(ctx context.Context, presented string) (TokenPair, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return TokenPair{}, fmt.Errorf("%w: refresh token is required", ErrUnauthorized)
	}

	claims, err := auth.ParseRefreshToken(presented, s.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	// A token that verifies but no longer matches the stored value has been
	// rotated or revoked; rejecting it makes every refresh token one-shot.
	if user.RefreshToken != presented {
		return TokenPair{}, fmt.Errorf("%w: refresh token is expired or used", ErrUnauthorized)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return TokenPair{}, err
	}

	return pair, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	oldPassword = strings.TrimSpace(oldPassword)
	newPassword = strings.TrimSpace(newPassword)
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password is incorrect", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// The active refresh token is intentionally left valid; a password
	// change does not end the current session.
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ResolveAccessToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := auth.ParseAccessToken(token, s.cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}

	// A deleted account can still hold a syntactically valid token; the
	// subject must resolve to a live user.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: fullname and email are required", ErrValidation)
	}

	if err := s.users.UpdateAccount(ctx, userID, fullName, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}

	return s.CurrentUser(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, avatar FileUpload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, avatar, "avatars")
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID string, cover FileUpload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, cover, "covers")
}

func (s *userService) replaceImage(ctx context.Context, userID string, file FileUpload, kind string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}

	ref, err := s.media.upload(ctx, kind, file)
	if err != nil {
		return nil, fmt.Errorf("%w: image upload failed", ErrValidation)
	}

	oldKey := user.AvatarKey
	if kind == "avatars" {
		err = s.users.UpdateAvatar(ctx, userID, ref.URL, ref.Key)
	} else {
		oldKey = user.CoverKey
		err = s.users.UpdateCoverImage(ctx, userID, ref.URL, ref.Key)
	}
	if err != nil {
		return nil, err
	}

	if err := s.media.remove(ctx, oldKey); err != nil {
		s.logger.Warnf("delete old %s object %s: %v", kind, oldKey, err)
	}

	return s.CurrentUser(ctx, userID)
}

func (s *userService) WatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	videos, err := s.users.WatchHistory(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}
	return videos, nil
}

func (s *userService) issueTokens(user *domain.User) (TokenPair, error) {
	access, err := auth.NewAccessToken(user.ID, user.Email, user.Username, user.FullName, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := auth.NewRefreshToken(user.ID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		AvatarKey:  user.AvatarKey,
		CoverImage: user.CoverImage,
		CoverKey:   user.CoverKey,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
