package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	FullName     string    `bson:"fullname"`
	Avatar       string    `bson:"avatar"`
	AvatarKey    string    `bson:"avatar_key"`
	CoverImage   string    `bson:"cover_image,omitempty"`
	CoverKey     string    `bson:"cover_key,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	RefreshToken string    `bson:"refresh_token,omitempty"`
	WatchHistory []string  `bson:"watch_history,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type UserRepository struct {
	users  *mongo.Collection
	videos *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &UserRepository{
		users:  db.Collection("users"),
		videos: db.Collection("videos"),
	}
}

func (r *UserRepository) Init(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users.username index: %w", err)
	}
	_, err = r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users.email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.users.InsertOne(ctx, userToDoc(user))
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id, token string) error {
	// An empty token clears the field entirely; otherwise the stored value
	// is replaced unconditionally (last write wins, no compare-and-swap).
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}
	if token == "" {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "refresh_token", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC()}}},
		}
	}
	return r.updateByID(ctx, id, update, "update refresh token")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "password_hash", Value: passwordHash},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}, "update password")
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id, fullName, email string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "fullname", Value: fullName},
			{Key: "email", Value: email},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}
	res, err := r.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update account: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update account: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, url, key string) error {
	return r.updateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "avatar", Value: url},
			{Key: "avatar_key", Value: key},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}, "update avatar")
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id, url, key string) error {
	return r.updateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "cover_image", Value: url},
			{Key: "cover_key", Value: key},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}, "update cover image")
}

func (r *UserRepository) AddToWatchHistory(ctx context.Context, id, videoID string) error {
	// $addToSet keeps the history free of duplicates on repeated views.
	return r.updateByID(ctx, id, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "watch_history", Value: videoID}}},
	}, "add to watch history")
}

func (r *UserRepository) WatchHistory(ctx context.Context, id string) ([]domain.Video, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "watch_history"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "watched"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "watched", Value: 1}}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("watch history aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Watched []videoDoc `bson:"watched"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("watch history decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("watch history: %w", repository.ErrNotFound)
	}

	videos := make([]domain.Video, len(rows[0].Watched))
	for i := range rows[0].Watched {
		videos[i] = *videoFromDoc(&rows[0].Watched[i])
	}
	return videos, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(&doc), nil
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.D, op string) error {
	res, err := r.users.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func userToDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		AvatarKey:    u.AvatarKey,
		CoverImage:   u.CoverImage,
		CoverKey:     u.CoverKey,
		PasswordHash: u.PasswordHash,
		RefreshToken: u.RefreshToken,
		WatchHistory: u.WatchHistory,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromDoc(d *userDoc) *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		Avatar:       d.Avatar,
		AvatarKey:    d.AvatarKey,
		CoverImage:   d.CoverImage,
		CoverKey:     d.CoverKey,
		PasswordHash: d.PasswordHash,
		RefreshToken: d.RefreshToken,
		WatchHistory: d.WatchHistory,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
