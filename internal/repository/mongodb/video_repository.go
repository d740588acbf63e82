package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type videoDoc struct {
	ID           string    `bson:"_id"`
	Owner        string    `bson:"owner"`
	VideoFile    string    `bson:"video_file"`
	VideoFileKey string    `bson:"video_file_key"`
	Thumbnail    string    `bson:"thumbnail"`
	ThumbnailKey string    `bson:"thumbnail_key"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Duration     float64   `bson:"duration"`
	Views        int64     `bson:"views"`
	IsPublished  bool      `bson:"is_published"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type VideoRepository struct {
	videos *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &VideoRepository{videos: db.Collection("videos")}
}

func (r *VideoRepository) Init(ctx context.Context) error {
	_, err := r.videos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("videos.owner index: %w", err)
	}
	return nil
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := r.videos.InsertOne(ctx, videoToDoc(video)); err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var doc videoDoc
	if err := r.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find video: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return videoFromDoc(&doc), nil
}

func (r *VideoRepository) GetWithOwner(ctx context.Context, id string) (*domain.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video_owner"},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "username", Value: 1},
					{Key: "fullname", Value: 1},
					{Key: "email", Value: 1},
				}}},
			}},
		}}},
	}

	cursor, err := r.videos.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("video owner aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		videoDoc `bson:",inline"`
		Owners   []struct {
			Username string `bson:"username"`
			FullName string `bson:"fullname"`
			Email    string `bson:"email"`
		} `bson:"video_owner"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("video owner decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("find video: %w", repository.ErrNotFound)
	}

	out := &domain.VideoWithOwner{Video: *videoFromDoc(&rows[0].videoDoc)}
	if len(rows[0].Owners) > 0 {
		out.Owner = domain.VideoOwner{
			Username: rows[0].Owners[0].Username,
			FullName: rows[0].Owners[0].FullName,
			Email:    rows[0].Owners[0].Email,
		}
	}
	return out, nil
}

func (r *VideoRepository) UpdateDetails(ctx context.Context, id, title, description, thumbnail, thumbnailKey string) error {
	set := bson.D{
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	if thumbnail != "" {
		set = append(set,
			bson.E{Key: "thumbnail", Value: thumbnail},
			bson.E{Key: "thumbnail_key", Value: thumbnailKey},
		)
	}
	return r.updateByID(ctx, id, bson.D{{Key: "$set", Value: set}}, "update video")
}

func (r *VideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return r.updateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "is_published", Value: published},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
	}, "set published")
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "views", Value: int64(1)}}},
	}, "increment views")
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete video: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *VideoRepository) updateByID(ctx context.Context, id string, update bson.D, op string) error {
	res, err := r.videos.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func videoToDoc(v *domain.Video) videoDoc {
	return videoDoc{
		ID:           v.ID,
		Owner:        v.OwnerID,
		VideoFile:    v.VideoFile,
		VideoFileKey: v.VideoFileKey,
		Thumbnail:    v.Thumbnail,
		ThumbnailKey: v.ThumbnailKey,
		Title:        v.Title,
		Description:  v.Description,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func videoFromDoc(d *videoDoc) *domain.Video {
	return &domain.Video{
		ID:           d.ID,
		OwnerID:      d.Owner,
		VideoFile:    d.VideoFile,
		VideoFileKey: d.VideoFileKey,
		Thumbnail:    d.Thumbnail,
		ThumbnailKey: d.ThumbnailKey,
		Title:        d.Title,
		Description:  d.Description,
		Duration:     d.Duration,
		Views:        d.Views,
		IsPublished:  d.IsPublished,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
