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

type commentDoc struct {
	ID        string    `bson:"_id"`
	Video     string    `bson:"video"`
	Owner     string    `bson:"owner"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type CommentRepository struct {
	comments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &CommentRepository{comments: db.Collection("comments")}
}

func (r *CommentRepository) Init(ctx context.Context) error {
	_, err := r.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "video", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("comments.video index: %w", err)
	}
	return nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	doc := commentDoc{
		ID:        comment.ID,
		Video:     comment.VideoID,
		Owner:     comment.OwnerID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if _, err := r.comments.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var doc commentDoc
	if err := r.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find comment: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return commentFromDoc(&doc), nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.comments.Find(ctx, bson.D{{Key: "video", Value: videoID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []commentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]domain.Comment, len(docs))
	for i := range docs {
		comments[i] = *commentFromDoc(&docs[i])
	}
	return comments, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	res, err := r.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update comment: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete comment: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	if _, err := r.comments.DeleteMany(ctx, bson.D{{Key: "video", Value: videoID}}); err != nil {
		return fmt.Errorf("delete comments for video: %w", err)
	}
	return nil
}

func commentFromDoc(d *commentDoc) *domain.Comment {
	return &domain.Comment{
		ID:        d.ID,
		VideoID:   d.Video,
		OwnerID:   d.Owner,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
