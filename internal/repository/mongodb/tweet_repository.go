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

type tweetDoc struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type TweetRepository struct {
	tweets *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) repository.TweetRepository {
	return &TweetRepository{tweets: db.Collection("tweets")}
}

func (r *TweetRepository) Init(ctx context.Context) error {
	_, err := r.tweets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("tweets.owner index: %w", err)
	}
	return nil
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	now := time.Now().UTC()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	doc := tweetDoc{
		ID:        tweet.ID,
		Owner:     tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
	if _, err := r.tweets.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var doc tweetDoc
	if err := r.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find tweet: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find tweet: %w", err)
	}
	return tweetFromDoc(&doc), nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.tweets.Find(ctx, bson.D{{Key: "owner", Value: ownerID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tweetDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}

	tweets := make([]domain.Tweet, len(docs))
	for i := range docs {
		tweets[i] = *tweetFromDoc(&docs[i])
	}
	return tweets, nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id, content string) error {
	res, err := r.tweets.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update tweet: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete tweet: %w", repository.ErrNotFound)
	}
	return nil
}

func tweetFromDoc(d *tweetDoc) *domain.Tweet {
	return &domain.Tweet{
		ID:        d.ID,
		OwnerID:   d.Owner,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
