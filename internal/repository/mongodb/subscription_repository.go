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

type subscriptionDoc struct {
	ID         string    `bson:"_id"`
	Subscriber string    `bson:"subscriber"`
	Channel    string    `bson:"channel"`
	CreatedAt  time.Time `bson:"created_at"`
}

type SubscriptionRepository struct {
	subs *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &SubscriptionRepository{subs: db.Collection("subscriptions")}
}

func (r *SubscriptionRepository) Init(ctx context.Context) error {
	_, err := r.subs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subscriber", Value: 1},
			{Key: "channel", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("subscriptions compound index: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Get(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	filter := bson.D{
		{Key: "subscriber", Value: subscriberID},
		{Key: "channel", Value: channelID},
	}
	var doc subscriptionDoc
	if err := r.subs.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find subscription: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &domain.Subscription{
		ID:           doc.ID,
		SubscriberID: doc.Subscriber,
		ChannelID:    doc.Channel,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	sub.CreatedAt = time.Now().UTC()

	doc := subscriptionDoc{
		ID:         sub.ID,
		Subscriber: sub.SubscriberID,
		Channel:    sub.ChannelID,
		CreatedAt:  sub.CreatedAt,
	}
	if _, err := r.subs.InsertOne(ctx, doc); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("insert subscription: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) error {
	filter := bson.D{
		{Key: "subscriber", Value: subscriberID},
		{Key: "channel", Value: channelID},
	}
	res, err := r.subs.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete subscription: %w", repository.ErrNotFound)
	}
	return nil
}
