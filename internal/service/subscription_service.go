package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

// SubscriptionService owns the subscriber/channel relation. Toggle flips the
// subscription state for the (subscriber, channel) pair.
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (subscribed bool, sub *domain.Subscription, err error)
}

type subscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{subs: subs, users: users}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, *domain.Subscription, error) {
	if channelID == "" {
		return false, nil, fmt.Errorf("%w: channel id is required", ErrValidation)
	}
	if channelID == subscriberID {
		return false, nil, fmt.Errorf("%w: cannot subscribe to yourself", ErrValidation)
	}

	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil, fmt.Errorf("%w: channel does not exist", ErrNotFound)
		}
		return false, nil, err
	}

	existing, err := s.subs.Get(ctx, subscriberID, channelID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, nil, err
	}

	if existing != nil {
		if err := s.subs.Delete(ctx, subscriberID, channelID); err != nil {
			return false, nil, err
		}
		return false, existing, nil
	}

	sub := &domain.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		// A concurrent toggle can insert first; treat the duplicate as
		// already subscribed.
		if errors.Is(err, repository.ErrDuplicate) {
			return true, sub, nil
		}
		return false, nil, err
	}
	return true, sub, nil
}
