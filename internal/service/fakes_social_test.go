package service

import (
	"context"
	"fmt"
	"sync"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*domain.Video
	owners map[string]domain.VideoOwner
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[string]*domain.Video),
		owners: make(map[string]domain.VideoOwner),
	}
}

func (f *fakeVideoRepo) Init(ctx context.Context) error { return nil }

func (f *fakeVideoRepo) Create(ctx context.Context, video *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *video
	f.videos[video.ID] = &clone
	return nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video: %w", repository.ErrNotFound)
	}
	clone := *v
	return &clone, nil
}

func (f *fakeVideoRepo) GetWithOwner(ctx context.Context, id string) (*domain.VideoWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video: %w", repository.ErrNotFound)
	}
	owner, ok := f.owners[v.OwnerID]
	if !ok {
		return nil, fmt.Errorf("get video owner: %w", repository.ErrNotFound)
	}
	return &domain.VideoWithOwner{Video: *v, Owner: owner}, nil
}

func (f *fakeVideoRepo) UpdateDetails(ctx context.Context, id, title, description, thumbnail, thumbnailKey string) error {
	return f.update(id, func(v *domain.Video) {
		v.Title = title
		v.Description = description
		if thumbnail != "" {
			v.Thumbnail = thumbnail
			v.ThumbnailKey = thumbnailKey
		}
	})
}

func (f *fakeVideoRepo) SetPublished(ctx context.Context, id string, published bool) error {
	return f.update(id, func(v *domain.Video) { v.IsPublished = published })
}

func (f *fakeVideoRepo) IncrementViews(ctx context.Context, id string) error {
	return f.update(id, func(v *domain.Video) { v.Views++ })
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[id]; !ok {
		return fmt.Errorf("delete video: %w", repository.ErrNotFound)
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) update(id string, fn func(*domain.Video)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return fmt.Errorf("update video: %w", repository.ErrNotFound)
	}
	fn(v)
	return nil
}

type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets map[string]*domain.Tweet
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[string]*domain.Tweet)}
}

func (f *fakeTweetRepo) Init(ctx context.Context) error { return nil }

func (f *fakeTweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *tweet
	f.tweets[tweet.ID] = &clone
	return nil
}

func (f *fakeTweetRepo) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tw, ok := f.tweets[id]
	if !ok {
		return nil, fmt.Errorf("get tweet: %w", repository.ErrNotFound)
	}
	clone := *tw
	return &clone, nil
}

func (f *fakeTweetRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Tweet{}
	for _, tw := range f.tweets {
		if tw.OwnerID == ownerID {
			out = append(out, *tw)
		}
	}
	return out, nil
}

func (f *fakeTweetRepo) UpdateContent(ctx context.Context, id, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tw, ok := f.tweets[id]
	if !ok {
		return fmt.Errorf("update tweet: %w", repository.ErrNotFound)
	}
	tw.Content = content
	return nil
}

func (f *fakeTweetRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tweets[id]; !ok {
		return fmt.Errorf("delete tweet: %w", repository.ErrNotFound)
	}
	delete(f.tweets, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (f *fakeCommentRepo) Init(ctx context.Context) error { return nil }

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, fmt.Errorf("get comment: %w", repository.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCommentRepo) ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Comment{}
	for _, c := range f.comments {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) UpdateContent(ctx context.Context, id, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return fmt.Errorf("update comment: %w", repository.ErrNotFound)
	}
	c.Content = content
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return fmt.Errorf("delete comment: %w", repository.ErrNotFound)
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByVideo(ctx context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.comments {
		if c.VideoID == videoID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*domain.Subscription // keyed subscriber|channel
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*domain.Subscription)}
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + "|" + channelID
}

func (f *fakeSubscriptionRepo) Init(ctx context.Context) error { return nil }

func (f *fakeSubscriptionRepo) Get(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[subKey(subscriberID, channelID)]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", repository.ErrNotFound)
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := subKey(sub.SubscriberID, sub.ChannelID)
	if _, ok := f.subs[key]; ok {
		return fmt.Errorf("create subscription: %w", repository.ErrDuplicate)
	}
	clone := *sub
	f.subs[key] = &clone
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, subscriberID, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := subKey(subscriberID, channelID)
	if _, ok := f.subs[key]; !ok {
		return fmt.Errorf("delete subscription: %w", repository.ErrNotFound)
	}
	delete(f.subs, key)
	return nil
}
