package service

import (
	"context"
	"fmt"
	"sync"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("find user: %w", repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) UpdateRefreshToken(ctx context.Context, id, token string) error {
	return f.update(id, func(u *domain.User) { u.RefreshToken = token })
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return f.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (f *fakeUserRepo) UpdateAccount(ctx context.Context, id, fullName, email string) error {
	f.mu.Lock()
	for uid, u := range f.users {
		if uid != id && u.Email == email {
			f.mu.Unlock()
			return fmt.Errorf("update account: %w", repository.ErrDuplicate)
		}
	}
	f.mu.Unlock()
	return f.update(id, func(u *domain.User) {
		u.FullName = fullName
		u.Email = email
	})
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id, url, key string) error {
	return f.update(id, func(u *domain.User) {
		u.Avatar = url
		u.AvatarKey = key
	})
}

func (f *fakeUserRepo) UpdateCoverImage(ctx context.Context, id, url, key string) error {
	return f.update(id, func(u *domain.User) {
		u.CoverImage = url
		u.CoverKey = key
	})
}

func (f *fakeUserRepo) AddToWatchHistory(ctx context.Context, id, videoID string) error {
	return f.update(id, func(u *domain.User) {
		for _, v := range u.WatchHistory {
			if v == videoID {
				return
			}
		}
		u.WatchHistory = append(u.WatchHistory, videoID)
	})
}

func (f *fakeUserRepo) WatchHistory(ctx context.Context, id string) ([]domain.Video, error) {
	if _, err := f.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeUserRepo) update(id string, fn func(*domain.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update user: %w", repository.ErrNotFound)
	}
	fn(u)
	return nil
}

// stored returns the raw (unsanitized) user record.
func (f *fakeUserRepo) stored(id string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

// fakeMediaStore records uploads and deletes without touching any backend.
type fakeMediaStore struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (f *fakeMediaStore) UploadFile(ctx context.Context, localPath string, opts storage.UploadOptions) (storage.ObjectRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, opts.Key)
	return storage.ObjectRef{URL: "https://media.test/" + opts.Key, Key: opts.Key}, nil
}

func (f *fakeMediaStore) DeleteObject(ctx context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}
