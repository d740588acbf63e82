package domain

import "time"

// User represents a registered account. PasswordHash and RefreshToken are
// persistence-only fields and must never reach a client; the HTTP layer emits
// explicit response structs instead of this type.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Avatar       string
	AvatarKey    string
	CoverImage   string
	CoverKey     string
	PasswordHash string
	RefreshToken string
	WatchHistory []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
