package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signatures, malformed payloads, unexpected
// signing methods and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims are the identity claims carried by a short-lived access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
}

// RefreshClaims carry only the subject; refresh tokens exist solely to mint
// new access tokens.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// NewAccessToken signs an HS256 access token for the given identity. Access
// and refresh tokens use distinct secrets so compromise of one class does
// not compromise the other.
func NewAccessToken(userID, email, username, fullName, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
		FullName: fullName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewRefreshToken signs an HS256 refresh token carrying only the user id.
// The jti makes every token unique even when two are minted within the same
// second, so rotation always produces a distinct value.
func NewRefreshToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns its claims, or ErrInvalidToken.
func ParseAccessToken(token, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseInto(token, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken verifies the signature and expiry of a refresh token and
// returns its claims, or ErrInvalidToken.
func ParseRefreshToken(token, secret string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parseInto(token, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseInto(token, secret string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
