package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/domain"
	"vidtube/internal/service"
)

// CookieConfig controls the auth cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users         service.UserService
	videos        service.VideoService
	tweets        service.TweetService
	comments      service.CommentService
	subscriptions service.SubscriptionService
	logger        *logrus.Logger
	cookies       CookieConfig
	tempDir       string
	corsOrigin    string
}

type HandlerConfig struct {
	Users         service.UserService
	Videos        service.VideoService
	Tweets        service.TweetService
	Comments      service.CommentService
	Subscriptions service.SubscriptionService
	Logger        *logrus.Logger
	Cookies       CookieConfig
	TempDir       string
	CORSOrigin    string
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		users:         cfg.Users,
		videos:        cfg.Videos,
		tweets:        cfg.Tweets,
		comments:      cfg.Comments,
		subscriptions: cfg.Subscriptions,
		logger:        cfg.Logger,
		cookies:       cfg.Cookies,
		tempDir:       cfg.TempDir,
		corsOrigin:    cfg.CORSOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigin))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			respondOK(c, http.StatusOK, gin.H{"ok": "ok"}, "healthy")
		})

		users := api.Group("/users")
		{
			users.POST("/register", h.register)
			users.POST("/login", h.login)
			users.POST("/refresh-token", h.refreshToken)

			secured := users.Group("", h.requireAuth())
			secured.POST("/logout", h.logout)
			secured.POST("/change-password", h.changePassword)
			secured.GET("/get-current-user", h.getCurrentUser)
			secured.POST("/get-current-user", h.getCurrentUser)
			secured.POST("/update-account", h.updateAccount)
			secured.POST("/update-avatar", h.updateAvatar)
			secured.POST("/update-cover-image", h.updateCoverImage)
			secured.GET("/watch-history", h.watchHistory)
		}

		videos := api.Group("/videos", h.requireAuth())
		{
			videos.POST("/upload", h.publishVideo)
			videos.GET("/:videoId", h.getVideo)
			videos.PATCH("/:videoId", h.updateVideo)
			videos.DELETE("/:videoId", h.deleteVideo)
			videos.POST("/toggleStatus/:videoId", h.togglePublishStatus)
		}

		tweets := api.Group("/tweets", h.requireAuth())
		{
			tweets.POST("", h.createTweet)
			tweets.GET("/user", h.listUserTweets)
			tweets.PATCH("/:tweetId", h.updateTweet)
			tweets.DELETE("/:tweetId", h.deleteTweet)
		}

		comments := api.Group("/comments", h.requireAuth())
		{
			comments.POST("/:videoId", h.addComment)
			comments.GET("/:videoId", h.listComments)
			comments.PATCH("/c/:commentId", h.updateComment)
			comments.DELETE("/c/:commentId", h.deleteComment)
		}

		subscriptions := api.Group("/subscriptions", h.requireAuth())
		{
			subscriptions.POST("/toggle/:channelId", h.toggleSubscription)
		}
	}
}

// saveUpload writes a multipart file to scratch space for the service layer.
// A missing optional field returns nil without error.
func (h *Handler) saveUpload(c *gin.Context, field string) (*service.FileUpload, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	localPath := filepath.Join(h.tempDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		return nil, fmt.Errorf("save upload %s: %w", field, err)
	}
	return &service.FileUpload{LocalPath: localPath, Filename: file.Filename}, nil
}

func (h *Handler) setAuthCookies(c *gin.Context, pair service.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, pair.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
}

// UserResponse is the sanitized user view. Fields are copied one by one from
// the domain type; password and refresh-token data have no place to leak
// through.
type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullname"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type VideoResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	VideoFile   string  `json:"videoFile"`
	Thumbnail   string  `json:"thumbnail"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
	IsPublished bool    `json:"isPublished"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type VideoOwnerResponse struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

type VideoWithOwnerResponse struct {
	VideoResponse
	Owner VideoOwnerResponse `json:"owner"`
}

type TweetResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"videoId"`
	OwnerID   string `json:"ownerId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type SubscriptionResponse struct {
	ID           string `json:"id"`
	SubscriberID string `json:"subscriberId"`
	ChannelID    string `json:"channelId"`
	Subscribed   bool   `json:"subscribed"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
}

func videoToResponse(video *domain.Video) VideoResponse {
	return VideoResponse{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views,
		IsPublished: video.IsPublished,
		CreatedAt:   video.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   video.UpdatedAt.Format(time.RFC3339),
	}
}

func tweetToResponse(tweet *domain.Tweet) TweetResponse {
	return TweetResponse{
		ID:        tweet.ID,
		OwnerID:   tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tweet.UpdatedAt.Format(time.RFC3339),
	}
}

func commentToResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		OwnerID:   comment.OwnerID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}
