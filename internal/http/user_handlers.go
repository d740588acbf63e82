package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

type loginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) register(c *gin.Context) {
	avatar, err := h.saveUpload(c, "avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "avatar upload failed")
		return
	}
	cover, err := h.saveUpload(c, "coverImage")
	if err != nil {
		respondError(c, http.StatusBadRequest, "cover image upload failed")
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:   c.PostForm("username"),
		FullName:   c.PostForm("fullname"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, userToResponse(user), "User registered successfully")
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	h.setAuthCookies(c, pair)
	respondOK(c, http.StatusOK, loginResponse{
		User:         userToResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *Handler) logout(c *gin.Context) {
	user := currentUser(c)

	if err := h.users.Logout(c.Request.Context(), user.ID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	h.clearAuthCookies(c)
	respondOK(c, http.StatusOK, nil, "User logged out successfully")
}

func (h *Handler) refreshToken(c *gin.Context) {
	// Cookie takes precedence; the body is the fallback for clients that do
	// not hold cookies.
	token, _ := c.Cookie(refreshTokenCookie)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	pair, err := h.users.RefreshSession(c.Request.Context(), token)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	h.setAuthCookies(c, pair)
	respondOK(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Session refreshed successfully")
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	if err := h.users.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Password changed successfully")
}

func (h *Handler) getCurrentUser(c *gin.Context) {
	user := currentUser(c)

	fresh, err := h.users.CurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, userToResponse(fresh), "Current user fetched successfully")
}

func (h *Handler) updateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateAccount(c.Request.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, userToResponse(updated), "Account updated successfully")
}

func (h *Handler) updateAvatar(c *gin.Context) {
	upload, err := h.saveUpload(c, "avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "avatar upload failed")
		return
	}
	if upload == nil {
		respondError(c, http.StatusBadRequest, "avatar is required")
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateAvatar(c.Request.Context(), user.ID, *upload)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, userToResponse(updated), "Avatar updated successfully")
}

func (h *Handler) updateCoverImage(c *gin.Context) {
	upload, err := h.saveUpload(c, "coverImage")
	if err != nil {
		respondError(c, http.StatusBadRequest, "cover image upload failed")
		return
	}
	if upload == nil {
		respondError(c, http.StatusBadRequest, "cover image is required")
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateCoverImage(c.Request.Context(), user.ID, *upload)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, userToResponse(updated), "Cover image updated successfully")
}

func (h *Handler) watchHistory(c *gin.Context) {
	user := currentUser(c)

	videos, err := h.users.WatchHistory(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = videoToResponse(&videos[i])
	}
	respondOK(c, http.StatusOK, resp, "Watch history fetched successfully")
}
