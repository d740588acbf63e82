package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vidtube/internal/service"
)

func (h *Handler) publishVideo(c *gin.Context) {
	videoFile, err := h.saveUpload(c, "video")
	if err != nil {
		respondError(c, http.StatusBadRequest, "video upload failed")
		return
	}
	thumbnail, err := h.saveUpload(c, "thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "thumbnail upload failed")
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	user := currentUser(c)
	video, err := h.videos.Publish(c.Request.Context(), user.ID, service.PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
		Video:       videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, videoToResponse(video), "Video published successfully")
}

func (h *Handler) getVideo(c *gin.Context) {
	user := currentUser(c)

	video, err := h.videos.Get(c.Request.Context(), c.Param("videoId"), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := VideoWithOwnerResponse{
		VideoResponse: videoToResponse(&video.Video),
		Owner: VideoOwnerResponse{
			Username: video.Owner.Username,
			FullName: video.Owner.FullName,
			Email:    video.Owner.Email,
		},
	}
	respondOK(c, http.StatusOK, resp, "Fetched video successfully")
}

func (h *Handler) updateVideo(c *gin.Context) {
	thumbnail, err := h.saveUpload(c, "thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "thumbnail upload failed")
		return
	}

	user := currentUser(c)
	video, err := h.videos.Update(
		c.Request.Context(),
		c.Param("videoId"),
		user.ID,
		c.PostForm("title"),
		c.PostForm("description"),
		thumbnail,
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, videoToResponse(video), "Video updated successfully")
}

func (h *Handler) deleteVideo(c *gin.Context) {
	user := currentUser(c)

	if err := h.videos.Delete(c.Request.Context(), c.Param("videoId"), user.ID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Video deleted successfully")
}

func (h *Handler) togglePublishStatus(c *gin.Context) {
	user := currentUser(c)

	video, err := h.videos.TogglePublish(c.Request.Context(), c.Param("videoId"), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, videoToResponse(video), "Publish status toggled successfully")
}
