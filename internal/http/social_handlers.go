package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type contentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) createTweet(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	tweet, err := h.tweets.Create(c.Request.Context(), user.ID, req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, tweetToResponse(tweet), "Tweet added successfully")
}

func (h *Handler) listUserTweets(c *gin.Context) {
	user := currentUser(c)

	tweets, err := h.tweets.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := make([]TweetResponse, len(tweets))
	for i := range tweets {
		resp[i] = tweetToResponse(&tweets[i])
	}
	respondOK(c, http.StatusOK, resp, "Fetched user tweets successfully")
}

func (h *Handler) updateTweet(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	tweet, err := h.tweets.Update(c.Request.Context(), c.Param("tweetId"), user.ID, req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, tweetToResponse(tweet), "Tweet updated successfully")
}

func (h *Handler) deleteTweet(c *gin.Context) {
	user := currentUser(c)

	if err := h.tweets.Delete(c.Request.Context(), c.Param("tweetId"), user.ID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Tweet deleted successfully")
}

func (h *Handler) addComment(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	comment, err := h.comments.Add(c.Request.Context(), c.Param("videoId"), user.ID, req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, commentToResponse(comment), "Comment added successfully")
}

func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.comments.ListForVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := make([]CommentResponse, len(comments))
	for i := range comments {
		resp[i] = commentToResponse(&comments[i])
	}
	respondOK(c, http.StatusOK, resp, "Fetched comments successfully")
}

func (h *Handler) updateComment(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(c)
	comment, err := h.comments.Update(c.Request.Context(), c.Param("commentId"), user.ID, req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, commentToResponse(comment), "Comment updated successfully")
}

func (h *Handler) deleteComment(c *gin.Context) {
	user := currentUser(c)

	if err := h.comments.Delete(c.Request.Context(), c.Param("commentId"), user.ID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Comment deleted successfully")
}

func (h *Handler) toggleSubscription(c *gin.Context) {
	user := currentUser(c)

	subscribed, sub, err := h.subscriptions.Toggle(c.Request.Context(), user.ID, c.Param("channelId"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	resp := SubscriptionResponse{
		ID:           sub.ID,
		SubscriberID: sub.SubscriberID,
		ChannelID:    sub.ChannelID,
		Subscribed:   subscribed,
	}
	message := "Subscription added successfully"
	if !subscribed {
		message = "Subscription canceled successfully"
	}
	respondOK(c, http.StatusOK, resp, message)
}
