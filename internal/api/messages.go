package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpsocial/backend/internal/middleware"
	"github.com/chirpsocial/backend/internal/service"
)

// MessageHandler serves post creation, likes, and the read-only feeds.
type MessageHandler struct {
	posts *service.PostService
	feed  *service.FeedService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(posts *service.PostService, feed *service.FeedService) *MessageHandler {
	return &MessageHandler{posts: posts, feed: feed}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// Create publishes a post authored by the caller.
func (h *MessageHandler) Create(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), claims.UserID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, post, "message created")
}

// All returns the global feed, uncapped.
func (h *MessageHandler) All(c *gin.Context) {
	items, err := h.feed.Global(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items, "")
}

// Latest returns the newest posts, capped.
func (h *MessageHandler) Latest(c *gin.Context) {
	items, err := h.feed.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items, "")
}

// Feed returns the caller's personal feed, capped.
func (h *MessageHandler) Feed(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}

	items, err := h.feed.Personal(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items, "")
}

// ByUser returns one author's timeline.
func (h *MessageHandler) ByUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	items, err := h.feed.Timeline(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items, "")
}

// Search returns posts matching a term.
func (h *MessageHandler) Search(c *gin.Context) {
	items, err := h.feed.Search(c.Request.Context(), c.Param("term"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items, "")
}

// Likes lists accounts that liked a post.
func (h *MessageHandler) Likes(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	accounts, err := h.posts.Likes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, accounts, "")
}

// Like records the caller's like on a post.
func (h *MessageHandler) Like(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	like, err := h.posts.Like(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user_id": like.UserID, "post_id": like.PostID}, "like added")
}

// Unlike removes the caller's like from a post.
func (h *MessageHandler) Unlike(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	like, err := h.posts.Unlike(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user_id": like.UserID, "post_id": like.PostID}, "like removed")
}
