package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpsocial/backend/internal/middleware"
	"github.com/chirpsocial/backend/internal/service"
)

// FollowHandler serves follow graph mutations and listings, plus the
// uncapped follow feed.
type FollowHandler struct {
	follows *service.FollowService
	feed    *service.FeedService
}

// NewFollowHandler creates a FollowHandler.
func NewFollowHandler(follows *service.FollowService, feed *service.FeedService) *FollowHandler {
	return &FollowHandler{follows: follows, feed: feed}
}

type followRequest struct {
	FollowingID uint `json:"following_id"`
}

// Create follows an account on behalf of the caller.
func (h *FollowHandler) Create(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	edge, err := h.follows.Follow(c.Request.Context(), claims.UserID, req.FollowingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, edge, "now following this user")
}

// Delete unfollows an account.
func (h *FollowHandler) Delete(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	edge, err := h.follows.Unfollow(c.Request.Context(), claims.UserID, req.FollowingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"follower_id": edge.FollowerID, "following_id": edge.FollowingID}, "unfollowed user")
}

// Feed returns every post by accounts the caller follows, uncapped.
func (h *FollowHandler) Feed(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}

	items, err := h.feed.FollowFeed(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, items, "")
}

// Following lists who the caller follows.
func (h *FollowHandler) Following(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}
	h.listFollowing(c, claims.UserID)
}

// Followers lists who follows the caller.
func (h *FollowHandler) Followers(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}
	h.listFollowers(c, claims.UserID)
}

// FollowingOf lists who another account follows. Follow lists are public.
func (h *FollowHandler) FollowingOf(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.listFollowing(c, id)
}

// FollowersOf lists another account's followers.
func (h *FollowHandler) FollowersOf(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.listFollowers(c, id)
}

func (h *FollowHandler) listFollowing(c *gin.Context, accountID uint) {
	accounts, err := h.follows.Following(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, accounts, "")
}

func (h *FollowHandler) listFollowers(c *gin.Context, accountID uint) {
	accounts, err := h.follows.Followers(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, accounts, "")
}
