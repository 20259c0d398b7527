package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpsocial/backend/internal/middleware"
	"github.com/chirpsocial/backend/internal/service"
)

// UserHandler serves account lifecycle and login endpoints.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account together with its profile.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, user, "user and profile created")
}

// Login verifies credentials and mints an identity token.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.IssueToken(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"token": token}, "login successful")
}

// Get returns an account with its profile fields.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	account, err := h.users.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, account, "")
}

// Delete removes the caller's own account and everything that hangs off it.
func (h *UserHandler) Delete(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		respondError(c, service.ErrTokenMissing)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.DeleteAccount(c.Request.Context(), id, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"id": user.ID, "email": user.Email}, "user deleted")
}
