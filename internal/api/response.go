// Package api contains the HTTP handlers. Handlers resolve the principal
// produced by the auth middleware, call exactly one domain operation, and
// translate its outcome into the response envelope. They hold no business
// logic of their own.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chirpsocial/backend/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// respondError maps a classified domain error onto its HTTP status.
// Unclassified errors become a generic 500; the underlying cause is
// attached to the gin context for the request logger and never leaks to
// the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenMissing),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired):
		respondMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondMessage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondMessage(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
