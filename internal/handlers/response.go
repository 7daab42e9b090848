package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/service"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// NotFound answers requests that match no route.
func NotFound(c *gin.Context) {
	respondFailure(c, http.StatusNotFound, fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
}

func respondValidation(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondError maps service and store failures onto the envelope. Anything
// unrecognised is a 500; the cause is echoed only outside production.
func (h HandlerSet) respondError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		if verr.Field == "" {
			respondFailure(c, http.StatusBadRequest, verr.Message)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": verr.Message,
			"errors":  []fieldError{{Field: verr.Field, Message: verr.Message}},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondFailure(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrSelfDeletion):
		respondFailure(c, http.StatusForbidden, "You cannot delete your own account")
	case errors.Is(err, service.ErrUserNotFound):
		respondFailure(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrExerciseNotFound):
		respondFailure(c, http.StatusNotFound, "Exercise not found")
	case errors.Is(err, service.ErrMediaNotFound):
		respondFailure(c, http.StatusNotFound, "Exercise has no stored media")
	case errors.Is(err, service.ErrConflict):
		respondFailure(c, http.StatusConflict, "User with this email or username already exists")
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)

		body := gin.H{
			"success": false,
			"message": fallback,
		}
		if !h.cfg.IsProduction() {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
