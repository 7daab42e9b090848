package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		status := "ok"
		if err := check.Probe(ctx); err != nil {
			status = "error"
			h.log.Error().Err(err).Str("check", check.Name).Msg("health check failed")
		}
		checks[check.Name] = status
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "FitX Backend is running!",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Environment,
		"checks":      checks,
	})
}
