package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/media/sniffer"
	"fitx/api/internal/service"
)

func (h HandlerSet) AdminUploadMedia(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Storage.MaxUploadBytes+1<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondFailure(c, http.StatusBadRequest, "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err, "Error reading upload")
		return
	}
	defer file.Close()

	exercise, err := h.media.Upload(c.Request.Context(), service.MediaUploadInput{
		ExerciseID:   id,
		File:         file,
		DeclaredMIME: sniffer.MimeTypeFromHTTP(http.Header(fileHeader.Header)),
	})
	if err != nil {
		h.respondError(c, err, "Error uploading exercise media")
		return
	}
	respondOK(c, http.StatusCreated, "Exercise media uploaded", newExerciseView(exercise))
}

// ExerciseMedia redirects to a short-lived download URL for stored media.
func (h HandlerSet) ExerciseMedia(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}

	url, err := h.media.MediaURL(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Error fetching exercise media")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
