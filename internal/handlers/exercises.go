package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/service"
)

type exerciseRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Duration    *string `json:"duration"`
	Muscles     muscles `json:"muscles"`
	VideoID     *string `json:"videoId"`
	Description *string `json:"description"`
}

func (r exerciseRequest) input() service.ExerciseInput {
	return service.ExerciseInput{
		Name:        r.Name,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		Duration:    r.Duration,
		Muscles:     r.Muscles.value,
		VideoID:     r.VideoID,
		Description: r.Description,
	}
}

func (h HandlerSet) ListExercises(c *gin.Context) {
	exercises, err := h.exercises.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error fetching exercises")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newExerciseViews(exercises),
		"count":   len(exercises),
	})
}

func (h HandlerSet) GetExercise(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}

	exercise, err := h.exercises.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Error fetching exercise")
		return
	}
	respondOK(c, http.StatusOK, "", newExerciseView(exercise))
}

func (h HandlerSet) CreateExercise(c *gin.Context) {
	var req exerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exercises.CreateWithDefaults(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err, "Error creating exercise")
		return
	}
	respondOK(c, http.StatusCreated, "Exercise created successfully", newExerciseView(exercise))
}

func (h HandlerSet) UpdateExercise(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}
	var req exerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exercises.Replace(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err, "Error updating exercise")
		return
	}
	respondOK(c, http.StatusOK, "Exercise updated successfully", newExerciseView(exercise))
}

func (h HandlerSet) DeleteExercise(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}

	if err := h.exercises.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Error deleting exercise")
		return
	}
	respondOK(c, http.StatusOK, "Exercise deleted successfully", nil)
}
