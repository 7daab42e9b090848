package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/service"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error fetching users")
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}
	respondOK(c, http.StatusOK, "Users retrieved successfully", gin.H{"users": views})
}

type roleRequest struct {
	Role string `json:"role"`
}

func (h HandlerSet) AdminUpdateRole(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	var req roleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.admin.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.respondError(c, err, "Error updating user role")
		return
	}
	respondOK(c, http.StatusOK, "User role updated successfully", gin.H{
		"id":   user.ID,
		"role": user.Role,
	})
}

func (h HandlerSet) AdminDeleteUser(c *gin.Context) {
	actor, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), actor.ID, id); err != nil {
		h.respondError(c, err, "Error deleting user")
		return
	}
	respondOK(c, http.StatusOK, "User deleted successfully", nil)
}

// adminExerciseRequest accepts the media reference as videoId or, for older
// clients, videoUrl.
type adminExerciseRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Description *string `json:"description"`
	VideoID     *string `json:"videoId"`
	VideoURL    *string `json:"videoUrl"`
}

func (r adminExerciseRequest) input() service.ExerciseInput {
	video := r.VideoID
	if video == nil {
		video = r.VideoURL
	}
	return service.ExerciseInput{
		Name:        r.Name,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		VideoID:     video,
		Description: r.Description,
	}
}

func (h HandlerSet) AdminListExercises(c *gin.Context) {
	h.ListExercises(c)
}

func (h HandlerSet) AdminCreateExercise(c *gin.Context) {
	var req adminExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exercises.CreateExact(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err, "Error adding exercise")
		return
	}
	respondOK(c, http.StatusCreated, "Exercise added", newExerciseView(exercise))
}

func (h HandlerSet) AdminUpdateExercise(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}
	var req adminExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exercises.ReplaceCore(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err, "Error updating exercise")
		return
	}
	respondOK(c, http.StatusOK, "Exercise updated", newExerciseView(exercise))
}

func (h HandlerSet) AdminDeleteExercise(c *gin.Context) {
	id, ok := parseID(c, "exercise")
	if !ok {
		return
	}

	if err := h.exercises.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Error deleting exercise")
		return
	}
	respondOK(c, http.StatusOK, "Exercise deleted", nil)
}
