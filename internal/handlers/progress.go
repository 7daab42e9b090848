package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
	"fitx/api/internal/service"
)

func (h HandlerSet) CurrentProgress(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	row, outcome, err := h.progress.Current(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "Error fetching current progress")
		return
	}

	body := gin.H{
		"success": true,
		"data":    newProgressView(row),
		"created": outcome == repository.LatestCreated,
	}
	if outcome == repository.LatestCreated {
		body["message"] = "Initial progress record created"
	}
	c.JSON(http.StatusOK, body)
}

type weightRequest struct {
	Weight     number `json:"weight"`
	GoalWeight number `json:"goalWeight"`
}

func (h HandlerSet) LogWeight(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req weightRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Weight.supplied() {
		respondFailure(c, http.StatusBadRequest, "Valid weight is required")
		return
	}
	if req.GoalWeight.malformed() {
		respondFailure(c, http.StatusBadRequest, "Valid goal weight is required")
		return
	}

	row, _, err := h.progress.LogWeight(c.Request.Context(), user.ID, req.Weight.value, req.GoalWeight.decimal())
	h.respondProgress(c, row, err, "Weight logged successfully", "Error logging weight")
}

type goalRequest struct {
	GoalWeight number `json:"goalWeight"`
}

func (h HandlerSet) SetGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.GoalWeight.supplied() {
		respondFailure(c, http.StatusBadRequest, "Valid goal weight is required")
		return
	}

	row, _, err := h.progress.SetGoal(c.Request.Context(), user.ID, req.GoalWeight.value)
	h.respondProgress(c, row, err, "Goal weight set successfully", "Error setting goal weight")
}

type measurementsRequest struct {
	Chest  number `json:"chest"`
	Waist  number `json:"waist"`
	Arms   number `json:"arms"`
	Thighs number `json:"thighs"`
}

func (h HandlerSet) LogMeasurements(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req measurementsRequest
	if !bindJSON(c, &req) {
		return
	}
	fields := []struct {
		name  string
		value number
	}{{"chest", req.Chest}, {"waist", req.Waist}, {"arms", req.Arms}, {"thighs", req.Thighs}}
	for _, f := range fields {
		if f.value.malformed() {
			respondFailure(c, http.StatusBadRequest, "Valid "+f.name+" measurement is required")
			return
		}
	}

	row, _, err := h.progress.LogMeasurements(c.Request.Context(), user.ID, service.Measurements{
		Chest:  req.Chest.decimal(),
		Waist:  req.Waist.decimal(),
		Arms:   req.Arms.decimal(),
		Thighs: req.Thighs.decimal(),
	})
	h.respondProgress(c, row, err, "Body measurements updated successfully", "Error updating measurements")
}

type waterRequest struct {
	WaterIntake number `json:"waterIntake"`
}

func (h HandlerSet) LogWater(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req waterRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.WaterIntake.present || !req.WaterIntake.valid || !req.WaterIntake.fitsInt() {
		respondFailure(c, http.StatusBadRequest, "Valid water intake is required")
		return
	}

	row, _, err := h.progress.LogWater(c.Request.Context(), user.ID, int(req.WaterIntake.value))
	h.respondProgress(c, row, err, "Water intake logged successfully", "Error logging water intake")
}

type workoutNoteRequest struct {
	WorkoutType    string `json:"workoutType"`
	Feeling        string `json:"feeling"`
	Notes          string `json:"notes"`
	Duration       number `json:"duration"`
	CaloriesBurned number `json:"caloriesBurned"`
}

func (h HandlerSet) LogWorkoutNote(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req workoutNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Duration.malformed() || req.CaloriesBurned.malformed() ||
		!req.Duration.fitsInt() || !req.CaloriesBurned.fitsInt() {
		respondFailure(c, http.StatusBadRequest, "Duration and calories burned must be numeric")
		return
	}

	note := service.WorkoutNote{
		Notes:          nonEmpty(req.Notes),
		Duration:       req.Duration.integer(),
		CaloriesBurned: req.CaloriesBurned.integer(),
	}
	if req.WorkoutType != "" {
		t := models.WorkoutType(req.WorkoutType)
		note.WorkoutType = &t
	}
	if req.Feeling != "" {
		f := models.Feeling(req.Feeling)
		note.Feeling = &f
	}

	row, _, err := h.progress.LogWorkoutNote(c.Request.Context(), user.ID, note)
	h.respondProgress(c, row, err, "Workout note saved successfully", "Error saving workout note")
}

func (h HandlerSet) ProgressHistory(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	limit := service.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	rows, err := h.progress.History(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.respondError(c, err, "Error fetching progress history")
		return
	}

	views := make([]progressView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newProgressView(row))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}

func (h HandlerSet) ProgressStats(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	stats, err := h.progress.Stats(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "Error fetching progress statistics")
		return
	}
	respondOK(c, http.StatusOK, "", statsView{
		TotalEntries:     stats.TotalEntries,
		TotalWorkouts:    stats.TotalWorkouts,
		ConsistencyScore: stats.ConsistencyScore,
	})
}

func (h HandlerSet) respondProgress(c *gin.Context, row models.Progress, err error, message, failure string) {
	if err != nil {
		h.respondError(c, err, failure)
		return
	}
	respondOK(c, http.StatusOK, message, newProgressView(row))
}
