package handlers

import (
	"time"

	"fitx/api/internal/models"
)

const recordDateLayout = "2006-01-02"

type userView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserView(u models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type exerciseView struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Difficulty        string    `json:"difficulty"`
	Duration          *string   `json:"duration"`
	Muscles           string    `json:"muscles"`
	VideoID           string    `json:"videoId"`
	Description       string    `json:"description"`
	Instructions      *string   `json:"instructions"`
	Equipment         string    `json:"equipment"`
	CaloriesPerMinute int       `json:"caloriesPerMinute"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func newExerciseView(e models.Exercise) exerciseView {
	return exerciseView{
		ID:                e.ID,
		Name:              e.Name,
		Category:          string(e.Category),
		Difficulty:        string(e.Difficulty),
		Duration:          e.Duration,
		Muscles:           e.Muscles,
		VideoID:           e.VideoID,
		Description:       e.Description,
		Instructions:      e.Instructions,
		Equipment:         e.Equipment,
		CaloriesPerMinute: e.CaloriesPerMinute,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func newExerciseViews(list []models.Exercise) []exerciseView {
	out := make([]exerciseView, 0, len(list))
	for _, e := range list {
		out = append(out, newExerciseView(e))
	}
	return out
}

type progressView struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"userId"`
	Weight          *float64            `json:"weight"`
	GoalWeight      *float64            `json:"goalWeight"`
	Chest           *float64            `json:"chest"`
	Waist           *float64            `json:"waist"`
	Arms            *float64            `json:"arms"`
	Thighs          *float64            `json:"thighs"`
	BodyFat         *float64            `json:"bodyFat"`
	MuscleMass      *float64            `json:"muscleMass"`
	WaterIntake     int                 `json:"waterIntake"`
	WaterGoal       int                 `json:"waterGoal"`
	SleepHours      *float64            `json:"sleepHours"`
	SleepGoal       float64             `json:"sleepGoal"`
	DailySteps      int                 `json:"dailySteps"`
	StepsGoal       int                 `json:"stepsGoal"`
	WorkoutType     *models.WorkoutType `json:"workoutType"`
	WorkoutDuration *int                `json:"workoutDuration"`
	CaloriesBurned  *int                `json:"caloriesBurned"`
	Feeling         *models.Feeling     `json:"feeling"`
	Notes           *string             `json:"notes"`
	WorkoutStreak   int                 `json:"workoutStreak"`
	WaterStreak     int                 `json:"waterStreak"`
	RecordDate      string              `json:"recordDate"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func newProgressView(p models.Progress) progressView {
	return progressView{
		ID:              p.ID,
		UserID:          p.UserID,
		Weight:          p.Weight,
		GoalWeight:      p.GoalWeight,
		Chest:           p.Chest,
		Waist:           p.Waist,
		Arms:            p.Arms,
		Thighs:          p.Thighs,
		BodyFat:         p.BodyFat,
		MuscleMass:      p.MuscleMass,
		WaterIntake:     p.WaterIntake,
		WaterGoal:       p.WaterGoal,
		SleepHours:      p.SleepHours,
		SleepGoal:       p.SleepGoal,
		DailySteps:      p.DailySteps,
		StepsGoal:       p.StepsGoal,
		WorkoutType:     p.WorkoutType,
		WorkoutDuration: p.WorkoutDuration,
		CaloriesBurned:  p.CaloriesBurned,
		Feeling:         p.Feeling,
		Notes:           p.Notes,
		WorkoutStreak:   p.WorkoutStreak,
		WaterStreak:     p.WaterStreak,
		RecordDate:      p.RecordDate.Format(recordDateLayout),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type statsView struct {
	TotalEntries     int `json:"totalEntries"`
	TotalWorkouts    int `json:"totalWorkouts"`
	ConsistencyScore int `json:"consistencyScore"`
}
