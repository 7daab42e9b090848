package models

import "time"

type WorkoutType string

const (
	WorkoutStrength WorkoutType = "strength"
	WorkoutCardio   WorkoutType = "cardio"
	WorkoutHIIT     WorkoutType = "hiit"
	WorkoutYoga     WorkoutType = "yoga"
	WorkoutOther    WorkoutType = "other"
)

func (w WorkoutType) Valid() bool {
	switch w {
	case WorkoutStrength, WorkoutCardio, WorkoutHIIT, WorkoutYoga, WorkoutOther:
		return true
	}
	return false
}

type Feeling string

const (
	FeelingTired   Feeling = "tired"
	FeelingOkay    Feeling = "okay"
	FeelingGood    Feeling = "good"
	FeelingStrong  Feeling = "strong"
	FeelingAmazing Feeling = "amazing"
)

func (f Feeling) Valid() bool {
	switch f {
	case FeelingTired, FeelingOkay, FeelingGood, FeelingStrong, FeelingAmazing:
		return true
	}
	return false
}

const (
	DefaultWaterGoal  = 8
	DefaultSleepGoal  = 8.0
	DefaultStepsGoal  = 10000
	ConsistencyWindow = 30
)

type Progress struct {
	ID              int64
	UserID          int64
	Weight          *float64
	GoalWeight      *float64
	Chest           *float64
	Waist           *float64
	Arms            *float64
	Thighs          *float64
	BodyFat         *float64
	MuscleMass      *float64
	WaterIntake     int
	WaterGoal       int
	SleepHours      *float64
	SleepGoal       float64
	DailySteps      int
	StepsGoal       int
	WorkoutType     *WorkoutType
	WorkoutDuration *int
	CaloriesBurned  *int
	Feeling         *Feeling
	Notes           *string
	WorkoutStreak   int
	WaterStreak     int
	RecordDate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProgress returns a row for userID with every counter at its documented default.
func NewProgress(userID int64, now time.Time) Progress {
	return Progress{
		UserID:     userID,
		WaterGoal:  DefaultWaterGoal,
		SleepGoal:  DefaultSleepGoal,
		StepsGoal:  DefaultStepsGoal,
		RecordDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

type ProgressStats struct {
	TotalEntries     int
	TotalWorkouts    int
	ConsistencyScore int
}
