package models

import "time"

type ExerciseCategory string

const (
	CategoryUpperBody   ExerciseCategory = "upper-body"
	CategoryLowerBody   ExerciseCategory = "lower-body"
	CategoryCore        ExerciseCategory = "core"
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryStrength    ExerciseCategory = "strength"
	CategoryHIIT        ExerciseCategory = "hiit"
)

func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryUpperBody, CategoryLowerBody, CategoryCore, CategoryCardio,
		CategoryFlexibility, CategoryStrength, CategoryHIIT:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

const (
	DefaultEquipment         = "None"
	DefaultCaloriesPerMinute = 5
	DefaultExerciseDuration  = "30 seconds"
)

type Exercise struct {
	ID                int64
	Name              string
	Category          ExerciseCategory
	Difficulty        Difficulty
	Duration          *string
	Muscles           string
	VideoID           string
	Description       string
	Instructions      *string
	Equipment         string
	CaloriesPerMinute int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewExercise returns an exercise carrying the column defaults of the catalog table.
func NewExercise() Exercise {
	return Exercise{
		Equipment:         DefaultEquipment,
		CaloriesPerMinute: DefaultCaloriesPerMinute,
	}
}
