package service

import (
	"context"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
)

// UserStore is the credential store. *repository.UserRepository and
// *memstore.UserStore both satisfy it.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByEmailOrUsername(ctx context.Context, email string, username string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type ExerciseStore interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id int64) (models.Exercise, error)
	Create(ctx context.Context, exercise models.Exercise) (models.Exercise, error)
	Update(ctx context.Context, exercise models.Exercise) (models.Exercise, error)
	Delete(ctx context.Context, id int64) error
}

type ProgressStore interface {
	FindLatestOrCreate(ctx context.Context, userID int64, defaults models.Progress) (models.Progress, repository.LatestOutcome, error)
	Update(ctx context.Context, p models.Progress) (models.Progress, error)
	History(ctx context.Context, userID int64, limit int) ([]models.Progress, error)
	Counts(ctx context.Context, userID int64) (total int, workouts int, err error)
}

// ExerciseCache holds the rendered catalog listing. A nil cache disables caching.
type ExerciseCache interface {
	GetExercises(ctx context.Context) ([]models.Exercise, bool, error)
	SetExercises(ctx context.Context, exercises []models.Exercise) error
	InvalidateExercises(ctx context.Context) error
}
