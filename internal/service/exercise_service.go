package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
)

type ExerciseService struct {
	exercises ExerciseStore
	cache     ExerciseCache
	log       zerolog.Logger

	// generation advances on every catalog write so List never caches a
	// listing read before that write.
	generation atomic.Uint64
}

// NewExerciseService wires the catalog store. cache may be nil.
func NewExerciseService(exercises ExerciseStore, cache ExerciseCache, log zerolog.Logger) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		cache:     cache,
		log:       log,
	}
}

// ExerciseInput carries the writable catalog fields. Nil means "not supplied".
type ExerciseInput struct {
	Name        string
	Category    string
	Difficulty  string
	Duration    *string
	Muscles     *string
	VideoID     *string
	Description *string
}

func (s *ExerciseService) List(ctx context.Context) ([]models.Exercise, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetExercises(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("exercise cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	generation := s.generation.Load()
	exercises, err := s.exercises.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.generation.Load() == generation {
		if err := s.cache.SetExercises(ctx, exercises); err != nil {
			s.log.Warn().Err(err).Msg("exercise cache write failed")
		} else if s.generation.Load() != generation {
			// a write landed between the check and the fill
			s.invalidate(ctx)
		}
	}
	return exercises, nil
}

func (s *ExerciseService) Get(ctx context.Context, id int64) (models.Exercise, error) {
	exercise, err := s.exercises.GetByID(ctx, id)
	if errors.Is(err, repository.ErrExerciseNotFound) {
		return models.Exercise{}, ErrExerciseNotFound
	}
	return exercise, err
}

// CreateWithDefaults is the catalog create: name and category are required,
// everything else falls back to the documented defaults.
func (s *ExerciseService) CreateWithDefaults(ctx context.Context, input ExerciseInput) (models.Exercise, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return models.Exercise{}, invalid("", "Name and category are required")
	}

	exercise := models.NewExercise()
	exercise.Name = strings.TrimSpace(input.Name)
	exercise.Category = models.ExerciseCategory(input.Category)
	exercise.Difficulty = models.Difficulty(input.Difficulty)
	if exercise.Difficulty == "" {
		exercise.Difficulty = models.DifficultyBeginner
	}
	duration := models.DefaultExerciseDuration
	if input.Duration != nil && *input.Duration != "" {
		duration = *input.Duration
	}
	exercise.Duration = &duration
	exercise.Muscles = valueOrEmpty(input.Muscles)
	exercise.VideoID = valueOrEmpty(input.VideoID)
	exercise.Description = valueOrEmpty(input.Description)

	if err := validateEnums(exercise); err != nil {
		return models.Exercise{}, err
	}
	return s.create(ctx, exercise)
}

// CreateExact stores the supplied fields without defaulting; name, category and
// difficulty must all be present.
func (s *ExerciseService) CreateExact(ctx context.Context, input ExerciseInput) (models.Exercise, error) {
	if strings.TrimSpace(input.Name) == "" || input.Category == "" || input.Difficulty == "" {
		return models.Exercise{}, invalid("", "Name, category and difficulty are required")
	}

	exercise := models.NewExercise()
	exercise.Name = strings.TrimSpace(input.Name)
	exercise.Category = models.ExerciseCategory(input.Category)
	exercise.Difficulty = models.Difficulty(input.Difficulty)
	exercise.Duration = input.Duration
	exercise.Muscles = valueOrEmpty(input.Muscles)
	exercise.VideoID = valueOrEmpty(input.VideoID)
	exercise.Description = valueOrEmpty(input.Description)

	if err := validateEnums(exercise); err != nil {
		return models.Exercise{}, err
	}
	return s.create(ctx, exercise)
}

// Replace overwrites name, category, difficulty, duration, muscles, media
// reference and description. Fields left out of input are cleared.
func (s *ExerciseService) Replace(ctx context.Context, id int64, input ExerciseInput) (models.Exercise, error) {
	return s.overwrite(ctx, id, input, func(e *models.Exercise) {
		e.Duration = input.Duration
		e.Muscles = valueOrEmpty(input.Muscles)
	})
}

// ReplaceCore overwrites name, category, difficulty, media reference and
// description, leaving duration and muscles as stored.
func (s *ExerciseService) ReplaceCore(ctx context.Context, id int64, input ExerciseInput) (models.Exercise, error) {
	return s.overwrite(ctx, id, input, nil)
}

func (s *ExerciseService) overwrite(ctx context.Context, id int64, input ExerciseInput, extra func(*models.Exercise)) (models.Exercise, error) {
	exercise, err := s.Get(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}

	exercise.Name = strings.TrimSpace(input.Name)
	exercise.Category = models.ExerciseCategory(input.Category)
	exercise.Difficulty = models.Difficulty(input.Difficulty)
	exercise.VideoID = valueOrEmpty(input.VideoID)
	exercise.Description = valueOrEmpty(input.Description)
	if extra != nil {
		extra(&exercise)
	}

	if exercise.Name == "" {
		return models.Exercise{}, invalid("name", "Name is required")
	}
	if err := validateEnums(exercise); err != nil {
		return models.Exercise{}, err
	}

	updated, err := s.exercises.Update(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return models.Exercise{}, ErrExerciseNotFound
		}
		return models.Exercise{}, err
	}

	s.invalidate(ctx)
	s.log.Info().Int64("exercise_id", updated.ID).Str("name", updated.Name).Msg("exercise updated")
	return updated, nil
}

// SetMedia points the exercise's media reference at ref.
func (s *ExerciseService) SetMedia(ctx context.Context, id int64, ref string) (models.Exercise, error) {
	exercise, err := s.Get(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	exercise.VideoID = ref

	updated, err := s.exercises.Update(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return models.Exercise{}, ErrExerciseNotFound
		}
		return models.Exercise{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *ExerciseService) Delete(ctx context.Context, id int64) error {
	if err := s.exercises.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrExerciseNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	s.invalidate(ctx)
	s.log.Info().Int64("exercise_id", id).Msg("exercise deleted")
	return nil
}

func (s *ExerciseService) create(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	created, err := s.exercises.Create(ctx, exercise)
	if err != nil {
		return models.Exercise{}, err
	}

	s.invalidate(ctx)
	s.log.Info().Int64("exercise_id", created.ID).Str("name", created.Name).Msg("exercise created")
	return created, nil
}

func (s *ExerciseService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateExercises(ctx); err != nil {
		s.log.Warn().Err(err).Msg("exercise cache invalidation failed")
	}
}

func validateEnums(e models.Exercise) error {
	if !e.Category.Valid() {
		return invalid("category", "Invalid category")
	}
	if !e.Difficulty.Valid() {
		return invalid("difficulty", "Invalid difficulty. Use Beginner, Intermediate or Advanced")
	}
	return nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
