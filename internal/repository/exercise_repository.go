package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitx/api/internal/models"
)

const exerciseColumns = `
	id, name, category, difficulty, duration,
	COALESCE(muscles, ''), COALESCE(video_id, ''), COALESCE(description, ''),
	instructions, COALESCE(equipment, 'None'), COALESCE(calories_per_minute, 5),
	created_at, updated_at`

type ExerciseRepository struct {
	pool *pgxpool.Pool
}

func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var (
		exercise   models.Exercise
		category   string
		difficulty string
	)
	if err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&category,
		&difficulty,
		&exercise.Duration,
		&exercise.Muscles,
		&exercise.VideoID,
		&exercise.Description,
		&exercise.Instructions,
		&exercise.Equipment,
		&exercise.CaloriesPerMinute,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Exercise{}, ErrExerciseNotFound
		}
		return models.Exercise{}, err
	}
	exercise.Category = models.ExerciseCategory(category)
	exercise.Difficulty = models.Difficulty(difficulty)
	return exercise, nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	const query = `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (models.Exercise, error) {
	const query = `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	return scanExercise(r.pool.QueryRow(ctx, query, id))
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	const query = `
		INSERT INTO exercises (
			name, category, difficulty, duration, muscles, video_id, description,
			instructions, equipment, calories_per_minute, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
		RETURNING ` + exerciseColumns

	created, err := scanExercise(r.pool.QueryRow(ctx, query,
		exercise.Name,
		string(exercise.Category),
		string(exercise.Difficulty),
		exercise.Duration,
		exercise.Muscles,
		exercise.VideoID,
		exercise.Description,
		exercise.Instructions,
		exercise.Equipment,
		exercise.CaloriesPerMinute,
	))
	if err != nil {
		return models.Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable column of the row identified by exercise.ID.
func (r *ExerciseRepository) Update(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	const query = `
		UPDATE exercises SET
			name = $2,
			category = $3,
			difficulty = $4,
			duration = $5,
			muscles = $6,
			video_id = $7,
			description = $8,
			instructions = $9,
			equipment = $10,
			calories_per_minute = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + exerciseColumns

	return scanExercise(r.pool.QueryRow(ctx, query,
		exercise.ID,
		exercise.Name,
		string(exercise.Category),
		string(exercise.Difficulty),
		exercise.Duration,
		exercise.Muscles,
		exercise.VideoID,
		exercise.Description,
		exercise.Instructions,
		exercise.Equipment,
		exercise.CaloriesPerMinute,
	))
}

func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM exercises WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Truncate empties the catalog and restarts the id sequence.
func (r *ExerciseRepository) Truncate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE TABLE exercises RESTART IDENTITY`)
	return err
}
