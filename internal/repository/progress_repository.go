package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitx/api/internal/models"
)

// LatestOutcome tags which branch FindLatestOrCreate took.
type LatestOutcome int

const (
	LatestFound LatestOutcome = iota + 1
	LatestCreated
)

func (o LatestOutcome) String() string {
	switch o {
	case LatestFound:
		return "found"
	case LatestCreated:
		return "created"
	}
	return "unknown"
}

const progressColumns = `
	id, user_id, weight::float8, goal_weight::float8,
	chest::float8, waist::float8, arms::float8, thighs::float8,
	body_fat::float8, muscle_mass::float8,
	water_intake, water_goal, sleep_hours::float8, sleep_goal::float8,
	daily_steps, steps_goal, workout_type, workout_duration, calories_burned,
	feeling, notes, workout_streak, water_streak, record_date, created_at, updated_at`

type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func scanProgress(row pgx.Row) (models.Progress, error) {
	var (
		p           models.Progress
		workoutType *string
		feeling     *string
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Weight,
		&p.GoalWeight,
		&p.Chest,
		&p.Waist,
		&p.Arms,
		&p.Thighs,
		&p.BodyFat,
		&p.MuscleMass,
		&p.WaterIntake,
		&p.WaterGoal,
		&p.SleepHours,
		&p.SleepGoal,
		&p.DailySteps,
		&p.StepsGoal,
		&workoutType,
		&p.WorkoutDuration,
		&p.CaloriesBurned,
		&feeling,
		&p.Notes,
		&p.WorkoutStreak,
		&p.WaterStreak,
		&p.RecordDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return models.Progress{}, err
	}
	if workoutType != nil {
		w := models.WorkoutType(*workoutType)
		p.WorkoutType = &w
	}
	if feeling != nil {
		f := models.Feeling(*feeling)
		p.Feeling = &f
	}
	return p, nil
}

func enumArg[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// FindLatestOrCreate returns the most recently created row for userID, or
// inserts defaults when the user has none. The read and the insert are not
// wrapped in a transaction: two concurrent callers for the same user can both
// take the create branch.
func (r *ProgressRepository) FindLatestOrCreate(ctx context.Context, userID int64, defaults models.Progress) (models.Progress, LatestOutcome, error) {
	const query = `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	latest, err := scanProgress(r.pool.QueryRow(ctx, query, userID))
	if err == nil {
		return latest, LatestFound, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.Progress{}, 0, fmt.Errorf("find latest progress: %w", err)
	}

	defaults.UserID = userID
	created, err := r.create(ctx, defaults)
	if err != nil {
		return models.Progress{}, 0, err
	}
	return created, LatestCreated, nil
}

func (r *ProgressRepository) create(ctx context.Context, p models.Progress) (models.Progress, error) {
	const query = `
		INSERT INTO progress (
			user_id, weight, goal_weight, chest, waist, arms, thighs, body_fat, muscle_mass,
			water_intake, water_goal, sleep_hours, sleep_goal, daily_steps, steps_goal,
			workout_type, workout_duration, calories_burned, feeling, notes,
			workout_streak, water_streak, record_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20,
			$21, $22, COALESCE($23::date, CURRENT_DATE), NOW(), NOW()
		)
		RETURNING ` + progressColumns

	var recordDate any
	if !p.RecordDate.IsZero() {
		recordDate = p.RecordDate
	}

	created, err := scanProgress(r.pool.QueryRow(ctx, query,
		p.UserID,
		p.Weight,
		p.GoalWeight,
		p.Chest,
		p.Waist,
		p.Arms,
		p.Thighs,
		p.BodyFat,
		p.MuscleMass,
		p.WaterIntake,
		p.WaterGoal,
		p.SleepHours,
		p.SleepGoal,
		p.DailySteps,
		p.StepsGoal,
		enumArg(p.WorkoutType),
		p.WorkoutDuration,
		p.CaloriesBurned,
		enumArg(p.Feeling),
		p.Notes,
		p.WorkoutStreak,
		p.WaterStreak,
		recordDate,
	))
	if err != nil {
		return models.Progress{}, fmt.Errorf("insert progress: %w", err)
	}
	return created, nil
}

// Update writes every mutable column of p back to its row.
func (r *ProgressRepository) Update(ctx context.Context, p models.Progress) (models.Progress, error) {
	const query = `
		UPDATE progress SET
			weight = $2,
			goal_weight = $3,
			chest = $4,
			waist = $5,
			arms = $6,
			thighs = $7,
			body_fat = $8,
			muscle_mass = $9,
			water_intake = $10,
			water_goal = $11,
			sleep_hours = $12,
			sleep_goal = $13,
			daily_steps = $14,
			steps_goal = $15,
			workout_type = $16,
			workout_duration = $17,
			calories_burned = $18,
			feeling = $19,
			notes = $20,
			workout_streak = $21,
			water_streak = $22,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + progressColumns

	updated, err := scanProgress(r.pool.QueryRow(ctx, query,
		p.ID,
		p.Weight,
		p.GoalWeight,
		p.Chest,
		p.Waist,
		p.Arms,
		p.Thighs,
		p.BodyFat,
		p.MuscleMass,
		p.WaterIntake,
		p.WaterGoal,
		p.SleepHours,
		p.SleepGoal,
		p.DailySteps,
		p.StepsGoal,
		enumArg(p.WorkoutType),
		p.WorkoutDuration,
		p.CaloriesBurned,
		enumArg(p.Feeling),
		p.Notes,
		p.WorkoutStreak,
		p.WaterStreak,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Progress{}, ErrProgressNotFound
		}
		return models.Progress{}, fmt.Errorf("update progress %d: %w", p.ID, err)
	}
	return updated, nil
}

// History returns up to limit rows for userID, newest first.
func (r *ProgressRepository) History(ctx context.Context, userID int64, limit int) ([]models.Progress, error) {
	const query = `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Progress, 0)
	for rows.Next() {
		entry, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Counts returns the number of rows for userID and how many of them carry a workout type.
func (r *ProgressRepository) Counts(ctx context.Context, userID int64) (total int, workouts int, err error) {
	const query = `SELECT COUNT(*), COUNT(workout_type) FROM progress WHERE user_id = $1`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total, &workouts); err != nil {
		return 0, 0, err
	}
	return total, workouts, nil
}
