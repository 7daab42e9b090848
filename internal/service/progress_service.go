package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
)

const DefaultHistoryLimit = 30

type ProgressService struct {
	progress ProgressStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewProgressService(progress ProgressStore, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		progress: progress,
		log:      log,
		now:      time.Now,
	}
}

// Current returns the user's latest entry, creating a default one on first use.
func (s *ProgressService) Current(ctx context.Context, userID int64) (models.Progress, repository.LatestOutcome, error) {
	row, outcome, err := s.progress.FindLatestOrCreate(ctx, userID, models.NewProgress(userID, s.now()))
	if err != nil {
		return models.Progress{}, 0, fmt.Errorf("current progress: %w", err)
	}
	if outcome == repository.LatestCreated {
		s.log.Info().Int64("user_id", userID).Int64("progress_id", row.ID).Msg("initial progress record created")
	}
	return row, outcome, nil
}

func (s *ProgressService) LogWeight(ctx context.Context, userID int64, weight float64, goalWeight *float64) (models.Progress, repository.LatestOutcome, error) {
	seed := s.seed(userID)
	seed.Weight = &weight
	seed.GoalWeight = goalWeight

	return s.upsertLatest(ctx, userID, "weight logged", seed, func(p *models.Progress) {
		p.Weight = &weight
		if goalWeight != nil {
			p.GoalWeight = goalWeight
		}
	})
}

func (s *ProgressService) SetGoal(ctx context.Context, userID int64, goalWeight float64) (models.Progress, repository.LatestOutcome, error) {
	seed := s.seed(userID)
	seed.GoalWeight = &goalWeight

	return s.upsertLatest(ctx, userID, "goal weight set", seed, func(p *models.Progress) {
		p.GoalWeight = &goalWeight
	})
}

type Measurements struct {
	Chest  *float64
	Waist  *float64
	Arms   *float64
	Thighs *float64
}

// LogMeasurements stores unsupplied fields as null on a new row but leaves
// them untouched on an existing one.
func (s *ProgressService) LogMeasurements(ctx context.Context, userID int64, m Measurements) (models.Progress, repository.LatestOutcome, error) {
	seed := s.seed(userID)
	seed.Chest = m.Chest
	seed.Waist = m.Waist
	seed.Arms = m.Arms
	seed.Thighs = m.Thighs

	return s.upsertLatest(ctx, userID, "measurements updated", seed, func(p *models.Progress) {
		if m.Chest != nil {
			p.Chest = m.Chest
		}
		if m.Waist != nil {
			p.Waist = m.Waist
		}
		if m.Arms != nil {
			p.Arms = m.Arms
		}
		if m.Thighs != nil {
			p.Thighs = m.Thighs
		}
	})
}

func (s *ProgressService) LogWater(ctx context.Context, userID int64, glasses int) (models.Progress, repository.LatestOutcome, error) {
	seed := s.seed(userID)
	seed.WaterIntake = glasses

	return s.upsertLatest(ctx, userID, "water logged", seed, func(p *models.Progress) {
		p.WaterIntake = glasses
	})
}

type WorkoutNote struct {
	WorkoutType    *models.WorkoutType
	Feeling        *models.Feeling
	Notes          *string
	Duration       *int
	CaloriesBurned *int
}

func (n WorkoutNote) validate() error {
	if n.WorkoutType != nil && !n.WorkoutType.Valid() {
		return invalid("workoutType", "Invalid workout type. Use strength, cardio, hiit, yoga or other")
	}
	if n.Feeling != nil && !n.Feeling.Valid() {
		return invalid("feeling", "Invalid feeling. Use tired, okay, good, strong or amazing")
	}
	return nil
}

// LogWorkoutNote has the same create/update asymmetry as LogMeasurements.
func (s *ProgressService) LogWorkoutNote(ctx context.Context, userID int64, note WorkoutNote) (models.Progress, repository.LatestOutcome, error) {
	if err := note.validate(); err != nil {
		return models.Progress{}, 0, err
	}

	seed := s.seed(userID)
	seed.WorkoutType = note.WorkoutType
	seed.Feeling = note.Feeling
	seed.Notes = note.Notes
	seed.WorkoutDuration = note.Duration
	seed.CaloriesBurned = note.CaloriesBurned

	return s.upsertLatest(ctx, userID, "workout note saved", seed, func(p *models.Progress) {
		if note.WorkoutType != nil {
			p.WorkoutType = note.WorkoutType
		}
		if note.Feeling != nil {
			p.Feeling = note.Feeling
		}
		if note.Notes != nil {
			p.Notes = note.Notes
		}
		if note.Duration != nil {
			p.WorkoutDuration = note.Duration
		}
		if note.CaloriesBurned != nil {
			p.CaloriesBurned = note.CaloriesBurned
		}
	})
}

// History returns the newest entries first. A non-positive limit means DefaultHistoryLimit.
func (s *ProgressService) History(ctx context.Context, userID int64, limit int) ([]models.Progress, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.progress.History(ctx, userID, limit)
}

func (s *ProgressService) Stats(ctx context.Context, userID int64) (models.ProgressStats, error) {
	total, workouts, err := s.progress.Counts(ctx, userID)
	if err != nil {
		return models.ProgressStats{}, fmt.Errorf("progress counts: %w", err)
	}
	return models.ProgressStats{
		TotalEntries:     total,
		TotalWorkouts:    workouts,
		ConsistencyScore: ConsistencyScore(total),
	}, nil
}

// ConsistencyScore is round(entries / 30 * 100). The denominator is fixed and
// does not depend on how long the user has been tracking.
func ConsistencyScore(totalEntries int) int {
	return int(math.Round(float64(totalEntries) / models.ConsistencyWindow * 100))
}

func (s *ProgressService) seed(userID int64) models.Progress {
	return models.NewProgress(userID, s.now())
}

// upsertLatest applies update to the latest row when one exists; otherwise the
// seed (already carrying the supplied values) is inserted as is.
func (s *ProgressService) upsertLatest(
	ctx context.Context,
	userID int64,
	event string,
	seed models.Progress,
	update func(*models.Progress),
) (models.Progress, repository.LatestOutcome, error) {
	row, outcome, err := s.progress.FindLatestOrCreate(ctx, userID, seed)
	if err != nil {
		return models.Progress{}, 0, fmt.Errorf("%s: %w", event, err)
	}

	if outcome == repository.LatestFound {
		update(&row)
		row, err = s.progress.Update(ctx, row)
		if err != nil {
			return models.Progress{}, 0, fmt.Errorf("%s: %w", event, err)
		}
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("progress_id", row.ID).
		Stringer("outcome", outcome).
		Msg(event)
	return row, outcome, nil
}
