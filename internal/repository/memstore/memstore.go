// Package memstore keeps users, exercises and progress rows in process memory.
// It honors the same contracts as the Postgres repositories and backs the API
// when no database is configured, as well as the service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
)

type Store struct {
	Users     *UserStore
	Exercises *ExerciseStore
	Progress  *ProgressStore
}

type state struct {
	mu  sync.Mutex
	now func() time.Time

	users     map[int64]models.User
	exercises map[int64]models.Exercise
	progress  map[int64]models.Progress

	nextUserID     int64
	nextExerciseID int64
	nextProgressID int64
}

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock is New with an injectable time source for created/updated stamps.
func NewWithClock(now func() time.Time) *Store {
	s := &state{
		now:       now,
		users:     make(map[int64]models.User),
		exercises: make(map[int64]models.Exercise),
		progress:  make(map[int64]models.Progress),
	}
	return &Store{
		Users:     &UserStore{s: s},
		Exercises: &ExerciseStore{s: s},
		Progress:  &ProgressStore{s: s},
	}
}

type UserStore struct{ s *state }

func (u *UserStore) Create(_ context.Context, user models.User) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return models.User{}, repository.ErrUserExists
		}
	}

	u.s.nextUserID++
	now := u.s.now()
	user.ID = u.s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	u.s.users[user.ID] = user
	return user, nil
}

func (u *UserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (u *UserStore) FindByEmailOrUsername(_ context.Context, email string, username string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == email || user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (u *UserStore) GetByID(_ context.Context, id int64) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (u *UserStore) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (u *UserStore) UpdateRole(_ context.Context, id int64, role models.Role) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = u.s.now()
	u.s.users[id] = user
	return user, nil
}

// Delete removes the user and, like the ON DELETE CASCADE foreign key, every progress row it owns.
func (u *UserStore) Delete(_ context.Context, id int64) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(u.s.users, id)
	for pid, p := range u.s.progress {
		if p.UserID == id {
			delete(u.s.progress, pid)
		}
	}
	return nil
}

type ExerciseStore struct{ s *state }

func (e *ExerciseStore) List(_ context.Context) ([]models.Exercise, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	exercises := make([]models.Exercise, 0, len(e.s.exercises))
	for _, exercise := range e.s.exercises {
		exercises = append(exercises, exercise)
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].ID < exercises[j].ID })
	return exercises, nil
}

func (e *ExerciseStore) GetByID(_ context.Context, id int64) (models.Exercise, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	exercise, ok := e.s.exercises[id]
	if !ok {
		return models.Exercise{}, repository.ErrExerciseNotFound
	}
	return exercise, nil
}

func (e *ExerciseStore) Create(_ context.Context, exercise models.Exercise) (models.Exercise, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	e.s.nextExerciseID++
	now := e.s.now()
	exercise.ID = e.s.nextExerciseID
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	e.s.exercises[exercise.ID] = exercise
	return exercise, nil
}

func (e *ExerciseStore) Update(_ context.Context, exercise models.Exercise) (models.Exercise, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	existing, ok := e.s.exercises[exercise.ID]
	if !ok {
		return models.Exercise{}, repository.ErrExerciseNotFound
	}
	exercise.CreatedAt = existing.CreatedAt
	exercise.UpdatedAt = e.s.now()
	e.s.exercises[exercise.ID] = exercise
	return exercise, nil
}

func (e *ExerciseStore) Delete(_ context.Context, id int64) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.exercises[id]; !ok {
		return repository.ErrExerciseNotFound
	}
	delete(e.s.exercises, id)
	return nil
}

func (e *ExerciseStore) Truncate(_ context.Context) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	e.s.exercises = make(map[int64]models.Exercise)
	e.s.nextExerciseID = 0
	return nil
}

type ProgressStore struct{ s *state }

// latestLocked mirrors ORDER BY created_at DESC, id DESC LIMIT 1.
func (p *ProgressStore) latestLocked(userID int64) (models.Progress, bool) {
	var (
		latest models.Progress
		found  bool
	)
	for _, row := range p.s.progress {
		if row.UserID != userID {
			continue
		}
		if !found || row.CreatedAt.After(latest.CreatedAt) ||
			(row.CreatedAt.Equal(latest.CreatedAt) && row.ID > latest.ID) {
			latest = row
			found = true
		}
	}
	return latest, found
}

// FindLatestOrCreate holds the lock only for each half, leaving the same
// read-then-insert window the Postgres repository has.
func (p *ProgressStore) FindLatestOrCreate(_ context.Context, userID int64, defaults models.Progress) (models.Progress, repository.LatestOutcome, error) {
	p.s.mu.Lock()
	latest, found := p.latestLocked(userID)
	p.s.mu.Unlock()
	if found {
		return latest, repository.LatestFound, nil
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.nextProgressID++
	now := p.s.now()
	defaults.ID = p.s.nextProgressID
	defaults.UserID = userID
	if defaults.RecordDate.IsZero() {
		defaults.RecordDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	defaults.CreatedAt = now
	defaults.UpdatedAt = now
	p.s.progress[defaults.ID] = defaults
	return defaults, repository.LatestCreated, nil
}

func (p *ProgressStore) Update(_ context.Context, row models.Progress) (models.Progress, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.progress[row.ID]
	if !ok {
		return models.Progress{}, repository.ErrProgressNotFound
	}
	row.UserID = existing.UserID
	row.RecordDate = existing.RecordDate
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = p.s.now()
	p.s.progress[row.ID] = row
	return row, nil
}

func (p *ProgressStore) History(_ context.Context, userID int64, limit int) ([]models.Progress, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	rows := make([]models.Progress, 0)
	for _, row := range p.s.progress {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (p *ProgressStore) Counts(_ context.Context, userID int64) (int, int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	var total, workouts int
	for _, row := range p.s.progress {
		if row.UserID != userID {
			continue
		}
		total++
		if row.WorkoutType != nil {
			workouts++
		}
	}
	return total, workouts, nil
}

// Insert stores a fully formed row as-is. It exists so tests can lay down
// history without going through the upsert-latest path.
func (p *ProgressStore) Insert(_ context.Context, row models.Progress) models.Progress {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.nextProgressID++
	row.ID = p.s.nextProgressID
	if row.CreatedAt.IsZero() {
		row.CreatedAt = p.s.now()
	}
	row.UpdatedAt = row.CreatedAt
	p.s.progress[row.ID] = row
	return row
}
