package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"fitx/api/internal/config"
	"fitx/api/internal/models"
	"fitx/api/internal/repository"
	"fitx/api/internal/repository/memstore"
)

var testSecurity = config.SecurityConfig{
	JWTSecret:  "test-secret",
	JWTTTL:     time.Hour,
	BcryptCost: bcrypt.MinCost,
}

type fixture struct {
	store     *memstore.Store
	auth      *AuthService
	exercises *ExerciseService
	progress  *ProgressService
	admin     *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	log := zerolog.Nop()
	return &fixture{
		store:     store,
		auth:      NewAuthService(store.Users, testSecurity, log),
		exercises: NewExerciseService(store.Exercises, nil, log),
		progress:  NewProgressService(store.Progress, log),
		admin:     NewAdminService(store.Users, log),
	}
}

func (f *fixture) register(t *testing.T, username string) models.User {
	t.Helper()
	result, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return result.User
}

func ptr[T any](v T) *T { return &v }

func expectValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr
}

func TestRegister_CreatesRegularActiveUser(t *testing.T) {
	f := newFixture(t)

	result, err := f.auth.Register(context.Background(), RegisterInput{
		Username:  "  Alice ",
		Email:     "Alice@Example.com",
		Password:  "secret123",
		FirstName: ptr("Alice"),
		LastName:  ptr("  "),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	user := result.User
	if user.Role != models.RoleUser {
		t.Fatalf("expected role=user, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.Email != "alice@example.com" || user.Username != "alice" {
		t.Fatalf("expected normalized identifiers, got %q/%q", user.Email, user.Username)
	}
	if user.LastName != nil {
		t.Fatalf("expected blank last name to be stored as null, got %q", *user.LastName)
	}
	if string(user.PasswordHash) == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if result.Token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestRegister_RejectsDuplicateEmailOrUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Username: "other", Email: "ALICE@example.com", Password: "secret123"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
	_, err = f.auth.Register(ctx, RegisterInput{Username: "alice", Email: "new@example.com", Password: "secret123"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}

	users, _ := f.store.Users.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(users))
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing email", RegisterInput{Username: "alice", Password: "secret123"}, "email"},
		{"short username", RegisterInput{Username: "al", Email: "a@example.com", Password: "secret123"}, "username"},
		{"short password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "12345"}, "password"},
		{"password over bcrypt limit", RegisterInput{Username: "alice", Email: "a@example.com", Password: strings.Repeat("p", 80)}, "password"},
		{"multibyte password over bcrypt limit", RegisterInput{Username: "alice", Email: "a@example.com", Password: strings.Repeat("é", 40)}, "password"},
		{"username over 50 characters", RegisterInput{Username: strings.Repeat("é", 51), Email: "a@example.com", Password: "secret123"}, "username"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tc.input)
			if verr := expectValidation(t, err); verr.Field != tc.field {
				t.Fatalf("expected field=%s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestRegister_CountsCharactersNotBytes(t *testing.T) {
	f := newFixture(t)
	username := strings.Repeat("é", 30)

	result, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    "accent@example.com",
		Password: strings.Repeat("p", 72),
	})
	if err != nil {
		t.Fatalf("expected multi-byte username to register, got %v", err)
	}
	if result.User.Username != username {
		t.Fatalf("expected username=%q, got %q", username, result.User.Username)
	}
}

func TestIssueToken(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "alice")
	ctx := context.Background()

	result, err := f.auth.IssueToken(ctx, "ALICE@example.com", "secret123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User.ID != registered.ID {
		t.Fatalf("expected user id=%d, got %d", registered.ID, result.User.ID)
	}

	if _, err := f.auth.IssueToken(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := f.auth.IssueToken(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestVerifyToken_RereadsUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result, err := f.auth.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := f.store.Users.UpdateRole(ctx, result.User.ID, models.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}

	user, err := f.auth.VerifyToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("expected role from store (admin), got %s", user.Role)
	}

	if err := f.store.Users.Delete(ctx, result.User.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.auth.VerifyToken(ctx, result.Token); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerifyToken_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.VerifyToken(ctx, " "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := f.auth.VerifyToken(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExerciseCreateWithDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Difficulty != models.DifficultyBeginner {
		t.Fatalf("expected default difficulty Beginner, got %s", created.Difficulty)
	}
	if created.Duration == nil || *created.Duration != models.DefaultExerciseDuration {
		t.Fatalf("expected default duration, got %v", created.Duration)
	}
	if created.Equipment != models.DefaultEquipment || created.CaloriesPerMinute != models.DefaultCaloriesPerMinute {
		t.Fatalf("expected column defaults, got %q/%d", created.Equipment, created.CaloriesPerMinute)
	}

	_, err = f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank"})
	if verr := expectValidation(t, err); verr.Message != "Name and category are required" {
		t.Fatalf("unexpected message %q", verr.Message)
	}

	_, err = f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core", Difficulty: "Expert"})
	expectValidation(t, err)
}

func TestExerciseCreateExact_RequiresDifficulty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.exercises.CreateExact(ctx, ExerciseInput{Name: "Burpees", Category: "hiit"})
	expectValidation(t, err)

	created, err := f.exercises.CreateExact(ctx, ExerciseInput{Name: "Burpees", Category: "hiit", Difficulty: "Advanced"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Duration != nil {
		t.Fatalf("expected no defaulted duration, got %q", *created.Duration)
	}
}

func TestExerciseListOrderedByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"C", "A", "B"} {
		if _, err := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: name, Category: "core"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := f.exercises.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("expected ascending ids, got %d before %d", list[i-1].ID, list[i].ID)
		}
	}
}

func TestExerciseReplaceAndReplaceCore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Squat", Category: "lower-body", Muscles: ptr("Quads")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	core, err := f.exercises.ReplaceCore(ctx, created.ID, ExerciseInput{Name: "Goblet Squat", Category: "strength", Difficulty: "Intermediate"})
	if err != nil {
		t.Fatalf("replace core: %v", err)
	}
	if core.Muscles != "Quads" || core.Duration == nil {
		t.Fatalf("expected duration and muscles to be kept, got %+v", core)
	}

	full, err := f.exercises.Replace(ctx, created.ID, ExerciseInput{Name: "Squat", Category: "lower-body", Difficulty: "Beginner"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if full.Muscles != "" || full.Duration != nil {
		t.Fatalf("expected full overwrite to clear unsupplied fields, got %+v", full)
	}

	if _, err := f.exercises.Replace(ctx, 999, ExerciseInput{Name: "X", Category: "core", Difficulty: "Beginner"}); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
}

func TestExerciseDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core"})

	if err := f.exercises.Delete(ctx, 999); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
	if list, _ := f.exercises.List(ctx); len(list) != 1 {
		t.Fatalf("expected catalog unchanged, got %d entries", len(list))
	}
	if err := f.exercises.Delete(ctx, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := f.exercises.Get(ctx, created.ID); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound after delete, got %v", err)
	}
}

type countingCache struct {
	stored      []models.Exercise
	hit         bool
	gets        int
	invalidated int
}

func (c *countingCache) GetExercises(context.Context) ([]models.Exercise, bool, error) {
	c.gets++
	return c.stored, c.hit, nil
}

func (c *countingCache) SetExercises(_ context.Context, exercises []models.Exercise) error {
	c.stored = exercises
	c.hit = true
	return nil
}

func (c *countingCache) InvalidateExercises(context.Context) error {
	c.invalidated++
	c.stored = nil
	c.hit = false
	return nil
}

func TestExerciseListUsesCache(t *testing.T) {
	store := memstore.New()
	cache := &countingCache{}
	svc := NewExerciseService(store.Exercises, cache, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected create to invalidate the cache, got %d", cache.invalidated)
	}

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !cache.hit || len(cache.stored) != 1 {
		t.Fatalf("expected list to populate the cache")
	}

	// A second row written behind the service is invisible until invalidation.
	if _, err := store.Exercises.Create(ctx, models.Exercise{Name: "Hidden", Category: models.CategoryCore, Difficulty: models.DifficultyBeginner}); err != nil {
		t.Fatalf("direct create: %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected cached listing, got %d entries", len(list))
	}
}

func TestProgressCurrent_CreatesOnce(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	first, outcome, err := f.progress.Current(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome != repository.LatestCreated {
		t.Fatalf("expected created outcome, got %s", outcome)
	}
	if first.WaterGoal != 8 || first.SleepGoal != 8 || first.StepsGoal != 10000 || first.WaterIntake != 0 {
		t.Fatalf("expected default goals, got %+v", first)
	}

	second, outcome, err := f.progress.Current(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome != repository.LatestFound || second.ID != first.ID {
		t.Fatalf("expected the same row to be found, got outcome=%s id=%d", outcome, second.ID)
	}
}

func TestProgressLogWeight(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	created, outcome, err := f.progress.LogWeight(ctx, user.ID, 80.5, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome != repository.LatestCreated || created.GoalWeight != nil || *created.Weight != 80.5 {
		t.Fatalf("unexpected created row %+v (outcome %s)", created, outcome)
	}

	withGoal, _, err := f.progress.LogWeight(ctx, user.ID, 79, ptr(70.0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if withGoal.ID != created.ID || *withGoal.Weight != 79 || *withGoal.GoalWeight != 70 {
		t.Fatalf("expected latest row updated, got %+v", withGoal)
	}

	kept, _, _ := f.progress.LogWeight(ctx, user.ID, 78, nil)
	if kept.GoalWeight == nil || *kept.GoalWeight != 70 {
		t.Fatalf("expected goal weight to be kept when not supplied, got %v", kept.GoalWeight)
	}
}

func TestProgressSetGoalAndWater(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	row, _, err := f.progress.SetGoal(ctx, user.ID, 65)
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if row.Weight != nil || *row.GoalWeight != 65 {
		t.Fatalf("unexpected row %+v", row)
	}

	row, outcome, err := f.progress.LogWater(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("log water: %v", err)
	}
	if outcome != repository.LatestFound || row.WaterIntake != 0 || *row.GoalWeight != 65 {
		t.Fatalf("unexpected row %+v (outcome %s)", row, outcome)
	}
}

func TestProgressLogMeasurements_CreateVersusUpdate(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	created, outcome, err := f.progress.LogMeasurements(ctx, user.ID, Measurements{Chest: ptr(100.0)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome != repository.LatestCreated || created.Waist != nil || *created.Chest != 100 {
		t.Fatalf("expected unsupplied fields to be null on create, got %+v", created)
	}

	updated, _, err := f.progress.LogMeasurements(ctx, user.ID, Measurements{Waist: ptr(80.0)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Chest == nil || *updated.Chest != 100 || *updated.Waist != 80 {
		t.Fatalf("expected supplied-only overwrite on update, got %+v", updated)
	}
}

func TestProgressLogWorkoutNote(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	strength := models.WorkoutType("strength")
	created, _, err := f.progress.LogWorkoutNote(ctx, user.ID, WorkoutNote{WorkoutType: &strength, Duration: ptr(45)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Feeling != nil || created.Notes != nil || *created.WorkoutDuration != 45 {
		t.Fatalf("unexpected created row %+v", created)
	}

	good := models.Feeling("good")
	updated, _, err := f.progress.LogWorkoutNote(ctx, user.ID, WorkoutNote{Feeling: &good, Notes: ptr("felt fine")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if *updated.WorkoutType != strength || *updated.Feeling != good || *updated.WorkoutDuration != 45 {
		t.Fatalf("expected supplied-only overwrite, got %+v", updated)
	}

	bad := models.Feeling("meh")
	_, _, err = f.progress.LogWorkoutNote(ctx, user.ID, WorkoutNote{Feeling: &bad})
	expectValidation(t, err)
}

func TestProgressHistoryAndStats(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	cardio := models.WorkoutType("cardio")
	for i := 0; i < 40; i++ {
		row := models.NewProgress(user.ID, base)
		row.CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		if i%2 == 0 {
			row.WorkoutType = &cardio
		}
		f.store.Progress.Insert(ctx, row)
	}

	history, err := f.progress.History(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != DefaultHistoryLimit {
		t.Fatalf("expected %d entries, got %d", DefaultHistoryLimit, len(history))
	}
	if !history[0].CreatedAt.After(history[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}

	limited, _ := f.progress.History(ctx, user.ID, 5)
	if len(limited) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(limited))
	}

	stats, err := f.progress.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEntries != 40 || stats.TotalWorkouts != 20 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.ConsistencyScore != 133 {
		t.Fatalf("expected consistency score=133, got %d", stats.ConsistencyScore)
	}
}

func TestConsistencyScore(t *testing.T) {
	cases := map[int]int{0: 0, 1: 3, 15: 50, 30: 100, 45: 150}
	for total, want := range cases {
		if got := ConsistencyScore(total); got != want {
			t.Fatalf("expected score(%d)=%d, got %d", total, want, got)
		}
	}
}

func TestProgressIsolatedPerUser(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bobby")
	ctx := context.Background()

	if _, _, err := f.progress.LogWeight(ctx, alice.ID, 60, nil); err != nil {
		t.Fatalf("log weight: %v", err)
	}
	row, outcome, err := f.progress.Current(ctx, bob.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if outcome != repository.LatestCreated || row.Weight != nil {
		t.Fatalf("expected a fresh row for bob, got %+v", row)
	}
}

func TestAdminUpdateRole(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice")
	ctx := context.Background()

	updated, err := f.admin.UpdateRole(ctx, user.ID, "admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}

	_, err = f.admin.UpdateRole(ctx, user.ID, "superuser")
	if verr := expectValidation(t, err); verr.Message != `Invalid role. Use "user" or "admin".` {
		t.Fatalf("unexpected message %q", verr.Message)
	}
	if _, err := f.admin.UpdateRole(ctx, 999, "user"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin")
	target := f.register(t, "target")
	ctx := context.Background()

	if _, _, err := f.progress.LogWater(ctx, target.ID, 3); err != nil {
		t.Fatalf("log water: %v", err)
	}

	if err := f.admin.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := f.store.Users.GetByID(ctx, admin.ID); err != nil {
		t.Fatalf("expected admin account to remain, got %v", err)
	}

	if err := f.admin.DeleteUser(ctx, admin.ID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := f.admin.DeleteUser(ctx, admin.ID, target.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total, _, _ := f.store.Progress.Counts(ctx, target.ID); total != 0 {
		t.Fatalf("expected progress to cascade, got %d rows", total)
	}
}

// racingStore lets a catalog write land while List is reading the store.
type racingStore struct {
	ExerciseStore
	duringList func()
}

func (r *racingStore) List(ctx context.Context) ([]models.Exercise, error) {
	list, err := r.ExerciseStore.List(ctx)
	if r.duringList != nil {
		hook := r.duringList
		r.duringList = nil
		hook()
	}
	return list, err
}

func TestExerciseListDoesNotCacheStaleListing(t *testing.T) {
	store := memstore.New()
	cache := &countingCache{}
	racing := &racingStore{ExerciseStore: store.Exercises}
	svc := NewExerciseService(racing, cache, zerolog.Nop())
	ctx := context.Background()

	racing.duringList = func() {
		if _, err := svc.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected the listing read before the write, got %d entries", len(list))
	}
	if cache.hit {
		t.Fatalf("expected the stale listing to stay out of the cache")
	}

	list, _ = svc.List(ctx)
	if len(list) != 1 || !cache.hit {
		t.Fatalf("expected the next list to see and cache the new exercise, got %d entries", len(list))
	}
}
