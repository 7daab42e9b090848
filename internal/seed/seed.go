// Package seed loads the starter exercise catalog and bootstraps the first
// admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"fitx/api/internal/models"
	"fitx/api/internal/service"
)

type CatalogEntry struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Difficulty  string   `yaml:"difficulty"`
	Duration    string   `yaml:"duration"`
	Muscles     []string `yaml:"muscles"`
	VideoID     string   `yaml:"videoId"`
	Description string   `yaml:"description"`
}

type catalogFile struct {
	Exercises []CatalogEntry `yaml:"exercises"`
}

func LoadCatalogFile(path string) ([]CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes and validates a catalog document. Unknown keys are errors.
func LoadCatalog(r io.Reader) ([]CatalogEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i, entry := range doc.Exercises {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if !models.ExerciseCategory(entry.Category).Valid() {
			return nil, fmt.Errorf("catalog entry %q: invalid category %q", entry.Name, entry.Category)
		}
		if entry.Difficulty != "" && !models.Difficulty(entry.Difficulty).Valid() {
			return nil, fmt.Errorf("catalog entry %q: invalid difficulty %q", entry.Name, entry.Difficulty)
		}
	}
	return doc.Exercises, nil
}

type Truncater interface {
	Truncate(ctx context.Context) error
}

type Seeder struct {
	exercises *service.ExerciseService
	truncater Truncater
	auth      *service.AuthService
	users     service.UserStore
	log       zerolog.Logger
}

func NewSeeder(exercises *service.ExerciseService, truncater Truncater, auth *service.AuthService, users service.UserStore, log zerolog.Logger) *Seeder {
	return &Seeder{
		exercises: exercises,
		truncater: truncater,
		auth:      auth,
		users:     users,
		log:       log,
	}
}

// SeedCatalog inserts entries in order, optionally emptying the catalog first.
func (s *Seeder) SeedCatalog(ctx context.Context, entries []CatalogEntry, truncate bool) (int, error) {
	if truncate {
		if err := s.truncater.Truncate(ctx); err != nil {
			return 0, fmt.Errorf("truncate exercises: %w", err)
		}
		s.log.Warn().Msg("exercise catalog truncated")
	}

	for i, entry := range entries {
		input := service.ExerciseInput{
			Name:        entry.Name,
			Category:    entry.Category,
			Difficulty:  entry.Difficulty,
			VideoID:     &entry.VideoID,
			Description: &entry.Description,
		}
		if entry.Duration != "" {
			input.Duration = &entry.Duration
		}
		if len(entry.Muscles) > 0 {
			joined := strings.Join(entry.Muscles, ", ")
			input.Muscles = &joined
		}

		if _, err := s.exercises.CreateWithDefaults(ctx, input); err != nil {
			return i, fmt.Errorf("seed %q: %w", entry.Name, err)
		}
	}

	s.log.Info().Int("count", len(entries)).Msg("exercise catalog seeded")
	return len(entries), nil
}

type AdminAccount struct {
	Email    string
	Username string
	Password string
}

// BootstrapAdmin registers the account and promotes it. An existing account
// with the same email is promoted instead.
func (s *Seeder) BootstrapAdmin(ctx context.Context, account AdminAccount) (models.User, error) {
	result, err := s.auth.Register(ctx, service.RegisterInput{
		Username: account.Username,
		Email:    account.Email,
		Password: account.Password,
	})

	var userID int64
	switch {
	case err == nil:
		userID = result.User.ID
	case errors.Is(err, service.ErrConflict):
		existing, findErr := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(account.Email)))
		if findErr != nil {
			return models.User{}, fmt.Errorf("admin %s exists under another email: %w", account.Username, findErr)
		}
		userID = existing.ID
	default:
		return models.User{}, err
	}

	user, err := s.users.UpdateRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return models.User{}, fmt.Errorf("promote admin: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("admin account ready")
	return user, nil
}
