package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"fitx/api/internal/models"
	"fitx/api/internal/repository"
)

type AdminService struct {
	users UserStore
	log   zerolog.Logger
}

func NewAdminService(users UserStore, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) UpdateRole(ctx context.Context, userID int64, role string) (models.User, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return models.User{}, invalid("role", `Invalid role. Use "user" or "admin".`)
	}

	user, err := s.users.UpdateRole(ctx, userID, parsed)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user role updated")
	return user, nil
}

// DeleteUser removes targetID on behalf of actorID. An admin can never delete
// their own account.
func (s *AdminService) DeleteUser(ctx context.Context, actorID int64, targetID int64) error {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if targetID == actorID {
		return ErrSelfDeletion
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info().Int64("user_id", targetID).Int64("actor_id", actorID).Msg("user deleted")
	return nil
}
