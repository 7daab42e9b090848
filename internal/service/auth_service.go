package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"fitx/api/internal/config"
	"fitx/api/internal/models"
	"fitx/api/internal/repository"
	"fitx/api/internal/security"
)

type AuthService struct {
	users UserStore
	cfg   config.SecurityConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg config.SecurityConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

type AuthResult struct {
	Token string
	User  models.User
}

// Register creates a regular, active account. Callers cannot choose the role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = normalizeIdentifier(input.Email)
	input.Username = normalizeIdentifier(input.Username)
	if input.Email == "" {
		return AuthResult{}, invalid("email", "Please provide a valid email")
	}
	if n := utf8.RuneCountInString(input.Username); n < 3 || n > 50 {
		return AuthResult{}, invalid("username", "Username must be between 3 and 50 characters")
	}
	if utf8.RuneCountInString(input.Password) < 6 {
		return AuthResult{}, invalid("password", "Password must be at least 6 characters")
	}
	if len(input.Password) > security.MaxPasswordBytes {
		return AuthResult{}, invalid("password", "Password must be at most 72 bytes")
	}

	if _, err := s.users.FindByEmailOrUsername(ctx, input.Email, input.Username); err == nil {
		return AuthResult{}, ErrConflict
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("lookup existing user: %w", err)
	}

	passwordHash, err := security.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.Create(ctx, models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    trimmedOrNil(input.FirstName),
		LastName:     trimmedOrNil(input.LastName),
		Role:         models.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return AuthResult{}, ErrConflict
		}
		return AuthResult{}, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return AuthResult{Token: token, User: user}, nil
}

// IssueToken checks credentials and signs a session token for the matching user.
func (s *AuthService) IssueToken(ctx context.Context, email string, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeIdentifier(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

// VerifyToken resolves a bearer token to the current user record. The role and
// email in the payload are not trusted; the user is re-read from the store.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (models.User, error) {
	if strings.TrimSpace(token) == "" {
		return models.User{}, ErrMissingToken
	}

	claims, err := security.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) signToken(user models.User) (string, error) {
	return security.GenerateToken(s.cfg.JWTSecret, user.ID, user.Email, string(user.Role), s.cfg.JWTTTL)
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
