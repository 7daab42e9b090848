package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fitx/api/internal/config"
	"fitx/api/internal/ids"
	"fitx/api/internal/media/sniffer"
	"fitx/api/internal/models"
)

const mediaKeyPrefix = "exercises/"

// MediaStore is the object storage used for exercise media.
type MediaStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type MediaUploadInput struct {
	ExerciseID   int64
	File         io.Reader
	DeclaredMIME string
}

type MediaService struct {
	exercises *ExerciseService
	store     MediaStore
	cfg       config.StorageConfig
	log       zerolog.Logger
}

func NewMediaService(exercises *ExerciseService, store MediaStore, cfg config.StorageConfig, log zerolog.Logger) *MediaService {
	return &MediaService{
		exercises: exercises,
		store:     store,
		cfg:       cfg,
		log:       log,
	}
}

// Upload stores a sniffed image or video under the exercise and points the
// exercise's media reference at the new object key.
func (s *MediaService) Upload(ctx context.Context, input MediaUploadInput) (models.Exercise, error) {
	if input.File == nil {
		return models.Exercise{}, invalid("file", "File is required")
	}
	if _, err := s.exercises.Get(ctx, input.ExerciseID); err != nil {
		return models.Exercise{}, err
	}

	limit := s.cfg.MaxUploadBytes
	data, err := io.ReadAll(io.LimitReader(input.File, limit+1))
	if err != nil {
		return models.Exercise{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return models.Exercise{}, invalid("file", "File is empty")
	}
	if int64(len(data)) > limit {
		return models.Exercise{}, invalid("file", fmt.Sprintf("File exceeds %d bytes", limit))
	}

	result, err := sniffer.DetectHead(head(data))
	if err != nil {
		return models.Exercise{}, invalid("file", "Unsupported media type. Use jpeg, png, gif, webp, mp4 or webm")
	}
	if declared := input.DeclaredMIME; declared != "" && declared != "application/octet-stream" && declared != result.MIME {
		return models.Exercise{}, invalid("file", fmt.Sprintf("Content type mismatch: declared %s, actual %s", declared, result.MIME))
	}

	key := fmt.Sprintf("%s%d/%s.%s", mediaKeyPrefix, input.ExerciseID, ids.New(), result.Extension())
	if err := s.store.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return models.Exercise{}, err
	}

	exercise, err := s.exercises.SetMedia(ctx, input.ExerciseID, key)
	if err != nil {
		if rmErr := s.store.RemoveObject(ctx, key); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("object_key", key).Msg("orphaned media object")
		}
		return models.Exercise{}, err
	}

	s.log.Info().
		Int64("exercise_id", exercise.ID).
		Str("object_key", key).
		Str("mime", result.MIME).
		Int("size", len(data)).
		Msg("exercise media uploaded")
	return exercise, nil
}

// MediaURL presigns the exercise's stored object. External references such
// as video ids are not served here.
func (s *MediaService) MediaURL(ctx context.Context, exerciseID int64) (string, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if !IsStoredMedia(exercise.VideoID) {
		return "", ErrMediaNotFound
	}

	url, err := s.store.PresignGet(ctx, exercise.VideoID, s.cfg.PresignTTL)
	if err != nil {
		return "", err
	}
	return url, nil
}

// IsStoredMedia reports whether ref is an object key written by Upload.
func IsStoredMedia(ref string) bool {
	return strings.HasPrefix(ref, mediaKeyPrefix)
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
