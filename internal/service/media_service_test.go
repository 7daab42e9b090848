package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fitx/api/internal/config"
)

type fakeMediaStore struct {
	objects map[string][]byte
	removed []string
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: make(map[string][]byte)}
}

func (s *fakeMediaStore) PutObject(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeMediaStore) RemoveObject(_ context.Context, key string) error {
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeMediaStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://media.example/" + key + "?sig=1", nil
}

func newMediaFixture(t *testing.T) (*fixture, *fakeMediaStore, *MediaService) {
	t.Helper()
	f := newFixture(t)
	store := newFakeMediaStore()
	cfg := config.StorageConfig{MaxUploadBytes: 1024, PresignTTL: time.Minute}
	return f, store, NewMediaService(f.exercises, store, cfg, zerolog.Nop())
}

var pngHead = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestMediaUpload_StoresAndLinksObject(t *testing.T) {
	f, store, media := newMediaFixture(t)
	ctx := context.Background()
	exercise, _ := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core", VideoID: ptr("pSHjTRCQxIw")})

	updated, err := media.Upload(ctx, MediaUploadInput{ExerciseID: exercise.ID, File: bytes.NewReader(pngHead), DeclaredMIME: "image/png"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(updated.VideoID, "exercises/1/") || !strings.HasSuffix(updated.VideoID, ".png") {
		t.Fatalf("unexpected object key %q", updated.VideoID)
	}
	if _, ok := store.objects[updated.VideoID]; !ok {
		t.Fatalf("expected object %q to be stored", updated.VideoID)
	}

	url, err := media.MediaURL(ctx, exercise.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(url, updated.VideoID) {
		t.Fatalf("expected presigned url for %q, got %q", updated.VideoID, url)
	}
}

func TestMediaUpload_Rejects(t *testing.T) {
	f, store, media := newMediaFixture(t)
	ctx := context.Background()
	exercise, _ := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core"})

	cases := map[string]MediaUploadInput{
		"unknown type":  {ExerciseID: exercise.ID, File: strings.NewReader("just text")},
		"mime mismatch": {ExerciseID: exercise.ID, File: bytes.NewReader(pngHead), DeclaredMIME: "image/jpeg"},
		"empty":         {ExerciseID: exercise.ID, File: bytes.NewReader(nil)},
		"too large":     {ExerciseID: exercise.ID, File: bytes.NewReader(append(append([]byte{}, pngHead...), make([]byte, 2048)...))},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := media.Upload(ctx, input)
			expectValidation(t, err)
		})
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected nothing stored, got %d objects", len(store.objects))
	}

	_, err := media.Upload(ctx, MediaUploadInput{ExerciseID: 999, File: bytes.NewReader(pngHead)})
	if !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
}

func TestMediaURL_ExternalReferenceIsNotServed(t *testing.T) {
	f, _, media := newMediaFixture(t)
	ctx := context.Background()
	exercise, _ := f.exercises.CreateWithDefaults(ctx, ExerciseInput{Name: "Plank", Category: "core", VideoID: ptr("pSHjTRCQxIw")})

	if _, err := media.MediaURL(ctx, exercise.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}
