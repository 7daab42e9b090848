package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"fitx/api/internal/config"
	"fitx/api/internal/handlers"
	"fitx/api/internal/repository/memstore"
	"fitx/api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine() *gin.Engine {
	cfg := &config.AppConfig{
		Environment:      "test",
		AllowCORSOrigins: []string{"*"},
		Security: config.SecurityConfig{
			JWTSecret:  "server-secret",
			JWTTTL:     time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}
	store := memstore.New()
	log := zerolog.Nop()

	h := handlers.NewHandlerSet(handlers.Dependencies{
		Log:       log,
		Config:    cfg,
		Auth:      service.NewAuthService(store.Users, cfg.Security, log),
		Exercises: service.NewExerciseService(store.Exercises, nil, log),
		Progress:  service.NewProgressService(store.Progress, log),
		Admin:     service.NewAdminService(store.Users, log),
	})
	return NewEngine(cfg, log, h)
}

func TestNoRoute(t *testing.T) {
	engine := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status=404, got %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Message != "Route GET /api/unknown not found" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestEngineMiddlewareChain(t *testing.T) {
	engine := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status=200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a request id header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS headers for wildcard origins")
	}
}
