package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fitx/api/internal/config"
	"fitx/api/internal/middleware"
	"fitx/api/internal/models"
	"fitx/api/internal/service"
)

// HealthCheck probes one backing dependency.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Dependencies struct {
	Log       zerolog.Logger
	Config    *config.AppConfig
	Auth      *service.AuthService
	Exercises *service.ExerciseService
	Progress  *service.ProgressService
	Admin     *service.AdminService
	// Media is nil when object storage is not configured.
	Media  *service.MediaService
	Checks []HealthCheck
}

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	exercises *service.ExerciseService
	progress  *service.ProgressService
	admin     *service.AdminService
	media     *service.MediaService
	checks    []HealthCheck
}

func NewHandlerSet(deps Dependencies) HandlerSet {
	return HandlerSet{
		log:       deps.Log,
		cfg:       deps.Config,
		auth:      deps.Auth,
		exercises: deps.Exercises,
		progress:  deps.Progress,
		admin:     deps.Admin,
		media:     deps.Media,
		checks:    deps.Checks,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	authenticate := middleware.Auth(h.auth)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.GET("/me", authenticate, h.Me)
	}

	exercises := router.Group("/exercises")
	{
		exercises.GET("", h.ListExercises)
		exercises.GET("/:id", h.GetExercise)
		exercises.POST("", authenticate, adminOnly, h.CreateExercise)
		exercises.PUT("/:id", authenticate, adminOnly, h.UpdateExercise)
		exercises.DELETE("/:id", authenticate, adminOnly, h.DeleteExercise)
		if h.media != nil {
			exercises.GET("/:id/media", h.ExerciseMedia)
		}
	}

	progress := router.Group("/progress")
	progress.Use(authenticate)
	{
		progress.GET("/current", h.CurrentProgress)
		progress.POST("/weight", h.LogWeight)
		progress.POST("/goal", h.SetGoal)
		progress.POST("/measurements", h.LogMeasurements)
		progress.POST("/water", h.LogWater)
		progress.POST("/workout-note", h.LogWorkoutNote)
		progress.GET("/history", h.ProgressHistory)
		progress.GET("/stats", h.ProgressStats)
	}

	admin := router.Group("/admin")
	admin.Use(authenticate, adminOnly)
	{
		admin.GET("/users", h.AdminListUsers)
		admin.PUT("/users/:id/role", h.AdminUpdateRole)
		admin.DELETE("/users/:id", h.AdminDeleteUser)

		admin.GET("/exercises", h.AdminListExercises)
		admin.POST("/exercises", h.AdminCreateExercise)
		admin.PUT("/exercises/:id", h.AdminUpdateExercise)
		admin.DELETE("/exercises/:id", h.AdminDeleteExercise)
		if h.media != nil {
			admin.POST("/exercises/:id/media", h.AdminUploadMedia)
		}
	}
}

func (h HandlerSet) currentUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondFailure(c, http.StatusUnauthorized, "Unauthorized: No user authenticated")
	}
	return user, ok
}
