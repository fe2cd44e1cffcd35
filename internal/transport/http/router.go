package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/goals-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/goals-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	User   *handler.UserHandler
	Goal   *handler.GoalHandler
	Health *handler.HealthHandler
}

func NewRouter(logger *slog.Logger, h Handlers, tokens middleware.TokenValidator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.NewWithFilters(logger, sloggin.IgnorePath("/healthz", "/readyz")))
	r.Use(middleware.Metrics())

	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("", h.User.SignUp)
	users.POST("/signin", h.User.SignIn)
	users.GET("/verify", h.User.Verify)

	// Protected goal routes
	goals := api.Group("/goals", middleware.Auth(tokens, logger))
	goals.POST("", h.Goal.Create)
	goals.GET("", h.Goal.List)
	goals.DELETE("/:id", h.Goal.Delete)

	return r
}
