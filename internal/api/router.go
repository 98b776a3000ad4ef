package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/task-system/internal/api/handler"
	"github.com/taskhive/task-system/internal/api/middleware"
	"github.com/taskhive/task-system/internal/core/service"
	"github.com/taskhive/task-system/internal/infrastructure/config"
	mongodb "github.com/taskhive/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/task-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhive"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)
	publisher := redisdb.NewEventPublisher(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL, log)
	taskService := service.NewTaskService(taskRepo, log)
	userService := service.NewUserService(userRepo, taskRepo, publisher, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler(userService)

	authMW := middleware.Auth(cfg.JWTSecret, tokenStore, userRepo)
	guestMW := middleware.GuestOnly()

	// --- Auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/register", authHandler.Register, guestMW)
	apiGroup.POST("/login", authHandler.Login, guestMW)
	apiGroup.POST("/logout", authHandler.Logout, authMW)

	// --- Task routes ---
	tasks := apiGroup.Group("/tasks", authMW)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Show)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.PATCH("/:id/complete", taskHandler.Complete)

	// --- User management + analytics ---
	users := apiGroup.Group("/users", authMW)
	users.GET("/analytics/tasks", userHandler.TaskAnalytics)
	users.GET("/analytics/deadlines", userHandler.UpcomingDeadlines)
	users.GET("/analytics/my-deadlines", userHandler.MyUpcomingDeadlines)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Show)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	apiGroup.PUT("/profile", userHandler.UpdateProfile, authMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
