package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/showcase/portfolio-api/internal/api/handler"
	"github.com/showcase/portfolio-api/internal/api/middleware"
	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/service"
	"github.com/showcase/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/showcase/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/showcase/portfolio-api/internal/infrastructure/db/postgres"
	redisdb "github.com/showcase/portfolio-api/internal/infrastructure/db/redis"
	"github.com/showcase/portfolio-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pg *gorm.DB, mdb *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portfolio"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pg)
	reviewRepo := mongodb.NewReviewRepository(mdb)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, sessionStore, log)
	reviewService := service.NewReviewService(reviewRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Review routes (anonymous: the carousel and its form need no login) ---
	e.POST("/reviews", reviewHandler.Submit)
	e.GET("/reviews", reviewHandler.List)

	// --- Admin routes ---
	admin := e.Group("/admin", middleware.Session(sessionStore), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", authHandler.ListUsers)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pg, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
