package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/academicms/portal-api/internal/api/handler"
	"github.com/academicms/portal-api/internal/api/metrics"
	"github.com/academicms/portal-api/internal/api/middleware"
	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/service"
	mongodb "github.com/academicms/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/academicms/portal-api/internal/infrastructure/db/redis"
	"github.com/academicms/portal-api/internal/infrastructure/queue"
	"github.com/academicms/portal-api/internal/pkg/config"
	"github.com/academicms/portal-api/internal/session"
)

// NewRouter builds the Echo instance with all routes registered. The
// returned dispatcher must be started by the caller; activity recording is
// inert until then.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)

	registry := session.NewRegistry()
	registry.OnChange(func(active int) {
		metrics.SessionsActive.Set(float64(active))
	})

	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.JWTTTL)
	activityService := service.NewActivityService(activityRepo)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)

	demo := handler.DemoAccount{
		Email:    cfg.Demo.Email,
		Password: cfg.Demo.Password,
		Enabled:  cfg.Env != "production",
	}

	authHandler := handler.NewAuthHandler(authService, registry, dispatcher, demo)
	meHandler := handler.NewMeHandler(authService, dispatcher, cfg.AppHost, cfg.AppPort)
	adminHandler := handler.NewAdminHandler(userRepo, registry, activityService)

	authMW := middleware.Auth(cfg.JWTSecret, denylist, registry)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	if demo.Enabled {
		e.POST("/auth/demo-login", authHandler.DemoLogin)
	}
	e.POST("/auth/session", authHandler.Session)
	e.GET("/auth/me", authHandler.Me, authMW)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Session-derived surface ---
	e.GET("/me/navigation", meHandler.Navigation, authMW)
	e.PATCH("/me/shops", meHandler.UpdateShops, authMW)
	e.GET("/shops/:name/url", meHandler.ShopRedirect, authMW)

	// --- Admin ---
	admin := e.Group("/admin", authMW, adminOnly)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/sessions", adminHandler.Sessions)
	admin.GET("/activity", adminHandler.Activity)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
