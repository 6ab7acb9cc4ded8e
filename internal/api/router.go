package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wardlink/hospital-system/internal/api/handler"
	"github.com/wardlink/hospital-system/internal/api/middleware"
	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/service"
	"github.com/wardlink/hospital-system/internal/infrastructure/config"
	mongodb "github.com/wardlink/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/wardlink/hospital-system/internal/infrastructure/db/redis"
	"github.com/wardlink/hospital-system/internal/infrastructure/imagestore"
)

// NewRouter builds the Echo instance with every dependency wired: mongo
// repositories behind the cached directory, the auth stack, and the ward
// surface.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	wardRepo := mongodb.NewWardRepository(db)
	cache := redisdb.NewCache(rdb)
	images := imagestore.NewClient(cfg.ImageStore.BaseURL)
	hasher := service.NewBcryptHasher()
	issuer := service.NewJWTIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	userService := service.NewUserService(userRepo, wardRepo, cache, images, log)
	wardService := service.NewWardService(wardRepo, cache, log)
	authService := service.NewAuthService(userService, wardRepo, hasher, issuer, images, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	wardHandler := handler.NewWardHandler(wardService)

	authenticated := middleware.Auth(issuer)
	adminOnly := middleware.RBAC(domain.RoleSuper, domain.RoleAdmin, domain.RoleLegacyAdmin)
	directoryRoles := middleware.RBAC(domain.RoleSuper, domain.RoleAdmin, domain.RoleLegacyAdmin, domain.RoleService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.PATCH("/auth/password/:username", authHandler.ResetPassword, authenticated)

	// --- User directory ---
	users := e.Group("/users", authenticated, directoryRoles)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Wards ---
	wards := e.Group("/wards", authenticated)
	wards.GET("", wardHandler.List)
	wards.GET("/:id", wardHandler.Get)
	wards.POST("", wardHandler.Create, adminOnly)
	wards.PATCH("/:id", wardHandler.Update, adminOnly)
	wards.DELETE("/:id", wardHandler.Delete, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
