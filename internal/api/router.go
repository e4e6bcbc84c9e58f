package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/banco/cliente-api/internal/api/handler"
	"github.com/banco/cliente-api/internal/api/middleware"
	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/service"
	"github.com/banco/cliente-api/internal/infrastructure/config"
	mongodb "github.com/banco/cliente-api/internal/infrastructure/db/mongo"
	redisdb "github.com/banco/cliente-api/internal/infrastructure/db/redis"
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
	e.Use(echoprometheus.NewMiddleware("cliente_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxFailures, time.Duration(cfg.Login.WindowMinutes)*time.Minute)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, loginLimiter, log)
	customerService := service.NewCustomerService(customerRepo, productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)

	// --- Public auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	// --- Client directory (auth gateway once, role policy per route) ---
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator, domain.RoleUser)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	clientes := e.Group("/api/clientes", middleware.Auth(tokenService, userRepo, log))
	clientes.POST("", customerHandler.Create, adminOnly)
	clientes.GET("", customerHandler.GetAll, anyRole)
	clientes.GET("/por-producto/:codigo", customerHandler.GetByProductCode, anyRole)
	clientes.POST("/batch", customerHandler.CreateBatch, adminOnly)
	clientes.PATCH("/telefono/batch", customerHandler.UpdatePhoneBatch, anyRole)
	clientes.DELETE("/batch", customerHandler.DeleteBatch, adminOnly)
	clientes.GET("/:dni", customerHandler.GetByNationalID, anyRole)
	clientes.PATCH("/:dni/telefono", customerHandler.UpdatePhone, anyRole)
	clientes.DELETE("/:dni", customerHandler.Delete, adminOnly)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
