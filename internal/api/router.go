package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fkedem/portfolio-backend/internal/api/handler"
	"github.com/fkedem/portfolio-backend/internal/api/middleware"
	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
	"github.com/fkedem/portfolio-backend/internal/core/service"
	mongodb "github.com/fkedem/portfolio-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/fkedem/portfolio-backend/internal/infrastructure/db/redis"

	_ "github.com/fkedem/portfolio-backend/docs"
)

// RouterConfig carries the settings the router needs beyond its connections.
type RouterConfig struct {
	JWTSecret        string
	SubmissionLimit  int
	SubmissionWindow time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portfolio"))

	// --- Dependencies ---
	contactRepo := mongodb.NewContactRepository(db)
	testimonialRepo := mongodb.NewTestimonialRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	contactService := service.NewContactService(contactRepo, audit, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, audit, log)
	projectService := service.NewProjectService(projectRepo, audit, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	contactHandler := handler.NewContactHandler(contactService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService)
	projectHandler := handler.NewProjectHandler(projectService)
	authHandler := handler.NewAuthHandler(authService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	limiter := redisdb.NewSubmissionLimiter(rdb, cfg.SubmissionLimit, cfg.SubmissionWindow)
	rateLimit := middleware.SubmissionRateLimit(limiter, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Contact form ---
	e.POST("/api/contact", contactHandler.Submit, rateLimit)
	e.GET("/api/contact", contactHandler.List, authMiddleware, adminOnly)
	e.GET("/api/contact/summary", contactHandler.Summary, authMiddleware, adminOnly)
	e.PUT("/api/contact/:id/status", contactHandler.UpdateStatus, authMiddleware, adminOnly)

	// --- Testimonials ---
	e.POST("/api/testimonials", testimonialHandler.Submit, rateLimit)
	e.GET("/api/testimonials", testimonialHandler.ListPublic)
	e.GET("/api/testimonials/all", testimonialHandler.ListAll, authMiddleware, adminOnly)
	e.GET("/api/testimonials/summary", testimonialHandler.Summary, authMiddleware, adminOnly)
	e.PUT("/api/testimonials/:id/approval", testimonialHandler.UpdateApproval, authMiddleware, adminOnly)
	e.DELETE("/api/testimonials/:id", testimonialHandler.Delete, authMiddleware, adminOnly)

	// --- Projects ---
	e.GET("/api/projects", projectHandler.ListPublic)
	e.GET("/api/projects/all", projectHandler.ListAll, authMiddleware, adminOnly)
	e.GET("/api/projects/summary", projectHandler.Summary, authMiddleware, adminOnly)
	e.GET("/api/projects/:id", projectHandler.GetPublic)
	e.POST("/api/projects", projectHandler.Create, authMiddleware, adminOnly)
	e.PUT("/api/projects/:id", projectHandler.Update, authMiddleware, adminOnly)
	e.DELETE("/api/projects/:id", projectHandler.Delete, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
