package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homeharbor/harbor-api/internal/api/handler"
	"github.com/homeharbor/harbor-api/internal/api/middleware"
	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
	"github.com/homeharbor/harbor-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Auth          ports.AuthService
	Directory     ports.DirectoryService
	Tasks         ports.TaskService
	Notifications ports.NotificationService
	Idempotency   ports.IdempotencyStore

	// Mongo and Redis are optional and only used for readiness probes.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))

	promCfg := echoprometheus.MiddlewareConfig{
		Namespace: "homeharbor",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/swagger/*" || p == "/health" || p == "/health/ready"
		},
	}
	handlerCfg := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		handlerCfg.Gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Idempotency, deps.Logger)
	adminHandler := handler.NewAdminHandler(deps.Auth)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory)
	taskHandler := handler.NewTaskHandler(deps.Tasks, deps.Idempotency, deps.Logger)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Auth)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	v1 := e.Group("/v1", authMiddleware)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/pending-users", adminHandler.ListPending)
	admin.GET("/approved-users", adminHandler.ListApproved)
	admin.POST("/pending-users/:id/approve", adminHandler.Approve)
	admin.POST("/pending-users/:id/reject", adminHandler.Reject)

	v1.GET("/directory", directoryHandler.List)
	v1.GET("/directory/stats", directoryHandler.Stats, middleware.RBAC(domain.RoleAdmin, domain.RoleStaff))
	v1.GET("/directory/:id", directoryHandler.Get)

	staffOnly := middleware.RBAC(domain.RoleStaff)
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Submit, middleware.RBAC(domain.RoleResident, domain.RoleAdmin))
	v1.POST("/tasks/:id/accept", taskHandler.Accept, staffOnly)
	v1.POST("/tasks/:id/reject", taskHandler.Reject, staffOnly)
	v1.POST("/tasks/:id/complete", taskHandler.Complete, staffOnly)

	v1.GET("/notifications", notificationHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
