package api

import (
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/leadnest/leadnest-api/internal/api/handler"
	"github.com/leadnest/leadnest-api/internal/api/middleware"
	"github.com/leadnest/leadnest-api/internal/core/service"
	"github.com/leadnest/leadnest-api/internal/infrastructure/db/supabase"
)

// authRateLimit bounds signup/login attempts per client IP. Only the public
// auth routes are limited; everything else already requires a valid token.
var authRateLimit = redis_rate.PerMinute(20)

// Deps carries everything the router needs. Store may be nil when the
// SUPABASE_* environment is absent: the process still serves, but every
// store-backed route answers a configuration error.
type Deps struct {
	Store       *supabase.Client
	Redis       *redis.Client
	FrontendURL string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("leadbroker"))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(storePinger(deps.Store), deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	apiGroup := e.Group("/api")

	if deps.Store == nil {
		// Keep serving, but refuse store-backed work instead of crashing.
		apiGroup.Use(middleware.RequireStore(false))
		apiGroup.Any("/*", func(c echo.Context) error { return nil })
		return e
	}

	// --- Dependencies ---
	provider := supabase.NewAuthProvider(deps.Store)
	profiles := supabase.NewProfileRepository(deps.Store)
	leads := supabase.NewLeadRepository(deps.Store)
	apps := supabase.NewApplicationRepository(deps.Store)
	claims := supabase.NewCompletedTaskRepository(deps.Store)
	aggregates := supabase.NewAggregates(deps.Store)

	authService := service.NewAuthService(provider, deps.Logger)
	taskService := service.NewTaskService(profiles, claims, apps, deps.Logger)
	dashboardService := service.NewDashboardService(profiles, claims, leads, apps, deps.Logger)
	leadService := service.NewLeadService(leads, apps, aggregates, deps.Logger)
	profileService := service.NewProfileService(aggregates, profiles, provider, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	leadHandler := handler.NewLeadHandler(leadService)
	userHandler := handler.NewUserHandler(profileService)

	authMW := middleware.Auth(provider)

	// --- Public auth routes ---
	authGroup := apiGroup.Group("/auth")
	if deps.Redis != nil {
		authGroup.Use(middleware.RateLimit(deps.Redis, authRateLimit, deps.Logger))
	}
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	apiGroup.GET("/dashboard/data", dashboardHandler.Data, authMW)

	leadGroup := apiGroup.Group("/leads", authMW)
	leadGroup.POST("", leadHandler.Create)
	leadGroup.DELETE("/:id", leadHandler.Delete)
	leadGroup.GET("/:leadId/application-count", leadHandler.ApplicationCount)

	apiGroup.POST("/tasks/claim-credits", taskHandler.ClaimCredits, authMW)
	apiGroup.POST("/users/get-profile-details", userHandler.GetProfileDetails, authMW)

	return e
}

// storePinger avoids handing a typed-nil *supabase.Client to the readiness
// handler's interface field.
func storePinger(c *supabase.Client) handler.StorePinger {
	if c == nil {
		return nil
	}
	return c
}

// requestLogger emits one structured line per request at component boundary.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error()
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Err(v.Error).
				Msg("request")
			return nil
		},
	})
}
