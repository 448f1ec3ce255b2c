package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/skillbridge/jobmatch/docs"
	"github.com/skillbridge/jobmatch/internal/api/handler"
	"github.com/skillbridge/jobmatch/internal/api/middleware"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

const (
	metricsNamespace = "skillbridge"
	metricsSubsystem = "http"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Verifier  ports.TokenVerifier
	Validator echo.Validator
	Health    map[string]handler.Pinger
	Log       zerolog.Logger

	// AllowOrigins lists browser origins allowed by CORS (the web client).
	AllowOrigins []string
	// RateLimit is requests per minute per client IP on public auth endpoints.
	// Zero disables limiting.
	RateLimit float64
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// prometheus default registry, which also holds the auth metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = d.Validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 metricsNamespace,
		Subsystem:                 metricsSubsystem,
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if len(d.AllowOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.AllowOrigins,
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	authHandler := handler.NewAuthHandler(d.Auth)
	requireAuth := middleware.Auth(d.Verifier)
	limited := rateLimiter(d.RateLimit)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup/jobseeker", authHandler.SignUpJobSeeker, limited...)
	auth.POST("/signup/employer", authHandler.SignUpEmployer, limited...)
	auth.POST("/signup/admin", authHandler.SignUpAdmin, requireAuth, middleware.RequireRole(domain.RoleAdmin))
	auth.POST("/signin", authHandler.SignIn, limited...)
	auth.GET("/verify-email", authHandler.VerifyEmail, limited...)
	auth.POST("/resend-verification", authHandler.ResendVerification, limited...)
	auth.POST("/forgot-password", authHandler.ForgotPassword, limited...)
	auth.POST("/reset-password", authHandler.ResetPassword, limited...)

	signedIn := []echo.MiddlewareFunc{requireAuth, middleware.AllowRoles()}
	auth.GET("/me", authHandler.Me, signedIn...)
	auth.POST("/signout", authHandler.SignOut, signedIn...)
	auth.POST("/refresh", authHandler.Refresh, signedIn...)

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// rateLimiter returns the per-IP limiter for public endpoints, or nothing
// when perMinute is not positive.
func rateLimiter(perMinute float64) []echo.MiddlewareFunc {
	if perMinute <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perMinute / 60),
		Burst:     int(perMinute),
		ExpiresIn: 5 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
		},
	})}
}

// requestLogger feeds access logs to zerolog. It logs the route pattern, not
// the raw URI, so one-time tokens in query strings stay out of the logs.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			if role, ok := c.Get(middleware.RoleKey).(domain.Role); ok {
				ev = ev.Str("role", role.String())
			}
			ev.Str("method", v.Method).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
