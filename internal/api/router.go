package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/calorietrack/calorie-api/docs"
	"github.com/calorietrack/calorie-api/internal/api/handler"
	"github.com/calorietrack/calorie-api/internal/api/metrics"
	"github.com/calorietrack/calorie-api/internal/api/middleware"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	Auth    ports.AuthService
	Intake  ports.IntakeService
	Reports ports.ReportService
	Tokens  ports.TokenIssuer

	// Limiter guards /auth/*. Nil disables rate limiting.
	Limiter middleware.Limiter

	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handler.Pinger

	// PublicBaseURL prefixes download links. Empty uses the request host.
	PublicBaseURL string

	Log zerolog.Logger

	// Registry receives the HTTP middleware metrics. A fresh registry is
	// created when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metrics.Namespace,
		Registerer: reg,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	intakeHandler := handler.NewIntakeHandler(deps.Intake)
	reportHandler := handler.NewReportHandler(deps.Reports, deps.PublicBaseURL)
	profileHandler := handler.NewProfileHandler(deps.Auth, deps.Tokens)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	auth := e.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, deps.Log))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Download routes (the encrypted user id is the credential) ---
	e.GET("/user/download_pdf", reportHandler.DownloadPDF)
	e.GET("/user/download_csv", reportHandler.DownloadCSV)

	// --- Authenticated user routes ---
	user := e.Group("/user", authMiddleware)
	user.POST("/intake", intakeHandler.Record)
	user.GET("/intake", intakeHandler.Query)
	user.GET("/chart", reportHandler.Chart)
	user.GET("/csv", reportHandler.CSV)
	user.GET("/profile", profileHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
