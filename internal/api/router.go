// Package api provides the HTTP API for VayuDrishti.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/api/handler"
	"github.com/vayudrishti/vayudrishti/internal/api/middleware"
	"github.com/vayudrishti/vayudrishti/internal/auth"
	"github.com/vayudrishti/vayudrishti/internal/forecast"
	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/location"
	"github.com/vayudrishti/vayudrishti/internal/user"
	"github.com/vayudrishti/vayudrishti/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	AuthService     *auth.Service
	UserService     *user.Service
	Resolver        *location.Resolver
	Tracker         *location.Tracker
	HistoryRepo     history.Repository
	ForecastService *forecast.Service
	WeatherProvider weather.Provider

	// DB enables the readiness probe's database ping when set.
	DB *pgxpool.Pool

	// Providers lists the configured upstream sources for /ops/status.
	Providers []string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "vayudrishti-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.Providers, cfg.Tracker)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.UserService, cfg.Logger)
	meHandler := handler.NewMeHandler(cfg.UserService)
	airHandler := handler.NewAirHandler(cfg.Resolver, cfg.Tracker, cfg.UserService)
	historyHandler := handler.NewHistoryHandler(cfg.HistoryRepo)
	forecastHandler := handler.NewForecastHandler(cfg.ForecastService)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherProvider)

	authMiddleware := middleware.Auth(cfg.AuthService)

	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)           // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
			r.Post("/password-reset", authHandler.RequestPasswordReset)
			r.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Air quality endpoints (public, auth optional for saved
		// locations and personalized advisories)
		r.Route("/air", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.AuthService))
			r.With(expensiveRateLimit).Get("/current", airHandler.GetCurrent)
			r.With(expensiveRateLimit).Get("/advisory", airHandler.GetAdvisory)
			r.With(standardRateLimit).Get("/history", historyHandler.GetHistory)
			r.With(expensiveRateLimit).Get("/forecast", forecastHandler.GetForecast)
		})

		// Weather endpoint (public)
		r.With(expensiveRateLimit).Get("/weather", weatherHandler.GetCurrent)

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Get("/", meHandler.GetMe)
			r.Put("/", meHandler.UpdateMe)
			r.Get("/preferences", meHandler.GetPreferences)
			r.Put("/preferences", meHandler.UpdatePreferences)
		})
	})

	return r
}
