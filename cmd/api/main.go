// Package main provides the entrypoint for the VayuDrishti API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/api"
	"github.com/vayudrishti/vayudrishti/internal/api/middleware"
	"github.com/vayudrishti/vayudrishti/internal/auth"
	"github.com/vayudrishti/vayudrishti/internal/cache"
	"github.com/vayudrishti/vayudrishti/internal/database"
	"github.com/vayudrishti/vayudrishti/internal/forecast"
	"github.com/vayudrishti/vayudrishti/internal/geocode/nominatim"
	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/location"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/measurement/openaq"
	"github.com/vayudrishti/vayudrishti/internal/measurement/waqi"
	"github.com/vayudrishti/vayudrishti/internal/telemetry"
	"github.com/vayudrishti/vayudrishti/internal/user"
	"github.com/vayudrishti/vayudrishti/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "vayudrishti-api"

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting VayuDrishti API")

	port := envOrDefault("APP_PORT", "8080")
	env := envOrDefault("APP_ENV", "development")
	otlpEndpoint := envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Reading cache: Redis when configured, in-process otherwise.
	var readingCache cache.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisCache, cacheErr := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if cacheErr != nil {
			log.Fatal().Err(cacheErr).Msg("failed to connect to redis")
		}
		readingCache = redisCache
		log.Info().Str("addr", redisAddr).Msg("redis cache connected")
	} else {
		readingCache = cache.NewMemory()
		log.Warn().Msg("REDIS_ADDR not set, using in-process cache")
	}

	// Auth
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     envOrDefault("JWT_ISSUER", "https://api.vayudrishti.in"),
		Audience:   envOrDefault("JWT_AUDIENCE", "vayudrishti-api"),
	})

	authService := auth.NewService(auth.ServiceConfig{
		JWTService:  jwtService,
		UserRepo:    auth.NewPostgresUserRepository(pool),
		RefreshRepo: auth.NewPostgresRefreshTokenRepository(pool),
		ResetRepo:   auth.NewPostgresResetTokenRepository(pool),
	})
	log.Info().Msg("auth service initialized")

	userService := user.NewService(user.NewPostgresRepository(pool))
	log.Info().Msg("user service initialized")

	// Measurement provider: WAQI by default, OpenAQ as an alternative.
	var provider measurement.Provider
	providerName := envOrDefault("AQI_PROVIDER", "waqi")
	switch providerName {
	case "openaq":
		provider = openaq.NewClient(openaq.ClientConfig{})
	default:
		providerName = "waqi"
		provider = waqi.NewClient(waqi.ClientConfig{
			Token: os.Getenv("WAQI_TOKEN"),
		})
	}
	log.Info().Str("provider", providerName).Msg("measurement provider initialized")

	measurementService := measurement.NewService(measurement.ServiceConfig{
		Provider: provider,
		Cache:    readingCache,
		Logger:   log,
	})

	geocoder := nominatim.NewClient(nominatim.ClientConfig{
		UserAgent: "vayudrishti/" + Version,
	})

	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder:      geocoder,
		Fetcher:       measurementService,
		Preferences:   userService,
		FallbackPlace: os.Getenv("FALLBACK_PLACE"),
		Logger:        log,
	})

	historyRepo := history.NewPostgresRepository(pool)

	forecastService := forecast.NewService(forecast.ServiceConfig{
		Predictor: forecast.NewClient(forecast.ClientConfig{
			BaseURL: os.Getenv("FORECAST_SERVICE_URL"),
		}),
		History: historyRepo,
		Logger:  log,
	})

	weatherProvider := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
	})

	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         metrics,
		AuthService:     authService,
		UserService:     userService,
		Resolver:        resolver,
		Tracker:         location.NewTracker(),
		HistoryRepo:     historyRepo,
		ForecastService: forecastService,
		WeatherProvider: weatherProvider,
		DB:              pool,
		Providers:       []string{providerName, "nominatim", "openweathermap"},
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
