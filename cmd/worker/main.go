// Package main provides the entrypoint for the VayuDrishti polling worker.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/alert"
	"github.com/vayudrishti/vayudrishti/internal/database"
	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/measurement/waqi"
	"github.com/vayudrishti/vayudrishti/internal/weather"
	"github.com/vayudrishti/vayudrishti/internal/weather/openweathermap"
	"github.com/vayudrishti/vayudrishti/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "vayudrishti-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting VayuDrishti worker")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8081"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	provider := waqi.NewClient(waqi.ClientConfig{
		Token: os.Getenv("WAQI_TOKEN"),
	})

	measurementService := measurement.NewService(measurement.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})

	historyRepo := history.NewPostgresRepository(pool)

	// Alert evaluation publishes to Pub/Sub when a project is configured.
	var evaluator *alert.Evaluator
	if projectID := os.Getenv("PUBSUB_PROJECT_ID"); projectID != "" {
		publisher, pubErr := alert.NewPubSubPublisher(ctx, alert.PubSubConfig{
			ProjectID: projectID,
			TopicName: envOrDefault("PUBSUB_TOPIC", "aqi-alerts"),
			Logger:    log,
		})
		if pubErr != nil {
			log.Fatal().Err(pubErr).Msg("failed to create pubsub publisher")
		}
		defer publisher.Close()

		evaluator = alert.NewEvaluator(alert.EvaluatorConfig{
			Subscriptions: alert.NewPostgresSubscriptionSource(pool),
			Publisher:     publisher,
			Logger:        log,
		})
		log.Info().Str("project", projectID).Msg("alert evaluation enabled")
	} else {
		log.Warn().Msg("PUBSUB_PROJECT_ID not set, alert evaluation disabled")
	}

	var weatherProvider *openweathermap.Client
	if apiKey := os.Getenv("OPENWEATHERMAP_API_KEY"); apiKey != "" {
		weatherProvider = openweathermap.NewClient(openweathermap.ClientConfig{APIKey: apiKey})
	}

	pollConfig := worker.DefaultPollConfig()
	pollConfig.StoreHistory = true
	pollConfig.EvaluateAlerts = evaluator != nil
	pollConfig.FetchWeather = weatherProvider != nil

	jobConfig := worker.PollJobConfig{
		Config:   pollConfig,
		Logger:   log,
		Provider: measurementService,
		History:  historyRepo,
		Alerts:   evaluator,
	}
	if weatherProvider != nil {
		jobConfig.Weather = weatherProvider
		jobConfig.WeatherHistory = weather.NewPostgresRepository(pool)
	}
	job := worker.NewPollJob(jobConfig)

	interval := 5 * time.Minute
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		parsed, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			log.Fatal().Err(parseErr).Str("value", raw).Msg("invalid POLL_INTERVAL")
		}
		interval = parsed
	}

	scheduler := worker.NewScheduler(job, interval, log)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	// Health endpoint for the orchestrator's liveness probe.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(job.MetricsSnapshot())
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
