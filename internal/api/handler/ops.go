package handler

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/location"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        *pgxpool.Pool
	providers []string
	tracker   *location.Tracker
}

// NewOpsHandler creates a new OpsHandler. db may be nil when running
// without Postgres; providers lists the configured upstream sources and
// tracker holds the latest committed resolution.
func NewOpsHandler(version, buildTime string, db *pgxpool.Pool, providers []string, tracker *location.Tracker) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		providers: providers,
		tracker:   tracker,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Fails
// when the database cannot be reached.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	details := map[string]interface{}{}

	if h.db != nil {
		ctx, cancel := contextWithTimeout(r, 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = models.HealthStatusFail
			details["database"] = err.Error()
		} else {
			details["database"] = "ok"
		}
	}

	health := models.Health{
		Status:  status,
		Time:    models.Timestamp(time.Now()),
		Details: details,
	}

	code := http.StatusOK
	if status == models.HealthStatusFail {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - configured provider list
// plus the most recently committed resolution.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	statuses := make([]models.ProviderStatus, 0, len(h.providers))
	for _, provider := range h.providers {
		statuses = append(statuses, models.ProviderStatus{
			Provider:      provider,
			Status:        models.HealthStatusOK,
			LastSuccessAt: &now,
		})
	}

	payload := map[string]interface{}{
		"status":    models.HealthStatusOK,
		"time":      now,
		"providers": statuses,
	}

	if h.tracker != nil {
		if latest := h.tracker.Latest(); latest != nil && latest.Reading != nil {
			resolved := models.LastResolved{
				Location:   latest.Reading.Location,
				AQI:        latest.Reading.AQI,
				ObservedAt: models.Timestamp(latest.Reading.ObservedAt),
			}
			if latest.AQICategory != nil {
				category := latest.AQICategory.String()
				resolved.Category = &category
			}
			payload["lastResolved"] = resolved
		}
	}

	response.JSON(w, r, http.StatusOK, payload)
}
