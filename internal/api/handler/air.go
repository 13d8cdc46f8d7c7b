// Package handler provides HTTP handlers for the VayuDrishti API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/location"
	"github.com/vayudrishti/vayudrishti/internal/user"
)

// AirHandler handles air quality endpoints.
type AirHandler struct {
	resolver *location.Resolver
	tracker  *location.Tracker
	users    *user.Service
}

// NewAirHandler creates a new AirHandler.
func NewAirHandler(resolver *location.Resolver, tracker *location.Tracker, users *user.Service) *AirHandler {
	return &AirHandler{
		resolver: resolver,
		tracker:  tracker,
		users:    users,
	}
}

// buildQuery derives a resolution query from request parameters. The
// resolver itself walks the fallback chain, so this only picks the
// starting strategy.
func (h *AirHandler) buildQuery(r *http.Request) (location.Query, []models.FieldError) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	place := r.URL.Query().Get("place")

	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return location.Query{}, []models.FieldError{
				{Field: "lat", Message: "lat and lon must both be valid numbers", Code: "invalid"},
			}
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return location.Query{}, []models.FieldError{
				{Field: "lat", Message: "coordinates out of range", Code: "out_of_range"},
			}
		}
		return location.CoordinatesQuery(lat, lon), nil
	}

	if place != "" {
		return location.PlaceQuery(place), nil
	}

	if userID := GetUserID(r.Context()); userID != "" {
		return location.UserPreferenceQuery(userID), nil
	}

	// No inputs at all: every strategy declines and the resolver
	// falls through to the default city.
	return location.Query{}, nil
}

// GetCurrent handles GET /v1/air/current - current air quality at a
// resolved location.
func (h *AirHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	query, fieldErrors := h.buildQuery(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid location parameters", fieldErrors)
		return
	}

	seq := h.tracker.Begin()
	resolved, err := h.resolver.Resolve(r.Context(), query)
	if err != nil {
		if errors.Is(err, location.ErrNoLocationResolvable) {
			response.ServiceUnavailable(w, r, "air quality data is unavailable right now")
			return
		}
		response.InternalError(w, r, "failed to resolve location")
		return
	}
	h.tracker.Commit(seq, resolved)

	response.JSON(w, r, http.StatusOK, toAirQuality(resolved))
}

// GetAdvisory handles GET /v1/air/advisory - health advisory for the
// resolved location, personalized when the user has a stored condition.
// An explicit aqi parameter skips resolution and derives the advisory
// for that value directly.
func (h *AirHandler) GetAdvisory(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("aqi"); raw != "" {
		aqiValue, err := strconv.Atoi(raw)
		if err != nil || aqiValue < 0 || aqiValue > 2000 {
			response.BadRequest(w, r, "invalid aqi parameter", []models.FieldError{
				{Field: "aqi", Message: "aqi must be a non-negative integer", Code: "invalid"},
			})
			return
		}
		h.writeAdvisory(w, r, aqiValue)
		return
	}

	query, fieldErrors := h.buildQuery(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid location parameters", fieldErrors)
		return
	}

	resolved, err := h.resolver.Resolve(r.Context(), query)
	if err != nil {
		if errors.Is(err, location.ErrNoLocationResolvable) {
			response.ServiceUnavailable(w, r, "air quality data is unavailable right now")
			return
		}
		response.InternalError(w, r, "failed to resolve location")
		return
	}

	if !resolved.Reading.HasAQI() {
		response.NotFound(w, r, "the nearest station reports no composite index")
		return
	}

	h.writeAdvisory(w, r, *resolved.Reading.AQI)
}

func (h *AirHandler) writeAdvisory(w http.ResponseWriter, r *http.Request, aqiValue int) {
	healthCondition := ""
	if userID := GetUserID(r.Context()); userID != "" && h.users != nil {
		healthCondition = h.users.HealthCondition(r.Context(), userID)
	}

	advisory := aqi.HealthAdvisory(aqiValue, healthCondition)
	response.JSON(w, r, http.StatusOK, models.AdvisoryResponse{
		AQI:      aqiValue,
		Category: advisory.Category.String(),
		Message:  advisory.Message,
		Warning:  advisory.Warning,
		Color:    string(advisory.Color),
	})
}

// toAirQuality converts a resolved reading into the API representation.
func toAirQuality(resolved *location.ResolvedReading) models.AirQuality {
	reading := resolved.Reading

	out := models.AirQuality{
		Location: reading.Location,
		Coordinates: models.Point{
			Lat: reading.Latitude,
			Lon: reading.Longitude,
		},
		AQI:        reading.AQI,
		Pollutants: make(map[string]models.PollutantReading, len(resolved.PollutantLevels)),
	}

	if resolved.AQICategory != nil {
		category := resolved.AQICategory.String()
		color := string(resolved.AQICategory.Color())
		out.Category = &category
		out.Color = &color
	}

	for key, level := range resolved.PollutantLevels {
		pr := models.PollutantReading{Level: string(level)}
		if value, ok := reading.Pollutant(key); ok {
			pr.Concentration = &value
		}
		out.Pollutants[string(key)] = pr
	}

	if !reading.ObservedAt.IsZero() {
		observed := models.Timestamp(reading.ObservedAt)
		out.ObservedAt = &observed
	}

	return out
}
