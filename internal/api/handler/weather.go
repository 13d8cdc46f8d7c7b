package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/weather"
)

// WeatherHandler handles current weather endpoints.
type WeatherHandler struct {
	provider weather.Provider
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(provider weather.Provider) *WeatherHandler {
	return &WeatherHandler{provider: provider}
}

// GetCurrent handles GET /v1/weather - current weather at a point.
func (h *WeatherHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(w, r, "invalid coordinates", []models.FieldError{
			{Field: "lat", Message: "lat and lon must be valid coordinates", Code: "invalid"},
		})
		return
	}

	obs, err := h.provider.GetCurrentWeather(r.Context(), lat, lon)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrNoDataForLocation):
			response.NotFound(w, r, "no weather data for this location")
		case errors.Is(err, weather.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "weather data is unavailable right now")
		default:
			response.InternalError(w, r, "failed to fetch weather")
		}
		return
	}

	locationName := r.URL.Query().Get("place")
	if locationName == "" {
		locationName = strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
	}

	observed := models.Timestamp(obs.ObservedAt)
	response.JSON(w, r, http.StatusOK, models.Weather{
		Location:    locationName,
		Temperature: obs.Temperature,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
		Conditions:  obs.Description,
		ObservedAt:  &observed,
	})
}
