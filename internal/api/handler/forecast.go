package handler

import (
	"errors"
	"net/http"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/forecast"
	"github.com/vayudrishti/vayudrishti/internal/history"
)

// ForecastHandler handles AQI forecast endpoints.
type ForecastHandler struct {
	forecasts *forecast.Service
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecasts *forecast.Service) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

// GetForecast handles GET /v1/air/forecast - predicted AQI for a
// tracked location.
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	locationName := r.URL.Query().Get("location")
	if locationName == "" {
		response.BadRequest(w, r, "location is required", []models.FieldError{
			{Field: "location", Message: "location must not be empty", Code: "required"},
		})
		return
	}

	points, err := h.forecasts.Forecast(r.Context(), locationName)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrNotFound):
			response.NotFound(w, r, "no observation history for this location")
		case errors.Is(err, forecast.ErrModelUnavailable):
			response.ServiceUnavailable(w, r, "the forecast model is not available right now")
		default:
			response.InternalError(w, r, "failed to compute forecast")
		}
		return
	}

	apiPoints := make([]models.ForecastPoint, 0, len(points))
	for _, p := range points {
		apiPoints = append(apiPoints, models.ForecastPoint{
			Time: models.Timestamp(p.Time),
			AQI:  p.AQI,
		})
	}

	response.JSON(w, r, http.StatusOK, models.ForecastResponse{
		Location: locationName,
		Points:   apiPoints,
	})
}
