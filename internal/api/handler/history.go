package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/history"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 24 * 30
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// HistoryHandler handles stored observation endpoints.
type HistoryHandler struct {
	repo history.Repository
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(repo history.Repository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// GetHistory handles GET /v1/air/history - stored observations for a
// location, newest first.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	locationName := r.URL.Query().Get("location")
	if locationName == "" {
		response.BadRequest(w, r, "location is required", []models.FieldError{
			{Field: "location", Message: "location must not be empty", Code: "required"},
		})
		return
	}

	hours := defaultHistoryHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxHistoryHours {
			response.BadRequest(w, r, "invalid hours parameter", []models.FieldError{
				{Field: "hours", Message: "hours must be between 1 and 720", Code: "out_of_range"},
			})
			return
		}
		hours = parsed
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxHistoryLimit {
			response.BadRequest(w, r, "invalid limit parameter", []models.FieldError{
				{Field: "limit", Message: "limit must be between 1 and 1000", Code: "out_of_range"},
			})
			return
		}
		limit = parsed
	}

	now := time.Now()
	records, err := h.repo.Range(r.Context(), locationName, now.Add(-time.Duration(hours)*time.Hour), now, limit)
	if err != nil {
		response.InternalError(w, r, "failed to load observation history")
		return
	}

	entries := make([]models.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, models.HistoryEntry{
			Location:   record.Location,
			AQI:        record.AQI,
			RecordedAt: models.Timestamp(record.RecordedAt),
		})
	}

	response.JSON(w, r, http.StatusOK, models.HistoryResponse{
		Location: locationName,
		Entries:  entries,
	})
}
