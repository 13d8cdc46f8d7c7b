package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/user"
)

// MeHandler handles user account and preference endpoints.
type MeHandler struct {
	users *user.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(users *user.Service) *MeHandler {
	return &MeHandler{users: users}
}

// GetMe handles GET /v1/me - current user account summary.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	me, err := h.users.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "user profile not found")
			return
		}
		response.InternalError(w, r, "failed to load user profile")
		return
	}

	response.JSON(w, r, http.StatusOK, me)
}

// UpdateMe handles PUT /v1/me - update account settings.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.MeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	me, err := h.users.UpdateMe(r.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "user profile not found")
			return
		}
		response.InternalError(w, r, "failed to update user profile")
		return
	}

	response.JSON(w, r, http.StatusOK, me)
}

// GetPreferences handles GET /v1/me/preferences - saved preferences.
func (h *MeHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	prefs, err := h.users.GetPreferences(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "user profile not found")
			return
		}
		response.InternalError(w, r, "failed to load preferences")
		return
	}

	response.JSON(w, r, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /v1/me/preferences - partial update of
// saved preferences. Absent fields keep their value and an explicit
// empty string clears the field.
func (h *MeHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.PreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	prefs, err := h.users.UpdatePreferences(r.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "user profile not found")
			return
		}
		response.InternalError(w, r, "failed to update preferences")
		return
	}

	response.JSON(w, r, http.StatusOK, prefs)
}
