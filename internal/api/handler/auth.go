package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/api/response"
	"github.com/vayudrishti/vayudrishti/internal/auth"
	"github.com/vayudrishti/vayudrishti/internal/user"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *auth.Service
	users       *user.Service
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service, users *user.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		logger:      logger,
	}
}

// Register handles POST /v1/auth/register - create an account with
// email and password.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	tokenResp, err := h.authService.Register(r.Context(), input.Email, input.Password, input.Locale)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			response.Conflict(w, r, "an account with this email already exists")
			return
		}
		response.InternalError(w, r, "registration failed")
		return
	}

	// Seed the profile so preference lookups work right away.
	if h.users != nil {
		userID, idErr := h.authService.ValidateAccessToken(tokenResp.AccessToken)
		if idErr == nil {
			if _, profileErr := h.users.CreateUser(r.Context(), userID, input.Locale); profileErr != nil {
				h.logger.Warn().Err(profileErr).Msg("failed to seed user profile")
			}
		}
	}

	response.JSON(w, r, http.StatusCreated, tokenResp)
}

// Login handles POST /v1/auth/login - credential login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	tokenResp, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid email or password")
			return
		}
		response.InternalError(w, r, "login failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokenResp)
}

// RefreshToken handles POST /v1/auth/refresh - rotate a refresh token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var input models.RefreshInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	tokenResp, err := h.authService.RefreshAccessToken(r.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefreshToken):
			response.Unauthorized(w, r, "invalid refresh token")
		case errors.Is(err, auth.ErrRefreshTokenExpired):
			response.Unauthorized(w, r, "refresh token has expired")
		case errors.Is(err, auth.ErrUserNotFound):
			response.Unauthorized(w, r, "user not found")
		default:
			response.InternalError(w, r, "token refresh failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, tokenResp)
}

// Logout handles POST /v1/auth/logout - revoke a single refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var input models.RefreshInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.RefreshToken == "" {
		response.BadRequest(w, r, "refreshToken is required", nil)
		return
	}

	// Revoking an unknown token is a no-op: logout is idempotent.
	if err := h.authService.RevokeRefreshToken(r.Context(), input.RefreshToken); err != nil &&
		!errors.Is(err, auth.ErrInvalidRefreshToken) {
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}

// LogoutAll handles POST /v1/auth/logout-all - revoke every session of
// the authenticated user.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.authService.RevokeAllTokens(r.Context(), userID); err != nil {
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}

// RequestPasswordReset handles POST /v1/auth/reset/request - issue a
// password reset token. The response never reveals whether the email
// exists.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input models.ResetRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	token, err := h.authService.RequestPasswordReset(r.Context(), input.Email)
	if err != nil {
		response.InternalError(w, r, "failed to process reset request")
		return
	}

	// Token delivery belongs to the mail pipeline; here we only record
	// that one was issued.
	if token != "" {
		h.logger.Info().Str("email", input.Email).Msg("password reset token issued")
	}

	response.JSON(w, r, http.StatusAccepted, map[string]string{
		"message": "if the email is registered, a reset link has been sent",
	})
}

// ConfirmPasswordReset handles POST /v1/auth/reset/confirm - complete a
// password reset with an issued token.
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input models.ResetConfirmInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := validateInput(&input); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	if err := h.authService.ConfirmPasswordReset(r.Context(), input.Token, input.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidResetToken) {
			response.BadRequest(w, r, "invalid or expired reset token", nil)
			return
		}
		response.InternalError(w, r, "failed to reset password")
		return
	}

	response.NoContent(w, r)
}
