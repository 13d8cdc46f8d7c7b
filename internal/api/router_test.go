package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/api"
	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/auth"
	"github.com/vayudrishti/vayudrishti/internal/geocode"
	"github.com/vayudrishti/vayudrishti/internal/history"
	"github.com/vayudrishti/vayudrishti/internal/location"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
	"github.com/vayudrishti/vayudrishti/internal/user"
)

// stubGeocoder resolves every place to Delhi.
type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, text string) (*geocode.Place, error) {
	return &geocode.Place{Lat: 28.6139, Lon: 77.2090, DisplayName: text}, nil
}

// stubFetcher returns a fixed moderate reading for any point.
type stubFetcher struct{}

func (stubFetcher) FetchReading(_ context.Context, lat, lon float64) (*measurement.Reading, error) {
	aqiValue := 120
	pm25 := 48.5
	return &measurement.Reading{
		Location:   "Anand Vihar, Delhi",
		Latitude:   lat,
		Longitude:  lon,
		AQI:        &aqiValue,
		ObservedAt: time.Now(),
		Pollutants: map[aqi.PollutantKey]*float64{
			aqi.PollutantPM25: &pm25,
		},
	}, nil
}

// testAuthService creates an auth service backed by in-memory repositories.
func testAuthService() *auth.Service {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.vayudrishti.in",
		Audience:   "vayudrishti-api",
	})

	return auth.NewService(auth.ServiceConfig{
		JWTService:  jwtService,
		UserRepo:    auth.NewInMemoryUserRepository(),
		RefreshRepo: auth.NewInMemoryRefreshTokenRepository(),
		ResetRepo:   auth.NewInMemoryResetTokenRepository(),
	})
}

func newTestRouter(authService *auth.Service) http.Handler {
	logger := zerolog.New(io.Discard)

	userService := user.NewService(user.NewInMemoryRepository())
	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder:    stubGeocoder{},
		Fetcher:     stubFetcher{},
		Preferences: userService,
		Logger:      logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:     "test",
		BuildTime:   "2026-01-01T00:00:00Z",
		Logger:      logger,
		AuthService: authService,
		UserService: userService,
		Resolver:    resolver,
		Tracker:     location.NewTracker(),
		HistoryRepo: history.NewInMemoryRepository(),
		Providers:   []string{"waqi", "nominatim"},
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health models.Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CurrentAir_Anonymous(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/air/current?lat=28.6139&lon=77.2090", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var airQuality models.AirQuality
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&airQuality))
	assert.Equal(t, "Anand Vihar, Delhi", airQuality.Location)
	require.NotNil(t, airQuality.AQI)
	assert.Equal(t, 120, *airQuality.AQI)
	require.NotNil(t, airQuality.Category)
	assert.Equal(t, "Unhealthy for Sensitive Groups", *airQuality.Category)

	// Unreported pollutants surface as unknown, never good.
	assert.Equal(t, "unknown", airQuality.Pollutants["co"].Level)
	assert.Equal(t, "moderate", airQuality.Pollutants["pm25"].Level)
}

func TestRouter_CurrentAir_InvalidCoordinates(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/air/current?lat=abc&lon=77.2", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestRouter_Advisory(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/air/advisory?lat=28.6139&lon=77.2090", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var advisory models.AdvisoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&advisory))
	assert.Equal(t, 120, advisory.AQI)
	assert.Equal(t, "Unhealthy for Sensitive Groups", advisory.Category)
	assert.NotEmpty(t, advisory.Message)
	assert.Equal(t, "yellow", advisory.Color)
}

func TestRouter_Advisory_AQIOverride(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/air/advisory?aqi=320", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var advisory models.AdvisoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&advisory))
	assert.Equal(t, 320, advisory.AQI)
	assert.Equal(t, "Hazardous", advisory.Category)
	assert.Equal(t, "maroon", advisory.Color)

	req = httptest.NewRequest(http.MethodGet, "/v1/air/advisory?aqi=-5", http.NoBody)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_History_RequiresLocation(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/air/history", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Me_RequiresAuth(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/me/", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterLoginAndMe(t *testing.T) {
	router := newTestRouter(testAuthService())

	body, err := json.Marshal(models.RegisterInput{
		Email:    "asha@example.in",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens models.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)

	req = httptest.NewRequest(http.MethodGet, "/v1/me/", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.Me
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.NotEmpty(t, me.UserID)
	assert.Equal(t, "en-IN", me.Locale)
}

func TestRouter_PreferencesRoundTrip(t *testing.T) {
	router := newTestRouter(testAuthService())

	body, err := json.Marshal(models.RegisterInput{
		Email:    "ravi@example.in",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens models.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))

	saved := "Chennai, India"
	condition := "asthma"
	updateBody, err := json.Marshal(models.PreferencesInput{
		SavedLocation:   &saved,
		HealthCondition: &condition,
	})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPut, "/v1/me/preferences", bytes.NewReader(updateBody))
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/me/preferences", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var prefs models.Preferences
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&prefs))
	assert.Equal(t, "Chennai, India", prefs.SavedLocation)
	assert.Equal(t, "asthma", prefs.HealthCondition)
}

func TestRouter_SystemStatus_ReportsLastResolved(t *testing.T) {
	router := newTestRouter(testAuthService())

	body, err := json.Marshal(models.RegisterInput{
		Email:    "ops@example.in",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens models.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tokens))

	req = httptest.NewRequest(http.MethodGet, "/v1/air/current?lat=28.6139&lon=77.2090", http.NoBody)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		LastResolved *models.LastResolved `json:"lastResolved"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	require.NotNil(t, status.LastResolved)
	assert.Equal(t, "Anand Vihar, Delhi", status.LastResolved.Location)
	require.NotNil(t, status.LastResolved.AQI)
	assert.Equal(t, 120, *status.LastResolved.AQI)
	require.NotNil(t, status.LastResolved.Category)
	assert.Equal(t, "Unhealthy for Sensitive Groups", *status.LastResolved.Category)
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "req_custom_id_for_test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req_custom_id_for_test", rec.Header().Get("X-Request-Id"))
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(testAuthService())

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
