package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/location"
	"github.com/vayudrishti/vayudrishti/internal/user"
)

func TestService_CreateUser_Defaults(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())

	created, err := svc.CreateUser(context.Background(), "usr_1", "")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", created.ID)
	assert.Equal(t, "en-IN", created.Locale)
	require.NotNil(t, created.Preferences)
	assert.False(t, created.Preferences.AlertsEnabled)
}

func TestService_CreateUser_Idempotent(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())

	_, err := svc.CreateUser(context.Background(), "usr_1", "hi-IN")
	require.NoError(t, err)

	again, err := svc.CreateUser(context.Background(), "usr_1", "ta-IN")
	require.NoError(t, err)
	assert.Equal(t, "hi-IN", again.Locale, "existing user is returned unchanged")
}

func TestService_UpdatePreferences_Partial(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "usr_1", "")
	require.NoError(t, err)

	saved := "Hyderabad"
	condition := "asthma"
	_, err = svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{
		SavedLocation:   &saved,
		HealthCondition: &condition,
	})
	require.NoError(t, err)

	// A later update touching only the threshold must not clear earlier fields.
	threshold := 150
	prefs, err := svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{
		AlertThreshold: &threshold,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hyderabad", prefs.SavedLocation)
	assert.Equal(t, "asthma", prefs.HealthCondition)
	require.NotNil(t, prefs.AlertThreshold)
	assert.Equal(t, 150, *prefs.AlertThreshold)
}

func TestService_UpdatePreferences_ClearWithEmptyString(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "usr_1", "")
	require.NoError(t, err)

	saved := "Chennai"
	_, err = svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{SavedLocation: &saved})
	require.NoError(t, err)

	empty := ""
	prefs, err := svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{SavedLocation: &empty})
	require.NoError(t, err)
	assert.Empty(t, prefs.SavedLocation)
}

func TestService_SavedLocation(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "usr_1", "")
	require.NoError(t, err)

	// No saved location yet.
	_, err = svc.SavedLocation(ctx, "usr_1")
	assert.ErrorIs(t, err, location.ErrNoSavedLocation)

	// Unknown user also declines rather than erroring.
	_, err = svc.SavedLocation(ctx, "usr_missing")
	assert.ErrorIs(t, err, location.ErrNoSavedLocation)

	saved := "Hyderabad"
	_, err = svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{SavedLocation: &saved})
	require.NoError(t, err)

	got, err := svc.SavedLocation(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Hyderabad", got)
}

func TestService_HealthCondition(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	assert.Empty(t, svc.HealthCondition(ctx, "usr_missing"))

	_, err := svc.CreateUser(ctx, "usr_1", "")
	require.NoError(t, err)

	condition := "heart disease"
	_, err = svc.UpdatePreferences(ctx, "usr_1", &models.PreferencesInput{HealthCondition: &condition})
	require.NoError(t, err)

	assert.Equal(t, "heart disease", svc.HealthCondition(ctx, "usr_1"))
}

func TestService_GetMe_NotFound(t *testing.T) {
	svc := user.NewService(user.NewInMemoryRepository())

	_, err := svc.GetMe(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestInMemoryRepository_CopyIsolation(t *testing.T) {
	repo := user.NewInMemoryRepository()
	ctx := context.Background()

	original := user.DefaultUser("usr_1")
	original.Preferences.SavedLocation = "Delhi"
	require.NoError(t, repo.Create(ctx, original))

	got, err := repo.Get(ctx, "usr_1")
	require.NoError(t, err)
	got.Preferences.SavedLocation = "Mumbai"

	again, err := repo.Get(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", again.Preferences.SavedLocation)
}
