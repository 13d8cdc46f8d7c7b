package user

import (
	"context"
	"errors"
	"time"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
	"github.com/vayudrishti/vayudrishti/internal/location"
)

// Service provides user profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetMe retrieves the user's account summary.
func (s *Service) GetMe(ctx context.Context, userID string) (*models.Me, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Me{
		UserID:    user.ID,
		Locale:    user.Locale,
		CreatedAt: models.Timestamp(user.CreatedAt),
	}, nil
}

// UpdateMe updates the user's account settings.
func (s *Service) UpdateMe(ctx context.Context, userID string, input *models.MeInput) (*models.Me, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Locale != nil {
		user.Locale = *input.Locale
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &models.Me{
		UserID:    user.ID,
		Locale:    user.Locale,
		CreatedAt: models.Timestamp(user.CreatedAt),
	}, nil
}

// GetPreferences retrieves the user's saved preferences.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Preferences == nil {
		user.Preferences = DefaultPreferences()
	}

	return toAPIPreferences(user.Preferences), nil
}

// UpdatePreferences applies a partial update to the user's preferences.
// Absent fields are left unchanged; an explicit empty string clears the
// corresponding preference.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, input *models.PreferencesInput) (*models.Preferences, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if user.Preferences == nil {
		user.Preferences = DefaultPreferences()
	}

	if input.SavedLocation != nil {
		user.Preferences.SavedLocation = *input.SavedLocation
	}
	if input.HealthCondition != nil {
		user.Preferences.HealthCondition = *input.HealthCondition
	}
	if input.AlertThreshold != nil {
		threshold := *input.AlertThreshold
		user.Preferences.AlertThreshold = &threshold
	}
	if input.AlertsEnabled != nil {
		user.Preferences.AlertsEnabled = *input.AlertsEnabled
	}
	user.Preferences.UpdatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toAPIPreferences(user.Preferences), nil
}

// SavedLocation returns the user's saved location text for location
// resolution. It reports location.ErrNoSavedLocation when the user has
// no usable saved location, which the resolver treats as a decline.
func (s *Service) SavedLocation(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", location.ErrNoSavedLocation
		}
		return "", err
	}

	if user.Preferences == nil || user.Preferences.SavedLocation == "" {
		return "", location.ErrNoSavedLocation
	}

	return user.Preferences.SavedLocation, nil
}

// HealthCondition returns the user's declared health condition, or the
// empty string when none is set or the user is unknown.
func (s *Service) HealthCondition(ctx context.Context, userID string) string {
	user, err := s.repo.Get(ctx, userID)
	if err != nil || user.Preferences == nil {
		return ""
	}
	return user.Preferences.HealthCondition
}

// CreateUser creates a new user with default settings.
// This is typically called after authentication to ensure the user exists.
func (s *Service) CreateUser(ctx context.Context, userID, locale string) (*User, error) {
	existing, err := s.repo.Get(ctx, userID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user := DefaultUser(userID)
	if locale != "" {
		user.Locale = locale
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes a user and all associated data.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func toAPIPreferences(p *Preferences) *models.Preferences {
	return &models.Preferences{
		SavedLocation:   p.SavedLocation,
		HealthCondition: p.HealthCondition,
		AlertThreshold:  p.AlertThreshold,
		AlertsEnabled:   p.AlertsEnabled,
		UpdatedAt:       models.Timestamp(p.UpdatedAt),
	}
}

// Ensure Service satisfies the resolver's preference port.
var _ location.PreferenceStore = (*Service)(nil)
