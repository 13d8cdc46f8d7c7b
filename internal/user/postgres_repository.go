package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a user by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT
			user_id, locale,
			saved_location, health_condition, alert_threshold, alerts_enabled,
			preferences_updated_at, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		userID               string
		locale               string
		savedLocation        string
		healthCondition      string
		alertThreshold       *int
		alertsEnabled        bool
		preferencesUpdatedAt time.Time
		createdAt            time.Time
		updatedAt            time.Time
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&userID,
		&locale,
		&savedLocation,
		&healthCondition,
		&alertThreshold,
		&alertsEnabled,
		&preferencesUpdatedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &User{
		ID:     userID,
		Locale: locale,
		Preferences: &Preferences{
			SavedLocation:   savedLocation,
			HealthCondition: healthCondition,
			AlertThreshold:  alertThreshold,
			AlertsEnabled:   alertsEnabled,
			UpdatedAt:       preferencesUpdatedAt,
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Create creates a new user profile.
func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO user_profiles (
			user_id, locale,
			saved_location, health_condition, alert_threshold, alerts_enabled,
			preferences_updated_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	prefs := user.Preferences
	if prefs == nil {
		prefs = DefaultPreferences()
	}

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Locale,
		prefs.SavedLocation,
		prefs.HealthCondition,
		prefs.AlertThreshold,
		prefs.AlertsEnabled,
		prefs.UpdatedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// Update updates an existing user profile.
func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE user_profiles SET
			locale = $2,
			saved_location = $3,
			health_condition = $4,
			alert_threshold = $5,
			alerts_enabled = $6,
			preferences_updated_at = $7,
			updated_at = $8
		WHERE user_id = $1
	`

	prefs := user.Preferences
	if prefs == nil {
		prefs = DefaultPreferences()
	}

	result, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Locale,
		prefs.SavedLocation,
		prefs.HealthCondition,
		prefs.AlertThreshold,
		prefs.AlertsEnabled,
		prefs.UpdatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete deletes a user profile.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM user_profiles WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// CreateOrUpdate creates a user profile if it doesn't exist, or updates it if it does.
// This is useful when a user is created in auth but needs a profile.
func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, user *User) error {
	query := `
		INSERT INTO user_profiles (
			user_id, locale,
			saved_location, health_condition, alert_threshold, alerts_enabled,
			preferences_updated_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			locale = EXCLUDED.locale,
			saved_location = EXCLUDED.saved_location,
			health_condition = EXCLUDED.health_condition,
			alert_threshold = EXCLUDED.alert_threshold,
			alerts_enabled = EXCLUDED.alerts_enabled,
			preferences_updated_at = EXCLUDED.preferences_updated_at,
			updated_at = EXCLUDED.updated_at
	`

	prefs := user.Preferences
	if prefs == nil {
		prefs = DefaultPreferences()
	}

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Locale,
		prefs.SavedLocation,
		prefs.HealthCondition,
		prefs.AlertThreshold,
		prefs.AlertsEnabled,
		prefs.UpdatedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
