// Package user provides user profile and preference management.
//
// Data stored per user is deliberately small: a display locale, an
// optional saved location (free text, geocoded on use), an optional
// health condition used to personalize advisories, and alerting
// settings. Credentials live in the auth package, not here.
package user

import (
	"time"
)

// User represents a user's profile and settings.
type User struct {
	// ID is the unique user identifier (format: usr_XXXX).
	ID string

	// Locale is the user's preferred language/region (BCP 47 format, e.g., "en-IN").
	Locale string

	// Preferences contains the user's location, health and alert settings.
	Preferences *Preferences

	// CreatedAt is when the user was created.
	CreatedAt time.Time

	// UpdatedAt is when the user was last updated.
	UpdatedAt time.Time
}

// Preferences represents the user's saved settings.
type Preferences struct {
	// SavedLocation is a free-text place the user chose as their default,
	// e.g. "Hyderabad". Empty means no saved location.
	SavedLocation string

	// HealthCondition is an optional condition such as "asthma" used to
	// personalize health advisories. Empty means none declared.
	HealthCondition string

	// AlertThreshold is the AQI value above which the user wants to be
	// alerted. Nil means the service default applies.
	AlertThreshold *int

	// AlertsEnabled controls whether threshold alerts are delivered.
	AlertsEnabled bool

	// UpdatedAt is when the preferences were last changed.
	UpdatedAt time.Time
}

// DefaultUser returns a new user with default settings.
func DefaultUser(id string) *User {
	now := time.Now()
	return &User{
		ID:          id,
		Locale:      "en-IN",
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DefaultPreferences returns preferences with alerting off and nothing saved.
func DefaultPreferences() *Preferences {
	return &Preferences{
		AlertsEnabled: false,
		UpdatedAt:     time.Now(),
	}
}
