package location

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/geocode"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
)

// DefaultFallbackPlace is the product's home city, resolved when no
// other location signal produces a reading.
const DefaultFallbackPlace = "Delhi, India"

// maxPlaceTextLength bounds free-text place queries.
const maxPlaceTextLength = 100

// placeTextPattern is a conservative allow-list for free-text place
// queries, keeping malformed input away from the geocoder.
var placeTextPattern = regexp.MustCompile(`^[a-zA-Z0-9 ,-]+$`)

// errDecline is the internal signal that a strategy is not applicable
// for this query. Distinct from failure: a decline moves the chain to
// the next strategy, and strategy failures are converted to declines.
var errDecline = errors.New("strategy declined")

// ResolverConfig holds configuration for the resolver.
type ResolverConfig struct {
	// Geocoder resolves place text to coordinates (required).
	Geocoder geocode.Geocoder

	// Fetcher provides readings for coordinates (required).
	Fetcher Fetcher

	// Preferences looks up saved user locations. May be nil, in which
	// case the user-preference strategy always declines.
	Preferences PreferenceStore

	// FallbackPlace is the terminal strategy's place text
	// (default: DefaultFallbackPlace).
	FallbackPlace string

	// StrategyTimeout bounds the upstream calls of a single strategy
	// (default: 10s).
	StrategyTimeout time.Duration

	// Logger for pipeline operations.
	Logger zerolog.Logger
}

// Resolver runs the ordered strategy chain. The order encodes intent
// priority: explicit coordinates, then explicit place text, then the
// user's remembered preference, then the fixed fallback. Reordering
// would let a stored setting override an explicit map click.
type Resolver struct {
	geocoder      geocode.Geocoder
	fetcher       Fetcher
	preferences   PreferenceStore
	fallbackPlace string
	timeout       time.Duration
	logger        zerolog.Logger
}

// NewResolver creates a resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	fallback := cfg.FallbackPlace
	if fallback == "" {
		fallback = DefaultFallbackPlace
	}

	timeout := cfg.StrategyTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Resolver{
		geocoder:      cfg.Geocoder,
		fetcher:       cfg.Fetcher,
		preferences:   cfg.Preferences,
		fallbackPlace: fallback,
		timeout:       timeout,
		logger:        cfg.Logger,
	}
}

// Resolve runs the strategy chain for the query and labels the first
// reading produced. Strategies run strictly in sequence; each is tried
// only after the previous one declined. Only the terminal fallback's
// failure is fatal, surfaced as ErrNoLocationResolvable.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*ResolvedReading, error) {
	strategies := []struct {
		name string
		run  func(context.Context, Query) (*measurement.Reading, error)
	}{
		{"coordinates", r.fromCoordinates},
		{"place", r.fromPlaceText},
		{"user_preference", r.fromUserPreference},
	}

	for _, strategy := range strategies {
		reading, err := strategy.run(ctx, q)
		if err != nil {
			if errors.Is(err, errDecline) {
				continue
			}
			// Strategy-level failures are recoverable: log and fall through.
			r.logger.Warn().
				Err(err).
				Str("strategy", strategy.name).
				Msg("resolution strategy failed, falling through")
			continue
		}
		return Label(reading), nil
	}

	reading, err := r.resolvePlace(ctx, r.fallbackPlace)
	if err != nil {
		return nil, fmt.Errorf("%w: fallback %q: %v", ErrNoLocationResolvable, r.fallbackPlace, err)
	}
	return Label(reading), nil
}

// fromCoordinates handles explicit lat/lon. Declines only when the
// caller did not supply coordinates.
func (r *Resolver) fromCoordinates(ctx context.Context, q Query) (*measurement.Reading, error) {
	if q.Kind != KindCoordinates {
		return nil, errDecline
	}
	return r.fetch(ctx, q.Lat, q.Lon)
}

// fromPlaceText handles free-text place queries. Validation failures
// and zero geocoder hits are declines, not errors.
func (r *Resolver) fromPlaceText(ctx context.Context, q Query) (*measurement.Reading, error) {
	if q.Kind != KindPlace {
		return nil, errDecline
	}
	if !ValidPlaceText(q.Text) {
		r.logger.Debug().Msg("rejecting malformed place text")
		return nil, errDecline
	}
	reading, err := r.resolvePlace(ctx, q.Text)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return nil, errDecline
		}
		return nil, err
	}
	return reading, nil
}

// fromUserPreference handles the stored-location strategy. No identity,
// no stored preference, or a failing lookup all decline.
func (r *Resolver) fromUserPreference(ctx context.Context, q Query) (*measurement.Reading, error) {
	if q.Kind != KindUserPreference || q.UserID == "" || r.preferences == nil {
		return nil, errDecline
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	saved, err := r.preferences.SavedLocation(lookupCtx, q.UserID)
	if err != nil {
		if !errors.Is(err, ErrNoSavedLocation) {
			r.logger.Warn().Err(err).Str("user_id", q.UserID).Msg("preference lookup failed")
		}
		return nil, errDecline
	}
	if !ValidPlaceText(saved) {
		return nil, errDecline
	}

	reading, err := r.resolvePlace(ctx, saved)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return nil, errDecline
		}
		return nil, err
	}
	return reading, nil
}

// resolvePlace geocodes place text and fetches a reading for the
// result, carrying the geocoder's display name onto the reading when
// the upstream has none.
func (r *Resolver) resolvePlace(ctx context.Context, text string) (*measurement.Reading, error) {
	geocodeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	place, err := r.geocoder.Geocode(geocodeCtx, text)
	if err != nil {
		return nil, err
	}

	reading, err := r.fetch(ctx, place.Lat, place.Lon)
	if err != nil {
		return nil, err
	}
	if reading.Location == "" {
		reading.Location = place.DisplayName
	}
	return reading, nil
}

func (r *Resolver) fetch(ctx context.Context, lat, lon float64) (*measurement.Reading, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.fetcher.FetchReading(fetchCtx, lat, lon)
}

// ValidPlaceText reports whether text passes the place-query allow-list:
// letters, digits, spaces, commas, and hyphens, at most 100 characters.
func ValidPlaceText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > maxPlaceTextLength {
		return false
	}
	return placeTextPattern.MatchString(trimmed)
}
