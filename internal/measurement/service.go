package measurement

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vayudrishti/vayudrishti/internal/cache"
)

// ServiceConfig holds configuration for the measurement service.
type ServiceConfig struct {
	// Provider is the upstream measurement source.
	Provider Provider

	// Cache stores recent readings keyed by rounded coordinates.
	// If nil, every call goes to the provider.
	Cache cache.Store

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a cached reading stays fresh (default: 5 minutes,
	// matching the product's refresh interval).
	CacheTTL time.Duration
}

// Service provides readings with a shared cache in front of the provider.
// Concurrent fetches for the same key are numbered when issued, and a
// completed fetch writes the cache only if no later fetch has written it
// already, so a slow early fetch can never clobber a fresher entry.
type Service struct {
	provider Provider
	cache    cache.Store
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu        sync.Mutex
	nextSeq   uint64
	committed map[string]uint64
}

// NewService creates a new measurement service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Service{
		provider:  cfg.Provider,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		cacheTTL:  cacheTTL,
		committed: make(map[string]uint64),
	}
}

// FetchReading returns the latest reading near the given point, serving
// from cache when a fresh entry exists.
func (s *Service) FetchReading(ctx context.Context, lat, lon float64) (*Reading, error) {
	key := cacheKey(lat, lon)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var reading Reading
			if err := json.Unmarshal(data, &reading); err == nil {
				return &reading, nil
			}
			// Corrupt entry; fall through to the provider.
			s.logger.Warn().Str("key", key).Msg("discarding undecodable cached reading")
		}
	}

	seq := s.beginFetch()

	reading, err := s.provider.FetchReading(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if s.commitFetch(key, seq) {
			if data, err := json.Marshal(reading); err == nil {
				s.cache.Set(ctx, key, data, s.cacheTTL)
			}
		} else {
			// A fetch issued later already cached its result; this one
			// is superseded and must not overwrite it.
			s.logger.Debug().Str("key", key).Msg("discarding superseded reading")
		}
	}

	s.logger.Debug().
		Str("location", reading.Location).
		Bool("has_aqi", reading.HasAQI()).
		Int("pollutants", len(reading.Pollutants)).
		Msg("reading fetched")

	return reading, nil
}

// beginFetch assigns the next fetch sequence number. Call it when the
// fetch is issued, not when it completes.
func (s *Service) beginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// commitFetch records a completed fetch for a key. It returns false when
// a fetch issued later has already committed for the same key.
func (s *Service) commitFetch(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.committed[key] {
		return false
	}
	s.committed[key] = seq
	return true
}

// cacheKey buckets coordinates to ~100m so nearby lookups share entries.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("reading:%.3f:%.3f", lat, lon)
}
