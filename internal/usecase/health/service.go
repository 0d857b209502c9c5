// Package health aggregates readiness of the service's dependencies.
package health

import (
	"context"
	"fmt"
)

// Pinger checks reachability of one dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service checks dependency health.
type Service struct {
	store Pinger
	cache Pinger
}

// New creates a health service. cache may be nil when caching is
// disabled.
func New(store, cache Pinger) *Service {
	return &Service{store: store, cache: cache}
}

// Check pings the document store and, when configured, the cache.
func (s *Service) Check(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}
