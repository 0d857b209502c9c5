package vitrine

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	uri      string
	database string

	readinessTimeout time.Duration

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	logger *zap.Logger
}

// WithMongo configures the MongoDB connection. Required.
func WithMongo(uri, database string) Option {
	return func(c *clientConfig) {
		c.uri = uri
		c.database = database
	}
}

// WithReadinessTimeout sets how long New waits for the database to
// answer pings before giving up. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}

// WithOptionCache puts a Redis cache in front of the filter-option
// aggregator. Without it every Options call scans the store.
func WithOptionCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		c.cacheTTL = ttl
	}
}

// WithLogger enables structured logging for client operations. Pass nil
// to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
