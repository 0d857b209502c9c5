// Package optioncache caches the facet-option vocabulary in Redis. The
// vocabulary changes only on admin edits and profile churn, so serving
// a slightly stale copy keeps the expensive aggregation scans off the
// request path.
package optioncache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/vitrine-cloud/vitrine/internal/usecase/options"
)

// Key under which the serialized vocabulary is stored.
const cacheKey = "vitrine:filter_options"

// Provider produces the facet-option vocabulary.
type Provider interface {
	Get(ctx context.Context) (options.Options, error)
}

// Cache is a read-through caching decorator around a Provider.
type Cache struct {
	inner      Provider
	client     rueidis.Client
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. cacheTotal is a counter vec with an
// "outcome" label ("hit"/"miss"/"error"), passed explicitly.
func New(
	inner Provider,
	client rueidis.Client,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		client:     client,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached vocabulary or delegates to the inner provider
// and stores the result. Cache failures degrade to the inner provider;
// they never fail the request.
func (c *Cache) Get(ctx context.Context) (options.Options, error) {
	if opts, ok := c.getFromCache(ctx); ok {
		c.incOutcome("hit")
		return opts, nil
	}

	opts, err := c.inner.Get(ctx)
	if err != nil {
		return options.Options{}, err
	}
	c.incOutcome("miss")

	c.storeInCache(ctx, opts)
	return opts, nil
}

// Ping checks cache reachability for health reporting.
func (c *Cache) Ping(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping cache: %w", err)
	}
	return nil
}

func (c *Cache) getFromCache(ctx context.Context) (options.Options, bool) {
	cmd := c.client.B().Get().Key(cacheKey).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.incOutcome("error")
			c.logger.Warn("options cache read failed", zap.Error(err))
		}
		return options.Options{}, false
	}

	var opts options.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		c.incOutcome("error")
		c.logger.Warn("options cache entry corrupt", zap.Error(err))
		return options.Options{}, false
	}
	return opts, true
}

func (c *Cache) storeInCache(ctx context.Context, opts options.Options) {
	data, err := json.Marshal(opts)
	if err != nil {
		c.logger.Warn("options cache marshal failed", zap.Error(err))
		return
	}

	cmd := c.client.B().Set().Key(cacheKey).Value(string(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.incOutcome("error")
		c.logger.Warn("options cache write failed", zap.Error(err))
	}
}

func (c *Cache) incOutcome(outcome string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(outcome).Inc()
	}
}
