// Package vitrine is the embedded SDK for the profile filter engine:
// the same compiler, store and option aggregation the HTTP API uses,
// without the HTTP layer.
package vitrine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	mongodb "github.com/vitrine-cloud/vitrine/internal/db/mongo"
	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	attributerepo "github.com/vitrine-cloud/vitrine/internal/repository/attribute"
	"github.com/vitrine-cloud/vitrine/internal/repository/optioncache"
	profilerepo "github.com/vitrine-cloud/vitrine/internal/repository/profile"
	attrgroupuc "github.com/vitrine-cloud/vitrine/internal/usecase/attrgroup"
	listinguc "github.com/vitrine-cloud/vitrine/internal/usecase/listing"
	optionsuc "github.com/vitrine-cloud/vitrine/internal/usecase/options"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the vitrine SDK entry point.
type Client struct {
	store       *mongodb.Store
	redisClient rueidis.Client

	listingSvc *listinguc.Service
	optionsSvc optioncache.Provider
	attrSvc    *attrgroupuc.Service
}

// New creates a vitrine Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.uri == "" {
		return nil, errors.New("vitrine: database URI required (use WithMongo)")
	}
	if cfg.database == "" {
		return nil, errors.New("vitrine: database name required (use WithMongo)")
	}

	ctx := context.Background()

	store, err := mongodb.NewStore(ctx, mongodb.Config{
		URI:      cfg.uri,
		Database: cfg.database,
	})
	if err != nil {
		return nil, fmt.Errorf("vitrine: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("vitrine: database not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func wireClient(store *mongodb.Store, cfg *clientConfig) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	attrRepo := attributerepo.New(store.AttributeGroups())
	profRepo := profilerepo.New(store.Profiles())

	compiler := listinguc.NewCompiler(attrRepo, nil)
	listingSvc := listinguc.New(profRepo, compiler)
	attrSvc := attrgroupuc.New(attrRepo)

	var optionsSvc optioncache.Provider = optionsuc.New(profRepo, attrRepo)

	var redisClient rueidis.Client
	if len(cfg.cacheAddrs) > 0 {
		var err error
		redisClient, err = rueidis.NewClient(rueidis.ClientOption{
			InitAddress: cfg.cacheAddrs,
			Password:    cfg.cachePassword,
		})
		if err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("vitrine: create cache client: %w", err)
		}
		optionsSvc = optioncache.New(optionsSvc, redisClient, cfg.cacheTTL, nil, logger)
	}

	return &Client{
		store:       store,
		redisClient: redisClient,
		listingSvc:  listingSvc,
		optionsSvc:  optionsSvc,
		attrSvc:     attrSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.redisClient != nil {
		c.redisClient.Close()
	}
	if c.store != nil {
		_ = c.store.Close(context.Background())
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search normalizes and runs a filter, returning one page of profiles.
func (c *Client) Search(ctx context.Context, f Filter) (*Page, error) {
	spec, err := filter.Normalize(filterToPayload(f))
	if err != nil {
		return nil, err
	}

	page, err := c.listingSvc.Search(ctx, &spec)
	if err != nil {
		return nil, err
	}
	return pageFromDomain(page), nil
}

// Count returns the number of profiles a filter matches. Pagination and
// projection in the filter are ignored.
func (c *Client) Count(ctx context.Context, f Filter) (int64, error) {
	f.Page = 0
	f.Limit = 0
	f.Fields = nil

	spec, err := filter.Normalize(filterToPayload(f))
	if err != nil {
		return 0, err
	}
	return c.listingSvc.Count(ctx, &spec)
}

// Options returns the filter-UI vocabulary: categories, locations,
// feature choices and observed price bounds.
func (c *Client) Options(ctx context.Context) (FilterOptions, error) {
	opts, err := c.optionsSvc.Get(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return optionsFromDomain(opts), nil
}

// Groups returns the attribute-group administration service.
func (c *Client) Groups() *GroupService {
	return &GroupService{svc: c.attrSvc}
}

// GroupService manages attribute groups and their variant vocabularies.
type GroupService struct {
	svc *attrgroupuc.Service
}

// Create stores a new attribute group. groupType is "single" or "multi".
func (g *GroupService) Create(ctx context.Context, key, name, groupType string, variants []Variant) (Group, error) {
	domainVariants := make([]attribute.Variant, 0, len(variants))
	for _, v := range variants {
		dv, err := attribute.NewVariant(v.Value, v.Label, v.Active)
		if err != nil {
			return Group{}, fmt.Errorf("variant %q: %w", v.Value, err)
		}
		domainVariants = append(domainVariants, dv)
	}

	created, err := g.svc.Create(ctx, key, name, attribute.Selection(groupType), domainVariants)
	if err != nil {
		return Group{}, err
	}
	return groupFromDomain(created), nil
}

// List returns all attribute groups.
func (g *GroupService) List(ctx context.Context) ([]Group, error) {
	groups, err := g.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Group, 0, len(groups))
	for _, dg := range groups {
		out = append(out, groupFromDomain(dg))
	}
	return out, nil
}

// Get returns one attribute group by key.
func (g *GroupService) Get(ctx context.Context, key string) (Group, error) {
	group, err := g.svc.Get(ctx, key)
	if err != nil {
		return Group{}, err
	}
	return groupFromDomain(group), nil
}

// AddVariant appends a variant to a group's vocabulary.
func (g *GroupService) AddVariant(ctx context.Context, key string, v Variant) (Variant, error) {
	added, err := g.svc.AddVariant(ctx, key, v.Value, v.Label, v.Active)
	if err != nil {
		return Variant{}, err
	}
	return Variant{Value: added.Value(), Label: added.DisplayLabel(), Active: added.Active()}, nil
}

// UpdateVariant changes a variant's label and/or active flag. Nil means
// leave unchanged.
func (g *GroupService) UpdateVariant(ctx context.Context, key, value string, label *string, active *bool) error {
	return g.svc.UpdateVariant(ctx, key, value, label, active)
}

// RemoveVariant deletes a variant from a group's vocabulary.
func (g *GroupService) RemoveVariant(ctx context.Context, key, value string) error {
	return g.svc.RemoveVariant(ctx, key, value)
}
