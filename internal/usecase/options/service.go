// Package options builds the full filter-UI vocabulary: distinct
// locations and price bounds from active profiles, plus the active
// variants of every attribute group. This path is read-heavy and off
// the hot filter path; callers are expected to cache the result.
package options

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

// Choice is one selectable facet value for a filter UI.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options is the complete filter-UI vocabulary.
type Options struct {
	Categories []Choice            `json:"categories"`
	Locations  Locations           `json:"locations"`
	Features   map[string][]Choice `json:"features"`
	PriceRange *PriceBounds        `json:"priceRange"`
}

// Service aggregates facet options.
type Service struct {
	profiles ProfileScanner
	attrs    AttributeReader
}

// New creates an options service.
func New(profiles ProfileScanner, attrs AttributeReader) *Service {
	return &Service{profiles: profiles, attrs: attrs}
}

// Get runs the three independent reads concurrently and combines them.
func (s *Service) Get(ctx context.Context) (Options, error) {
	var (
		locations Locations
		bounds    *PriceBounds
		groups    []attribute.Group
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = s.profiles.DistinctLocations(gctx)
		if err != nil {
			return fmt.Errorf("distinct locations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bounds, err = s.profiles.PriceBounds(gctx)
		if err != nil {
			return fmt.Errorf("price bounds: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		groups, err = s.attrs.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("read attribute groups: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Options{}, err
	}

	opts := Options{
		Categories: []Choice{},
		Locations:  locations,
		Features:   make(map[string][]Choice, len(groups)),
		PriceRange: bounds,
	}

	for _, group := range groups {
		choices := variantChoices(group)
		opts.Features[group.Key()] = choices
		if group.Key() == attribute.CategoryKey {
			opts.Categories = choices
		}
	}

	return opts, nil
}

// variantChoices exposes the active variants of a group, falling back
// to the value as label for records created before labels existed.
func variantChoices(group attribute.Group) []Choice {
	active := group.ActiveVariants()
	choices := make([]Choice, 0, len(active))
	for _, v := range active {
		choices = append(choices, Choice{Label: v.DisplayLabel(), Value: v.Value()})
	}
	return choices
}
