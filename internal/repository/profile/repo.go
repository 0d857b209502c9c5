// Package profile executes compiled queries and facet scans against the
// profiles collection.
package profile

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domprofile "github.com/vitrine-cloud/vitrine/internal/domain/profile"
	"github.com/vitrine-cloud/vitrine/internal/domain/query"
	"github.com/vitrine-cloud/vitrine/internal/usecase/options"
)

// Repo implements the listing Repository and the options ProfileScanner.
type Repo struct {
	col *mongo.Collection
}

// New creates a profile repository.
func New(col *mongo.Collection) *Repo {
	return &Repo{col: col}
}

// Find runs the row pipeline and hydrates the page of profiles.
func (r *Repo) Find(ctx context.Context, def *query.Definition) ([]domprofile.Profile, error) {
	cursor, err := r.col.Aggregate(ctx, rowsPipeline(def))
	if err != nil {
		return nil, fmt.Errorf("aggregate profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []domprofile.Profile
	for cursor.Next(ctx) {
		var doc profileDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		rows = append(rows, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return rows, nil
}

// Count runs the count pipeline over the same predicate list.
func (r *Repo) Count(ctx context.Context, where []query.Condition) (int64, error) {
	cursor, err := r.col.Aggregate(ctx, countPipeline(where))
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var res struct {
		Count int64 `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&res); err != nil {
			return 0, fmt.Errorf("decode count: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("iterate count: %w", err)
	}
	return res.Count, nil
}

var activeOnly = bson.M{"isActive": true}

// DistinctLocations collects the distinct location values of active
// profiles, sorted for stable output.
func (r *Repo) DistinctLocations(ctx context.Context) (options.Locations, error) {
	countries, err := r.distinctStrings(ctx, "location.country")
	if err != nil {
		return options.Locations{}, err
	}
	departments, err := r.distinctStrings(ctx, "location.department.value")
	if err != nil {
		return options.Locations{}, err
	}
	cities, err := r.distinctStrings(ctx, "location.city.value")
	if err != nil {
		return options.Locations{}, err
	}
	return options.Locations{
		Countries:   countries,
		Departments: departments,
		Cities:      cities,
	}, nil
}

func (r *Repo) distinctStrings(ctx context.Context, field string) ([]string, error) {
	raw, err := r.col.Distinct(ctx, field, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values, nil
}

// PriceBounds returns the min and max price observed across all rate
// entries of active profiles, or nil when none exist.
func (r *Repo) PriceBounds(ctx context.Context) (*options.PriceBounds, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: activeOnly}},
		bson.D{{Key: "$unwind", Value: "$rates"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"min": bson.M{"$min": "$rates.price"},
			"max": bson.M{"$max": "$rates.price"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate price bounds: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("iterate price bounds: %w", err)
		}
		return nil, nil
	}

	var res struct {
		Min float64 `bson:"min"`
		Max float64 `bson:"max"`
	}
	if err := cursor.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode price bounds: %w", err)
	}
	return &options.PriceBounds{Min: res.Min, Max: res.Max}, nil
}
