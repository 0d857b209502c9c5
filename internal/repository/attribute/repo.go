// Package attribute persists attribute groups in MongoDB.
package attribute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitrine-cloud/vitrine/internal/domain"
	domattr "github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

// Repo implements the attribute-group storage contracts: the admin
// Repository, the compiler's AttributeResolver, and the option
// aggregator's AttributeReader.
type Repo struct {
	col *mongo.Collection
}

// New creates an attribute-group repository.
func New(col *mongo.Collection) *Repo {
	return &Repo{col: col}
}

// EnsureIndexes creates the unique key index.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create key index: %w", err)
	}
	return nil
}

// ResolveKeys maps group keys to their storage identifiers in a single
// query. Keys without a group are absent from the result.
func (r *Repo) ResolveKeys(ctx context.Context, keys []string) (map[string]any, error) {
	if len(keys) == 0 {
		return map[string]any{}, nil
	}

	cursor, err := r.col.Find(ctx,
		bson.M{"key": bson.M{"$in": keys}},
		options.Find().SetProjection(bson.M{"key": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find groups by keys: %w", err)
	}
	defer cursor.Close(ctx)

	resolved := make(map[string]any, len(keys))
	for cursor.Next(ctx) {
		var doc groupDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		resolved[doc.Key] = doc.ID
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return resolved, nil
}

// FindAll returns every group, ordered by key.
func (r *Repo) FindAll(ctx context.Context) ([]domattr.Group, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []domattr.Group
	for cursor.Next(ctx) {
		var doc groupDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// FindByKey returns one group.
func (r *Repo) FindByKey(ctx context.Context, key string) (domattr.Group, error) {
	var doc groupDoc
	err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domattr.Group{}, domain.ErrNotFound
	}
	if err != nil {
		return domattr.Group{}, fmt.Errorf("find group %q: %w", key, err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new group. A duplicate key maps to ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, g domattr.Group) (domattr.Group, error) {
	doc := fromDomain(g)
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return domattr.Group{}, domain.ErrAlreadyExists
	}
	if err != nil {
		return domattr.Group{}, fmt.Errorf("insert group: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return domattr.Group{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

// AddVariant appends a variant in a single document write. The filter
// excludes documents already carrying the value, so a duplicate add
// matches nothing and is reported as ErrAlreadyExists.
func (r *Repo) AddVariant(ctx context.Context, key string, v domattr.Variant) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"key": key, "variants.value": bson.M{"$ne": v.Value()}},
		bson.M{
			"$push": bson.M{"variants": fromDomainVariant(v)},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("push variant: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.classifyMiss(ctx, key, domain.ErrAlreadyExists)
	}
	return nil
}

// UpdateVariant sets label and/or active on one variant.
func (r *Repo) UpdateVariant(
	ctx context.Context, key, value string, label *string, active *bool,
) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if label != nil {
		set["variants.$.label"] = *label
	}
	if active != nil {
		set["variants.$.active"] = *active
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"key": key, "variants.value": value},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveVariant pulls one variant from the vocabulary. Profiles keep
// any dangling reference to the removed value.
func (r *Repo) RemoveVariant(ctx context.Context, key, value string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{
			"$pull": bson.M{"variants": bson.M{"value": value}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("pull variant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// classifyMiss disambiguates a zero-match update: the group may be
// missing entirely, or the precondition on its variants failed.
func (r *Repo) classifyMiss(ctx context.Context, key string, onConflict error) error {
	if _, err := r.FindByKey(ctx, key); err != nil {
		return err
	}
	return onConflict
}
