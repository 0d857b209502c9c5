// Package attrgroup holds the administrative operations on attribute
// groups: creating groups and maintaining their variant vocabularies.
package attrgroup

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitrine-cloud/vitrine/internal/domain"
	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

// Service manages attribute groups.
type Service struct {
	repo Repository
}

// New creates an attribute-group service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new group.
func (s *Service) Create(
	ctx context.Context, key, name string, selection attribute.Selection,
	variants []attribute.Variant,
) (attribute.Group, error) {
	group, err := attribute.New(key, name, selection, variants)
	if err != nil {
		return attribute.Group{}, domain.NewValidation("attributeGroup", err.Error())
	}

	created, err := s.repo.Create(ctx, group)
	if err != nil {
		return attribute.Group{}, fmt.Errorf("create group %q: %w", key, err)
	}
	return created, nil
}

// List returns all groups.
func (s *Service) List(ctx context.Context) ([]attribute.Group, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Get returns one group by key.
func (s *Service) Get(ctx context.Context, key string) (attribute.Group, error) {
	group, err := s.repo.FindByKey(ctx, strings.TrimSpace(key))
	if err != nil {
		return attribute.Group{}, fmt.Errorf("get group %q: %w", key, err)
	}
	return group, nil
}

// AddVariant appends a new variant to a group's vocabulary.
func (s *Service) AddVariant(
	ctx context.Context, key, value, label string, active bool,
) (attribute.Variant, error) {
	v, err := attribute.NewVariant(value, label, active)
	if err != nil {
		return attribute.Variant{}, domain.NewValidation("variant", err.Error())
	}

	if err := s.repo.AddVariant(ctx, key, v); err != nil {
		return attribute.Variant{}, fmt.Errorf("add variant to %q: %w", key, err)
	}
	return v, nil
}

// UpdateVariant changes a variant's label and/or active flag. Nil means
// leave unchanged.
func (s *Service) UpdateVariant(
	ctx context.Context, key, value string, label *string, active *bool,
) error {
	if label == nil && active == nil {
		return domain.NewValidation("variant", "nothing to update")
	}

	value = attribute.NormalizeValue(value)
	if err := s.repo.UpdateVariant(ctx, key, value, label, active); err != nil {
		return fmt.Errorf("update variant %q of %q: %w", value, key, err)
	}
	return nil
}

// RemoveVariant deletes a variant from a group's vocabulary. Profiles
// referencing the removed value keep their dangling reference; such
// entries simply stop matching discovery-driven filters.
func (s *Service) RemoveVariant(ctx context.Context, key, value string) error {
	value = attribute.NormalizeValue(value)
	if err := s.repo.RemoveVariant(ctx, key, value); err != nil {
		return fmt.Errorf("remove variant %q of %q: %w", value, key, err)
	}
	return nil
}
