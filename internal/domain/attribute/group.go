// Package attribute holds facet definitions: named groups of
// administrator-managed variants that profiles can be filtered by.
package attribute

import (
	"fmt"
	"strings"
)

// Selection describes how many variants of a group a profile may carry.
// Informational only; the query compiler does not enforce it.
type Selection string

// Selection cardinalities.
const (
	Single Selection = "single"
	Multi  Selection = "multi"
)

// IsValid reports whether the selection cardinality is known.
func (s Selection) IsValid() bool {
	return s == Single || s == Multi
}

// Variant is one allowed value within a group.
// Inactive variants are hidden from facet discovery but kept for history.
type Variant struct {
	value  string
	label  string
	active bool
}

// NewVariant validates and creates a variant. The value is stored
// lower-cased and trimmed, matching how profile features are stored.
func NewVariant(value, label string, active bool) (Variant, error) {
	value = NormalizeValue(value)
	if value == "" {
		return Variant{}, fmt.Errorf("variant value is required")
	}
	return Variant{value: value, label: strings.TrimSpace(label), active: active}, nil
}

// ReconstructVariant rebuilds a variant from storage without validation.
func ReconstructVariant(value, label string, active bool) Variant {
	return Variant{value: value, label: label, active: active}
}

// Value returns the normalized variant value.
func (v Variant) Value() string { return v.value }

// Label returns the stored display label (may be empty for old records).
func (v Variant) Label() string { return v.label }

// Active reports whether the variant is offered in facet discovery.
func (v Variant) Active() bool { return v.active }

// DisplayLabel returns the label, falling back to the value for records
// created before labels existed.
func (v Variant) DisplayLabel() string {
	if v.label != "" {
		return v.label
	}
	return v.value
}

// Group is a named filterable dimension with an ordered variant vocabulary.
type Group struct {
	id        string
	key       string
	name      string
	selection Selection
	variants  []Variant
}

// New validates and creates a group. Defaults: selection=single.
func New(key, name string, selection Selection, variants []Variant) (Group, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Group{}, fmt.Errorf("group key is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, fmt.Errorf("group name is required")
	}
	if selection == "" {
		selection = Single
	}
	if !selection.IsValid() {
		return Group{}, fmt.Errorf("invalid selection type: %q", selection)
	}

	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, dup := seen[v.Value()]; dup {
			return Group{}, fmt.Errorf("duplicate variant value %q", v.Value())
		}
		seen[v.Value()] = struct{}{}
	}

	return Group{key: key, name: name, selection: selection, variants: variants}, nil
}

// Reconstruct rebuilds a group from storage without validation.
func Reconstruct(id, key, name string, selection Selection, variants []Variant) Group {
	return Group{id: id, key: key, name: name, selection: selection, variants: variants}
}

// ID returns the storage identifier (empty until persisted).
func (g Group) ID() string { return g.id }

// Key returns the unique symbolic name (e.g. "category", "hairColor").
func (g Group) Key() string { return g.key }

// Name returns the human-readable display name.
func (g Group) Name() string { return g.name }

// SelectionType returns the selection cardinality.
func (g Group) SelectionType() Selection { return g.selection }

// Variants returns the ordered variant vocabulary.
func (g Group) Variants() []Variant { return g.variants }

// ActiveVariants returns only the variants offered in facet discovery.
func (g Group) ActiveVariants() []Variant {
	out := make([]Variant, 0, len(g.variants))
	for _, v := range g.variants {
		if v.active {
			out = append(out, v)
		}
	}
	return out
}

// FindVariant looks up a variant by its normalized value.
func (g Group) FindVariant(value string) (Variant, bool) {
	value = NormalizeValue(value)
	for _, v := range g.variants {
		if v.value == value {
			return v, true
		}
	}
	return Variant{}, false
}

// CategoryKey is the group key surfaced as a first-class category list.
const CategoryKey = "category"

// NormalizeValue lower-cases and trims a facet value the same way values
// are normalized when written into profile features.
func NormalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
