// Package filter normalizes raw filter payloads into validated
// specifications the query compiler can consume.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vitrine-cloud/vitrine/internal/domain"
)

// Pagination and sort defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	DefaultSortBy    = SortByCreatedAt
	DefaultSortOrder = OrderDesc
)

// Sortable fields.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByName      = "name"
	SortByAge       = "age"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// LocationFilter narrows by location. Country is free text; department
// and city match normalized reference values.
type LocationFilter struct {
	Country    string `json:"country,omitempty"`
	Department string `json:"department,omitempty"`
	City       string `json:"city,omitempty"`
}

// IsZero reports whether no location component is set.
func (l LocationFilter) IsZero() bool {
	return l.Country == "" && l.Department == "" && l.City == ""
}

// TimeSlotFilter is a requested availability window, "HH:MM" 24h format.
type TimeSlotFilter struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AvailabilityFilter narrows by weekly availability.
type AvailabilityFilter struct {
	DayOfWeek *int            `json:"dayOfWeek,omitempty"`
	TimeSlot  *TimeSlotFilter `json:"timeSlot,omitempty"`
}

// PricePayload carries the raw price bounds. Values arrive untyped from
// JSON and are coerced during normalization.
type PricePayload struct {
	Min any `json:"min,omitempty"`
	Max any `json:"max,omitempty"`
}

// Payload is the raw, partially-populated filter object as sent by a
// caller. Feature values may be a scalar string or a list of strings.
type Payload struct {
	Category     string              `json:"category,omitempty"`
	Location     *LocationFilter     `json:"location,omitempty"`
	Features     map[string]any      `json:"features,omitempty"`
	PriceRange   *PricePayload       `json:"priceRange,omitempty"`
	Availability *AvailabilityFilter `json:"availability,omitempty"`
	IsActive     *bool               `json:"isActive,omitempty"`
	IsVerified   *bool               `json:"isVerified,omitempty"`
	Page         int                 `json:"page,omitempty"`
	Limit        int                 `json:"limit,omitempty"`
	SortBy       string              `json:"sortBy,omitempty"`
	SortOrder    string              `json:"sortOrder,omitempty"`
	Fields       []string            `json:"fields,omitempty"`
}

// PriceRange is the coerced numeric price range; either bound optional.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Spec is a fully-defaulted, validated filter specification. The feature
// bag always holds lists; the category shortcut has been folded in.
type Spec struct {
	Location     *LocationFilter
	Features     map[string][]string
	PriceRange   *PriceRange
	Availability *AvailabilityFilter
	IsActive     *bool
	IsVerified   *bool
	Page         int    `validate:"min=1"`
	Limit        int    `validate:"min=1,max=100"`
	SortBy       string `validate:"oneof=createdAt updatedAt name age"`
	SortOrder    string `validate:"oneof=asc desc"`
	Fields       []string
}

var validate = validator.New()

// Normalize fills defaults, reshapes ad-hoc fields into the unified
// feature bag, and validates bounds. It is a pure transformation: no
// store access happens here, so malformed input fails before any query
// is issued.
func Normalize(p Payload) (Spec, error) {
	spec := Spec{
		Availability: p.Availability,
		IsActive:     p.IsActive,
		IsVerified:   p.IsVerified,
		Page:         p.Page,
		Limit:        p.Limit,
		SortBy:       p.SortBy,
		SortOrder:    p.SortOrder,
		Fields:       p.Fields,
	}

	if p.Location != nil && !p.Location.IsZero() {
		loc := *p.Location
		spec.Location = &loc
	}

	if spec.Page == 0 {
		spec.Page = DefaultPage
	}
	if spec.Limit == 0 {
		spec.Limit = DefaultLimit
	}
	if spec.SortBy == "" {
		spec.SortBy = DefaultSortBy
	}
	if spec.SortOrder == "" {
		spec.SortOrder = DefaultSortOrder
	}

	features, err := normalizeFeatures(p)
	if err != nil {
		return Spec{}, err
	}
	spec.Features = features

	if p.PriceRange != nil {
		pr, err := coercePriceRange(*p.PriceRange)
		if err != nil {
			return Spec{}, err
		}
		spec.PriceRange = pr
	}

	if err := validate.Struct(&spec); err != nil {
		return Spec{}, mapValidatorError(err)
	}

	return spec, nil
}

// normalizeFeatures coerces every feature value to a list of strings and
// folds a top-level category into the feature bag, so the compiler can
// treat category as just another facet.
func normalizeFeatures(p Payload) (map[string][]string, error) {
	if len(p.Features) == 0 && p.Category == "" {
		return nil, nil
	}

	features := make(map[string][]string, len(p.Features)+1)
	for key, raw := range p.Features {
		values, err := toStringList(raw)
		if err != nil {
			return nil, domain.NewValidation("features."+key, err.Error())
		}
		if len(values) > 0 {
			features[key] = values
		}
	}

	if p.Category != "" {
		features["category"] = append(features["category"], p.Category)
	}

	return features, nil
}

// toStringList accepts a scalar string or a list of strings.
func toStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a string or a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a string or a list of strings")
	}
}

func coercePriceRange(p PricePayload) (*PriceRange, error) {
	min, err := coerceNumber(p.Min)
	if err != nil {
		return nil, domain.NewValidation("priceRange.min", "must be a number")
	}
	max, err := coerceNumber(p.Max)
	if err != nil {
		return nil, domain.NewValidation("priceRange.max", "must be a number")
	}
	if min == nil && max == nil {
		return nil, nil
	}
	return &PriceRange{Min: min, Max: max}, nil
}

// coerceNumber accepts the numeric shapes a JSON payload can carry.
func coerceNumber(raw any) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("not a number: %v", raw)
	}
}

// mapValidatorError converts the first struct validation failure into a
// field-specific, user-facing message.
func mapValidatorError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.NewValidation("filter", "invalid filter specification")
	}

	switch errs[0].Field() {
	case "Page":
		return domain.NewValidation("page", "must be at least 1")
	case "Limit":
		return domain.NewValidation("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	case "SortBy":
		return domain.NewValidation("sortBy", "must be one of createdAt, updatedAt, name, age")
	case "SortOrder":
		return domain.NewValidation("sortOrder", "must be asc or desc")
	default:
		return domain.NewValidation("filter", errs[0].Error())
	}
}
