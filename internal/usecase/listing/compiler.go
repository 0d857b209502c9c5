package listing

import (
	"context"
	"fmt"
	"sort"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/domain/query"
)

// Stored document paths the compiler targets.
const (
	fieldIsActive        = "isActive"
	fieldCountry         = "location.country"
	fieldDepartmentValue = "location.department.value"
	fieldCityValue       = "location.city.value"
	fieldUserVerified    = "user.isVerified"
	fieldFeatures        = "features"
	fieldFeatureGroup    = "group_id"
	fieldFeatureValue    = "value"
	fieldRatePrice       = "rates.price"
	fieldAvailability    = "availability"
	fieldDayOfWeek       = "dayOfWeek"
	fieldSlots           = "slots"
	fieldSlotStart       = "start"
	fieldSlotEnd         = "end"
)

// Compiler turns a normalized filter specification into a compiled
// query definition. Apart from one batched attribute-group lookup it is
// a pure function: the same spec always yields the same definition.
type Compiler struct {
	attrs AttributeResolver
	obs   Observer
}

// NewCompiler creates a compiler. A nil observer is replaced with a nop.
func NewCompiler(attrs AttributeResolver, obs Observer) *Compiler {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Compiler{attrs: attrs, obs: obs}
}

// Compile builds the conjunctive predicate list plus sort, page window,
// and projection for a spec.
func (c *Compiler) Compile(ctx context.Context, spec *filter.Spec) (*query.Definition, error) {
	var where []query.Condition

	if spec.IsActive != nil {
		where = append(where, query.Eq(fieldIsActive, *spec.IsActive))
	}

	if loc := spec.Location; loc != nil {
		if loc.Country != "" {
			where = append(where, query.Eq(fieldCountry, loc.Country))
		}
		if loc.Department != "" {
			where = append(where, query.Eq(fieldDepartmentValue, loc.Department))
		}
		if loc.City != "" {
			where = append(where, query.Eq(fieldCityValue, loc.City))
		}
	}

	if spec.IsVerified != nil {
		where = append(where, query.Eq(fieldUserVerified, *spec.IsVerified))
	}

	featureConds, err := c.compileFeatures(ctx, spec.Features)
	if err != nil {
		return nil, err
	}
	where = append(where, featureConds...)

	if pr := spec.PriceRange; pr != nil {
		where = append(where, query.Between(fieldRatePrice, anyBound(pr.Min), anyBound(pr.Max)))
	}

	where = append(where, compileAvailability(spec.Availability)...)

	def := query.NewDefinition(
		where,
		query.NewSort(spec.SortBy, spec.SortOrder == filter.OrderDesc),
		query.PlanPage(spec.Page, spec.Limit),
		query.PlanProjection(spec.Fields),
	)
	return def, nil
}

// compileFeatures resolves all requested group keys in one batched
// lookup and emits one existential predicate per resolvable facet:
// some features[] entry has the resolved group id AND a value from the
// normalized set. Facets combine conjunctively; values within a facet
// disjunctively. Unresolvable keys are dropped, not errors: a filter
// for a facet that does not exist behaves as if it was never requested.
func (c *Compiler) compileFeatures(
	ctx context.Context, features map[string][]string,
) ([]query.Condition, error) {
	if len(features) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(features))
	for key := range features {
		keys = append(keys, key)
	}
	// Deterministic predicate order regardless of map iteration.
	sort.Strings(keys)

	resolved, err := c.attrs.ResolveKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve feature groups: %w", err)
	}

	conds := make([]query.Condition, 0, len(keys))
	for _, key := range keys {
		groupID, ok := resolved[key]
		if !ok {
			c.obs.UnresolvedFacet(key)
			continue
		}

		values := normalizeValues(features[key])
		if len(values) == 0 {
			continue
		}

		conds = append(conds, query.ElemMatch(fieldFeatures,
			query.Eq(fieldFeatureGroup, groupID),
			query.In(fieldFeatureValue, values),
		))
	}
	return conds, nil
}

// compileAvailability emits up to two independent existential
// predicates: one for the requested day, one for slot containment. The
// stored slot must contain the requested window entirely, so the
// profile is available for at least that window.
func compileAvailability(av *filter.AvailabilityFilter) []query.Condition {
	if av == nil {
		return nil
	}

	var conds []query.Condition
	if av.DayOfWeek != nil {
		conds = append(conds, query.ElemMatch(fieldAvailability,
			query.Eq(fieldDayOfWeek, *av.DayOfWeek),
		))
	}
	if ts := av.TimeSlot; ts != nil && ts.Start != "" && ts.End != "" {
		conds = append(conds, query.ElemMatch(fieldAvailability,
			query.ElemMatch(fieldSlots,
				query.Between(fieldSlotStart, nil, ts.Start),
				query.Between(fieldSlotEnd, ts.End, nil),
			),
		))
	}
	return conds
}

// normalizeValues lower-cases, trims, and de-duplicates facet values,
// matching how values are normalized into storage. Order is preserved.
func normalizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		n := attribute.NormalizeValue(v)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// anyBound widens an optional float to the untyped bound the predicate
// tree carries, keeping nil as "unbounded".
func anyBound(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
