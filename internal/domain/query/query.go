// Package query is the backend-neutral compiled form of a profile
// filter: a conjunctive predicate tree plus sort, pagination, and
// projection directives. It is produced once by the compiler and
// consumed once by the profile repository.
package query

// Condition is a single predicate. Exactly one of the shapes is set:
// equality, membership, range, or an existential match over an
// array-valued field.
type Condition struct {
	field string
	eq    any
	hasEq bool
	in    []string
	rng   *Range
	elem  []Condition
}

// Eq creates an equality condition on a field.
func Eq(field string, value any) Condition {
	return Condition{field: field, eq: value, hasEq: true}
}

// In creates a membership condition: the field value must be among vals.
func In(field string, vals []string) Condition {
	return Condition{field: field, in: vals}
}

// Between creates a range condition; either bound may be nil. Bounds are
// inclusive and compared with the store's native ordering, so they work
// for numbers and for zero-padded "HH:MM" strings alike.
func Between(field string, gte, lte any) Condition {
	return Condition{field: field, rng: &Range{gte: gte, lte: lte}}
}

// ElemMatch creates an existential condition: at least one element of
// the array at field satisfies every nested condition. Nested condition
// fields are relative to the array element.
func ElemMatch(field string, conds ...Condition) Condition {
	return Condition{field: field, elem: conds}
}

// Field returns the document path the condition applies to.
func (c Condition) Field() string { return c.field }

// IsEq reports whether this is an equality condition.
func (c Condition) IsEq() bool { return c.hasEq }

// EqValue returns the equality operand.
func (c Condition) EqValue() any { return c.eq }

// IsIn reports whether this is a membership condition.
func (c Condition) IsIn() bool { return c.in != nil }

// InValues returns the membership operands.
func (c Condition) InValues() []string { return c.in }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rng != nil }

// RangeBounds returns the range operand.
func (c Condition) RangeBounds() *Range { return c.rng }

// IsElem reports whether this is an existential array condition.
func (c Condition) IsElem() bool { return c.elem != nil }

// ElemConditions returns the nested element conditions.
func (c Condition) ElemConditions() []Condition { return c.elem }

// Range holds inclusive bounds; nil means unbounded on that side.
type Range struct {
	gte any
	lte any
}

// GTE returns the inclusive lower bound.
func (r *Range) GTE() any { return r.gte }

// LTE returns the inclusive upper bound.
func (r *Range) LTE() any { return r.lte }

// Sort is a single-key sort directive.
type Sort struct {
	field string
	desc  bool
}

// NewSort creates a sort directive.
func NewSort(field string, desc bool) Sort {
	return Sort{field: field, desc: desc}
}

// Field returns the sort key.
func (s Sort) Field() string { return s.field }

// Desc reports whether the sort is descending.
func (s Sort) Desc() bool { return s.desc }

// Page holds the derived skip/limit window.
type Page struct {
	skip  int
	limit int
}

// PlanPage derives skip/limit from a 1-based page number.
func PlanPage(page, limit int) Page {
	return Page{skip: (page - 1) * limit, limit: limit}
}

// Skip returns the number of rows to skip.
func (p Page) Skip() int { return p.skip }

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// DefaultFields is the minimal projection sufficient for a result card.
// Expensive nested associations are populated on demand only.
var DefaultFields = []string{
	"id", "name", "age", "location", "description",
	"verification", "media", "isActive",
}

// Projection determines which profile fields are materialized and which
// nested associations are populated.
type Projection struct {
	fields              []string
	includeVerification bool
	includeFeatures     bool
}

// PlanProjection builds the projection for a caller-supplied field list.
// With no explicit list the default card fields apply. The verification
// association is included unless an explicit list excludes it; feature
// labels are populated only when "features" is explicitly requested,
// since that join is the most expensive part of result hydration.
func PlanProjection(fields []string) Projection {
	if len(fields) == 0 {
		return Projection{fields: DefaultFields, includeVerification: true}
	}

	p := Projection{fields: fields}
	for _, f := range fields {
		switch f {
		case "verification":
			p.includeVerification = true
		case "features":
			p.includeFeatures = true
		}
	}
	return p
}

// Fields returns the projected field names.
func (p Projection) Fields() []string { return p.fields }

// IncludeVerification reports whether the user association is populated.
func (p Projection) IncludeVerification() bool { return p.includeVerification }

// IncludeFeatures reports whether feature labels are populated.
func (p Projection) IncludeFeatures() bool { return p.includeFeatures }

// Definition is a complete compiled query: conjunctive predicates plus
// sort, page window, and projection.
type Definition struct {
	where      []Condition
	sort       Sort
	page       Page
	projection Projection
}

// NewDefinition assembles a compiled query.
func NewDefinition(where []Condition, sort Sort, page Page, projection Projection) *Definition {
	return &Definition{where: where, sort: sort, page: page, projection: projection}
}

// Where returns the top-level conjunctive predicate list. The count
// query and the row query share this exact slice, which keeps their
// predicate trees identical by construction.
func (d *Definition) Where() []Condition { return d.where }

// Sort returns the sort directive.
func (d *Definition) Sort() Sort { return d.sort }

// Page returns the skip/limit window.
func (d *Definition) Page() Page { return d.page }

// Projection returns the projection plan.
func (d *Definition) Projection() Projection { return d.projection }
