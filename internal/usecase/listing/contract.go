package listing

import (
	"context"

	"github.com/vitrine-cloud/vitrine/internal/domain/profile"
	"github.com/vitrine-cloud/vitrine/internal/domain/query"
)

// Repository defines the storage contract for compiled profile queries.
type Repository interface {
	// Find executes the full compiled query and returns one page of rows.
	Find(ctx context.Context, def *query.Definition) ([]profile.Profile, error)

	// Count executes a count-only query over the same predicate list,
	// with no skip/limit/sort/projection applied.
	Count(ctx context.Context, where []query.Condition) (int64, error)
}

// AttributeResolver resolves facet group keys to storage identifiers in
// one batched lookup. Identifiers are opaque to the compiler; the
// repository supplies them in its native form. Keys with no group are
// simply absent from the result.
type AttributeResolver interface {
	ResolveKeys(ctx context.Context, keys []string) (map[string]any, error)
}

// Observer receives compiler diagnostics. It keeps the compiler free of
// logging side effects while still surfacing silently-dropped facets.
type Observer interface {
	UnresolvedFacet(key string)
}

// NopObserver discards all diagnostics.
type NopObserver struct{}

// UnresolvedFacet implements Observer.
func (NopObserver) UnresolvedFacet(string) {}
