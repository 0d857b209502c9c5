package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// UnresolvedFacetsTotal counts filter requests naming a facet key
	// that has no attribute group. Such facets are silently dropped
	// from the compiled query; the counter is the observability hook
	// that keeps typos visible. Keys are admin-managed, so label
	// cardinality stays bounded.
	UnresolvedFacetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "filter_unresolved_facets_total",
			Help:      "Filter requests referencing a facet key with no attribute group",
		},
		[]string{"facet"},
	)

	// OptionsCacheTotal counts facet-option cache outcomes.
	OptionsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "options_cache_total",
			Help:      "Facet option cache outcomes",
		},
		[]string{"outcome"},
	)
)

// RegisterFilterMetrics registers the filter-domain collectors.
// Called explicitly from the composition root (no init()).
func RegisterFilterMetrics() {
	prometheus.MustRegister(UnresolvedFacetsTotal)
	prometheus.MustRegister(OptionsCacheTotal)
}

// FacetObserver reports compiler diagnostics to prometheus. It
// implements the listing Observer contract.
type FacetObserver struct{}

// UnresolvedFacet counts one dropped facet key.
func (FacetObserver) UnresolvedFacet(key string) {
	UnresolvedFacetsTotal.WithLabelValues(key).Inc()
}
