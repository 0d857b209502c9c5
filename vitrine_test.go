package vitrine

import (
	"testing"
	"time"
)

func TestNew_NoMongo(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no database configured")
	}
}

func TestNew_NoDatabaseName(t *testing.T) {
	_, err := New(WithMongo("mongodb://localhost:27017", ""))
	if err == nil {
		t.Fatal("expected error when no database name given")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithMongo("mongodb://localhost:27017", "vitrine")(cfg)
	if cfg.uri != "mongodb://localhost:27017" {
		t.Errorf("uri = %q, want mongodb://localhost:27017", cfg.uri)
	}
	if cfg.database != "vitrine" {
		t.Errorf("database = %q, want vitrine", cfg.database)
	}

	WithReadinessTimeout(3 * time.Second)(cfg)
	if cfg.readinessTimeout != 3*time.Second {
		t.Errorf("readinessTimeout = %v, want 3s", cfg.readinessTimeout)
	}

	WithOptionCache([]string{"localhost:6379"}, "secret", time.Minute)(cfg)
	if len(cfg.cacheAddrs) != 1 || cfg.cacheAddrs[0] != "localhost:6379" {
		t.Errorf("cacheAddrs = %v, want [localhost:6379]", cfg.cacheAddrs)
	}
	if cfg.cachePassword != "secret" {
		t.Errorf("cachePassword = %q, want secret", cfg.cachePassword)
	}
	if cfg.cacheTTL != time.Minute {
		t.Errorf("cacheTTL = %v, want 1m", cfg.cacheTTL)
	}
}

func TestFilterToPayload(t *testing.T) {
	min, max := 50.0, 200.0
	day := 1
	verified := true

	f := Filter{
		Category: "escort",
		Location: &LocationFilter{Country: "France", City: "paris"},
		Features: map[string][]string{"hairColor": {"red", "brown"}},
		PriceRange: &PriceRangeFilter{Min: &min, Max: &max},
		Availability: &AvailabilityFilter{
			DayOfWeek: &day,
			TimeSlot:  &TimeSlotFilter{Start: "10:00", End: "12:00"},
		},
		IsVerified: &verified,
		Page:       2,
		Limit:      10,
		SortBy:     "name",
		SortOrder:  "asc",
		Fields:     []string{"name", "age"},
	}

	p := filterToPayload(f)

	if p.Category != "escort" {
		t.Errorf("category = %q, want escort", p.Category)
	}
	if p.Location == nil || p.Location.City != "paris" {
		t.Errorf("location = %+v, want city paris", p.Location)
	}
	values, ok := p.Features["hairColor"].([]string)
	if !ok || len(values) != 2 {
		t.Errorf("features = %v, want hairColor with 2 values", p.Features)
	}
	if p.PriceRange == nil || p.PriceRange.Min != 50.0 || p.PriceRange.Max != 200.0 {
		t.Errorf("priceRange = %+v, want [50, 200]", p.PriceRange)
	}
	if p.Availability == nil || *p.Availability.DayOfWeek != 1 {
		t.Errorf("availability = %+v, want day 1", p.Availability)
	}
	if p.Availability.TimeSlot == nil || p.Availability.TimeSlot.End != "12:00" {
		t.Errorf("timeSlot = %+v, want end 12:00", p.Availability.TimeSlot)
	}
	if p.IsVerified == nil || !*p.IsVerified {
		t.Errorf("isVerified = %v, want true", p.IsVerified)
	}
	if p.Page != 2 || p.Limit != 10 || p.SortBy != "name" || p.SortOrder != "asc" {
		t.Errorf("paging/sort = %d/%d/%s/%s, want 2/10/name/asc", p.Page, p.Limit, p.SortBy, p.SortOrder)
	}
}

func TestFilterToPayload_OpenPriceBound(t *testing.T) {
	min := 100.0
	p := filterToPayload(Filter{PriceRange: &PriceRangeFilter{Min: &min}})

	if p.PriceRange == nil || p.PriceRange.Min != 100.0 {
		t.Errorf("min = %v, want 100", p.PriceRange)
	}
	if p.PriceRange.Max != nil {
		t.Errorf("max = %v, want nil for open bound", p.PriceRange.Max)
	}
}

func TestFilterToPayload_Empty(t *testing.T) {
	p := filterToPayload(Filter{})

	if p.Location != nil || p.Features != nil || p.PriceRange != nil || p.Availability != nil {
		t.Errorf("empty filter must map to empty payload, got %+v", p)
	}
}
