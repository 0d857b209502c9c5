package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vitrine-cloud/vitrine/internal/domain"
)

func TestNormalize_Defaults(t *testing.T) {
	spec, err := Normalize(Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Page != DefaultPage {
		t.Errorf("page = %d, want %d", spec.Page, DefaultPage)
	}
	if spec.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", spec.Limit, DefaultLimit)
	}
	if spec.SortBy != SortByCreatedAt {
		t.Errorf("sortBy = %q, want %q", spec.SortBy, SortByCreatedAt)
	}
	if spec.SortOrder != OrderDesc {
		t.Errorf("sortOrder = %q, want %q", spec.SortOrder, OrderDesc)
	}
	if spec.Features != nil {
		t.Errorf("features = %v, want nil", spec.Features)
	}
}

func TestNormalize_CategoryFoldedIntoFeatures(t *testing.T) {
	spec, err := Normalize(Payload{Category: "Escort"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string][]string{"category": {"Escort"}}
	if !reflect.DeepEqual(spec.Features, want) {
		t.Errorf("features = %v, want %v", spec.Features, want)
	}
}

func TestNormalize_FeatureShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"scalar string", "red", []string{"red"}},
		{"string list", []string{"red", "brown"}, []string{"red", "brown"}},
		{"json array", []any{"red", "brown"}, []string{"red", "brown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Normalize(Payload{Features: map[string]any{"hairColor": tt.raw}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(spec.Features["hairColor"], tt.want) {
				t.Errorf("hairColor = %v, want %v", spec.Features["hairColor"], tt.want)
			}
		})
	}
}

func TestNormalize_FeatureBadShape(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"number", 42},
		{"mixed list", []any{"red", 3}},
		{"object", map[string]any{"x": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(Payload{Features: map[string]any{"hairColor": tt.raw}})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNormalize_EmptyFeatureValueDropped(t *testing.T) {
	spec, err := Normalize(Payload{Features: map[string]any{"hairColor": ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := spec.Features["hairColor"]; ok {
		t.Error("expected empty feature value to be dropped")
	}
}

func TestNormalize_PriceCoercion(t *testing.T) {
	spec, err := Normalize(Payload{
		PriceRange: &PricePayload{Min: float64(50), Max: 200},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.PriceRange == nil {
		t.Fatal("expected price range")
	}
	if *spec.PriceRange.Min != 50 || *spec.PriceRange.Max != 200 {
		t.Errorf("price = [%v, %v], want [50, 200]", *spec.PriceRange.Min, *spec.PriceRange.Max)
	}
}

func TestNormalize_PriceOpenBounds(t *testing.T) {
	spec, err := Normalize(Payload{PriceRange: &PricePayload{Min: float64(100)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.PriceRange.Min == nil || spec.PriceRange.Max != nil {
		t.Errorf("expected min set, max nil; got %+v", spec.PriceRange)
	}

	spec, err = Normalize(Payload{PriceRange: &PricePayload{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.PriceRange != nil {
		t.Errorf("expected empty price range to be dropped, got %+v", spec.PriceRange)
	}
}

func TestNormalize_PriceNotANumber(t *testing.T) {
	_, err := Normalize(Payload{PriceRange: &PricePayload{Min: "cheap"}})
	if err == nil {
		t.Fatal("expected error")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "priceRange.min" {
		t.Errorf("field = %q, want priceRange.min", ve.Field)
	}
}

func TestNormalize_EmptyLocationDropped(t *testing.T) {
	spec, err := Normalize(Payload{Location: &LocationFilter{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Location != nil {
		t.Errorf("expected empty location to be dropped, got %+v", spec.Location)
	}
}

func TestNormalize_BoundsRejected(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		field   string
	}{
		{"negative page", Payload{Page: -1}, "page"},
		{"limit above max", Payload{Limit: 150}, "limit"},
		{"negative limit", Payload{Limit: -5}, "limit"},
		{"unknown sort field", Payload{SortBy: "height"}, "sortBy"},
		{"unknown sort order", Payload{SortOrder: "sideways"}, "sortOrder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.payload)
			if err == nil {
				t.Fatal("expected error")
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestNormalize_TristateFlagsPreserved(t *testing.T) {
	f := false
	spec, err := Normalize(Payload{IsActive: &f})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.IsActive == nil || *spec.IsActive != false {
		t.Errorf("isActive = %v, want false", spec.IsActive)
	}
	if spec.IsVerified != nil {
		t.Errorf("isVerified = %v, want nil", spec.IsVerified)
	}
}
