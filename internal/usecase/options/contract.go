package options

import (
	"context"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

// Locations are the distinct location values observed on active profiles.
type Locations struct {
	Countries   []string `json:"countries"`
	Departments []string `json:"departments"`
	Cities      []string `json:"cities"`
}

// PriceBounds is the [min,max] observed across all rate entries of
// active profiles. Absent when no active profile has a rate.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProfileScanner provides the read-heavy scans over active profiles.
type ProfileScanner interface {
	DistinctLocations(ctx context.Context) (Locations, error)
	PriceBounds(ctx context.Context) (*PriceBounds, error)
}

// AttributeReader reads the full attribute-group vocabulary.
type AttributeReader interface {
	FindAll(ctx context.Context) ([]attribute.Group, error)
}
