package attrgroup

import (
	"context"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

// Repository defines the storage contract for attribute groups. Every
// variant mutation is a single-document write; removing a variant never
// cascades to profiles that reference it.
type Repository interface {
	Create(ctx context.Context, group attribute.Group) (attribute.Group, error)
	FindAll(ctx context.Context) ([]attribute.Group, error)
	FindByKey(ctx context.Context, key string) (attribute.Group, error)
	AddVariant(ctx context.Context, key string, v attribute.Variant) error
	UpdateVariant(ctx context.Context, key, value string, label *string, active *bool) error
	RemoveVariant(ctx context.Context, key, value string) error
}
