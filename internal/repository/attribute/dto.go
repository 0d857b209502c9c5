package attribute

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domattr "github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

type variantDoc struct {
	Value  string `bson:"value"`
	Label  string `bson:"label,omitempty"`
	Active bool   `bson:"active"`
}

type groupDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	Name      string             `bson:"name"`
	Selection string             `bson:"type,omitempty"`
	Variants  []variantDoc       `bson:"variants"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

func fromDomain(g domattr.Group) groupDoc {
	variants := make([]variantDoc, 0, len(g.Variants()))
	for _, v := range g.Variants() {
		variants = append(variants, fromDomainVariant(v))
	}
	return groupDoc{
		Key:       g.Key(),
		Name:      g.Name(),
		Selection: string(g.SelectionType()),
		Variants:  variants,
	}
}

func fromDomainVariant(v domattr.Variant) variantDoc {
	return variantDoc{Value: v.Value(), Label: v.Label(), Active: v.Active()}
}

func (d groupDoc) toDomain() domattr.Group {
	variants := make([]domattr.Variant, 0, len(d.Variants))
	for _, v := range d.Variants {
		variants = append(variants, domattr.ReconstructVariant(v.Value, v.Label, v.Active))
	}
	return domattr.Reconstruct(
		d.ID.Hex(), d.Key, d.Name, domattr.Selection(d.Selection), variants,
	)
}
