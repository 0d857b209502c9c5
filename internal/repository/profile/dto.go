package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domprofile "github.com/vitrine-cloud/vitrine/internal/domain/profile"
)

type codedDoc struct {
	Value string `bson:"value"`
	Label string `bson:"label,omitempty"`
}

type locationDoc struct {
	Country    string   `bson:"country,omitempty"`
	Department codedDoc `bson:"department,omitempty"`
	City       codedDoc `bson:"city,omitempty"`
}

type rateDoc struct {
	Price    float64 `bson:"price"`
	Duration string  `bson:"duration,omitempty"`
}

type slotDoc struct {
	Start string `bson:"start"`
	End   string `bson:"end"`
}

type availabilityDoc struct {
	DayOfWeek int       `bson:"dayOfWeek"`
	Slots     []slotDoc `bson:"slots,omitempty"`
}

type featureDoc struct {
	GroupID primitive.ObjectID `bson:"group_id"`
	Value   string             `bson:"value"`
}

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	IsVerified bool               `bson:"isVerified"`
}

// featureGroupDoc is the slim shape produced by the feature-label
// lookup stage.
type featureGroupDoc struct {
	ID   primitive.ObjectID `bson:"_id"`
	Key  string             `bson:"key"`
	Name string             `bson:"name"`
}

type profileDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Age           int                `bson:"age,omitempty"`
	Description   string             `bson:"description,omitempty"`
	Location      locationDoc        `bson:"location,omitempty"`
	Rates         []rateDoc          `bson:"rates,omitempty"`
	Availability  []availabilityDoc  `bson:"availability,omitempty"`
	Features      []featureDoc       `bson:"features,omitempty"`
	Media         []string           `bson:"media,omitempty"`
	IsActive      bool               `bson:"isActive"`
	User          *userDoc           `bson:"user,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty"`
	FeatureGroups []featureGroupDoc  `bson:"feature_groups,omitempty"`
}

func (d *profileDoc) toDomain() domprofile.Profile {
	p := domprofile.Profile{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Age:         d.Age,
		Description: d.Description,
		Location: domprofile.Location{
			Country:    d.Location.Country,
			Department: domprofile.CodedValue(d.Location.Department),
			City:       domprofile.CodedValue(d.Location.City),
		},
		Media:     d.Media,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	for _, r := range d.Rates {
		p.Rates = append(p.Rates, domprofile.Rate(r))
	}

	for _, a := range d.Availability {
		av := domprofile.Availability{DayOfWeek: a.DayOfWeek}
		for _, s := range a.Slots {
			av.Slots = append(av.Slots, domprofile.Slot(s))
		}
		p.Availability = append(p.Availability, av)
	}

	groups := make(map[string]featureGroupDoc, len(d.FeatureGroups))
	for _, g := range d.FeatureGroups {
		groups[g.ID.Hex()] = g
	}
	for _, f := range d.Features {
		feature := domprofile.Feature{GroupID: f.GroupID.Hex(), Value: f.Value}
		if g, ok := groups[feature.GroupID]; ok {
			feature.GroupKey = g.Key
			feature.GroupName = g.Name
		}
		p.Features = append(p.Features, feature)
	}

	if d.User != nil {
		p.Verification = &domprofile.Verification{
			UserID:     d.User.ID.Hex(),
			IsVerified: d.User.IsVerified,
		}
	}

	return p
}
