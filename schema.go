package vitrine

import (
	"time"

	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/domain/profile"
	"github.com/vitrine-cloud/vitrine/internal/usecase/listing"
	"github.com/vitrine-cloud/vitrine/internal/usecase/options"
)

// Filter describes a profile search. Zero values mean "not filtered".
type Filter struct {
	// Category is a shortcut for Features["category"].
	Category string
	// Location narrows by country, department and/or city.
	Location *LocationFilter
	// Features maps an attribute-group key to the requested values.
	// Multiple values for one key match any of them.
	Features map[string][]string
	// PriceRange keeps profiles with at least one rate inside the bounds.
	PriceRange *PriceRangeFilter
	// Availability keeps profiles open on a weekday and/or time window.
	Availability *AvailabilityFilter
	// IsActive and IsVerified are tri-state: nil means not filtered.
	IsActive   *bool
	IsVerified *bool

	Page      int
	Limit     int
	SortBy    string // createdAt, updatedAt, name, age
	SortOrder string // asc, desc

	// Fields selects the returned projection. Empty means the default
	// card fields.
	Fields []string
}

// LocationFilter narrows by location. Country is free text; department
// and city match normalized reference values.
type LocationFilter struct {
	Country    string
	Department string
	City       string
}

// PriceRangeFilter bounds the price of at least one rate entry. Either
// bound may be nil.
type PriceRangeFilter struct {
	Min *float64
	Max *float64
}

// TimeSlotFilter is a requested availability window, "HH:MM" 24h format.
type TimeSlotFilter struct {
	Start string
	End   string
}

// AvailabilityFilter narrows by weekly availability (0=Sunday).
type AvailabilityFilter struct {
	DayOfWeek *int
	TimeSlot  *TimeSlotFilter
}

// CodedValue is a reference value with its display label.
type CodedValue struct {
	Value string
	Label string
}

// Location is a profile location.
type Location struct {
	Country    string
	Department CodedValue
	City       CodedValue
}

// Rate is one price entry on a profile.
type Rate struct {
	Price    float64
	Duration string
}

// Slot is a time window within a day, "HH:MM" 24h format.
type Slot struct {
	Start string
	End   string
}

// Availability lists the open slots for one day of week (0=Sunday).
type Availability struct {
	DayOfWeek int
	Slots     []Slot
}

// Feature is one (facet, value) pair on a profile. GroupKey and
// GroupName are filled only when "features" was requested in Fields.
type Feature struct {
	GroupID   string
	Value     string
	GroupKey  string
	GroupName string
}

// Verification is the verified state of the owning user account.
type Verification struct {
	UserID     string
	IsVerified bool
}

// Profile is one filtered result.
type Profile struct {
	ID           string
	Name         string
	Age          int
	Description  string
	Location     Location
	Rates        []Rate
	Availability []Availability
	Features     []Feature
	Media        []string
	IsActive     bool
	Verification *Verification
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Page is one page of filter results with pagination metadata.
type Page struct {
	Profiles    []Profile
	CurrentPage int
	TotalPages  int
	TotalCount  int64
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

// Choice is one selectable facet value for a filter UI.
type Choice struct {
	Label string
	Value string
}

// LocationOptions are the distinct location values observed on active
// profiles.
type LocationOptions struct {
	Countries   []string
	Departments []string
	Cities      []string
}

// PriceBounds is the [min,max] observed across all rate entries of
// active profiles. Absent when no active profile has a rate.
type PriceBounds struct {
	Min float64
	Max float64
}

// FilterOptions is the complete filter-UI vocabulary.
type FilterOptions struct {
	Categories []Choice
	Locations  LocationOptions
	Features   map[string][]Choice
	PriceRange *PriceBounds
}

// Variant is one selectable value of an attribute group.
type Variant struct {
	Value  string
	Label  string
	Active bool
}

// Group is an attribute group: a facet key with its variant vocabulary.
type Group struct {
	ID       string
	Key      string
	Name     string
	Type     string // single or multi
	Variants []Variant
}

func filterToPayload(f Filter) filter.Payload {
	p := filter.Payload{
		Category:   f.Category,
		IsActive:   f.IsActive,
		IsVerified: f.IsVerified,
		Page:       f.Page,
		Limit:      f.Limit,
		SortBy:     f.SortBy,
		SortOrder:  f.SortOrder,
		Fields:     f.Fields,
	}

	if f.Location != nil {
		p.Location = &filter.LocationFilter{
			Country:    f.Location.Country,
			Department: f.Location.Department,
			City:       f.Location.City,
		}
	}

	if len(f.Features) > 0 {
		p.Features = make(map[string]any, len(f.Features))
		for key, values := range f.Features {
			p.Features[key] = values
		}
	}

	if f.PriceRange != nil {
		pr := &filter.PricePayload{}
		if f.PriceRange.Min != nil {
			pr.Min = *f.PriceRange.Min
		}
		if f.PriceRange.Max != nil {
			pr.Max = *f.PriceRange.Max
		}
		p.PriceRange = pr
	}

	if f.Availability != nil {
		av := &filter.AvailabilityFilter{DayOfWeek: f.Availability.DayOfWeek}
		if f.Availability.TimeSlot != nil {
			av.TimeSlot = &filter.TimeSlotFilter{
				Start: f.Availability.TimeSlot.Start,
				End:   f.Availability.TimeSlot.End,
			}
		}
		p.Availability = av
	}

	return p
}

func profileFromDomain(p profile.Profile) Profile {
	out := Profile{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Description: p.Description,
		Location: Location{
			Country:    p.Location.Country,
			Department: CodedValue{Value: p.Location.Department.Value, Label: p.Location.Department.Label},
			City:       CodedValue{Value: p.Location.City.Value, Label: p.Location.City.Label},
		},
		Media:     p.Media,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	for _, r := range p.Rates {
		out.Rates = append(out.Rates, Rate{Price: r.Price, Duration: r.Duration})
	}
	for _, a := range p.Availability {
		slots := make([]Slot, 0, len(a.Slots))
		for _, s := range a.Slots {
			slots = append(slots, Slot{Start: s.Start, End: s.End})
		}
		out.Availability = append(out.Availability, Availability{DayOfWeek: a.DayOfWeek, Slots: slots})
	}
	for _, f := range p.Features {
		out.Features = append(out.Features, Feature{
			GroupID:   f.GroupID,
			Value:     f.Value,
			GroupKey:  f.GroupKey,
			GroupName: f.GroupName,
		})
	}
	if p.Verification != nil {
		out.Verification = &Verification{
			UserID:     p.Verification.UserID,
			IsVerified: p.Verification.IsVerified,
		}
	}
	return out
}

func pageFromDomain(p *listing.Page) *Page {
	profiles := make([]Profile, 0, len(p.Profiles))
	for _, dp := range p.Profiles {
		profiles = append(profiles, profileFromDomain(dp))
	}
	return &Page{
		Profiles:    profiles,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
		Limit:       p.Limit,
	}
}

func optionsFromDomain(o options.Options) FilterOptions {
	out := FilterOptions{
		Categories: choicesFromDomain(o.Categories),
		Locations: LocationOptions{
			Countries:   o.Locations.Countries,
			Departments: o.Locations.Departments,
			Cities:      o.Locations.Cities,
		},
		Features: make(map[string][]Choice, len(o.Features)),
	}
	for key, choices := range o.Features {
		out.Features[key] = choicesFromDomain(choices)
	}
	if o.PriceRange != nil {
		out.PriceRange = &PriceBounds{Min: o.PriceRange.Min, Max: o.PriceRange.Max}
	}
	return out
}

func choicesFromDomain(in []options.Choice) []Choice {
	out := make([]Choice, 0, len(in))
	for _, c := range in {
		out = append(out, Choice{Label: c.Label, Value: c.Value})
	}
	return out
}

func groupFromDomain(g attribute.Group) Group {
	variants := make([]Variant, 0, len(g.Variants()))
	for _, v := range g.Variants() {
		variants = append(variants, Variant{
			Value:  v.Value(),
			Label:  v.DisplayLabel(),
			Active: v.Active(),
		})
	}
	return Group{
		ID:       g.ID(),
		Key:      g.Key(),
		Name:     g.Name(),
		Type:     string(g.SelectionType()),
		Variants: variants,
	}
}
