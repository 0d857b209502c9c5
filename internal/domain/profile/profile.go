// Package profile holds the read model of a listed profile. Profiles are
// written elsewhere; the filter service only queries them.
package profile

import "time"

// CodedValue is a reference value with its display label.
type CodedValue struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Location is a profile location. Country is free text; department and
// city are normalized reference values.
type Location struct {
	Country    string     `json:"country,omitempty"`
	Department CodedValue `json:"department"`
	City       CodedValue `json:"city"`
}

// Rate is one price entry. Prices are stored in the platform's base
// currency unit; the filter layer never converts units.
type Rate struct {
	Price    float64 `json:"price"`
	Duration string  `json:"duration,omitempty"`
}

// Slot is a time window within a day, "HH:MM" 24h format.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability lists the open slots for one day of week (0=Sunday).
type Availability struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Slots     []Slot `json:"slots"`
}

// Feature is one (facet, value) pair on a profile. GroupKey and
// GroupName are filled only when feature labels were requested.
type Feature struct {
	GroupID   string `json:"groupId"`
	Value     string `json:"value"`
	GroupKey  string `json:"groupKey,omitempty"`
	GroupName string `json:"groupName,omitempty"`
}

// Verification is the verified state of the owning user account.
type Verification struct {
	UserID     string `json:"userId,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

// Profile is the queryable read model.
type Profile struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Age          int            `json:"age,omitempty"`
	Description  string         `json:"description,omitempty"`
	Location     Location       `json:"location"`
	Rates        []Rate         `json:"rates,omitempty"`
	Availability []Availability `json:"availability,omitempty"`
	Features     []Feature      `json:"features,omitempty"`
	Media        []string       `json:"media,omitempty"`
	IsActive     bool           `json:"isActive"`
	Verification *Verification  `json:"verification,omitempty"`
	CreatedAt    time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt,omitempty"`
}
