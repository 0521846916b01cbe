package types

import "strings"

// Sentinel values that impose no constraint on a filter field.
const (
	AllCategories Category        = "All Categories"
	AllLocations                  = "All Locations"
	AllExperience ExperienceLevel = "All Experience"
)

// FilterCriteria is the active set of listing filters.
type FilterCriteria struct {
	Category    Category        `json:"category"`
	Location    string          `json:"location"`
	Experience  ExperienceLevel `json:"experience"`
	SearchQuery string          `json:"searchQuery"`
}

// DefaultFilters returns criteria with every field at its sentinel.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		Category:   AllCategories,
		Location:   AllLocations,
		Experience: AllExperience,
	}
}

// IsDefault reports whether no field constrains the listing.
func (c FilterCriteria) IsDefault() bool {
	return c.Normalize() == DefaultFilters()
}

// Normalize maps empty enum fields to their sentinels.
func (c FilterCriteria) Normalize() FilterCriteria {
	if strings.TrimSpace(string(c.Category)) == "" {
		c.Category = AllCategories
	}
	if strings.TrimSpace(c.Location) == "" {
		c.Location = AllLocations
	}
	if strings.TrimSpace(string(c.Experience)) == "" {
		c.Experience = AllExperience
	}
	return c
}

// FilterUpdate is a partial FilterCriteria. Nil fields keep their current value.
type FilterUpdate struct {
	Category    *Category        `json:"category,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Experience  *ExperienceLevel `json:"experience,omitempty"`
	SearchQuery *string          `json:"searchQuery,omitempty"`
}

// WithCategory returns a copy of u that sets the category.
func (u FilterUpdate) WithCategory(c Category) FilterUpdate {
	u.Category = &c
	return u
}

// WithLocation returns a copy of u that sets the location.
func (u FilterUpdate) WithLocation(l string) FilterUpdate {
	u.Location = &l
	return u
}

// WithExperience returns a copy of u that sets the experience level.
func (u FilterUpdate) WithExperience(e ExperienceLevel) FilterUpdate {
	u.Experience = &e
	return u
}

// WithSearch returns a copy of u that sets the search query.
func (u FilterUpdate) WithSearch(q string) FilterUpdate {
	u.SearchQuery = &q
	return u
}

// IsEmpty reports whether the update changes nothing.
func (u FilterUpdate) IsEmpty() bool {
	return u.Category == nil && u.Location == nil && u.Experience == nil && u.SearchQuery == nil
}

// Merge applies u on top of c (shallow merge) and returns the result.
func (c FilterCriteria) Merge(u FilterUpdate) FilterCriteria {
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.Experience != nil {
		c.Experience = *u.Experience
	}
	if u.SearchQuery != nil {
		c.SearchQuery = *u.SearchQuery
	}
	return c.Normalize()
}
