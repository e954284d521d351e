package model

import "time"

// Property types stored in properties.type.
const (
	PropertyResidential = "residential"
	PropertyCommercial  = "commercial"
	PropertyIndustrial  = "industrial"
	PropertyMixedUse    = "mixed_use"
)

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyResidential, PropertyCommercial, PropertyIndustrial, PropertyMixedUse:
		return true
	}
	return false
}

// Property mirrors the `properties` table. A property belongs to one owner
// (users.id) and may contain multiple units. This service only stores these
// records; there is no lifecycle logic attached to them. Rows are served
// as-is, so the json tags define the wire shape.
type Property struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"ownerId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zipCode"`
	Description string    `json:"description,omitempty"`
	TotalArea   float64   `json:"totalArea"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
