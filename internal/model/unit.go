package model

import "time"

// Unit statuses stored in units.status.
const (
	UnitAvailable   = "available"
	UnitOccupied    = "occupied"
	UnitMaintenance = "maintenance"
	UnitReserved    = "reserved"
)

// ValidUnitStatus reports whether s is a known unit status.
func ValidUnitStatus(s string) bool {
	switch s {
	case UnitAvailable, UnitOccupied, UnitMaintenance, UnitReserved:
		return true
	}
	return false
}

// Unit mirrors the `units` table. A unit belongs to a property and can be
// referenced by any number of lease rows. Rows are served as-is, so the
// json tags define the wire shape.
type Unit struct {
	ID          uint64    `json:"id"`
	PropertyID  uint64    `json:"propertyId"`
	UnitNumber  string    `json:"unitNumber"`
	Area        float64   `json:"area"`
	Rent        float64   `json:"rent"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
