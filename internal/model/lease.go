package model

import "time"

// Lease statuses stored in leases.status.
const (
	LeasePending    = "pending"
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

// Lease mirrors the `leases` table. It links a tenant (users.id) to a unit
// for a date range. The service stores lease rows as-is; rent collection,
// renewal and the rest of the lease lifecycle live elsewhere.
type Lease struct {
	ID              uint64    `json:"id"`
	UnitID          uint64    `json:"unitId"`
	TenantID        uint64    `json:"tenantId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	MonthlyRent     float64   `json:"monthlyRent"`
	SecurityDeposit float64   `json:"securityDeposit"`
	Status          string    `json:"status"`
	Terms           string    `json:"terms,omitempty"`
	IsRenewable     bool      `json:"isRenewable"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
