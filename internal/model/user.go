package model

import "time"

// Roles stored in users.role. The set is closed; anything else coming in
// from a signup request is replaced with RoleTenant.
const (
	RoleAdmin    = "admin"
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleLandlord || role == RoleTenant
}

// User mirrors the `users` table. PasswordHash and RefreshToken never leave
// the repository/auth layers; handlers build separate response types.
//
// RefreshToken holds the one currently live refresh token for the user
// (empty when logged out). Issuing a new token overwrites it, which is what
// invalidates the previous session.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique, lowercased)
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	Phone        string    // users.phone (may be empty)
	Role         string    // users.role
	IsActive     bool      // users.is_active
	RefreshToken string    // users.refresh_token (empty = no session)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
