package domain

import (
	"strings"
	"time"
)

// Role is the closed set of operator roles. Anything outside this set is
// rejected at the boundary; there is no default-allow.
type Role string

const (
	RoleSuper       Role = "SUPER"
	RoleAdmin       Role = "ADMIN"
	RoleLegacyAdmin Role = "LEGACY_ADMIN"
	RoleService     Role = "SERVICE"
	RoleStaff       Role = "STAFF"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuper, RoleAdmin, RoleLegacyAdmin, RoleService, RoleStaff:
		return true
	}
	return false
}

// DevelopmentHospitalID marks the reserved development hospital. Users under
// it are hidden from every caller except SUPER.
const DevelopmentHospitalID = "HID-DEVELOPMENT"

// User models an operator account. HospitalID is denormalized from the
// ward at create/update time so that visibility filters stay single-collection.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Display      string    `json:"display"`
	Pic          string    `json:"pic,omitempty"`
	WardID       string    `json:"wardId"`
	HospitalID   string    `json:"hosId"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to callers: the password hash is
// stripped.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// NormalizeUsername lowercases and trims a username. Usernames are
// case-insensitive and stored in this normal form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// UserFilter restricts a directory listing. The zero value matches everyone.
type UserFilter struct {
	HospitalID        string // non-empty: only users under this hospital
	ExcludeHospitalID string // non-empty: hide users under this hospital
}
