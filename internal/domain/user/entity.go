package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Site admin - uploads evidence, runs detection
	RoleManager Role = "manager" // Approves mismatch resolutions and attendance
	RoleVendor  Role = "vendor"  // Contingent worker marking attendance
)

type User struct {
	ID           string
	SiteID       *string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	VendorID *string
}

// IsAdmin checks if user administers the site
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can act on mismatch resolutions
func (u *User) CanApprove() bool {
	return u.IsManager()
}
