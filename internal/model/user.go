package model

import "time"

// Role distinguishes staff from regular accounts.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account record. Authentication happens upstream; this
// service only needs accounts for role scoping and the dashboard's
// user count.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the caller identity forwarded by the upstream auth proxy.
type Identity struct {
	Email string
	Role  Role
}

// IsAdmin reports whether the caller has staff privileges.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
