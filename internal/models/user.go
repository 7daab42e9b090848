package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole returns the role named by s and whether it is one of the known roles.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Allows reports whether a holder of r may perform an operation gated on required.
// Admins pass every gate; users only pass user gates.
func (r Role) Allows(required Role) bool {
	switch r {
	case RoleAdmin:
		return required.Valid()
	case RoleUser:
		return required == RoleUser
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	FirstName    *string
	LastName     *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
