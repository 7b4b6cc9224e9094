package domain

import "time"

// Role governs authorization across the API.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleHallOwner Role = "hallowner"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether a role string is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleHallOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
