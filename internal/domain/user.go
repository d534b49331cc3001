package domain

import "time"

// Role partitions accounts for route policy.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for storefront accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	BirthDate    time.Time
	Gender       string
	Address      string
	Province     string
	City         string
	District     string
	Village      string
	Phone        string
	PaypalID     *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
