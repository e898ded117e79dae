package domain

import (
	"strings"
	"time"
)

// Role controls which booking types a user may create and whom they may administer
type Role string

const (
	RoleGuest   Role = "GUEST"
	RoleMember  Role = "MEMBER"
	RoleTrainer Role = "TRAINER"
	RoleAdmin   Role = "ADMIN"
)

// IsValid returns true for a recognized role
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus is the admin approval state of an account
type AccountStatus string

const (
	StatusPending  AccountStatus = "PENDING"
	StatusApproved AccountStatus = "APPROVED"
	StatusRejected AccountStatus = "REJECTED"
)

// IsValid returns true for a recognized status
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// User is a club account
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	FullName     string
	Role         Role
	Status       AccountStatus
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved returns true if the account may hold a session
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
