package models

import (
	"time"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// AccountRole reports whether r can back a user_accounts row.
// Admin is an identity-level role only, never an account.
func (r Role) AccountRole() bool {
	return r == RoleClient || r == RoleFreelancer
}

type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// User is the login identity: one row per email, shared by every
// role-scoped account the person holds.
type User struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`

	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Role is the role chosen at first registration and never changes.
	// ActiveRole is the role currently in view; nil falls back to Role.
	Role       Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	ActiveRole *Role      `gorm:"type:varchar(20)" json:"active_role,omitempty"`
	Status     UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Accounts []UserAccount `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"accounts,omitempty"`
}

func (User) TableName() string { return "users" }

// CurrentRole resolves active_role with the primary role as fallback.
func (u *User) CurrentRole() Role {
	if u.ActiveRole != nil && *u.ActiveRole != "" {
		return *u.ActiveRole
	}
	return u.Role
}
