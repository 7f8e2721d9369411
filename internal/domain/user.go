package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleUser      UserRole = "user"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// User is an auth subsystem account. Exactly one refresh token is stored per
// user: logging in or refreshing overwrites it, logging out clears it, so a
// second login silently revokes the first session.
type User struct {
	ID           uint64     `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:30;not null"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"size:20"`
	RefreshToken *string    `json:"-" gorm:"index"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleUser
	}
}

func (u *User) Validate() error {
	if n := len(u.Username); n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be 3-30 characters", ErrValidation)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", ErrValidation)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: role must be one of admin, moderator, user", ErrValidation)
	}
	return nil
}

// PublicUser is the outward-facing view of an account. The password hash and
// stored refresh token never leave the service layer.
type PublicUser struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
