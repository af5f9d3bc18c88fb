// Package entity defines the domain entities for the account feature.
package entity

import "time"

// UserStatus tracks soft deletion. It is orthogonal to User.Enabled.
type UserStatus string

const (
	StatusActive  UserStatus = "ACTIVE"
	StatusDeleted UserStatus = "DELETED"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusDeleted
}

// UserRole is the authorization role carried in issued tokens.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
// Email, Username and Phone stay unique across active and deleted rows.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100" json:"name"`
	Surname  string `gorm:"size:100" json:"surname"`
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone    string `gorm:"uniqueIndex;size:32;not null" json:"phone"`

	// Password is the bcrypt hash. It is never serialised.
	Password string `gorm:"size:255;not null" json:"-"`

	// Enabled is true once the email address has been verified.
	Enabled bool `gorm:"not null;default:false" json:"enabled"`

	UserStatus UserStatus `gorm:"size:16;not null;default:ACTIVE;index" json:"userStatus"`
	UserRole   UserRole   `gorm:"size:16;not null;default:USER" json:"userRole"`

	// PasswordChangeAttempts counts successful self-service password changes
	// over the lifetime of the account.
	PasswordChangeAttempts int `gorm:"not null;default:0" json:"passwordChangeAttempts"`

	VerificationCode          *string    `gorm:"size:6" json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// IsDeleted reports whether the user has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.UserStatus == StatusDeleted
}

// VerificationExpired reports whether the stored code expired before now.
// A user without an expiry is treated as expired.
func (u *User) VerificationExpired(now time.Time) bool {
	if u.VerificationCodeExpiresAt == nil {
		return true
	}
	return now.After(*u.VerificationCodeExpiresAt)
}
