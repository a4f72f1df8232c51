package domain

import "time"

// User is the sign-in identity. Membership data lives on Profile.
type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// UserRole is a role grant. The member grant is created on approval; admin
// grants are provisioned out-of-band.
type UserRole struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_user_role,unique"`
	Role      Role   `gorm:"index:idx_user_role,unique"`
	CreatedAt time.Time
}

// Session is the authenticated caller, built by the HTTP middleware from
// token claims and passed explicitly into every workflow call.
type Session struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
	// RefreshID pairs the presented access token with its refresh token so
	// sign-out retires both.
	RefreshID string
	ExpiresAt time.Time
}
