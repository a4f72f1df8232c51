package domain

import "time"

// ProfileStatus is the membership application state. It starts at pending and
// is only ever moved by an admin review.
type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusApproved ProfileStatus = "approved"
	StatusRejected ProfileStatus = "rejected"
)

func (s ProfileStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a terminal state an admin may assign.
func (s ProfileStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// Profile is the member record, one per registered user.
type Profile struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	UserID      string        `gorm:"uniqueIndex" json:"user_id"`
	FullName    string        `json:"full_name"`
	PhoneNumber string        `json:"phone_number"`
	Email       string        `json:"email"`
	AvatarURL   *string       `json:"avatar_url"`
	Status      ProfileStatus `gorm:"index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
