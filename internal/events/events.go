package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys on the portal topic exchange.
const (
	RKMemberRegistered      = "member.registered"
	RKMemberApproved        = "member.approved"
	RKMemberRejected        = "member.rejected"
	RKContributionSubmitted = "contribution.submitted"
)

// MemberRegistered carries enough for the welcome/verification message.
type MemberRegistered struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	VerifyToken string `json:"verify_token"`
}

// MemberReviewed is shared by the approved and rejected keys.
type MemberReviewed struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type ContributionSubmitted struct {
	ContributionID string  `json:"contribution_id"`
	UserID         string  `json:"user_id"`
	Amount         float64 `json:"amount"`
	PhoneNumber    string  `json:"phone_number"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
