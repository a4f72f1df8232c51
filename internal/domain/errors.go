package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotVerified        = errors.New("email not verified")
	ErrDuplicateProfile   = errors.New("profile already exists for user")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotAuthorized      = errors.New("membership not approved")
	ErrInvalidAmount      = errors.New("contribution below minimum amount")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
	ErrInvalidStatus      = errors.New("status must be pending, approved, or rejected")
	ErrTokenNotFound      = errors.New("verification token not found or expired")
)
