// Package service implements the membership and contribution workflows.
// Collaborators are narrow interfaces so tests can run against fakes.
package service

import (
	"context"
	"time"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	MarkVerified(ctx context.Context, id string) error
}

type ProfileStore interface {
	Create(ctx context.Context, p *domain.Profile) error
	ByID(ctx context.Context, id string) (*domain.Profile, error)
	ByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListByStatus(ctx context.Context, status domain.ProfileStatus) ([]domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	UpdateStatus(ctx context.Context, id string, to domain.ProfileStatus) (*domain.Profile, error)
}

type RoleStore interface {
	Grant(ctx context.Context, userID string, role domain.Role) error
	Has(ctx context.Context, userID string, role domain.Role) (bool, error)
}

type ContributionStore interface {
	Create(ctx context.Context, c *domain.Contribution) error
	ListByUser(ctx context.Context, userID string) ([]domain.Contribution, error)
}

type AvatarStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type VerificationStore interface {
	Put(ctx context.Context, token, userID string) error
	Take(ctx context.Context, token string) (string, error)
}

type RevocationStore interface {
	MarkRevoked(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
