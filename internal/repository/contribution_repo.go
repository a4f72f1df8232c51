package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

type ContributionRepo struct{ db *gorm.DB }

func NewContributionRepo(db *gorm.DB) *ContributionRepo {
	return &ContributionRepo{db: db}
}

func (r *ContributionRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Contribution{})
}

func (r *ContributionRepo) Create(ctx context.Context, c *domain.Contribution) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByUser returns every contribution for the user, newest first. No
// pagination; fine at the scale of one small cooperative.
func (r *ContributionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Contribution, error) {
	var out []domain.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
