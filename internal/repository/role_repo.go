package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

func (r *RoleRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.UserRole{})
}

// Grant is idempotent: re-approving the same application must not error on
// the (user_id, role) unique index.
func (r *RoleRepo) Grant(ctx context.Context, userID string, role domain.Role) error {
	ur := domain.UserRole{UserID: userID, Role: role}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Attrs(map[string]any{"id": uuid.NewString()}).
		FirstOrCreate(&ur).Error
}

func (r *RoleRepo) Has(ctx context.Context, userID string, role domain.Role) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
