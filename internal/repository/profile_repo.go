package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Profile{})
}

// Create inserts the profile. The one-profile-per-user invariant is the
// unique index on user_id; no pre-check before insert.
func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateProfile
		}
		return err
	}
	return nil
}

func (r *ProfileRepo) ByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) ByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) ListByStatus(ctx context.Context, status domain.ProfileStatus) ([]domain.Profile, error) {
	var out []domain.Profile
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ProfileRepo) ListAll(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// UpdateStatus writes the new status and returns the updated profile.
func (r *ProfileRepo) UpdateStatus(ctx context.Context, id string, to domain.ProfileStatus) (*domain.Profile, error) {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("id = ?", id).Update("status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return r.ByID(ctx, id)
}
