package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/models"
)

type GormPartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &GormPartnerRepository{db: db}
}

func (r *GormPartnerRepository) FindByID(ctx context.Context, id uint64) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *GormPartnerRepository) ListForUser(ctx context.Context, userID uint64) ([]models.Partner, error) {
	partners := []models.Partner{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR (partner_id = ? AND status = ?)", userID, userID, models.PartnerStatusAccepted).
		Order("created_at DESC").
		Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *GormPartnerRepository) HasOpenPartnership(ctx context.Context, userID uint64, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Partner{}).
		Where("user_id = ? AND partner_email = ? AND status IN ?", userID, email,
			[]models.PartnerStatus{models.PartnerStatusPending, models.PartnerStatusAccepted}).
		Count(&count).Error
	return count > 0, err
}
