package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GormCategoryRepository) List(ctx context.Context, userID uint64) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID), database.Chronological).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) Count(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Scopes(database.OwnedBy(userID)).Count(&count).Error
	return count, err
}

func (r *GormCategoryRepository) Delete(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Delete(&models.Category{}, id)
	return result.RowsAffected, result.Error
}
