package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
)

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *GormNotificationRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead only ever sets is_read to true.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(database.OwnedBy(userID)).
		Where("id = ?", id).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(database.OwnedBy(userID)).
		Where("is_read = ?", false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) DeleteByType(ctx context.Context, userID uint64, notificationType string) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).
		Where("type = ?", notificationType).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) HasUnread(ctx context.Context, userID uint64, notificationType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(database.OwnedBy(userID)).
		Where("type = ? AND is_read = ?", notificationType, false).
		Count(&count).Error
	return count > 0, err
}
