package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
)

type GormCalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &GormCalendarRepository{db: db}
}

func (r *GormCalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListRange relies on YYYY-MM-DD strings sorting chronologically.
func (r *GormCalendarRepository) ListRange(ctx context.Context, userID uint64, from, to string) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).
		Where("event_date >= ? AND event_date <= ?", from, to).
		Order("event_date ASC").
		Order("event_time ASC").
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormCalendarRepository) Delete(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Delete(&models.CalendarEvent{}, id)
	return result.RowsAffected, result.Error
}
