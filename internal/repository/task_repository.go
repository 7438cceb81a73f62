package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task owned by userID
func (r *GormTaskRepository) FindByID(ctx context.Context, userID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the tasks matching filter, oldest first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Scopes(database.OwnedBy(filter.UserID))
	if filter.WorkspaceID != nil {
		query = query.Where("workspace_id = ?", *filter.WorkspaceID)
	}
	if filter.Day != "" {
		query = query.Where("day = ?", filter.Day)
	}

	if err := query.Scopes(database.Chronological).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) ListAll(ctx context.Context, userID uint64) ([]models.Task, error) {
	return r.List(ctx, TaskFilter{UserID: userID})
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete permanently removes a task
func (r *GormTaskRepository) Delete(ctx context.Context, userID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Delete(&models.Task{}, id)
	return result.RowsAffected, result.Error
}

func (r *GormTaskRepository) CountProgress(ctx context.Context, userID uint64) (int64, int64, error) {
	var row struct {
		Completed int64
		Total     int64
	}
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed, COUNT(*) AS total").
		Scopes(database.OwnedBy(userID)).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Completed, row.Total, nil
}

func (r *GormTaskRepository) CountPending(ctx context.Context, userID uint64, day string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("day = ? AND completed = ?", day, false).
		Count(&count).Error
	return count, err
}
