package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
)

type GormWorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

func (r *GormWorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *GormWorkspaceRepository) FindByID(ctx context.Context, userID, id uint64) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *GormWorkspaceRepository) List(ctx context.Context, userID uint64) ([]models.Workspace, error) {
	workspaces := []models.Workspace{}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID), database.Chronological).Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *GormWorkspaceRepository) Count(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Workspace{}).Scopes(database.OwnedBy(userID)).Count(&count).Error
	return count, err
}

// Delete removes the workspace and detaches its tasks
func (r *GormWorkspaceRepository) Delete(ctx context.Context, userID, id uint64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(database.OwnedBy(userID)).Delete(&models.Workspace{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&models.Task{}).
			Scopes(database.OwnedBy(userID)).
			Where("workspace_id = ?", id).
			Update("workspace_id", nil).Error
	})
	return affected, err
}
