package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/utils"
)

type GormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormChatRepository) ListMessages(ctx context.Context, roomID string, page utils.PaginationParams) ([]models.Message, int64, error) {
	messages := []models.Message{}
	query := r.db.WithContext(ctx).Model(&models.Message{}).Where("chat_room_id = ?", roomID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Scopes(database.Chronological, database.Paginate(page)).Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *GormChatRepository) CreatePartnerTask(ctx context.Context, task *models.PartnerTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *GormChatRepository) FindPartnerTask(ctx context.Context, roomID string, id uint64) (*models.PartnerTask, error) {
	var task models.PartnerTask
	if err := r.db.WithContext(ctx).Where("chat_room_id = ?", roomID).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormChatRepository) UpdatePartnerTask(ctx context.Context, task *models.PartnerTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *GormChatRepository) ListPartnerTasks(ctx context.Context, roomID string) ([]models.PartnerTask, error) {
	tasks := []models.PartnerTask{}
	if err := r.db.WithContext(ctx).Where("chat_room_id = ?", roomID).
		Scopes(database.Chronological).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
