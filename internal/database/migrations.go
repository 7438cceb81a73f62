package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/models"
)

type index struct {
	model   interface{}
	table   string
	name    string
	columns string
}

// Composite indexes backing the hot list queries. Single-column indexes are
// declared on the models themselves.
var indexes = []index{
	{&models.Task{}, "tasks", "idx_tasks_user_created", "user_id, created_at"},
	{&models.Task{}, "tasks", "idx_tasks_user_day", "user_id, day"},
	{&models.Notification{}, "notifications", "idx_notifications_user_read", "user_id, is_read"},
	{&models.CalendarEvent{}, "calendar_events", "idx_calendar_events_user_date", "user_id, event_date"},
	{&models.Invite{}, "invites", "idx_invites_receiver_status", "receiver_email, status"},
	{&models.Partner{}, "partners", "idx_partners_email_status", "partner_email, status"},
	{&models.Message{}, "messages", "idx_messages_room_created", "chat_room_id, created_at"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log logrus.FieldLogger) error {
	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{"index": idx.name, "table": idx.table}).Info("Created index")
	}

	return nil
}
