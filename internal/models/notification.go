package models

import "time"

const (
	NotificationTypeTaskReminder = "task_reminder"
	NotificationTypeInvite       = "invite"
	NotificationTypeInviteResult = "invite_result"
	NotificationTypeWelcome      = "welcome"
)

type Notification struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	UserID  uint64 `gorm:"not null;index" json:"user_id"`
	Type    string `gorm:"type:varchar(40);not null" json:"type"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	// Read only ever moves from false to true.
	Read      bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
