package models

import "time"

type CalendarEvent struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	// Date (YYYY-MM-DD) is the partition key for calendar rendering.
	Date      string    `gorm:"column:event_date;type:varchar(10);not null" json:"date"`
	Time      *string   `gorm:"column:event_time;type:varchar(5)" json:"time,omitempty"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
