package models

import "time"

// Weekdays are the day-of-week labels a task can be scheduled on.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsWeekday reports whether label is one of Weekdays.
func IsWeekday(label string) bool {
	for _, d := range Weekdays {
		if d == label {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	WorkspaceID *uint64   `gorm:"index" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	Day         string    `gorm:"type:varchar(10);not null" json:"day"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
