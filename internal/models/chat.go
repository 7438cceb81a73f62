package models

import "time"

type ChatRoom struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ChatRoomID string    `gorm:"type:varchar(36);not null;index" json:"chat_room_id"`
	SenderID   uint64    `gorm:"not null" json:"sender_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type PartnerTask struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ChatRoomID string    `gorm:"type:varchar(36);not null;index" json:"chat_room_id"`
	CreatorID  uint64    `gorm:"not null" json:"creator_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Completed  bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
