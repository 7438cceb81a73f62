package models

import "time"

type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleEditor TeamRole = "editor"
	TeamRoleViewer TeamRole = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r TeamRole) Valid() bool {
	switch r {
	case TeamRoleAdmin, TeamRoleEditor, TeamRoleViewer:
		return true
	}
	return false
}

type TeamMember struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	TeamID   uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_team_members_team_user;index" json:"user_id"`
	Role     TeamRole  `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
