package repository

import "gorm.io/gorm"

// Repositories bundles every repository backed by one database handle.
type Repositories struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Tasks         TaskRepository
	Categories    CategoryRepository
	Workspaces    WorkspaceRepository
	Teams         TeamRepository
	Invites       InviteRepository
	Partners      PartnerRepository
	Chats         ChatRepository
	Notifications NotificationRepository
	Calendar      CalendarRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Profiles:      NewProfileRepository(db),
		Tasks:         NewTaskRepository(db),
		Categories:    NewCategoryRepository(db),
		Workspaces:    NewWorkspaceRepository(db),
		Teams:         NewTeamRepository(db),
		Invites:       NewInviteRepository(db),
		Partners:      NewPartnerRepository(db),
		Chats:         NewChatRepository(db),
		Notifications: NewNotificationRepository(db),
		Calendar:      NewCalendarRepository(db),
	}
}
