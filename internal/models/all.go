package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Category{},
		&Workspace{},
		&Task{},
		&Team{},
		&TeamMember{},
		&Partner{},
		&Invite{},
		&ChatRoom{},
		&Message{},
		&PartnerTask{},
		&Notification{},
		&CalendarEvent{},
	}
}
