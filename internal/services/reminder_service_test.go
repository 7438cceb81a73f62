package services

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *ServiceSuite) TestReminders_OnePerEligibleUser() {
	alice := s.signup("alice@example.com", "standard")
	s.createTask(alice.ID, "Run", "Wednesday")
	s.createTask(alice.ID, "Read", "Wednesday")
	s.createTask(alice.ID, "Later", "Friday")

	// Nothing pending today.
	bob := s.signup("bob@example.com", "standard")
	done := s.createTask(bob.ID, "Run", "Wednesday")
	_, err := s.tasks.ToggleTask(s.ctx, bob.ID, done.ID)
	s.Require().NoError(err)

	// Plan without notifications.
	carol := s.signup("carol@example.com", "free")
	s.createTask(carol.ID, "Run", "Wednesday")

	// Opted out.
	dave := s.signup("dave@example.com", "premium")
	s.createTask(dave.ID, "Run", "Wednesday")
	off := false
	_, err = s.profiles.UpdateProfile(s.ctx, dave.ID, UpdateProfileInput{NotificationsEnabled: &off})
	s.Require().NoError(err)

	created, err := s.reminders.Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, created)

	var reminder models.Notification
	s.Require().NoError(s.db.Where("type = ?", models.NotificationTypeTaskReminder).First(&reminder).Error)
	s.Equal(alice.ID, reminder.UserID)
	s.Equal("2 tasks left for Wednesday", reminder.Title)
	s.Equal("Run, Read", reminder.Message)

	// An unread reminder suppresses the next one.
	created, err = s.reminders.Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, created)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.RemindersCreated))
}

func (s *ServiceSuite) TestReminderMessage() {
	s.Equal("a", reminderMessage([]string{"a"}))
	s.Equal("a, b, c and 2 more", reminderMessage([]string{"a", "b", "c", "d", "e"}))
}
