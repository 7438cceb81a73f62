package services

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *ServiceSuite) TestCreateTask_MissingFieldInsertsNothing() {
	user := s.signup("alice@example.com", "")

	cases := []CreateTaskInput{
		{UserID: user.ID, Name: "", Category: "Work", Day: "Monday"},
		{UserID: user.ID, Name: "Write", Category: "   ", Day: "Monday"},
		{UserID: user.ID, Name: "Write", Category: "Work", Day: ""},
	}
	for _, input := range cases {
		_, err := s.tasks.CreateTask(s.ctx, input)
		s.ErrorIs(err, ErrTaskFieldsRequired)
	}

	_, err := s.tasks.CreateTask(s.ctx, CreateTaskInput{UserID: user.ID, Name: "Write", Category: "Work", Day: "Someday"})
	s.ErrorIs(err, ErrInvalidDay)

	s.Equal(int64(0), s.count(&models.Task{}))
	s.Empty(s.pub.published(tableTasks))
}

func (s *ServiceSuite) TestCreateTask_WorkspaceMustBelongToUser() {
	alice := s.signup("alice@example.com", "")
	bob := s.signup("bob@example.com", "")
	ws, err := s.workspaces.Create(s.ctx, bob.ID, CreateWorkspaceInput{Name: "Bob's"})
	s.Require().NoError(err)

	_, err = s.tasks.CreateTask(s.ctx, CreateTaskInput{UserID: alice.ID, WorkspaceID: &ws.ID, Name: "x", Category: "y", Day: "Friday"})
	s.ErrorIs(err, ErrWorkspaceNotFound)

	task, err := s.tasks.CreateTask(s.ctx, CreateTaskInput{UserID: bob.ID, WorkspaceID: &ws.ID, Name: "x", Category: "y", Day: "Friday"})
	s.Require().NoError(err)

	tasks, err := s.tasks.ListTasks(s.ctx, bob.ID, &ws.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(task.ID, tasks[0].ID)
}

func (s *ServiceSuite) TestListTasks_OldestFirstAndScoped() {
	alice := s.signup("alice@example.com", "")
	bob := s.signup("bob@example.com", "")
	first := s.createTask(alice.ID, "First", "Monday")
	second := s.createTask(alice.ID, "Second", "Tuesday")
	s.createTask(bob.ID, "Other", "Monday")

	tasks, err := s.tasks.ListTasks(s.ctx, alice.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal(first.ID, tasks[0].ID)
	s.Equal(second.ID, tasks[1].ID)
}

func (s *ServiceSuite) TestToggleTask_CompletionUpdatesStreakInResponse() {
	user := s.signup("alice@example.com", "")
	task := s.createTask(user.ID, "Run", "Wednesday")

	res, err := s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)
	s.True(res.Task.Completed)
	s.Equal(1, res.Profile.StreakCount)
	s.Require().NotNil(res.Profile.LastCompletedDate)
	s.Equal(fixedDate, *res.Profile.LastCompletedDate)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.TasksCompleted))

	// Un-completing leaves the streak alone.
	res, err = s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)
	s.False(res.Task.Completed)
	s.Equal(1, res.Profile.StreakCount)

	// A second completion on the same day does not count twice.
	res, err = s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)
	s.Equal(1, res.Profile.StreakCount)
}

func (s *ServiceSuite) TestToggleTask_StreakContinuesFromYesterday() {
	user := s.signup("alice@example.com", "")
	s.Require().NoError(s.repos.Profiles.UpdateStreak(s.ctx, user.ID, 4, strPtr("2026-03-17")))
	task := s.createTask(user.ID, "Run", "Wednesday")

	res, err := s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)
	s.Equal(5, res.Profile.StreakCount)
}

func (s *ServiceSuite) TestToggleTask_StreakResetsAfterGap() {
	user := s.signup("alice@example.com", "")
	s.Require().NoError(s.repos.Profiles.UpdateStreak(s.ctx, user.ID, 9, strPtr("2026-03-10")))
	task := s.createTask(user.ID, "Run", "Wednesday")

	res, err := s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)
	s.Equal(1, res.Profile.StreakCount)
}

func (s *ServiceSuite) TestToggleTask_ClearsTaskReminders() {
	user := s.signup("alice@example.com", "")
	task := s.createTask(user.ID, "Run", "Wednesday")
	s.Require().NoError(s.repos.Notifications.Create(s.ctx, &models.Notification{
		UserID: user.ID, Type: models.NotificationTypeTaskReminder, Title: "Tasks left",
	}))
	s.Require().NoError(s.repos.Notifications.Create(s.ctx, &models.Notification{
		UserID: user.ID, Type: models.NotificationTypeWelcome, Title: "Hi",
	}))

	_, err := s.tasks.ToggleTask(s.ctx, user.ID, task.ID)
	s.Require().NoError(err)

	s.Equal(int64(0), s.count(&models.Notification{}, "type = ?", models.NotificationTypeTaskReminder))
	s.Equal(int64(1), s.count(&models.Notification{}, "type = ?", models.NotificationTypeWelcome))
}

func (s *ServiceSuite) TestToggleTask_OtherUsersTask() {
	alice := s.signup("alice@example.com", "")
	bob := s.signup("bob@example.com", "")
	task := s.createTask(alice.ID, "Run", "Wednesday")

	_, err := s.tasks.ToggleTask(s.ctx, bob.ID, task.ID)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *ServiceSuite) TestDeleteTask_RequiresConfirmation() {
	user := s.signup("alice@example.com", "")
	task := s.createTask(user.ID, "Run", "Wednesday")

	s.ErrorIs(s.tasks.DeleteTask(s.ctx, user.ID, task.ID, false), ErrConfirmationRequired)
	s.Equal(int64(1), s.count(&models.Task{}))

	s.Require().NoError(s.tasks.DeleteTask(s.ctx, user.ID, task.ID, true))
	s.Equal(int64(0), s.count(&models.Task{}))
	s.ErrorIs(s.tasks.DeleteTask(s.ctx, user.ID, task.ID, true), ErrTaskNotFound)
}

func (s *ServiceSuite) TestProgress() {
	user := s.signup("alice@example.com", "")

	p, err := s.tasks.Progress(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(&Progress{Completed: 0, Total: 0, Percent: 0}, p)

	done := s.createTask(user.ID, "One", "Monday")
	s.createTask(user.ID, "Two", "Monday")
	s.createTask(user.ID, "Three", "Monday")
	_, err = s.tasks.ToggleTask(s.ctx, user.ID, done.ID)
	s.Require().NoError(err)

	p, err = s.tasks.Progress(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(&Progress{Completed: 1, Total: 3, Percent: 33}, p)
}

func (s *ServiceSuite) TestSuggestTasks_WithoutAIService() {
	user := s.signup("alice@example.com", "premium")
	_, err := s.tasks.SuggestTasks(s.ctx, user.ID, "plan my week")
	s.ErrorIs(err, ErrAIServiceNotConfigured)
}
