package services

import (
	"fmt"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *ServiceSuite) TestCreateWorkspace_BeyondCapRejectedWithoutInsert() {
	cases := []struct {
		plan  string
		limit int
	}{
		{"standard", 3},
		{"premium", 5},
	}
	for _, tc := range cases {
		user := s.signup(tc.plan+"@example.com", tc.plan)
		for i := 0; i < tc.limit; i++ {
			_, err := s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: fmt.Sprintf("Space %d", i)})
			s.Require().NoError(err)
		}

		_, err := s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "One too many"})
		var limitErr *LimitError
		s.Require().ErrorAs(err, &limitErr, tc.plan)
		s.ErrorIs(err, ErrLimitReached)
		s.Equal(tc.limit, limitErr.Limit)
		s.Equal("workspaces", limitErr.Resource)
		s.Equal(int64(tc.limit), s.count(&models.Workspace{}, "user_id = ?", user.ID), tc.plan)
	}
}

func (s *ServiceSuite) TestCreateWorkspace_SlugAndWelcome() {
	user := s.signup("alice@example.com", "")

	ws, err := s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "  Deep Work ", Emoji: "🧠", Color: "#112233"})
	s.Require().NoError(err)
	s.Equal("Deep Work", ws.Name)
	s.Equal("deep-work", ws.Slug)

	_, err = s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "Errands"})
	s.Require().NoError(err)

	s.Equal(int64(1), s.count(&models.Notification{}, "user_id = ? AND type = ?", user.ID, models.NotificationTypeWelcome))

	_, err = s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: " "})
	s.ErrorIs(err, ErrNameRequired)
}

func (s *ServiceSuite) TestDeleteWorkspace_KeepsTasks() {
	user := s.signup("alice@example.com", "")
	ws, err := s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "Home"})
	s.Require().NoError(err)
	_, err = s.tasks.CreateTask(s.ctx, CreateTaskInput{UserID: user.ID, WorkspaceID: &ws.ID, Name: "Dishes", Category: "Home", Day: "Sunday"})
	s.Require().NoError(err)

	s.Require().NoError(s.workspaces.Delete(s.ctx, user.ID, ws.ID))
	s.ErrorIs(s.workspaces.Delete(s.ctx, user.ID, ws.ID), ErrWorkspaceNotFound)

	tasks, err := s.tasks.ListTasks(s.ctx, user.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Nil(tasks[0].WorkspaceID)
}

func (s *ServiceSuite) TestCategories_LimitAndDelete() {
	user := s.signup("alice@example.com", "")
	var last *models.Category
	for i := 0; i < 8; i++ {
		c, err := s.categories.Create(s.ctx, user.ID, fmt.Sprintf("Cat %d", i), "#abcdef")
		s.Require().NoError(err)
		last = c
	}

	_, err := s.categories.Create(s.ctx, user.ID, "Ninth", "#abcdef")
	s.ErrorIs(err, ErrLimitReached)

	s.Require().NoError(s.categories.Delete(s.ctx, user.ID, last.ID))
	s.ErrorIs(s.categories.Delete(s.ctx, user.ID, last.ID), ErrCategoryNotFound)

	list, err := s.categories.List(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Len(list, 7)
}
