package services

func (s *ServiceSuite) TestExport() {
	standard := s.signup("standard@example.com", "standard")
	_, err := s.exports.Export(s.ctx, standard.ID)
	s.ErrorIs(err, ErrFeatureLocked)

	user := s.signup("alice@example.com", "premium")
	s.createTask(user.ID, "Run", "Monday")
	_, err = s.categories.Create(s.ctx, user.ID, "Health", "#00ff00")
	s.Require().NoError(err)
	_, err = s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "Home"})
	s.Require().NoError(err)
	_, err = s.calendar.Create(s.ctx, user.ID, CreateEventInput{Date: "1999-12-31", Title: "Party"})
	s.Require().NoError(err)

	out, err := s.exports.Export(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(fixedNow, out.ExportedAt)
	s.Equal(user.ID, out.Profile.UserID)
	s.Len(out.Tasks, 1)
	s.Len(out.Categories, 1)
	s.Len(out.Workspaces, 1)
	s.Len(out.CalendarEvents, 1)
}
