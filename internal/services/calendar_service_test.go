package services

func (s *ServiceSuite) TestCalendar_GroupsByDate() {
	user := s.signup("alice@example.com", "standard")
	nine := "09:00"

	for _, in := range []CreateEventInput{
		{Date: "2026-03-18", Time: &nine, Title: "Standup"},
		{Date: "2026-03-18", Title: "Dentist"},
		{Date: "2026-03-20", Title: "Release"},
		{Date: "2026-04-01", Title: "Out of range"},
	} {
		_, err := s.calendar.Create(s.ctx, user.ID, in)
		s.Require().NoError(err)
	}

	days, err := s.calendar.List(s.ctx, user.ID, "2026-03-17", "2026-03-20")
	s.Require().NoError(err)
	s.Require().Len(days, 2)
	s.Equal("2026-03-18", days[0].Date)
	s.Len(days[0].Events, 2)
	s.Equal("2026-03-20", days[1].Date)
	s.Len(days[1].Events, 1)

	empty, err := s.calendar.List(s.ctx, user.ID, "2027-01-01", "2027-01-31")
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *ServiceSuite) TestCalendar_Validation() {
	user := s.signup("alice@example.com", "standard")
	bad := "25:00"

	_, err := s.calendar.Create(s.ctx, user.ID, CreateEventInput{Date: "18/03/2026", Title: "x"})
	s.ErrorIs(err, ErrInvalidDate)
	_, err = s.calendar.Create(s.ctx, user.ID, CreateEventInput{Date: "2026-03-18", Time: &bad, Title: "x"})
	s.ErrorIs(err, ErrInvalidTime)
	_, err = s.calendar.Create(s.ctx, user.ID, CreateEventInput{Date: "2026-03-18", Title: " "})
	s.ErrorIs(err, ErrNameRequired)

	_, err = s.calendar.List(s.ctx, user.ID, "2026-03-20", "2026-03-18")
	s.ErrorIs(err, ErrInvalidDateRange)

	ev, err := s.calendar.Create(s.ctx, user.ID, CreateEventInput{Date: "2026-03-18", Title: "Gym"})
	s.Require().NoError(err)
	s.Nil(ev.Time)

	other := s.signup("bob@example.com", "standard")
	s.ErrorIs(s.calendar.Delete(s.ctx, other.ID, ev.ID), ErrEventNotFound)
	s.Require().NoError(s.calendar.Delete(s.ctx, user.ID, ev.ID))
}
