package services

import (
	"fmt"
	"strconv"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/notify"
)

func unread(feed *notify.Feed) int {
	n := 0
	for _, e := range feed.Entries {
		if !e.Read {
			n++
		}
	}
	return n
}

func (s *ServiceSuite) TestFeed_MergesPersistedAndDerived() {
	alice := s.signup("alice@example.com", "premium")
	bob := s.signup("bob@example.com", "standard")

	_, err := s.workspaces.Create(s.ctx, alice.ID, CreateWorkspaceInput{Name: "Home"})
	s.Require().NoError(err)
	s.createTask(alice.ID, "Run", "Wednesday")
	s.createTask(alice.ID, "Stretch", "Thursday")
	event, err := s.calendar.Create(s.ctx, alice.ID, CreateEventInput{Date: fixedDate, Title: "Standup"})
	s.Require().NoError(err)
	team := s.createTeam(bob, "Ops")
	invite, err := s.invites.SendTeamInvite(s.ctx, bob.ID, team.ID, alice.Email)
	s.Require().NoError(err)

	feed, err := s.notifications.Feed(s.ctx, alice.ID)
	s.Require().NoError(err)

	ids := make([]string, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		ids = append(ids, e.ID.String())
	}
	s.Len(ids, 4)
	s.Contains(ids, "pending-tasks-20260318")
	s.Contains(ids, "event-"+strconv.FormatUint(event.ID, 10))
	s.Contains(ids, "team-invite-"+strconv.FormatUint(invite.ID, 10))
	s.Equal(4, feed.UnreadCount())
	s.Equal(unread(feed), feed.UnreadCount())

	for i := 1; i < len(feed.Entries); i++ {
		s.False(feed.Entries[i].CreatedAt.After(feed.Entries[i-1].CreatedAt))
	}
}

func (s *ServiceSuite) TestFeed_MarkReadPersistsOnlyStoredRows() {
	user := s.signup("alice@example.com", "standard")
	_, err := s.workspaces.Create(s.ctx, user.ID, CreateWorkspaceInput{Name: "Home"})
	s.Require().NoError(err)
	s.createTask(user.ID, "Run", "Wednesday")

	feed, err := s.notifications.Feed(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(feed.Entries, 2)

	var welcome notify.FeedID
	for _, e := range feed.Entries {
		if e.Type == models.NotificationTypeWelcome {
			welcome = e.ID
		}
	}
	s.Require().NotNil(welcome)
	derived := notify.DerivedID{Kind: notify.KindPendingTasks, SourceID: "20260318"}

	persisted, err := s.notifications.MarkRead(s.ctx, user.ID, derived)
	s.Require().NoError(err)
	s.False(persisted)
	s.True(feed.MarkRead(derived))
	s.Equal(1, feed.UnreadCount())
	s.Equal(unread(feed), feed.UnreadCount())

	persisted, err = s.notifications.MarkRead(s.ctx, user.ID, welcome)
	s.Require().NoError(err)
	s.True(persisted)

	// The derived entry reappears unread; the stored one stays read.
	feed, err = s.notifications.Feed(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, feed.UnreadCount())
	s.Equal(unread(feed), feed.UnreadCount())

	_, err = s.notifications.MarkRead(s.ctx, user.ID, notify.PersistedID{ID: 9999})
	s.ErrorIs(err, ErrNotificationNotFound)
}

func (s *ServiceSuite) TestFeed_LockedWithoutNotifications() {
	for i, plan := range []string{"", "free"} {
		user := s.signup(fmt.Sprintf("locked%d@example.com", i), plan)
		s.createTask(user.ID, "Run", "Wednesday")

		feed, err := s.notifications.Feed(s.ctx, user.ID)
		s.Nil(feed)
		var featureErr *FeatureError
		s.Require().ErrorAs(err, &featureErr, plan)
		s.Equal(entitlement.FeatureNotifications, featureErr.Feature)
		s.Equal(entitlement.PlanStandard, featureErr.RequiredPlan())
	}
}

func (s *ServiceSuite) TestMarkAllRead() {
	user := s.signup("alice@example.com", "")
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repos.Notifications.Create(s.ctx, &models.Notification{
			UserID: user.ID, Type: models.NotificationTypeWelcome, Title: "Hi",
		}))
	}

	n, err := s.notifications.MarkAllRead(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	n, err = s.notifications.MarkAllRead(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), n)
}
