package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"

	"github.com/yukikurage/planner-api/internal/mailer"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/models"
)

func (s *ServiceSuite) TestAcceptTeamInvite_CreatesOneEditorMembership() {
	owner := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "")
	team := s.createTeam(owner, "Ops")

	invite, err := s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, " BOB@example.com ")
	s.Require().NoError(err)
	s.Equal("bob@example.com", invite.ReceiverEmail)
	s.Len(invite.Token, 21)
	s.mail.AssertCalled(s.T(), "Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
		return m.To == "bob@example.com"
	}))

	pending, err := s.invites.ListPending(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	outcome, err := s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Member)
	s.Nil(outcome.Partner)
	s.Equal(models.TeamRoleEditor, outcome.Member.Role)
	s.Equal(models.InviteStatusAccepted, outcome.Invite.Status)

	s.Equal(int64(1), s.count(&models.TeamMember{}, "team_id = ? AND user_id = ?", team.ID, bob.ID))
	s.Equal(int64(1), s.count(&models.Notification{}, "user_id = ? AND type = ?", owner.ID, models.NotificationTypeInviteResult))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.InvitesResolved.WithLabelValues("team", "accepted")))

	_, err = s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.ErrorIs(err, ErrInviteNotPending)
	s.Equal(int64(1), s.count(&models.TeamMember{}, "team_id = ? AND user_id = ?", team.ID, bob.ID))
}

func (s *ServiceSuite) TestDeclineTeamInvite_CreatesNothing() {
	owner := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "")
	team := s.createTeam(owner, "Ops")
	invite, err := s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, bob.Email)
	s.Require().NoError(err)

	declined, err := s.invites.Decline(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)
	s.Equal(models.InviteStatusDeclined, declined.Status)

	s.Equal(int64(0), s.count(&models.TeamMember{}, "user_id = ?", bob.ID))
	s.Equal(int64(0), s.count(&models.ChatRoom{}))

	_, err = s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.ErrorIs(err, ErrInviteNotPending)
}

func (s *ServiceSuite) TestSendTeamInvite_Rules() {
	owner := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "standard")
	carol := s.signup("carol@example.com", "")
	team := s.createTeam(owner, "Ops")

	_, err := s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, owner.Email)
	s.ErrorIs(err, ErrCannotInviteSelf)

	_, err = s.invites.SendTeamInvite(s.ctx, bob.ID, team.ID, carol.Email)
	s.ErrorIs(err, ErrNotTeamMember)

	invite, err := s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, bob.Email)
	s.Require().NoError(err)
	_, err = s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, bob.Email)
	s.ErrorIs(err, ErrInviteExists)

	_, err = s.invites.Accept(s.ctx, carol.ID, invite.ID)
	s.ErrorIs(err, ErrNotInviteRecipient)

	_, err = s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)

	// Editors cannot invite.
	_, err = s.invites.SendTeamInvite(s.ctx, bob.ID, team.ID, carol.Email)
	s.ErrorIs(err, ErrNotTeamAdmin)

	_, err = s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, bob.Email)
	s.ErrorIs(err, ErrAlreadyTeamMember)

	_, err = s.invites.Accept(s.ctx, bob.ID, 9999)
	s.ErrorIs(err, ErrInviteNotFound)
}

func (s *ServiceSuite) TestSendInvite_MailFailureIsNotFatal() {
	failing := &mockSender{}
	failing.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider down"))
	m := metrics.New(prometheus.NewRegistry())
	log, hook := test.NewNullLogger()
	invites := NewInviteService(s.repos, s.profiles, failing, "http://planner.test", s.pub, m, log)

	owner := s.signup("alice@example.com", "standard")
	team := s.createTeam(owner, "Ops")

	invite, err := invites.SendTeamInvite(s.ctx, owner.ID, team.ID, "nobody-yet@example.com")
	s.Require().NoError(err)
	s.NotZero(invite.ID)
	s.Equal(float64(1), testutil.ToFloat64(m.EmailsFailed))
	s.Require().NotNil(hook.LastEntry())
	s.Equal("Failed to send invite e-mail", hook.LastEntry().Message)
}

func (s *ServiceSuite) TestAcceptPartnerInvite_CreatesOneChatRoom() {
	alice := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "")

	invite, err := s.invites.SendPartnerInvite(s.ctx, alice.ID, bob.Email)
	s.Require().NoError(err)
	s.Require().NotNil(invite.PartnerID)

	_, err = s.invites.SendPartnerInvite(s.ctx, alice.ID, bob.Email)
	s.ErrorIs(err, ErrInviteExists)

	outcome, err := s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Partner)
	s.Equal(models.PartnerStatusAccepted, outcome.Partner.Status)
	s.Require().NotNil(outcome.Partner.PartnerID)
	s.Equal(bob.ID, *outcome.Partner.PartnerID)
	s.Require().NotNil(outcome.Partner.ChatRoomID)

	s.Equal(int64(1), s.count(&models.ChatRoom{}))
	s.Equal(int64(1), s.count(&models.ChatRoom{}, "id = ?", *outcome.Partner.ChatRoomID))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.InvitesResolved.WithLabelValues("partner", "accepted")))
}

func (s *ServiceSuite) TestDeclinePartnerInvite_MarksPartnerDeclined() {
	alice := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "")
	invite, err := s.invites.SendPartnerInvite(s.ctx, alice.ID, bob.Email)
	s.Require().NoError(err)

	_, err = s.invites.Decline(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)

	partner, err := s.repos.Partners.FindByID(s.ctx, *invite.PartnerID)
	s.Require().NoError(err)
	s.Equal(models.PartnerStatusDeclined, partner.Status)
	s.Nil(partner.ChatRoomID)
	s.Equal(int64(0), s.count(&models.ChatRoom{}))

	// A declined partnership no longer blocks a fresh invite.
	_, err = s.invites.SendPartnerInvite(s.ctx, alice.ID, bob.Email)
	s.NoError(err)
}

func (s *ServiceSuite) TestSendPartnerInvite_FreePlanLocked() {
	alice := s.signup("alice@example.com", "")
	_, err := s.invites.SendPartnerInvite(s.ctx, alice.ID, "bob@example.com")
	s.ErrorIs(err, ErrFeatureLocked)
	s.Equal(int64(0), s.count(&models.Partner{}))
}
