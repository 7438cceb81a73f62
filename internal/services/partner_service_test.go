package services

import (
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/utils"
)

// partnered returns an accepted partnership between two fresh users.
func (s *ServiceSuite) partnered() (*models.User, *models.User, *models.Partner) {
	alice := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "standard")
	invite, err := s.invites.SendPartnerInvite(s.ctx, alice.ID, bob.Email)
	s.Require().NoError(err)
	outcome, err := s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)
	return alice, bob, outcome.Partner
}

func (s *ServiceSuite) TestPartners_MessagesVisibleToBothParties() {
	alice, bob, partner := s.partnered()
	room, err := s.partners.Room(s.ctx, bob.ID, partner.ID)
	s.Require().NoError(err)

	_, err = s.partners.SendMessage(s.ctx, room, bob.ID, "  ")
	s.ErrorIs(err, ErrMessageRequired)

	first, err := s.partners.SendMessage(s.ctx, room, bob.ID, "Morning run done?")
	s.Require().NoError(err)
	_, err = s.partners.SendMessage(s.ctx, room, alice.ID, "Yes!")
	s.Require().NoError(err)

	page, err := s.partners.ListMessages(s.ctx, room, utils.PaginationParams{Page: 1, Limit: 1, Offset: 0})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Pagination.Total)
	s.True(page.Pagination.HasMore)
	s.Require().Len(page.Messages, 1)
	s.Equal(first.ID, page.Messages[0].ID)

	// Both parties hear about new messages.
	events := s.pub.published(tableMessages)
	s.Require().Len(events, 4)
	s.ElementsMatch([]uint64{alice.ID, bob.ID}, []uint64{events[0].UserID, events[1].UserID})

	for _, userID := range []uint64{alice.ID, bob.ID} {
		list, err := s.partners.List(s.ctx, userID)
		s.Require().NoError(err)
		s.Len(list, 1)
	}
}

func (s *ServiceSuite) TestPartners_OutsidersAndPendingPartnerships() {
	alice, _, partner := s.partnered()
	carol := s.signup("carol@example.com", "standard")

	_, err := s.partners.Get(s.ctx, carol.ID, partner.ID)
	s.ErrorIs(err, ErrPartnerNotFound)
	_, err = s.partners.Room(s.ctx, carol.ID, partner.ID)
	s.ErrorIs(err, ErrPartnerNotFound)

	invite, err := s.invites.SendPartnerInvite(s.ctx, alice.ID, carol.Email)
	s.Require().NoError(err)
	_, err = s.partners.Room(s.ctx, alice.ID, *invite.PartnerID)
	s.ErrorIs(err, ErrPartnershipNotAccepted)

	// A pending row never reaches a room even when passed directly.
	pending, err := s.partners.Get(s.ctx, alice.ID, *invite.PartnerID)
	s.Require().NoError(err)
	_, err = s.partners.SendMessage(s.ctx, pending, alice.ID, "hello?")
	s.ErrorIs(err, ErrPartnershipNotAccepted)
	_, err = s.partners.ListMessages(s.ctx, pending, utils.PaginationParams{Page: 1, Limit: 10})
	s.ErrorIs(err, ErrPartnershipNotAccepted)

	// Carol only sees the pending row once she has accepted.
	list, err := s.partners.List(s.ctx, carol.ID)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ServiceSuite) TestPartners_SharedTasks() {
	alice, bob, partner := s.partnered()
	room, err := s.partners.Room(s.ctx, alice.ID, partner.ID)
	s.Require().NoError(err)

	task, err := s.partners.CreateTask(s.ctx, room, alice.ID, "Read 20 pages")
	s.Require().NoError(err)
	s.False(task.Completed)

	toggled, err := s.partners.ToggleTask(s.ctx, room, task.ID)
	s.Require().NoError(err)
	s.True(toggled.Completed)

	tasks, err := s.partners.ListTasks(s.ctx, room)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.True(tasks[0].Completed)

	_, err = s.partners.ToggleTask(s.ctx, room, 9999)
	s.ErrorIs(err, ErrTaskNotFound)
	_, err = s.partners.CreateTask(s.ctx, room, bob.ID, "")
	s.ErrorIs(err, ErrNameRequired)
}
