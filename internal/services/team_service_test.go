package services

import (
	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
)

func (s *ServiceSuite) TestCreateTeam_FreePlanLocked() {
	user := s.signup("alice@example.com", "free")

	_, err := s.teams.CreateTeam(s.ctx, user.ID, "Ops")
	var featureErr *FeatureError
	s.Require().ErrorAs(err, &featureErr)
	s.Equal(entitlement.PlanStandard, featureErr.RequiredPlan())
	s.Equal(int64(0), s.count(&models.Team{}))
}

func (s *ServiceSuite) TestCreateTeam_OwnerIsAdminAndCapApplies() {
	owner := s.signup("alice@example.com", "standard")

	team := s.createTeam(owner, "Ops")
	s.Require().Len(team.Members, 1)
	s.Equal(owner.ID, team.Members[0].UserID)
	s.Equal(models.TeamRoleAdmin, team.Members[0].Role)

	s.createTeam(owner, "Dev")
	s.createTeam(owner, "QA")
	_, err := s.teams.CreateTeam(s.ctx, owner.ID, "Fourth")
	s.ErrorIs(err, ErrLimitReached)
	s.Equal(int64(3), s.count(&models.Team{}))

	memberships, err := s.teams.ListTeams(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Len(memberships, 3)
}

func (s *ServiceSuite) TestTeam_OwnerOnlyOperations() {
	owner := s.signup("alice@example.com", "standard")
	bob := s.signup("bob@example.com", "standard")
	team := s.createTeam(owner, "Ops")

	_, err := s.teams.GetTeam(s.ctx, bob.ID, team.ID)
	s.ErrorIs(err, ErrNotTeamMember)

	invite, err := s.invites.SendTeamInvite(s.ctx, owner.ID, team.ID, bob.Email)
	s.Require().NoError(err)
	_, err = s.invites.Accept(s.ctx, bob.ID, invite.ID)
	s.Require().NoError(err)

	isOwner, err := s.teams.IsOwner(s.ctx, team.ID, owner.ID)
	s.Require().NoError(err)
	s.True(isOwner)
	isOwner, err = s.teams.IsOwner(s.ctx, team.ID, bob.ID)
	s.Require().NoError(err)
	s.False(isOwner)

	s.ErrorIs(s.teams.ChangeRole(s.ctx, bob.ID, team.ID, owner.ID, models.TeamRoleViewer), ErrNotTeamOwner)
	s.ErrorIs(s.teams.ChangeRole(s.ctx, owner.ID, team.ID, owner.ID, models.TeamRoleViewer), ErrCannotChangeOwner)
	s.ErrorIs(s.teams.ChangeRole(s.ctx, owner.ID, team.ID, bob.ID, models.TeamRole("boss")), ErrInvalidRole)
	s.Require().NoError(s.teams.ChangeRole(s.ctx, owner.ID, team.ID, bob.ID, models.TeamRoleViewer))

	member, err := s.teams.GetMembership(s.ctx, team.ID, bob.ID)
	s.Require().NoError(err)
	s.Equal(models.TeamRoleViewer, member.Role)

	s.ErrorIs(s.teams.DeleteTeam(s.ctx, bob.ID, team.ID), ErrNotTeamOwner)
	s.Require().NoError(s.teams.RemoveMember(s.ctx, owner.ID, team.ID, bob.ID))
	s.ErrorIs(s.teams.RemoveMember(s.ctx, owner.ID, team.ID, bob.ID), ErrMemberNotFound)

	s.Require().NoError(s.teams.DeleteTeam(s.ctx, owner.ID, team.ID))
	s.Equal(int64(0), s.count(&models.TeamMember{}))
	_, err = s.teams.IsOwner(s.ctx, team.ID, owner.ID)
	s.ErrorIs(err, ErrTeamNotFound)
}
