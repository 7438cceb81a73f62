package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// TeamService handles team business logic
type TeamService struct {
	teamRepo  repository.TeamRepository
	profiles  *ProfileService
	publisher realtime.Publisher
}

// NewTeamService creates a new TeamService
func NewTeamService(repos *repository.Repositories, profiles *ProfileService, publisher realtime.Publisher) *TeamService {
	return &TeamService{
		teamRepo:  repos.Teams,
		profiles:  profiles,
		publisher: publisher,
	}
}

// CreateTeam creates a team owned by userID, who becomes its first admin.
func (s *TeamService) CreateTeam(ctx context.Context, userID uint64, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	ent, err := s.profiles.Entitlements(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ent.Allows(entitlement.FeatureTeams) {
		return nil, &FeatureError{Feature: entitlement.FeatureTeams}
	}
	if err := checkLimit(ctx, s.teamRepo.CountOwned, userID, "teams", ent.TeamLimit); err != nil {
		return nil, err
	}

	team := &models.Team{Name: name, OwnerID: userID}
	if err := s.teamRepo.CreateWithOwner(ctx, team, &models.TeamMember{}); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	publish(ctx, s.publisher, tableTeams, realtime.ActionInsert, team.ID, userID)
	return s.GetTeam(ctx, userID, team.ID)
}

// ListTeams lists the memberships of userID with their teams
func (s *TeamService) ListTeams(ctx context.Context, userID uint64) ([]models.TeamMember, error) {
	memberships, err := s.teamRepo.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return memberships, nil
}

// GetMembership returns ErrNotTeamMember when userID does not belong to the team.
func (s *TeamService) GetMembership(ctx context.Context, teamID, userID uint64) (*models.TeamMember, error) {
	member, err := s.teamRepo.FindMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}

// GetTeam returns the team with its members. Only members may read it.
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID uint64) (*models.Team, error) {
	if _, err := s.GetMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return s.findTeam(ctx, teamID)
}

// IsOwner reports whether userID owns the team.
func (s *TeamService) IsOwner(ctx context.Context, teamID, userID uint64) (bool, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return false, err
	}
	return team.OwnerID == userID, nil
}

// DeleteTeam removes the team, its memberships and its pending invites.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID uint64) error {
	team, err := s.requireOwner(ctx, userID, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	for _, m := range team.Members {
		publish(ctx, s.publisher, tableTeams, realtime.ActionDelete, teamID, m.UserID)
	}
	return nil
}

// RemoveMember lets the owner remove anyone but themselves.
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, memberUserID uint64) error {
	team, err := s.requireOwner(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if memberUserID == team.OwnerID {
		return ErrCannotChangeOwner
	}

	affected, err := s.teamRepo.RemoveMember(ctx, teamID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	publish(ctx, s.publisher, tableTeamMembers, realtime.ActionDelete, teamID, actorID, memberUserID)
	return nil
}

// ChangeRole lets the owner change another member's role.
func (s *TeamService) ChangeRole(ctx context.Context, actorID, teamID, memberUserID uint64, role models.TeamRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	team, err := s.requireOwner(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if memberUserID == team.OwnerID {
		return ErrCannotChangeOwner
	}

	affected, err := s.teamRepo.UpdateMemberRole(ctx, teamID, memberUserID, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	publish(ctx, s.publisher, tableTeamMembers, realtime.ActionUpdate, teamID, actorID, memberUserID)
	return nil
}

func (s *TeamService) findTeam(ctx context.Context, teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func (s *TeamService) requireOwner(ctx context.Context, userID, teamID uint64) (*models.Team, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != userID {
		return nil, ErrNotTeamOwner
	}
	return team, nil
}
