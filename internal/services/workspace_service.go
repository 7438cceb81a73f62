package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

type WorkspaceService struct {
	workspaceRepo    repository.WorkspaceRepository
	notificationRepo repository.NotificationRepository
	profiles         *ProfileService
	publisher        realtime.Publisher
	log              logrus.FieldLogger
}

func NewWorkspaceService(repos *repository.Repositories, profiles *ProfileService, publisher realtime.Publisher, log logrus.FieldLogger) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo:    repos.Workspaces,
		notificationRepo: repos.Notifications,
		profiles:         profiles,
		publisher:        publisher,
		log:              log,
	}
}

type CreateWorkspaceInput struct {
	Name  string
	Emoji string
	Color string
}

func (s *WorkspaceService) List(ctx context.Context, userID uint64) ([]models.Workspace, error) {
	workspaces, err := s.workspaceRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Create checks the plan's workspace cap before inserting. The first
// workspace also gets a welcome notification.
func (s *WorkspaceService) Create(ctx context.Context, userID uint64, input CreateWorkspaceInput) (*models.Workspace, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	ent, err := s.profiles.Entitlements(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.workspaceRepo.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count workspaces: %w", err)
	}
	if existing >= int64(ent.WorkspaceLimit) {
		return nil, &LimitError{Resource: "workspaces", Limit: ent.WorkspaceLimit}
	}

	workspace := &models.Workspace{
		UserID: userID,
		Name:   name,
		Slug:   slug.Make(name),
		Emoji:  input.Emoji,
		Color:  input.Color,
	}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	publish(ctx, s.publisher, tableWorkspaces, realtime.ActionInsert, workspace.ID, userID)

	if existing == 0 {
		notifyUser(ctx, s.notificationRepo, s.publisher, s.log, &models.Notification{
			UserID:  userID,
			Type:    models.NotificationTypeWelcome,
			Title:   "Welcome to your planner",
			Message: fmt.Sprintf("Your workspace %q is ready. Add your first task for the week.", name),
		})
	}

	return workspace, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, userID, id uint64) error {
	affected, err := s.workspaceRepo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if affected == 0 {
		return ErrWorkspaceNotFound
	}
	publish(ctx, s.publisher, tableWorkspaces, realtime.ActionDelete, id, userID)
	return nil
}
