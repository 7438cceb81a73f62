package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo         repository.TaskRepository
	workspaceRepo    repository.WorkspaceRepository
	notificationRepo repository.NotificationRepository
	profiles         *ProfileService
	aiService        *AIService
	publisher        realtime.Publisher
	metrics          *metrics.Metrics
	log              logrus.FieldLogger
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(repos *repository.Repositories, profiles *ProfileService, aiService *AIService, publisher realtime.Publisher, m *metrics.Metrics, log logrus.FieldLogger) *TaskService {
	return &TaskService{
		taskRepo:         repos.Tasks,
		workspaceRepo:    repos.Workspaces,
		notificationRepo: repos.Notifications,
		profiles:         profiles,
		aiService:        aiService,
		publisher:        publisher,
		metrics:          m,
		log:              log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	WorkspaceID *uint64
	Name        string
	Category    string
	Day         string
}

// ToggleResult carries the toggled task and the profile as it stands
// afterwards, so a new streak is visible immediately.
type ToggleResult struct {
	Task    *models.Task    `json:"task"`
	Profile *models.Profile `json:"profile"`
}

// Progress summarises task completion.
type Progress struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
	Percent   int   `json:"percent"`
}

// ListTasks returns the user's tasks, oldest first
func (s *TaskService) ListTasks(ctx context.Context, userID uint64, workspaceID *uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{UserID: userID, WorkspaceID: workspaceID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates every field before touching the database.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	day := strings.TrimSpace(input.Day)
	if name == "" || category == "" || day == "" {
		return nil, ErrTaskFieldsRequired
	}
	if !models.IsWeekday(day) {
		return nil, ErrInvalidDay
	}

	if input.WorkspaceID != nil {
		if _, err := s.workspaceRepo.FindByID(ctx, input.UserID, *input.WorkspaceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWorkspaceNotFound
			}
			return nil, fmt.Errorf("failed to find workspace: %w", err)
		}
	}

	task := &models.Task{
		UserID:      input.UserID,
		WorkspaceID: input.WorkspaceID,
		Name:        name,
		Category:    category,
		Day:         day,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	publish(ctx, s.publisher, tableTasks, realtime.ActionInsert, task.ID, task.UserID)
	return task, nil
}

// ToggleTask flips the completed flag. Completing a task advances the streak
// and clears the user's task reminders; a failed reminder cleanup is only logged.
func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID uint64) (*ToggleResult, error) {
	task, err := s.findTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	publish(ctx, s.publisher, tableTasks, realtime.ActionUpdate, task.ID, userID)

	var profile *models.Profile
	if task.Completed {
		s.metrics.IncTaskCompleted()

		profile, err = s.profiles.UpdateStreak(ctx, userID)
		if err != nil {
			return nil, err
		}

		if removed, err := s.notificationRepo.DeleteByType(ctx, userID, models.NotificationTypeTaskReminder); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("Failed to clear task reminders")
		} else if removed > 0 {
			publish(ctx, s.publisher, tableNotifications, realtime.ActionDelete, 0, userID)
		}
	} else {
		profile, err = s.profiles.LoadProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return &ToggleResult{Task: task, Profile: profile}, nil
}

// DeleteTask is irreversible and refuses to run unless confirmed.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	affected, err := s.taskRepo.Delete(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	publish(ctx, s.publisher, tableTasks, realtime.ActionDelete, taskID, userID)
	return nil
}

// Progress reports 0 percent when there are no tasks.
func (s *TaskService) Progress(ctx context.Context, userID uint64) (*Progress, error) {
	completed, total, err := s.taskRepo.CountProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	p := &Progress{Completed: completed, Total: total}
	if total > 0 {
		p.Percent = int(completed * 100 / total)
	}
	return p, nil
}

// SuggestTasks asks the AI service for tasks described by text. Nothing is saved.
func (s *TaskService) SuggestTasks(ctx context.Context, userID uint64, text string) ([]SuggestedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if err := s.profiles.RequireFeature(ctx, userID, entitlement.FeatureTaskSuggestions); err != nil {
		return nil, err
	}

	suggestions, err := s.aiService.SuggestTasks(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	valid := make([]SuggestedTask, 0, len(suggestions))
	for _, t := range suggestions {
		t.Name = strings.TrimSpace(t.Name)
		t.Category = strings.TrimSpace(t.Category)
		if t.Name == "" || t.Category == "" || !models.IsWeekday(t.Day) {
			continue
		}
		valid = append(valid, t)
	}
	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

func (s *TaskService) findTask(ctx context.Context, userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
