package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// reminderPreview is how many task names a reminder lists before summarising.
const reminderPreview = 3

// ReminderService creates the daily task_reminder notifications.
type ReminderService struct {
	profileRepo      repository.ProfileRepository
	taskRepo         repository.TaskRepository
	notificationRepo repository.NotificationRepository
	profiles         *ProfileService
	publisher        realtime.Publisher
	metrics          *metrics.Metrics
	log              logrus.FieldLogger
}

func NewReminderService(repos *repository.Repositories, profiles *ProfileService, publisher realtime.Publisher, m *metrics.Metrics, log logrus.FieldLogger) *ReminderService {
	return &ReminderService{
		profileRepo:      repos.Profiles,
		taskRepo:         repos.Tasks,
		notificationRepo: repos.Notifications,
		profiles:         profiles,
		publisher:        publisher,
		metrics:          m,
		log:              log,
	}
}

// Run creates one reminder for every user who has notifications enabled, a
// plan that includes them, and incomplete tasks for today's weekday in their
// own timezone. Users with an unread reminder are skipped. A failure for one
// user is logged and the run continues.
func (s *ReminderService) Run(ctx context.Context) (int, error) {
	profiles, err := s.profileRepo.ListWithNotificationsEnabled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	created := 0
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		profile := &profiles[i]
		ok, err := s.remind(ctx, profile)
		if err != nil {
			s.log.WithError(err).WithField("user_id", profile.UserID).Warn("Failed to create task reminder")
			continue
		}
		if ok {
			created++
		}
	}

	s.metrics.AddRemindersCreated(created)
	s.log.WithFields(logrus.Fields{"profiles": len(profiles), "created": created}).Info("Task reminders run finished")
	return created, nil
}

func (s *ReminderService) remind(ctx context.Context, profile *models.Profile) (bool, error) {
	if !entitlement.Resolve(profile.Plan).Allows(entitlement.FeatureNotifications) {
		return false, nil
	}

	day := s.profiles.Today(profile).Weekday().String()
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{UserID: profile.UserID, Day: day})
	if err != nil {
		return false, err
	}

	var pending []string
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t.Name)
		}
	}
	if len(pending) == 0 {
		return false, nil
	}

	unread, err := s.notificationRepo.HasUnread(ctx, profile.UserID, models.NotificationTypeTaskReminder)
	if err != nil {
		return false, err
	}
	if unread {
		return false, nil
	}

	n := &models.Notification{
		UserID:  profile.UserID,
		Type:    models.NotificationTypeTaskReminder,
		Title:   fmt.Sprintf("%d tasks left for %s", len(pending), day),
		Message: reminderMessage(pending),
	}
	if len(pending) == 1 {
		n.Title = fmt.Sprintf("1 task left for %s", day)
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return false, err
	}

	publish(ctx, s.publisher, tableNotifications, realtime.ActionInsert, n.ID, profile.UserID)
	return true, nil
}

func reminderMessage(names []string) string {
	if len(names) <= reminderPreview {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:reminderPreview], ", "), len(names)-reminderPreview)
}
