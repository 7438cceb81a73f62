package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/repository"
)

// Bounds wide enough to cover every stored calendar date.
const (
	exportFromDate = "0001-01-01"
	exportToDate   = "9999-12-31"
)

// Export is the downloadable copy of a user's data.
type Export struct {
	ExportedAt     time.Time              `json:"exported_at"`
	Profile        *models.Profile        `json:"profile"`
	Tasks          []models.Task          `json:"tasks"`
	Categories     []models.Category      `json:"categories"`
	Workspaces     []models.Workspace     `json:"workspaces"`
	CalendarEvents []models.CalendarEvent `json:"calendar_events"`
}

type ExportService struct {
	repos    *repository.Repositories
	profiles *ProfileService
	now      func() time.Time
}

func NewExportService(repos *repository.Repositories, profiles *ProfileService) *ExportService {
	return &ExportService{repos: repos, profiles: profiles, now: time.Now}
}

// Export collects everything the user owns. Requires the data_export feature.
func (s *ExportService) Export(ctx context.Context, userID uint64) (*Export, error) {
	profile, err := s.profiles.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !entitlement.Resolve(profile.Plan).Allows(entitlement.FeatureDataExport) {
		return nil, &FeatureError{Feature: entitlement.FeatureDataExport}
	}

	out := &Export{ExportedAt: s.now().UTC(), Profile: profile}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Tasks, err = s.repos.Tasks.ListAll(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.Categories, err = s.repos.Categories.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.Workspaces, err = s.repos.Workspaces.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.CalendarEvents, err = s.repos.Calendar.ListRange(gctx, userID, exportFromDate, exportToDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	return out, nil
}
