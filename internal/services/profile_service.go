package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/onboarding"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
	"github.com/yukikurage/planner-api/internal/streak"
)

// ProfileService owns the per-user settings: plan, theme, timezone and streak.
type ProfileService struct {
	profileRepo   repository.ProfileRepository
	workspaceRepo repository.WorkspaceRepository
	publisher     realtime.Publisher
	location      *time.Location
	now           func() time.Time
}

// NewProfileService creates a ProfileService. loc is the timezone used for
// profiles that do not set their own.
func NewProfileService(repos *repository.Repositories, publisher realtime.Publisher, loc *time.Location) *ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProfileService{
		profileRepo:   repos.Profiles,
		workspaceRepo: repos.Workspaces,
		publisher:     publisher,
		location:      loc,
		now:           time.Now,
	}
}

// LoadProfile returns ErrProfileNotFound when the user has no profile row yet.
func (s *ProfileService) LoadProfile(ctx context.Context, userID uint64) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// Entitlements resolves the user's current plan.
func (s *ProfileService) Entitlements(ctx context.Context, userID uint64) (entitlement.Entitlements, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return entitlement.Entitlements{}, err
	}
	return entitlement.Resolve(profile.Plan), nil
}

// RequireFeature returns a *FeatureError when the user's plan lacks f.
func (s *ProfileService) RequireFeature(ctx context.Context, userID uint64, f entitlement.Feature) error {
	ent, err := s.Entitlements(ctx, userID)
	if err != nil {
		return err
	}
	if !ent.Allows(f) {
		return &FeatureError{Feature: f}
	}
	return nil
}

// Location returns the timezone the user's civil dates are computed in.
func (s *ProfileService) Location(profile *models.Profile) *time.Location {
	if profile == nil {
		return s.location
	}
	return streak.Location(profile.Timezone, s.location)
}

// Today returns the current date in the user's timezone.
func (s *ProfileService) Today(profile *models.Profile) time.Time {
	return streak.Today(s.now(), s.Location(profile))
}

type UpdateProfileInput struct {
	DisplayName          *string
	Theme                *string
	NotificationsEnabled *bool
	Timezone             *string
}

// UpdateProfile applies the non-nil fields. Any theme other than the default
// needs the custom_themes feature.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint64, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, ErrNameRequired
		}
		profile.DisplayName = name
	}
	if input.Theme != nil && *input.Theme != profile.Theme {
		if *input.Theme != models.DefaultTheme && !entitlement.Resolve(profile.Plan).Allows(entitlement.FeatureCustomThemes) {
			return nil, &FeatureError{Feature: entitlement.FeatureCustomThemes}
		}
		profile.Theme = *input.Theme
	}
	if input.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.Timezone != nil {
		if *input.Timezone != "" {
			if _, err := time.LoadLocation(*input.Timezone); err != nil {
				return nil, ErrInvalidTimezone
			}
		}
		profile.Timezone = *input.Timezone
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	publish(ctx, s.publisher, tableProfiles, realtime.ActionUpdate, profile.ID, userID)
	return profile, nil
}

// SelectPlan stores the chosen plan.
func (s *ProfileService) SelectPlan(ctx context.Context, userID uint64, plan string) (*models.Profile, error) {
	p, ok := entitlement.ParsePlan(plan)
	if !ok {
		return nil, ErrInvalidPlan
	}

	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Plan = string(p)
	// Custom themes do not survive a downgrade.
	if !entitlement.Resolve(profile.Plan).Allows(entitlement.FeatureCustomThemes) {
		profile.Theme = models.DefaultTheme
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	publish(ctx, s.publisher, tableProfiles, realtime.ActionUpdate, profile.ID, userID)
	return profile, nil
}

// UpdateStreak records a completion made now and returns the updated profile.
func (s *ProfileService) UpdateStreak(ctx context.Context, userID uint64) (*models.Profile, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := streak.Advance(streak.State{
		Count:         profile.StreakCount,
		LastCompleted: profile.LastCompletedDate,
	}, s.Today(profile))

	if next.Count == profile.StreakCount && sameDate(next.LastCompleted, profile.LastCompletedDate) {
		return profile, nil
	}

	if err := s.profileRepo.UpdateStreak(ctx, userID, next.Count, next.LastCompleted); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}
	profile.StreakCount = next.Count
	profile.LastCompletedDate = next.LastCompleted

	publish(ctx, s.publisher, tableProfiles, realtime.ActionUpdate, profile.ID, userID)
	return profile, nil
}

// Onboarding reports the first-run step the user is on. A missing profile
// counts as a fresh account that still needs a workspace.
func (s *ProfileService) Onboarding(ctx context.Context, userID uint64) (onboarding.State, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return onboarding.NeedsWorkspace, nil
	}
	if err != nil {
		return onboarding.Loading, err
	}

	count, err := s.workspaceRepo.Count(ctx, userID)
	if err != nil {
		return onboarding.Loading, fmt.Errorf("failed to count workspaces: %w", err)
	}
	return onboarding.Resolve(count, profile.Plan), nil
}

func sameDate(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
