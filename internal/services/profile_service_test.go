package services

import (
	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/models"
)

func strPtr(s string) *string { return &s }

func (s *ServiceSuite) TestUpdateProfile_CustomThemeNeedsPremium() {
	user := s.signup("alice@example.com", "standard")

	_, err := s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{Theme: strPtr("midnight")})
	var featureErr *FeatureError
	s.Require().ErrorAs(err, &featureErr)
	s.Equal(entitlement.FeatureCustomThemes, featureErr.Feature)
	s.Equal(entitlement.PlanPremium, featureErr.RequiredPlan())

	_, err = s.profiles.SelectPlan(s.ctx, user.ID, "premium")
	s.Require().NoError(err)
	profile, err := s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{
		Theme:       strPtr("midnight"),
		DisplayName: strPtr("  Alice  "),
	})
	s.Require().NoError(err)
	s.Equal("midnight", profile.Theme)
	s.Equal("Alice", profile.DisplayName)

	// Downgrading drops the custom theme.
	profile, err = s.profiles.SelectPlan(s.ctx, user.ID, "standard")
	s.Require().NoError(err)
	s.Equal(models.DefaultTheme, profile.Theme)
}

func (s *ServiceSuite) TestUpdateProfile_Validation() {
	user := s.signup("alice@example.com", "")

	_, err := s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{Timezone: strPtr("Mars/Olympus")})
	s.ErrorIs(err, ErrInvalidTimezone)

	_, err = s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{DisplayName: strPtr("   ")})
	s.ErrorIs(err, ErrNameRequired)

	_, err = s.profiles.SelectPlan(s.ctx, user.ID, "platinum")
	s.ErrorIs(err, ErrInvalidPlan)

	profile, err := s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{Timezone: strPtr("Asia/Tokyo")})
	s.Require().NoError(err)
	s.Equal("Asia/Tokyo", profile.Timezone)
	s.Len(s.pub.published(tableProfiles), 1)
}

func (s *ServiceSuite) TestUpdateStreak_UsesProfileTimezone() {
	user := s.signup("alice@example.com", "")
	// 10:00 UTC is already the next day in Kiritimati (UTC+14).
	_, err := s.profiles.UpdateProfile(s.ctx, user.ID, UpdateProfileInput{Timezone: strPtr("Pacific/Kiritimati")})
	s.Require().NoError(err)

	profile, err := s.profiles.UpdateStreak(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, profile.StreakCount)
	s.Require().NotNil(profile.LastCompletedDate)
	s.Equal("2026-03-19", *profile.LastCompletedDate)
}
