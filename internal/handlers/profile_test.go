package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *HandlerSuite) TestProfile_MissingRowIsFirstRunSignal() {
	cookies := s.signup("dave@example.com", "")
	s.Require().NoError(s.db.Where("1 = 1").Delete(&models.Profile{}).Error)

	w := s.request(http.MethodGet, "/api/profile", nil, cookies)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("PROFILE_MISSING", errorCode(s.decode(w)))

	w = s.request(http.MethodGet, "/api/onboarding", nil, cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("needs_workspace", s.decode(w)["state"])
}

func (s *HandlerSuite) TestEntitlements_FollowSelectedPlan() {
	cookies := s.signup("erin@example.com", "")

	w := s.request(http.MethodGet, "/api/profile/entitlements", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("free", body["plan"])
	s.Equal(float64(3), body["workspace_limit"])

	w = s.request(http.MethodPut, "/api/profile/plan", gin.H{"plan": "enterprise"}, cookies)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPut, "/api/profile/plan", gin.H{"plan": "premium"}, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	body = s.decode(s.request(http.MethodGet, "/api/profile/entitlements", nil, cookies))
	s.Equal("premium", body["plan"])
	s.Equal(float64(5), body["workspace_limit"])
}

func (s *HandlerSuite) TestUpdateProfile_ThemeNeedsCustomThemes() {
	cookies := s.signup("frank@example.com", "standard")

	w := s.request(http.MethodPatch, "/api/profile", gin.H{"theme": "ocean"}, cookies)
	s.Equal(http.StatusForbidden, w.Code)
	body := s.decode(w)
	s.Equal("FEATURE_LOCKED", errorCode(body))
	s.Equal("premium", body["details"].(map[string]interface{})["required_plan"])

	w = s.request(http.MethodPatch, "/api/profile", gin.H{"display_name": "Frank"}, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Frank", s.decode(w)["display_name"])
}

func (s *HandlerSuite) TestOnboarding_Progression() {
	cookies := s.signup("gina@example.com", "")
	state := func() interface{} {
		return s.decode(s.request(http.MethodGet, "/api/onboarding", nil, cookies))["state"]
	}

	s.Equal("needs_workspace", state())

	w := s.request(http.MethodPost, "/api/workspaces", gin.H{"name": "Home"}, cookies)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("needs_plan_selection", state())

	s.request(http.MethodPut, "/api/profile/plan", gin.H{"plan": "standard"}, cookies)
	s.Equal("ready", state())
}
