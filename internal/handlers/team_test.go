package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *HandlerSuite) createTeam(cookies []*http.Cookie, name string) uint64 {
	w := s.request(http.MethodPost, "/api/teams", gin.H{"name": name}, cookies)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return idOf(s.decode(w))
}

func (s *HandlerSuite) TestCreateTeam_FreePlanLocked() {
	cookies := s.signup("vera@example.com", "")

	w := s.request(http.MethodPost, "/api/teams", gin.H{"name": "Ops"}, cookies)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("FEATURE_LOCKED", errorCode(s.decode(w)))
	s.Equal(int64(0), s.count(&models.Team{}))
}

func (s *HandlerSuite) TestTeam_InviteAcceptFlow() {
	owner := s.signup("walt@example.com", "standard")
	invitee := s.signup("xena@example.com", "standard")
	teamID := s.createTeam(owner, "Ops")
	teamPath := fmt.Sprintf("/api/teams/%d", teamID)

	w := s.request(http.MethodGet, teamPath, nil, invitee)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, teamPath+"/invites", gin.H{"email": "xena@example.com"}, owner)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "token")

	w = s.request(http.MethodPost, teamPath+"/invites", gin.H{"email": "xena@example.com"}, owner)
	s.Equal(http.StatusConflict, w.Code)

	inviteID := s.pendingInviteID(invitee)
	w = s.request(http.MethodPost, fmt.Sprintf("/api/invites/%d/accept", inviteID), nil, invitee)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	member := s.decode(w)["member"].(map[string]interface{})
	s.Equal("editor", member["role"])

	w = s.request(http.MethodPost, fmt.Sprintf("/api/invites/%d/accept", inviteID), nil, invitee)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(int64(2), s.count(&models.TeamMember{}))

	w = s.request(http.MethodGet, teamPath, nil, invitee)
	s.Require().Equal(http.StatusOK, w.Code)
	detail := s.decode(w)
	s.Equal("editor", detail["your_role"])
	s.Equal(false, detail["is_owner"])
	s.Len(detail["members"], 2)

	// Editors cannot invite.
	w = s.request(http.MethodPost, teamPath+"/invites", gin.H{"email": "yuri@example.com"}, invitee)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/teams", nil, invitee)
	s.Require().Equal(http.StatusOK, w.Code)
	teams := s.decode(w)["teams"].([]interface{})
	s.Require().Len(teams, 1)
	s.Equal("Ops", teams[0].(map[string]interface{})["name"])
}

func (s *HandlerSuite) TestTeam_DeclineCreatesNoMembership() {
	owner := s.signup("yara@example.com", "standard")
	invitee := s.signup("zane@example.com", "")
	teamID := s.createTeam(owner, "Design")

	w := s.request(http.MethodPost, fmt.Sprintf("/api/teams/%d/invites", teamID), gin.H{"email": "zane@example.com"}, owner)
	s.Require().Equal(http.StatusCreated, w.Code)

	inviteID := s.pendingInviteID(invitee)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/invites/%d/decline", inviteID), nil, owner)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/invites/%d/decline", inviteID), nil, invitee)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("declined", s.decode(w)["invite"].(map[string]interface{})["status"])
	s.Equal(int64(1), s.count(&models.TeamMember{}))
}

func (s *HandlerSuite) TestTeam_OwnerManagesMembers() {
	owner := s.signup("abe@example.com", "standard")
	member := s.signup("bea@example.com", "standard")
	teamID := s.createTeam(owner, "Support")
	teamPath := fmt.Sprintf("/api/teams/%d", teamID)

	s.request(http.MethodPost, teamPath+"/invites", gin.H{"email": "bea@example.com"}, owner)
	w := s.request(http.MethodPost, fmt.Sprintf("/api/invites/%d/accept", s.pendingInviteID(member)), nil, member)
	s.Require().Equal(http.StatusOK, w.Code)
	memberUserID := uint64(s.decode(w)["member"].(map[string]interface{})["user_id"].(float64))

	w = s.request(http.MethodPatch, fmt.Sprintf("%s/members/%d/role", teamPath, memberUserID), gin.H{"role": "owner"}, owner)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPatch, fmt.Sprintf("%s/members/%d/role", teamPath, memberUserID), gin.H{"role": "viewer"}, owner)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodDelete, teamPath, nil, member)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("%s/members/%d", teamPath, memberUserID), nil, owner)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, teamPath, nil, member)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodDelete, teamPath, nil, owner)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(0), s.count(&models.Team{}))
}

func (s *HandlerSuite) TestRPC_IsTeamOwner() {
	owner := s.signup("cal@example.com", "standard")
	other := s.signup("dee@example.com", "")
	teamID := s.createTeam(owner, "Core")

	w := s.request(http.MethodPost, "/api/rpc/is_team_owner", gin.H{"team_id": teamID}, owner)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"is_owner":true}`, w.Body.String())

	w = s.request(http.MethodPost, "/api/rpc/is_team_owner", gin.H{"team_id": teamID}, other)
	s.JSONEq(`{"is_owner":false}`, w.Body.String())

	w = s.request(http.MethodPost, "/api/rpc/is_team_owner", gin.H{"team_id": 9999}, owner)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestRPC_UpdateUserStreak() {
	cookies := s.signup("eve@example.com", "")

	w := s.request(http.MethodPost, "/api/rpc/update_user_streak", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(float64(1), s.decode(w)["streak_count"])

	// A second completion on the same day leaves the streak unchanged.
	w = s.request(http.MethodPost, "/api/rpc/update_user_streak", nil, cookies)
	s.Equal(float64(1), s.decode(w)["streak_count"])
}
