package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *HandlerSuite) TestNotifications_PersistedAndDerivedReads() {
	owner := s.signup("kai@example.com", "standard")
	cookies := s.signup("liv@example.com", "standard")
	teamID := s.createTeam(owner, "Guild")
	w := s.request(http.MethodPost, fmt.Sprintf("/api/teams/%d/invites", teamID), gin.H{"email": "liv@example.com"}, owner)
	s.Require().Equal(http.StatusCreated, w.Code)

	var user models.User
	s.Require().NoError(s.db.Where("email = ?", "liv@example.com").First(&user).Error)
	rows := []models.Notification{
		{UserID: user.ID, Type: models.NotificationTypeWelcome, Title: "Welcome"},
		{UserID: user.ID, Type: models.NotificationTypeTaskReminder, Title: "2 tasks left for Wednesday"},
	}
	s.Require().NoError(s.db.Create(&rows).Error)

	feed := func() map[string]interface{} {
		w := s.request(http.MethodGet, "/api/notifications", nil, cookies)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		return s.decode(w)
	}

	body := feed()
	s.Len(body["entries"], 3)
	s.Equal(float64(3), body["unread"])

	derivedID := fmt.Sprintf("team-invite-%d", s.pendingInviteID(cookies))
	w = s.request(http.MethodPost, "/api/notifications/"+derivedID+"/read", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(fmt.Sprintf(`{"id":%q,"persisted":false}`, derivedID), w.Body.String())
	s.Equal(float64(3), feed()["unread"])

	w = s.request(http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", rows[0].ID), nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["persisted"])
	s.Equal(float64(2), feed()["unread"])

	w = s.request(http.MethodPost, "/api/notifications/9999/read", nil, cookies)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/api/notifications/bogus/read", nil, cookies)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/notifications/read-all", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(float64(1), feed()["unread"])
}

func (s *HandlerSuite) TestNotifications_OtherUsersRowsInvisible() {
	cookies := s.signup("max@example.com", "standard")
	s.signup("nia@example.com", "")

	var other models.User
	s.Require().NoError(s.db.Where("email = ?", "nia@example.com").First(&other).Error)
	row := models.Notification{UserID: other.ID, Type: models.NotificationTypeWelcome, Title: "Hi"}
	s.Require().NoError(s.db.Create(&row).Error)

	w := s.request(http.MethodGet, "/api/notifications", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"entries":[],"unread":0}`, w.Body.String())

	w = s.request(http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", row.ID), nil, cookies)
	s.Equal(http.StatusNotFound, w.Code)
}
