package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *HandlerSuite) TestCreateWorkspace_CapRejectedWithoutInsert() {
	cookies := s.signup("rita@example.com", "standard")

	for i := 0; i < 3; i++ {
		w := s.request(http.MethodPost, "/api/workspaces", gin.H{"name": fmt.Sprintf("Space %d", i)}, cookies)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.request(http.MethodPost, "/api/workspaces", gin.H{"name": "One too many"}, cookies)
	s.Equal(http.StatusForbidden, w.Code)
	body := s.decode(w)
	s.Equal("LIMIT_REACHED", errorCode(body))
	s.Equal(float64(3), body["details"].(map[string]interface{})["limit"])
	s.Equal(int64(3), s.count(&models.Workspace{}))
}

func (s *HandlerSuite) TestWorkspace_SlugAndDelete() {
	cookies := s.signup("sam@example.com", "")

	w := s.request(http.MethodPost, "/api/workspaces", gin.H{"name": "Deep Work", "emoji": "🧠", "color": "#ff0000"}, cookies)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("deep-work", body["slug"])

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/workspaces/%d", idOf(body)), nil, cookies)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/workspaces/%d", idOf(body)), nil, cookies)
	s.Equal(http.StatusNotFound, w.Code)
}
