package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/models"
)

func (s *HandlerSuite) TestSession_AnonymousThenSignedIn() {
	w := s.request(http.MethodGet, "/api/auth/session", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"user":null}`, w.Body.String())

	cookies := s.signup("Alice@Example.com", "")

	w = s.request(http.MethodGet, "/api/auth/session", nil, cookies)
	s.Equal(http.StatusOK, w.Code)
	user := s.decode(w)["user"].(map[string]interface{})
	s.Equal("alice@example.com", user["email"])
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlerSuite) TestSignup_Rejections() {
	w := s.request(http.MethodPost, "/api/auth/signup", gin.H{"email": "not-an-email", "password": "password123"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", errorCode(s.decode(w)))

	w = s.request(http.MethodPost, "/api/auth/signup", gin.H{"email": "short@example.com", "password": "abc"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	s.signup("taken@example.com", "")
	w = s.request(http.MethodPost, "/api/auth/signup", gin.H{"email": "taken@example.com", "password": "password123"}, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("CONFLICT", errorCode(s.decode(w)))

	s.Equal(int64(1), s.count(&models.User{}))
}

func (s *HandlerSuite) TestLoginAndLogout() {
	s.signup("bob@example.com", "")

	w := s.request(http.MethodPost, "/api/auth/login", gin.H{"email": "bob@example.com", "password": "wrong-password"}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("INVALID_CREDENTIALS", errorCode(s.decode(w)))

	w = s.request(http.MethodPost, "/api/auth/login", gin.H{"email": "BOB@example.com", "password": "password123"}, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = s.request(http.MethodGet, "/api/profile", nil, cookies)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/auth/logout", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/profile", nil, w.Result().Cookies())
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestChangePassword() {
	cookies := s.signup("carol@example.com", "")

	w := s.request(http.MethodPut, "/api/auth/password", gin.H{"current_password": "nope-nope", "new_password": "newpassword1"}, cookies)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPut, "/api/auth/password", gin.H{"current_password": "password123", "new_password": "newpassword1"}, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/auth/login", gin.H{"email": "carol@example.com", "password": "newpassword1"}, nil)
	s.Equal(http.StatusOK, w.Code)
}
