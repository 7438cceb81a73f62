package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	"github.com/yukikurage/planner-api/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile answers 404 PROFILE_MISSING for an account that has not
// finished signing up.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.LoadProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, services.UpdateProfileInput{
		DisplayName:          req.DisplayName,
		Theme:                req.Theme,
		NotificationsEnabled: req.NotificationsEnabled,
		Timezone:             req.Timezone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Entitlements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ent, err := h.profiles.Entitlements(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ent)
}

func (h *ProfileHandler) SelectPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SelectPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.SelectPlan(c.Request.Context(), userID, req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Onboarding recomputes the first-run step on every call.
func (h *ProfileHandler) Onboarding(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	state, err := h.profiles.Onboarding(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}
