package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
	"github.com/yukikurage/planner-api/internal/middleware"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/services"
	"github.com/yukikurage/planner-api/internal/utils"
)

// PartnerHandler serves partnerships and the chat room each accepted one
// shares. Routes below /partners/:id run behind RequirePartnerAccess, which
// resolves the partnership once per request.
type PartnerHandler struct {
	partners *services.PartnerService
}

func NewPartnerHandler(partners *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// currentRoom returns the partnership resolved by RequirePartnerAccess.
func currentRoom(c *gin.Context) (*models.Partner, bool) {
	room, ok := middleware.GetPartner(c)
	if !ok {
		apierrors.InternalError(c, "Partner access not resolved")
		return nil, false
	}
	return room, true
}

func (h *PartnerHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	partners, err := h.partners.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

func (h *PartnerHandler) ListMessages(c *gin.Context) {
	room, ok := currentRoom(c)
	if !ok {
		return
	}

	page, err := h.partners.ListMessages(c.Request.Context(), room, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PartnerHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	room, ok := currentRoom(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.partners.SendMessage(c.Request.Context(), room, userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *PartnerHandler) ListTasks(c *gin.Context) {
	room, ok := currentRoom(c)
	if !ok {
		return
	}

	tasks, err := h.partners.ListTasks(c.Request.Context(), room)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *PartnerHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	room, ok := currentRoom(c)
	if !ok {
		return
	}

	var req dto.CreatePartnerTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.partners.CreateTask(c.Request.Context(), room, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *PartnerHandler) ToggleTask(c *gin.Context) {
	room, ok := currentRoom(c)
	if !ok {
		return
	}
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.partners.ToggleTask(c.Request.Context(), room, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
