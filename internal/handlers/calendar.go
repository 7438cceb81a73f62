package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/dto"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
	"github.com/yukikurage/planner-api/internal/services"
)

type CalendarHandler struct {
	calendar *services.CalendarService
}

func NewCalendarHandler(calendar *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// List returns the events between ?from and ?to inclusive, grouped by date.
func (h *CalendarHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.CalendarRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date range", err.Error())
		return
	}

	days, err := h.calendar.List(c.Request.Context(), userID, query.From, query.To)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *CalendarHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.calendar.Create(c.Request.Context(), userID, services.CreateEventInput{
		Date:     req.Date,
		Time:     req.Time,
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.calendar.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
