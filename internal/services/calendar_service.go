package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

type CalendarService struct {
	calendarRepo repository.CalendarRepository
	publisher    realtime.Publisher
}

func NewCalendarService(repos *repository.Repositories, publisher realtime.Publisher) *CalendarService {
	return &CalendarService{
		calendarRepo: repos.Calendar,
		publisher:    publisher,
	}
}

type CreateEventInput struct {
	Date     string
	Time     *string
	Title    string
	Category string
}

// CalendarDay is one date partition of the calendar.
type CalendarDay struct {
	Date   string                 `json:"date"`
	Events []models.CalendarEvent `json:"events"`
}

// List returns the events between from and to inclusive, grouped by date in
// ascending order. Dates without events are omitted.
func (s *CalendarService) List(ctx context.Context, userID uint64, from, to string) ([]CalendarDay, error) {
	fromDate, err := time.Parse(constants.DateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse(constants.DateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}

	events, err := s.calendarRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	days := []CalendarDay{}
	for _, ev := range events {
		if n := len(days); n > 0 && days[n-1].Date == ev.Date {
			days[n-1].Events = append(days[n-1].Events, ev)
			continue
		}
		days = append(days, CalendarDay{Date: ev.Date, Events: []models.CalendarEvent{ev}})
	}
	return days, nil
}

func (s *CalendarService) Create(ctx context.Context, userID uint64, input CreateEventInput) (*models.CalendarEvent, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNameRequired
	}
	if _, err := time.Parse(constants.DateLayout, input.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if input.Time != nil && *input.Time != "" {
		if _, err := time.Parse(constants.TimeLayout, *input.Time); err != nil {
			return nil, ErrInvalidTime
		}
	} else {
		input.Time = nil
	}

	event := &models.CalendarEvent{
		UserID:   userID,
		Date:     input.Date,
		Time:     input.Time,
		Title:    title,
		Category: strings.TrimSpace(input.Category),
	}
	if err := s.calendarRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	publish(ctx, s.publisher, tableCalendar, realtime.ActionInsert, event.ID, userID)
	return event, nil
}

func (s *CalendarService) Delete(ctx context.Context, userID, id uint64) error {
	affected, err := s.calendarRepo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	publish(ctx, s.publisher, tableCalendar, realtime.ActionDelete, id, userID)
	return nil
}
