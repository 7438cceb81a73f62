package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
	"github.com/yukikurage/planner-api/internal/utils"
)

// PartnerService serves partnerships and the chat room each accepted
// partnership owns.
type PartnerService struct {
	partnerRepo repository.PartnerRepository
	chatRepo    repository.ChatRepository
	publisher   realtime.Publisher
}

func NewPartnerService(repos *repository.Repositories, publisher realtime.Publisher) *PartnerService {
	return &PartnerService{
		partnerRepo: repos.Partners,
		chatRepo:    repos.Chats,
		publisher:   publisher,
	}
}

// MessagePage is one page of a chat room's history.
type MessagePage struct {
	Messages   []models.Message         `json:"messages"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func (s *PartnerService) List(ctx context.Context, userID uint64) ([]models.Partner, error) {
	partners, err := s.partnerRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

// Get returns the partnership when userID is one of its parties. Anyone else
// gets ErrPartnerNotFound.
func (s *PartnerService) Get(ctx context.Context, userID, partnerID uint64) (*models.Partner, error) {
	partner, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to find partner: %w", err)
	}
	if !partner.Involves(userID) {
		return nil, ErrPartnerNotFound
	}
	return partner, nil
}

// Room returns the partnership if it is accepted and has a chat room. The
// room operations below take its result.
func (s *PartnerService) Room(ctx context.Context, userID, partnerID uint64) (*models.Partner, error) {
	partner, err := s.Get(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if _, err := roomID(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// roomID returns the chat room of an accepted partnership.
func roomID(room *models.Partner) (string, error) {
	if room == nil || room.Status != models.PartnerStatusAccepted || room.ChatRoomID == nil {
		return "", ErrPartnershipNotAccepted
	}
	return *room.ChatRoomID, nil
}

// SendMessage posts into the room of a partnership resolved by Room.
func (s *PartnerService) SendMessage(ctx context.Context, room *models.Partner, senderID uint64, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrMessageRequired
	}
	chatRoomID, err := roomID(room)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatRoomID: chatRoomID,
		SenderID:   senderID,
		Body:       body,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.publishToParties(ctx, room, tableMessages, realtime.ActionInsert, message.ID)
	return message, nil
}

// ListMessages returns the room history oldest first.
func (s *PartnerService) ListMessages(ctx context.Context, room *models.Partner, page utils.PaginationParams) (*MessagePage, error) {
	chatRoomID, err := roomID(room)
	if err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.ListMessages(ctx, chatRoomID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return &MessagePage{
		Messages:   messages,
		Pagination: page.Response(total),
	}, nil
}

func (s *PartnerService) ListTasks(ctx context.Context, room *models.Partner) ([]models.PartnerTask, error) {
	chatRoomID, err := roomID(room)
	if err != nil {
		return nil, err
	}
	tasks, err := s.chatRepo.ListPartnerTasks(ctx, chatRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partner tasks: %w", err)
	}
	return tasks, nil
}

func (s *PartnerService) CreateTask(ctx context.Context, room *models.Partner, creatorID uint64, name string) (*models.PartnerTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	chatRoomID, err := roomID(room)
	if err != nil {
		return nil, err
	}

	task := &models.PartnerTask{
		ChatRoomID: chatRoomID,
		CreatorID:  creatorID,
		Name:       name,
	}
	if err := s.chatRepo.CreatePartnerTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create partner task: %w", err)
	}

	s.publishToParties(ctx, room, tablePartnerTasks, realtime.ActionInsert, task.ID)
	return task, nil
}

// ToggleTask flips a shared task. Either party may toggle it.
func (s *PartnerService) ToggleTask(ctx context.Context, room *models.Partner, taskID uint64) (*models.PartnerTask, error) {
	chatRoomID, err := roomID(room)
	if err != nil {
		return nil, err
	}

	task, err := s.chatRepo.FindPartnerTask(ctx, chatRoomID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find partner task: %w", err)
	}

	task.Completed = !task.Completed
	if err := s.chatRepo.UpdatePartnerTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update partner task: %w", err)
	}

	s.publishToParties(ctx, room, tablePartnerTasks, realtime.ActionUpdate, task.ID)
	return task, nil
}

func (s *PartnerService) publishToParties(ctx context.Context, partner *models.Partner, table string, action realtime.Action, id uint64) {
	users := []uint64{partner.UserID}
	if partner.PartnerID != nil {
		users = append(users, *partner.PartnerID)
	}
	publish(ctx, s.publisher, table, action, id, users...)
}
