package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/planner-api/internal/models"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
)

// CategoryService manages the labels tasks are grouped by. Tasks reference
// categories by name only, so deleting one leaves tasks untouched.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	profiles     *ProfileService
	publisher    realtime.Publisher
}

func NewCategoryService(repos *repository.Repositories, profiles *ProfileService, publisher realtime.Publisher) *CategoryService {
	return &CategoryService{
		categoryRepo: repos.Categories,
		profiles:     profiles,
		publisher:    publisher,
	}
}

func (s *CategoryService) List(ctx context.Context, userID uint64) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uint64, name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	ent, err := s.profiles.Entitlements(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkLimit(ctx, s.categoryRepo.Count, userID, "categories", ent.CategoryLimit); err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, Name: name, Color: color}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	publish(ctx, s.publisher, tableCategories, realtime.ActionInsert, category.ID, userID)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uint64) error {
	affected, err := s.categoryRepo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	publish(ctx, s.publisher, tableCategories, realtime.ActionDelete, id, userID)
	return nil
}

// checkLimit returns a *LimitError when the user already owns limit rows.
func checkLimit(ctx context.Context, count func(context.Context, uint64) (int64, error), userID uint64, resource string, limit int) error {
	n, err := count(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", resource, err)
	}
	if n >= int64(limit) {
		return &LimitError{Resource: resource, Limit: limit}
	}
	return nil
}
