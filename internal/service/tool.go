package service

import (
	"context"
	"fmt"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type toolService struct {
	toolRepo        repository.ToolRepository
	defaultPageSize int32
}

func NewToolService(toolRepo repository.ToolRepository, defaultPageSize int32) ToolService {
	return &toolService{
		toolRepo:        toolRepo,
		defaultPageSize: defaultPageSize,
	}
}

func (s *toolService) ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, int32, error) {
	filter.Normalize(s.defaultPageSize)
	if filter.MaxPriceCents > 0 && filter.MaxPriceCents < filter.MinPriceCents {
		return nil, 0, fmt.Errorf("max price %d is below min price %d: %w", filter.MaxPriceCents, filter.MinPriceCents, domain.ErrInvalidInput)
	}
	return s.toolRepo.Search(ctx, filter)
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	return s.toolRepo.GetByID(ctx, id)
}

func (s *toolService) ListCategories(ctx context.Context) ([]string, error) {
	return s.toolRepo.ListCategories(ctx)
}

func (s *toolService) CreateTool(ctx context.Context, tool *domain.Tool) error {
	if err := tool.Validate(); err != nil {
		return err
	}
	if err := s.toolRepo.Create(ctx, tool); err != nil {
		return err
	}
	logger.Info("Tool created", "tool_id", tool.ID, "name", tool.Name)
	return nil
}

func (s *toolService) UpdateTool(ctx context.Context, id int32, patch domain.ToolPatch) (*domain.Tool, error) {
	tool, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tool.Apply(patch)
	if err := tool.Validate(); err != nil {
		return nil, err
	}
	if err := s.toolRepo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

// DeleteTool hides the tool from the catalog. Existing bookings are kept.
func (s *toolService) DeleteTool(ctx context.Context, id int32) error {
	if err := s.toolRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Tool deleted", "tool_id", id)
	return nil
}

func (s *toolService) SetToolAvailability(ctx context.Context, id int32, available bool) (*domain.Tool, error) {
	return s.UpdateTool(ctx, id, domain.ToolPatch{Available: &available})
}
