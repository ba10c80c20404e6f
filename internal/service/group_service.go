package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type groupRepository interface {
	GetGroups(ctx context.Context) ([]models.Group, error)
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	CreateGroup(ctx context.Context, group *models.Group) error
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error
}

// GroupService handles group workflows.
type GroupService struct {
	repo      groupRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs the service.
func NewGroupService(repo groupRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateGroupRequest describes the create payload.
type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateGroupRequest describes the partial update payload. Nil fields keep
// their current values.
type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// List returns every group.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := s.repo.GetGroups(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Get returns a group by id.
func (s *GroupService) Get(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.repo.GetGroup(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	return group, nil
}

// Create registers a new group.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Capacity:    models.DefaultGroupCapacity,
		Status:      models.GroupActive,
	}
	if req.Capacity != nil {
		group.Capacity = *req.Capacity
	}
	if req.Status != "" {
		group.Status = models.GroupStatus(req.Status)
	}

	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("group created", zap.String("group_id", group.ID), zap.String("name", group.Name))
	return group, nil
}

// Update applies a partial update to a group.
func (s *GroupService) Update(ctx context.Context, id string, req UpdateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}

	group, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = req.Description
	}
	if req.Schedule != nil {
		group.Schedule = req.Schedule
	}
	if req.Capacity != nil {
		group.Capacity = *req.Capacity
	}
	if req.Status != nil {
		group.Status = models.GroupStatus(*req.Status)
	}

	if err := s.repo.UpdateGroup(ctx, group); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update group")
	}
	return group, nil
}

// Delete removes a group. Students keep their records; a dangling group
// reference resolves to absent on read.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteGroup(ctx, id); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *GroupService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
