package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type attendanceRepository interface {
	GetAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error)
	GetAttendanceRecord(ctx context.Context, id string) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, record *models.Attendance) error
	UpdateAttendance(ctx context.Context, record *models.Attendance) error
}

// AttendanceService handles session attendance workflows.
type AttendanceService struct {
	repo      attendanceRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateAttendanceRequest describes the create payload.
type CreateAttendanceRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	GroupID   string  `json:"groupId" validate:"required"`
	Date      string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"required,oneof=present absent late"`
	Notes     *string `json:"notes"`
}

// UpdateAttendanceRequest describes the partial update payload.
type UpdateAttendanceRequest struct {
	Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status *string `json:"status" validate:"omitempty,oneof=present absent late"`
	Notes  *string `json:"notes"`
}

// List returns attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	records, err := s.repo.GetAttendance(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Create records an attendance mark. An omitted date defaults to today.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid attendance date")
		}
		date = parsed
	}

	record := &models.Attendance{
		StudentID: req.StudentID,
		GroupID:   req.GroupID,
		Date:      date,
		Status:    models.AttendanceStatus(req.Status),
		Notes:     req.Notes,
	}
	if err := s.repo.CreateAttendance(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance")
	}

	s.invalidateDashboard(ctx)
	return record, nil
}

// Update applies a partial update to an attendance record.
func (s *AttendanceService) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	record, err := s.repo.GetAttendanceRecord(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid attendance date")
		}
		record.Date = parsed
	}
	if req.Status != nil {
		record.Status = models.AttendanceStatus(*req.Status)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.repo.UpdateAttendance(ctx, record); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance")
	}

	s.invalidateDashboard(ctx)
	return record, nil
}

func (s *AttendanceService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
