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

type medalRepository interface {
	GetMedals(ctx context.Context, studentID string) ([]models.Medal, error)
	CreateMedal(ctx context.Context, medal *models.Medal) error
	DeleteMedal(ctx context.Context, id string) error
}

// MedalService handles award and revocation workflows. Balance bookkeeping
// lives in the storage backend; the service never pre-checks balances.
type MedalService struct {
	repo      medalRepository
	students  studentRepository
	users     authUserRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMedalService constructs the service.
func NewMedalService(repo medalRepository, students studentRepository, users authUserRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *MedalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MedalService{repo: repo, students: students, users: users, cache: cache, validator: validate, logger: logger}
}

// CreateMedalRequest describes the award payload.
type CreateMedalRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=gold silver bronze"`
	Reason    string `json:"reason" validate:"required"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AwardedBy string `json:"awardedBy"`
}

// List returns medals with the student, the student's account and the
// awarding admin inlined. An empty studentID lists all medals.
func (s *MedalService) List(ctx context.Context, studentID string) ([]models.MedalDetail, error) {
	medals, err := s.repo.GetMedals(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list medals")
	}

	details := make([]models.MedalDetail, 0, len(medals))
	for i := range medals {
		details = append(details, s.detail(ctx, &medals[i]))
	}
	return details, nil
}

// Award records a medal and credits the student's balance.
func (s *MedalService) Award(ctx context.Context, req CreateMedalRequest) (*models.Medal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid medal payload")
	}

	medal := &models.Medal{
		StudentID: req.StudentID,
		Type:      models.MedalType(req.Type),
		Reason:    req.Reason,
		Date:      req.Date,
		AwardedBy: req.AwardedBy,
	}
	if medal.Date == "" {
		medal.Date = time.Now().UTC().Format("2006-01-02")
	}

	if err := s.repo.CreateMedal(ctx, medal); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to award medal")
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("medal awarded",
		zap.String("medal_id", medal.ID),
		zap.String("student_id", medal.StudentID),
		zap.String("type", string(medal.Type)))
	return medal, nil
}

// Revoke deletes a medal and debits the student's balance, clamped at zero.
func (s *MedalService) Revoke(ctx context.Context, id string) error {
	if err := s.repo.DeleteMedal(ctx, id); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "medal not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke medal")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *MedalService) detail(ctx context.Context, medal *models.Medal) models.MedalDetail {
	detail := models.MedalDetail{Medal: *medal}

	if student, err := s.students.GetStudent(ctx, medal.StudentID); err == nil {
		detail.Student = student
		if user, err := s.users.GetUser(ctx, student.UserID); err == nil {
			info := user.Info()
			detail.User = &info
		}
	}
	if medal.AwardedBy != "" {
		if awarder, err := s.users.GetUser(ctx, medal.AwardedBy); err == nil {
			info := awarder.Info()
			detail.Awarder = &info
		}
	}
	return detail
}

func (s *MedalService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
