package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type studentRepository interface {
	GetStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id string) error
}

// StudentService handles student roster workflows.
type StudentService struct {
	repo      studentRepository
	users     authUserRepository
	groups    groupRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(repo studentRepository, users authUserRepository, groups groupRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, users: users, groups: groups, cache: cache, validator: validate, logger: logger}
}

// CreateStudentRequest describes the create payload.
type CreateStudentRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	StudentID string  `json:"studentId" validate:"required"`
	GroupID   *string `json:"groupId"`
}

// UpdateStudentRequest describes the partial update payload. Nil fields keep
// their current values; balances change only through medals and purchases.
type UpdateStudentRequest struct {
	StudentID *string `json:"studentId" validate:"omitempty,min=1"`
	GroupID   *string `json:"groupId"`
}

// List returns every student with user and group inlined.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.GetStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	details := make([]models.StudentDetail, 0, len(students))
	for i := range students {
		details = append(details, s.detail(ctx, &students[i]))
	}
	return details, nil
}

// Get returns one student with user and group inlined.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	detail := s.detail(ctx, student)
	return &detail, nil
}

// GetByUserID resolves the student owned by a user account.
func (s *StudentService) GetByUserID(ctx context.Context, userID string) (*models.StudentDetail, error) {
	student, err := s.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	detail := s.detail(ctx, student)
	return &detail, nil
}

// Create registers a new student with zero balances.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student := &models.Student{
		UserID:    req.UserID,
		StudentID: req.StudentID,
		GroupID:   req.GroupID,
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, appErrors.ErrConflict) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student code already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("code", student.StudentID))
	return student, nil
}

// Update applies a partial update to a student.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if req.StudentID != nil {
		student.StudentID = *req.StudentID
	}
	if req.GroupID != nil {
		student.GroupID = req.GroupID
	}

	if err := s.repo.UpdateStudent(ctx, student); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student. Awarded medals and purchases keep their rows.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidateDashboard(ctx)
	return nil
}

// detail resolves the user and group links, tolerating dangling references.
func (s *StudentService) detail(ctx context.Context, student *models.Student) models.StudentDetail {
	detail := models.StudentDetail{Student: *student}

	if user, err := s.users.GetUser(ctx, student.UserID); err == nil {
		info := user.Info()
		detail.User = &info
	}
	if student.GroupID != nil {
		if group, err := s.groups.GetGroup(ctx, *student.GroupID); err == nil {
			detail.Group = group
		}
	}
	return detail
}

func (s *StudentService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
