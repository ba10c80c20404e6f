package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type purchaseRepository interface {
	GetPurchases(ctx context.Context, studentID string) ([]models.Purchase, error)
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
}

// PurchaseService handles marketplace redemptions. The storage backend alone
// decides whether a student can afford a purchase.
type PurchaseService struct {
	repo      purchaseRepository
	products  productRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPurchaseService constructs the service.
func NewPurchaseService(repo purchaseRepository, products productRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *PurchaseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{repo: repo, products: products, cache: cache, validator: validate, logger: logger}
}

// CreatePurchaseRequest describes the redemption payload. When every spent
// amount is omitted the product's current prices apply.
type CreatePurchaseRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	ProductID   string `json:"productId" validate:"required"`
	GoldSpent   *int   `json:"goldSpent" validate:"omitempty,gte=0"`
	SilverSpent *int   `json:"silverSpent" validate:"omitempty,gte=0"`
	BronzeSpent *int   `json:"bronzeSpent" validate:"omitempty,gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=completed processing shipped"`
}

// List returns purchases, newest first. An empty studentID lists all.
func (s *PurchaseService) List(ctx context.Context, studentID string) ([]models.Purchase, error) {
	purchases, err := s.repo.GetPurchases(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list purchases")
	}
	return purchases, nil
}

// Create records a redemption and deducts the spend from the student.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*models.Purchase, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid purchase payload")
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load product")
	}

	purchase := &models.Purchase{
		StudentID:   req.StudentID,
		ProductID:   product.ID,
		GoldSpent:   product.GoldPrice,
		SilverSpent: product.SilverPrice,
		BronzeSpent: product.BronzePrice,
		Status:      models.PurchaseStatus(req.Status),
	}
	if req.GoldSpent != nil || req.SilverSpent != nil || req.BronzeSpent != nil {
		purchase.GoldSpent = intOrZero(req.GoldSpent)
		purchase.SilverSpent = intOrZero(req.SilverSpent)
		purchase.BronzeSpent = intOrZero(req.BronzeSpent)
	}

	if err := s.repo.CreatePurchase(ctx, purchase); err != nil {
		switch {
		case errors.Is(err, appErrors.ErrNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, appErrors.ErrInsufficientMedals):
			return nil, appErrors.Clone(appErrors.ErrInsufficientMedals, "insufficient medals")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create purchase")
	}

	s.invalidateDashboard(ctx)
	s.logger.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID),
		zap.String("student_id", purchase.StudentID),
		zap.String("product_id", purchase.ProductID))
	return purchase, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func (s *PurchaseService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
