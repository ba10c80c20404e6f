package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type storage interface {
	CreateUser(ctx context.Context, user *models.User) error
	CreateGroup(ctx context.Context, group *models.Group) error
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByStudentID(ctx context.Context, code string) (*models.Student, error)
	CreateProduct(ctx context.Context, product *models.Product) error
}

const demoStudentCode = "TIT-2024-001"

func strPtr(s string) *string { return &s }

// Run provisions the demo dataset: one admin and one student account, the
// "React Fundamentals" group, the TIT-2024-001 student record with preloaded
// balances and a small product catalog. A second run against a durable backend
// is a no-op keyed on the demo student code.
func Run(ctx context.Context, store storage, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if existing, err := store.GetStudentByStudentID(ctx, demoStudentCode); err == nil && existing != nil {
		logger.Info("demo data already present, skipping seed",
			zap.String("student", existing.StudentID))
		return nil
	} else if err != nil && !errors.Is(err, appErrors.ErrNotFound) {
		return fmt.Errorf("check existing seed: %w", err)
	}

	admin := &models.User{
		Email:    "admin@mail.com",
		Password: "admin123",
		Role:     models.RoleAdmin,
		Name:     "Admin User",
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	studentUser := &models.User{
		Email:    "student@mail.com",
		Password: "student123",
		Role:     models.RoleStudent,
		Name:     "Student User",
	}
	if err := store.CreateUser(ctx, studentUser); err != nil {
		return fmt.Errorf("seed student user: %w", err)
	}

	group := &models.Group{
		Name:        "React Fundamentals",
		Description: strPtr("Frontend Development"),
		Schedule:    strPtr("Mon, Wed, Fri - 10:00 AM"),
		Capacity:    30,
		Status:      models.GroupActive,
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		return fmt.Errorf("seed group: %w", err)
	}

	student := &models.Student{
		UserID:       studentUser.ID,
		StudentID:    demoStudentCode,
		GroupID:      &group.ID,
		GoldMedals:   3,
		SilverMedals: 5,
		BronzeMedals: 8,
	}
	if err := store.CreateStudent(ctx, student); err != nil {
		return fmt.Errorf("seed student: %w", err)
	}

	products := []*models.Product{
		{
			Name:        "MacBook Pro",
			Description: strPtr("High-performance laptop for development"),
			Image:       strPtr("https://images.unsplash.com/photo-1496181133206-80ce9b88a853?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250"),
			GoldPrice:   50,
			InStock:     true,
		},
		{
			Name:        "Wireless Mouse & Keyboard",
			Description: strPtr("Premium wireless peripherals set"),
			Image:       strPtr("https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250"),
			SilverPrice: 15,
			InStock:     true,
		},
		{
			Name:        "Programming Books Set",
			Description: strPtr("Essential programming literature collection"),
			Image:       strPtr("https://images.unsplash.com/photo-1481627834876-b7833e8f5570?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250"),
			BronzePrice: 8,
			InStock:     true,
		},
	}
	for _, product := range products {
		if err := store.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("seed product %s: %w", product.Name, err)
		}
	}

	logger.Info("demo data seeded",
		zap.String("group", group.Name),
		zap.String("student", student.StudentID),
		zap.Int("products", len(products)))
	return nil
}
