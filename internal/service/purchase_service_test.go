package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

func newPurchaseFixture(t *testing.T) (*PurchaseService, *models.Student, *models.Product) {
	t.Helper()
	store := ledger.NewStore()

	user := &models.User{Email: "student@mail.com", Password: "student123", Role: models.RoleStudent, Name: "Sam Student"}
	require.NoError(t, store.CreateUser(context.Background(), user))

	student := &models.Student{
		UserID:       user.ID,
		StudentID:    "TIT-2024-001",
		GoldMedals:   3,
		SilverMedals: 5,
		BronzeMedals: 8,
	}
	require.NoError(t, store.CreateStudent(context.Background(), student))

	product := &models.Product{Name: "Sticker Pack", GoldPrice: 1, SilverPrice: 2, InStock: true}
	require.NoError(t, store.CreateProduct(context.Background(), product))

	svc := NewPurchaseService(store, store, nil, nil, nil)
	return svc, student, product
}

func TestPurchaseServiceCreateDefaultsSpendFromPrices(t *testing.T) {
	svc, student, product := newPurchaseFixture(t)

	purchase, err := svc.Create(context.Background(), CreatePurchaseRequest{
		StudentID: student.ID,
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, purchase.GoldSpent)
	assert.Equal(t, 2, purchase.SilverSpent)
	assert.Equal(t, 0, purchase.BronzeSpent)
	assert.Equal(t, models.PurchaseCompleted, purchase.Status)
}

func TestPurchaseServiceCreateExplicitSpend(t *testing.T) {
	svc, student, product := newPurchaseFixture(t)

	gold := 2
	purchase, err := svc.Create(context.Background(), CreatePurchaseRequest{
		StudentID: student.ID,
		ProductID: product.ID,
		GoldSpent: &gold,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, purchase.GoldSpent)
	assert.Equal(t, 0, purchase.SilverSpent)
}

func TestPurchaseServiceCreateInsufficientMedals(t *testing.T) {
	svc, student, product := newPurchaseFixture(t)

	gold := 99
	_, err := svc.Create(context.Background(), CreatePurchaseRequest{
		StudentID: student.ID,
		ProductID: product.ID,
		GoldSpent: &gold,
	})
	require.ErrorIs(t, err, appErrors.ErrInsufficientMedals)
}

func TestPurchaseServiceCreateUnknownProduct(t *testing.T) {
	svc, student, _ := newPurchaseFixture(t)

	_, err := svc.Create(context.Background(), CreatePurchaseRequest{
		StudentID: student.ID,
		ProductID: "missing",
	})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPurchaseServiceCreateUnknownStudent(t *testing.T) {
	svc, _, product := newPurchaseFixture(t)

	_, err := svc.Create(context.Background(), CreatePurchaseRequest{
		StudentID: "missing",
		ProductID: product.ID,
	})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPurchaseServiceListByStudent(t *testing.T) {
	svc, student, product := newPurchaseFixture(t)

	_, err := svc.Create(context.Background(), CreatePurchaseRequest{StudentID: student.ID, ProductID: product.ID})
	require.NoError(t, err)

	purchases, err := svc.List(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, product.ID, purchases[0].ProductID)

	none, err := svc.List(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)
}
