package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

func TestPurchaseRepositoryCreatePurchaseDeductsAndInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
		WithArgs(1, 2, 0, "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO purchases")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	purchase := &models.Purchase{
		StudentID:   "stu-1",
		ProductID:   "prod-1",
		GoldSpent:   1,
		SilverSpent: 2,
	}
	require.NoError(t, repo.CreatePurchase(context.Background(), purchase))
	require.Equal(t, models.PurchaseCompleted, purchase.Status)
	require.NotEmpty(t, purchase.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepositoryCreatePurchaseInsufficientBalance(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
		WithArgs(5, 0, 0, "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)")).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.CreatePurchase(context.Background(), &models.Purchase{StudentID: "stu-1", ProductID: "prod-1", GoldSpent: 5})
	require.ErrorIs(t, err, appErrors.ErrInsufficientMedals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepositoryCreatePurchaseUnknownStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
		WithArgs(1, 0, 0, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.CreatePurchase(context.Background(), &models.Purchase{StudentID: "ghost", ProductID: "prod-1", GoldSpent: 1})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepositoryGetPurchasesFiltersByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "product_id", "gold_spent", "silver_spent", "bronze_spent", "status", "created_at"}).
		AddRow("pur-1", "stu-1", "prod-1", 1, 0, 0, models.PurchaseCompleted, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM purchases WHERE student_id = $1")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	purchases, err := repo.GetPurchases(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
