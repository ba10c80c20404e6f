package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// PurchaseRepository provides Postgres persistence for marketplace
// purchases. The balance check and deduction happen in a single guarded
// UPDATE so concurrent purchases can never overdraw a student.
type PurchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository constructs a PurchaseRepository.
func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// GetPurchases lists purchases, newest first. An empty studentID lists all.
func (r *PurchaseRepository) GetPurchases(ctx context.Context, studentID string) ([]models.Purchase, error) {
	query := `SELECT id, student_id, product_id, gold_spent, silver_spent, bronze_spent, status, created_at FROM purchases`
	args := []interface{}{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY created_at DESC`

	purchases := []models.Purchase{}
	if err := r.db.SelectContext(ctx, &purchases, query, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// CreatePurchase records a purchase and deducts the spend from the student's
// balances atomically. A student with any component below its spend is
// rejected with ErrInsufficientMedals and nothing is written.
func (r *PurchaseRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}
	if purchase.Status == "" {
		purchase.Status = models.PurchaseCompleted
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create purchase: begin: %w", err)
	}
	defer tx.Rollback()

	const deduct = `UPDATE students
        SET gold_medals = gold_medals - $1, silver_medals = silver_medals - $2, bronze_medals = bronze_medals - $3
        WHERE id = $4 AND gold_medals >= $1 AND silver_medals >= $2 AND bronze_medals >= $3`
	result, err := tx.ExecContext(ctx, deduct, purchase.GoldSpent, purchase.SilverSpent, purchase.BronzeSpent, purchase.StudentID)
	if err != nil {
		return fmt.Errorf("create purchase: deduct balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create purchase: rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, purchase.StudentID); err != nil {
			return fmt.Errorf("create purchase: student lookup: %w", err)
		}
		if !exists {
			return appErrors.ErrNotFound
		}
		return appErrors.ErrInsufficientMedals
	}

	const insert = `INSERT INTO purchases (id, student_id, product_id, gold_spent, silver_spent, bronze_spent, status, created_at)
        VALUES (:id, :student_id, :product_id, :gold_spent, :silver_spent, :bronze_spent, :status, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, purchase); err != nil {
		return fmt.Errorf("create purchase: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create purchase: commit: %w", err)
	}
	return nil
}
