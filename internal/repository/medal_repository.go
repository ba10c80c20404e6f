package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// MedalRepository provides Postgres persistence for medals. Awards and
// revocations update the owning student's balance in the same transaction.
type MedalRepository struct {
	db *sqlx.DB
}

// NewMedalRepository constructs a MedalRepository.
func NewMedalRepository(db *sqlx.DB) *MedalRepository {
	return &MedalRepository{db: db}
}

func balanceColumn(t models.MedalType) string {
	switch t {
	case models.MedalGold:
		return "gold_medals"
	case models.MedalSilver:
		return "silver_medals"
	default:
		return "bronze_medals"
	}
}

// GetMedals lists medals, newest first. An empty studentID lists all medals.
func (r *MedalRepository) GetMedals(ctx context.Context, studentID string) ([]models.Medal, error) {
	query := `SELECT id, student_id, type, reason, date, awarded_by, created_at FROM medals`
	args := []interface{}{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY created_at DESC`

	medals := []models.Medal{}
	if err := r.db.SelectContext(ctx, &medals, query, args...); err != nil {
		return nil, fmt.Errorf("list medals: %w", err)
	}
	return medals, nil
}

// CreateMedal awards a medal: the medal row and the balance increment commit
// together. A missing student aborts the award with ErrNotFound.
func (r *MedalRepository) CreateMedal(ctx context.Context, medal *models.Medal) error {
	if medal.ID == "" {
		medal.ID = uuid.NewString()
	}
	if medal.CreatedAt.IsZero() {
		medal.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create medal: begin: %w", err)
	}
	defer tx.Rollback()

	increment := fmt.Sprintf(`UPDATE students SET %s = %s + 1 WHERE id = $1`, balanceColumn(medal.Type), balanceColumn(medal.Type))
	result, err := tx.ExecContext(ctx, increment, medal.StudentID)
	if err != nil {
		return fmt.Errorf("create medal: increment balance: %w", err)
	}
	if err := requireRow(result, "create medal"); err != nil {
		return err
	}

	const insert = `INSERT INTO medals (id, student_id, type, reason, date, awarded_by, created_at)
        VALUES (:id, :student_id, :type, :reason, :date, :awarded_by, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, medal); err != nil {
		return fmt.Errorf("create medal: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create medal: commit: %w", err)
	}
	return nil
}

// DeleteMedal revokes a medal. The owning student's balance is decremented
// but never below zero; if the student no longer exists the medal is still
// removed.
func (r *MedalRepository) DeleteMedal(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete medal: begin: %w", err)
	}
	defer tx.Rollback()

	var medal models.Medal
	if err := tx.GetContext(ctx, &medal, `SELECT id, student_id, type, reason, date, awarded_by, created_at FROM medals WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete medal: lookup: %w", err)
	}

	col := balanceColumn(medal.Type)
	decrement := fmt.Sprintf(`UPDATE students SET %s = GREATEST(%s - 1, 0) WHERE id = $1`, col, col)
	if _, err := tx.ExecContext(ctx, decrement, medal.StudentID); err != nil {
		return fmt.Errorf("delete medal: decrement balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM medals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete medal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete medal: commit: %w", err)
	}
	return nil
}
