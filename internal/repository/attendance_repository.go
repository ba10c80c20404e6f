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

// AttendanceRepository provides Postgres persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetAttendance lists attendance records matching the filter. Zero-value
// filter fields are ignored.
func (r *AttendanceRepository) GetAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	query := `SELECT id, student_id, group_id, date, status, notes, created_at FROM attendance WHERE 1=1`
	args := []interface{}{}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND student_id = $%d", len(args))
	}
	if filter.GroupID != "" {
		args = append(args, filter.GroupID)
		query += fmt.Sprintf(" AND group_id = $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	records := []models.Attendance{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// GetAttendanceRecord fetches a single attendance record by id.
func (r *AttendanceRepository) GetAttendanceRecord(ctx context.Context, id string) (*models.Attendance, error) {
	const query = `SELECT id, student_id, group_id, date, status, notes, created_at FROM attendance WHERE id = $1 LIMIT 1`
	var record models.Attendance
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &record, nil
}

// CreateAttendance inserts a new attendance record.
func (r *AttendanceRepository) CreateAttendance(ctx context.Context, record *models.Attendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (id, student_id, group_id, date, status, notes, created_at)
        VALUES (:id, :student_id, :group_id, :date, :status, :notes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// UpdateAttendance replaces an attendance record.
func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, record *models.Attendance) error {
	const query = `UPDATE attendance SET student_id = :student_id, group_id = :group_id, date = :date, status = :status, notes = :notes WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return requireRow(result, "update attendance")
}
