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

const studentColumns = `id, user_id, student_id, group_id, gold_medals, silver_medals, bronze_medals, created_at`

// StudentRepository provides Postgres persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetStudents lists every student.
func (r *StudentRepository) GetStudents(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY created_at`, studentColumns)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// GetStudent fetches a student by id.
func (r *StudentRepository) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1 LIMIT 1`, studentColumns)
	return r.getOne(ctx, query, id, "get student")
}

// GetStudentByUserID resolves the student owned by a user account.
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1 LIMIT 1`, studentColumns)
	return r.getOne(ctx, query, userID, "get student by user")
}

// GetStudentByStudentID resolves a student by the human-readable code.
func (r *StudentRepository) GetStudentByStudentID(ctx context.Context, code string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = $1 LIMIT 1`, studentColumns)
	return r.getOne(ctx, query, code, "get student by code")
}

func (r *StudentRepository) getOne(ctx context.Context, query, arg, op string) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &student, nil
}

// CreateStudent inserts a new student record.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO students (id, user_id, student_id, group_id, gold_medals, silver_medals, bronze_medals, created_at)
        VALUES (:id, :user_id, :student_id, :group_id, :gold_medals, :silver_medals, :bronze_medals, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateStudent replaces a student record. Balance columns are written as
// given; only the medal/purchase pathways clamp.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET user_id = :user_id, student_id = :student_id, group_id = :group_id,
        gold_medals = :gold_medals, silver_medals = :silver_medals, bronze_medals = :bronze_medals WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRow(result, "update student")
}

// DeleteStudent removes a student record.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireRow(result, "delete student")
}
