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

// GroupRepository provides Postgres persistence for groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetGroups lists every group.
func (r *GroupRepository) GetGroups(ctx context.Context) ([]models.Group, error) {
	const query = `SELECT id, name, description, schedule, capacity, status, created_at FROM groups ORDER BY created_at`
	groups := []models.Group{}
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup fetches a group by id.
func (r *GroupRepository) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	const query = `SELECT id, name, description, schedule, capacity, status, created_at FROM groups WHERE id = $1 LIMIT 1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &group, nil
}

// CreateGroup inserts a new group record.
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO groups (id, name, description, schedule, capacity, status, created_at)
        VALUES (:id, :name, :description, :schedule, :capacity, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// UpdateGroup replaces a group record.
func (r *GroupRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	const query = `UPDATE groups SET name = :name, description = :description, schedule = :schedule,
        capacity = :capacity, status = :status WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, group)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return requireRow(result, "update group")
}

// DeleteGroup removes a group.
func (r *GroupRepository) DeleteGroup(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return requireRow(result, "delete group")
}

// requireRow maps a zero-row mutation to not-found.
func requireRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
