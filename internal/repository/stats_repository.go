package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tit-academy/crm-api/internal/dto"
)

// StatsRepository aggregates dashboard counters from Postgres.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardCounts runs the dashboard aggregation as one round trip.
func (r *StatsRepository) DashboardCounts(ctx context.Context) (dto.DashboardCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM groups) AS groups,
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM medals) AS medals,
        (SELECT COUNT(*) FROM attendance) AS attendance,
        (SELECT COUNT(*) FROM attendance WHERE status = 'present') AS present_sessions`
	var counts dto.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return dto.DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return counts, nil
}
