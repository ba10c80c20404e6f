package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/tit-academy/crm-api/internal/dto"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type statsRepository interface {
	DashboardCounts(ctx context.Context) (dto.DashboardCounts, error)
}

type dashboardCache interface {
	GetDashboard(ctx context.Context, dest interface{}) error
	SetDashboard(ctx context.Context, value interface{}) error
}

// DashboardService aggregates the admin dashboard summary.
type DashboardService struct {
	repo   statsRepository
	cache  dashboardCache
	logger *zap.Logger
}

// NewDashboardService constructs the service. A nil cache disables caching.
func NewDashboardService(repo statsRepository, cache dashboardCache, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, logger: logger}
}

// Stats returns the dashboard aggregate, serving from cache when possible.
// The second return reports whether the payload came from the cache.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached dto.DashboardStats
		if err := s.cache.GetDashboard(ctx, &cached); err == nil {
			return &cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	counts, err := s.repo.DashboardCounts(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate dashboard stats")
	}

	stats := &dto.DashboardStats{
		TotalGroups:    counts.Groups,
		TotalStudents:  counts.Students,
		MedalsAwarded:  counts.Medals,
		AttendanceRate: formatAttendanceRate(counts.PresentSessions, counts.Attendance),
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return stats, false, nil
}

// formatAttendanceRate renders present/total as a rounded integer percentage
// string. Zero recorded sessions yields "0%".
func formatAttendanceRate(present, total int) string {
	if total == 0 {
		return "0%"
	}
	rate := math.Round(float64(present) / float64(total) * 100)
	return fmt.Sprintf("%d%%", int(rate))
}
