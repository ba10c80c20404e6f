package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/dto"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

type fakeStatsRepo struct {
	counts dto.DashboardCounts
	err    error
	calls  int
}

func (f *fakeStatsRepo) DashboardCounts(context.Context) (dto.DashboardCounts, error) {
	f.calls++
	return f.counts, f.err
}

type fakeDashboardCache struct {
	stats *dto.DashboardStats
	sets  int
}

func (f *fakeDashboardCache) GetDashboard(_ context.Context, dest interface{}) error {
	if f.stats == nil {
		return appErrors.ErrCacheMiss
	}
	*dest.(*dto.DashboardStats) = *f.stats
	return nil
}

func (f *fakeDashboardCache) SetDashboard(_ context.Context, value interface{}) error {
	stats := *value.(*dto.DashboardStats)
	f.stats = &stats
	f.sets++
	return nil
}

func TestDashboardServiceStatsComputesRate(t *testing.T) {
	repo := &fakeStatsRepo{counts: dto.DashboardCounts{
		Groups:          2,
		Students:        5,
		Medals:          7,
		Attendance:      4,
		PresentSessions: 3,
	}}
	svc := NewDashboardService(repo, nil, nil)

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, stats.TotalGroups)
	assert.Equal(t, 5, stats.TotalStudents)
	assert.Equal(t, 7, stats.MedalsAwarded)
	assert.Equal(t, "75%", stats.AttendanceRate)
}

func TestDashboardServiceStatsEmptyAttendance(t *testing.T) {
	repo := &fakeStatsRepo{counts: dto.DashboardCounts{Groups: 1}}
	svc := NewDashboardService(repo, nil, nil)

	stats, _, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0%", stats.AttendanceRate)
}

func TestDashboardServiceStatsServesFromCache(t *testing.T) {
	repo := &fakeStatsRepo{counts: dto.DashboardCounts{Attendance: 2, PresentSessions: 1}}
	cache := &fakeDashboardCache{}
	svc := NewDashboardService(repo, cache, nil)

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "50%", stats.AttendanceRate)
	assert.Equal(t, 1, cache.sets)

	again, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, stats.AttendanceRate, again.AttendanceRate)
	assert.Equal(t, 1, repo.calls)
}

func TestFormatAttendanceRateRounds(t *testing.T) {
	assert.Equal(t, "67%", formatAttendanceRate(2, 3))
	assert.Equal(t, "33%", formatAttendanceRate(1, 3))
	assert.Equal(t, "100%", formatAttendanceRate(4, 4))
	assert.Equal(t, "0%", formatAttendanceRate(0, 0))
}
