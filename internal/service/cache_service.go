package service

import (
	"context"
	"time"
)

// DashboardStatsKey is the cache key for the dashboard aggregate.
const DashboardStatsKey = "dashboard:stats"

type cacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// dashboardInvalidator is what mutating services need from the cache layer.
type dashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

// CacheService wraps the cache repository with application-level keys.
type CacheService struct {
	repo cacheRepository
	ttl  time.Duration
}

// NewCacheService constructs a CacheService. A nil repo disables caching.
func NewCacheService(repo cacheRepository, ttl time.Duration) *CacheService {
	return &CacheService{repo: repo, ttl: ttl}
}

// GetDashboard loads the cached dashboard aggregate into dest.
func (s *CacheService) GetDashboard(ctx context.Context, dest interface{}) error {
	return s.repo.Get(ctx, DashboardStatsKey, dest)
}

// SetDashboard stores the dashboard aggregate with the configured TTL.
func (s *CacheService) SetDashboard(ctx context.Context, value interface{}) error {
	return s.repo.Set(ctx, DashboardStatsKey, value, s.ttl)
}

// InvalidateDashboard drops the cached dashboard aggregate.
func (s *CacheService) InvalidateDashboard(ctx context.Context) error {
	return s.repo.Delete(ctx, DashboardStatsKey)
}
