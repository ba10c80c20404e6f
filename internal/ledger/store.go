// Package ledger holds the in-memory storage backend. A single Store owns
// every entity map and enforces the medal-balance invariants; all access goes
// through one RWMutex because gin runs handlers on parallel goroutines.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tit-academy/crm-api/internal/dto"
	"github.com/tit-academy/crm-api/internal/models"
)

// Store is the process-memory ledger. The zero value is not usable; construct
// with NewStore.
type Store struct {
	mu sync.RWMutex

	users      map[string]models.User
	groups     map[string]models.Group
	students   map[string]models.Student
	attendance map[string]models.Attendance
	medals     map[string]models.Medal
	products   map[string]models.Product
	purchases  map[string]models.Purchase
}

// NewStore returns an empty ledger store.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]models.User),
		groups:     make(map[string]models.Group),
		students:   make(map[string]models.Student),
		attendance: make(map[string]models.Attendance),
		medals:     make(map[string]models.Medal),
		products:   make(map[string]models.Product),
		purchases:  make(map[string]models.Purchase),
	}
}

// DashboardCounts tallies the collections feeding the dashboard summary.
func (s *Store) DashboardCounts(ctx context.Context) (dto.DashboardCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := dto.DashboardCounts{
		Groups:     len(s.groups),
		Students:   len(s.students),
		Medals:     len(s.medals),
		Attendance: len(s.attendance),
	}
	for _, record := range s.attendance {
		if record.Status == models.AttendancePresent {
			counts.PresentSessions++
		}
	}
	return counts, nil
}

func newID() string {
	return uuid.NewString()
}

func stamp(created time.Time) time.Time {
	if created.IsZero() {
		return time.Now().UTC()
	}
	return created
}
