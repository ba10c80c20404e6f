package ledger

import (
	"context"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// GetMedals lists medal records, optionally scoped to one student.
func (s *Store) GetMedals(ctx context.Context, studentID string) ([]models.Medal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	medals := make([]models.Medal, 0, len(s.medals))
	for _, medal := range s.medals {
		if studentID != "" && medal.StudentID != studentID {
			continue
		}
		medals = append(medals, medal)
	}
	return medals, nil
}

// CreateMedal appends an award record and increments the student's matching
// balance in the same critical section. The student must exist; awarding into
// the void is an error rather than a silent skip.
func (s *Store) CreateMedal(ctx context.Context, medal *models.Medal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[medal.StudentID]
	if !ok {
		return appErrors.ErrNotFound
	}

	if medal.ID == "" {
		medal.ID = newID()
	}
	medal.CreatedAt = stamp(medal.CreatedAt)
	s.medals[medal.ID] = *medal

	switch medal.Type {
	case models.MedalGold:
		student.GoldMedals++
	case models.MedalSilver:
		student.SilverMedals++
	case models.MedalBronze:
		student.BronzeMedals++
	}
	s.students[student.ID] = student
	return nil
}

// DeleteMedal revokes an award and decrements the matching balance, clamped
// at zero. The medal is removed even when the student has since been deleted;
// only the balance update is skipped.
func (s *Store) DeleteMedal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	medal, ok := s.medals[id]
	if !ok {
		return appErrors.ErrNotFound
	}

	if student, ok := s.students[medal.StudentID]; ok {
		switch medal.Type {
		case models.MedalGold:
			student.GoldMedals = clamp(student.GoldMedals - 1)
		case models.MedalSilver:
			student.SilverMedals = clamp(student.SilverMedals - 1)
		case models.MedalBronze:
			student.BronzeMedals = clamp(student.BronzeMedals - 1)
		}
		s.students[student.ID] = student
	}

	delete(s.medals, id)
	return nil
}

// GetPurchases lists purchase records, optionally scoped to one student.
func (s *Store) GetPurchases(ctx context.Context, studentID string) ([]models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]models.Purchase, 0, len(s.purchases))
	for _, purchase := range s.purchases {
		if studentID != "" && purchase.StudentID != studentID {
			continue
		}
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

// CreatePurchase verifies the student can afford the spend in every tier,
// records the purchase and deducts the balances, all under the write lock.
// Insufficient funds reject the purchase with no mutation.
func (s *Store) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[purchase.StudentID]
	if !ok {
		return appErrors.ErrNotFound
	}

	if student.GoldMedals < purchase.GoldSpent ||
		student.SilverMedals < purchase.SilverSpent ||
		student.BronzeMedals < purchase.BronzeSpent {
		return appErrors.ErrInsufficientMedals
	}

	if purchase.ID == "" {
		purchase.ID = newID()
	}
	if purchase.Status == "" {
		purchase.Status = models.PurchaseCompleted
	}
	purchase.CreatedAt = stamp(purchase.CreatedAt)
	s.purchases[purchase.ID] = *purchase

	student.GoldMedals = clamp(student.GoldMedals - purchase.GoldSpent)
	student.SilverMedals = clamp(student.SilverMedals - purchase.SilverSpent)
	student.BronzeMedals = clamp(student.BronzeMedals - purchase.BronzeSpent)
	s.students[student.ID] = student
	return nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
