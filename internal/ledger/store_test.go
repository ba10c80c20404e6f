package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

func seedStudent(t *testing.T, store *Store, gold, silver, bronze int) *models.Student {
	t.Helper()
	user := &models.User{Email: "pupil@mail.com", Password: "pw", Role: models.RoleStudent, Name: "Pupil"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	student := &models.Student{
		UserID:       user.ID,
		StudentID:    "TIT-2024-042",
		GoldMedals:   gold,
		SilverMedals: silver,
		BronzeMedals: bronze,
	}
	require.NoError(t, store.CreateStudent(context.Background(), student))
	return student
}

func TestMedalAwardIncrementsBalance(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 0, 0)

	for i := 0; i < 3; i++ {
		medal := &models.Medal{StudentID: student.ID, Type: models.MedalGold, Reason: "Top score", AwardedBy: "admin"}
		require.NoError(t, store.CreateMedal(context.Background(), medal))
	}

	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.GoldMedals)
	assert.Equal(t, 0, got.SilverMedals)

	medals, err := store.GetMedals(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Len(t, medals, 3)
}

func TestMedalRevokeDecrementsBalance(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 0, 0)

	medal := &models.Medal{StudentID: student.ID, Type: models.MedalGold, Reason: "Top score", AwardedBy: "admin"}
	require.NoError(t, store.CreateMedal(context.Background(), medal))
	require.NoError(t, store.DeleteMedal(context.Background(), medal.ID))

	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GoldMedals)
}

func TestMedalRevokeClampsAtZero(t *testing.T) {
	store := NewStore()
	// A purchase already spent the silver this medal minted.
	student := seedStudent(t, store, 0, 0, 0)
	medal := &models.Medal{StudentID: student.ID, Type: models.MedalSilver, Reason: "Homework", AwardedBy: "admin"}
	require.NoError(t, store.CreateMedal(context.Background(), medal))

	updated, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	updated.SilverMedals = 0
	require.NoError(t, store.UpdateStudent(context.Background(), updated))

	require.NoError(t, store.DeleteMedal(context.Background(), medal.ID))

	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SilverMedals)
}

func TestMedalAwardUnknownStudent(t *testing.T) {
	store := NewStore()

	medal := &models.Medal{StudentID: "missing", Type: models.MedalGold, Reason: "Top score", AwardedBy: "admin"}
	err := store.CreateMedal(context.Background(), medal)
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	medals, listErr := store.GetMedals(context.Background(), "")
	require.NoError(t, listErr)
	assert.Empty(t, medals)
}

func TestMedalRevokeAfterStudentDeleted(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 0, 0)
	medal := &models.Medal{StudentID: student.ID, Type: models.MedalBronze, Reason: "Attendance", AwardedBy: "admin"}
	require.NoError(t, store.CreateMedal(context.Background(), medal))
	require.NoError(t, store.DeleteStudent(context.Background(), student.ID))

	// Medal record still goes away; only the balance update is skipped.
	require.NoError(t, store.DeleteMedal(context.Background(), medal.ID))
	medals, err := store.GetMedals(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, medals)
}

func TestPurchaseDeductsComponentWise(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 3, 5, 8)

	purchase := &models.Purchase{StudentID: student.ID, ProductID: "p1", GoldSpent: 1, SilverSpent: 2, BronzeSpent: 3}
	require.NoError(t, store.CreatePurchase(context.Background(), purchase))
	assert.Equal(t, models.PurchaseCompleted, purchase.Status)

	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.GoldMedals)
	assert.Equal(t, 3, got.SilverMedals)
	assert.Equal(t, 5, got.BronzeMedals)
}

func TestPurchaseInsufficientRejectedWithoutMutation(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 5, 5)

	purchase := &models.Purchase{StudentID: student.ID, ProductID: "p1", GoldSpent: 1}
	err := store.CreatePurchase(context.Background(), purchase)
	require.ErrorIs(t, err, appErrors.ErrInsufficientMedals)

	got, getErr := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, got.GoldMedals)
	assert.Equal(t, 5, got.SilverMedals)

	purchases, listErr := store.GetPurchases(context.Background(), "")
	require.NoError(t, listErr)
	assert.Empty(t, purchases)
}

func TestPurchaseUnknownStudent(t *testing.T) {
	store := NewStore()

	err := store.CreatePurchase(context.Background(), &models.Purchase{StudentID: "missing", ProductID: "p1"})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAwardRevokePurchaseScenario(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 0, 0)

	medal := &models.Medal{StudentID: student.ID, Type: models.MedalGold, Reason: "Top score", AwardedBy: "admin"}
	require.NoError(t, store.CreateMedal(context.Background(), medal))
	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.GoldMedals)

	require.NoError(t, store.DeleteMedal(context.Background(), medal.ID))
	got, err = store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GoldMedals)

	err = store.CreatePurchase(context.Background(), &models.Purchase{StudentID: student.ID, ProductID: "p1", GoldSpent: 1})
	require.ErrorIs(t, err, appErrors.ErrInsufficientMedals)
}

func TestDeleteUnknownEntities(t *testing.T) {
	store := NewStore()

	assert.ErrorIs(t, store.DeleteGroup(context.Background(), "missing"), appErrors.ErrNotFound)
	assert.ErrorIs(t, store.DeleteStudent(context.Background(), "missing"), appErrors.ErrNotFound)
	assert.ErrorIs(t, store.DeleteMedal(context.Background(), "missing"), appErrors.ErrNotFound)
	assert.ErrorIs(t, store.DeleteProduct(context.Background(), "missing"), appErrors.ErrNotFound)
}

func TestStudentWithoutGroup(t *testing.T) {
	store := NewStore()
	user := &models.User{Email: "solo@mail.com", Password: "pw", Role: models.RoleStudent, Name: "Solo"}
	require.NoError(t, store.CreateUser(context.Background(), user))

	student := &models.Student{UserID: user.ID, StudentID: "TIT-2024-100"}
	require.NoError(t, store.CreateStudent(context.Background(), student))

	got, err := store.GetStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
}

func TestDuplicateStudentCode(t *testing.T) {
	store := NewStore()
	seedStudent(t, store, 0, 0, 0)

	err := store.CreateStudent(context.Background(), &models.Student{UserID: "u2", StudentID: "TIT-2024-042"})
	require.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestDashboardCounts(t *testing.T) {
	store := NewStore()
	student := seedStudent(t, store, 0, 0, 0)
	group := &models.Group{Name: "React Fundamentals", Capacity: 30, Status: models.GroupActive}
	require.NoError(t, store.CreateGroup(context.Background(), group))

	statuses := []models.AttendanceStatus{
		models.AttendancePresent, models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent,
	}
	for _, status := range statuses {
		record := &models.Attendance{StudentID: student.ID, GroupID: group.ID, Status: status}
		require.NoError(t, store.CreateAttendance(context.Background(), record))
	}

	counts, err := store.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Groups)
	assert.Equal(t, 1, counts.Students)
	assert.Equal(t, 4, counts.Attendance)
	assert.Equal(t, 3, counts.PresentSessions)
}
