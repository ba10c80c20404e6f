package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

func newStudentFixture(t *testing.T) (*StudentService, *ledger.Store, *models.User) {
	t.Helper()
	store := ledger.NewStore()
	owner := &models.User{Email: "student@mail.com", Password: "student123", Role: models.RoleStudent, Name: "Sam Student"}
	require.NoError(t, store.CreateUser(context.Background(), owner))
	svc := NewStudentService(store, store, store, nil, nil, nil)
	return svc, store, owner
}

func TestStudentServiceCreateAndResolveByUser(t *testing.T) {
	svc, _, owner := newStudentFixture(t)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		UserID:    owner.ID,
		StudentID: "TIT-2024-001",
	})
	require.NoError(t, err)
	assert.Zero(t, student.GoldMedals)

	detail, err := svc.GetByUserID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, detail.ID)
	require.NotNil(t, detail.User)
	assert.Equal(t, "Sam Student", detail.User.Name)
	assert.Nil(t, detail.Group)
}

func TestStudentServiceCreateDuplicateCode(t *testing.T) {
	svc, _, owner := newStudentFixture(t)

	_, err := svc.Create(context.Background(), CreateStudentRequest{UserID: owner.ID, StudentID: "TIT-2024-001"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateStudentRequest{UserID: owner.ID, StudentID: "TIT-2024-001"})
	require.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestStudentServiceListInlinesGroup(t *testing.T) {
	svc, store, owner := newStudentFixture(t)

	group := &models.Group{Name: "React Fundamentals", Capacity: 30, Status: models.GroupActive}
	require.NoError(t, store.CreateGroup(context.Background(), group))

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		UserID:    owner.ID,
		StudentID: "TIT-2024-001",
		GroupID:   &group.ID,
	})
	require.NoError(t, err)

	details, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Group)
	assert.Equal(t, "React Fundamentals", details[0].Group.Name)
}

func TestStudentServiceDanglingGroupResolvesAbsent(t *testing.T) {
	svc, store, owner := newStudentFixture(t)

	group := &models.Group{Name: "React Fundamentals", Capacity: 30, Status: models.GroupActive}
	require.NoError(t, store.CreateGroup(context.Background(), group))

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		UserID:    owner.ID,
		StudentID: "TIT-2024-001",
		GroupID:   &group.ID,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteGroup(context.Background(), group.ID))

	detail, err := svc.Get(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Group)
}

func TestStudentServiceGetUnknown(t *testing.T) {
	svc, _, _ := newStudentFixture(t)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}
