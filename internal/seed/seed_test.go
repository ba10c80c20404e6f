package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/ledger"
)

func TestRunProvisionsDemoData(t *testing.T) {
	store := ledger.NewStore()
	require.NoError(t, Run(context.Background(), store, nil))

	admin, err := store.GetUserByEmail(context.Background(), "admin@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", admin.Name)

	student, err := store.GetStudentByStudentID(context.Background(), "TIT-2024-001")
	require.NoError(t, err)
	assert.Equal(t, 3, student.GoldMedals)
	assert.Equal(t, 5, student.SilverMedals)
	assert.Equal(t, 8, student.BronzeMedals)
	require.NotNil(t, student.GroupID)

	products, err := store.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestRunIsIdempotent(t *testing.T) {
	store := ledger.NewStore()
	require.NoError(t, Run(context.Background(), store, nil))
	require.NoError(t, Run(context.Background(), store, nil))

	students, err := store.GetStudents(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 1)

	products, err := store.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
