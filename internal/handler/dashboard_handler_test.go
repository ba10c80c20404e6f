package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/dto"
	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/models"
	"github.com/tit-academy/crm-api/internal/service"
)

func TestDashboardHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := ledger.NewStore()
	owner := &models.User{Email: "student@mail.com", Password: "student123", Role: models.RoleStudent, Name: "Student User"}
	require.NoError(t, store.CreateUser(context.Background(), owner))
	student := &models.Student{UserID: owner.ID, StudentID: "TIT-2024-001"}
	require.NoError(t, store.CreateStudent(context.Background(), student))
	group := &models.Group{Name: "React Fundamentals", Capacity: 30, Status: models.GroupActive}
	require.NoError(t, store.CreateGroup(context.Background(), group))

	for _, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent} {
		record := &models.Attendance{StudentID: student.ID, GroupID: group.ID, Status: status}
		require.NoError(t, store.CreateAttendance(context.Background(), record))
	}

	h := NewDashboardHandler(service.NewDashboardService(store, nil, nil), nil)
	r := gin.New()
	r.GET("/api/dashboard/stats", h.Stats)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.DashboardStats     `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.TotalGroups)
	assert.Equal(t, 1, envelope.Data.TotalStudents)
	assert.Equal(t, "67%", envelope.Data.AttendanceRate)
	assert.Equal(t, false, envelope.Meta["cacheHit"])
}

func TestDashboardHandlerStatsEmptyStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewDashboardHandler(service.NewDashboardService(ledger.NewStore(), nil, nil), nil)
	r := gin.New()
	r.GET("/api/dashboard/stats", h.Stats)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "0%", envelope.Data.AttendanceRate)
}
