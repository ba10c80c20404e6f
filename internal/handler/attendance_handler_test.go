package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/models"
	"github.com/tit-academy/crm-api/internal/service"
	"github.com/tit-academy/crm-api/pkg/response"
)

func newAttendanceTestRouter(t *testing.T) (*gin.Engine, *models.Student, *models.Group) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := ledger.NewStore()
	owner := &models.User{Email: "student@mail.com", Password: "student123", Role: models.RoleStudent, Name: "Student User"}
	require.NoError(t, store.CreateUser(context.Background(), owner))
	group := &models.Group{Name: "React Fundamentals", Capacity: 30, Status: models.GroupActive}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	student := &models.Student{UserID: owner.ID, StudentID: "TIT-2024-001", GroupID: &group.ID}
	require.NoError(t, store.CreateStudent(context.Background(), student))

	h := NewAttendanceHandler(service.NewAttendanceService(store, nil, nil, nil))

	r := gin.New()
	r.GET("/api/attendance", h.List)
	r.POST("/api/attendance", h.Create)
	r.PUT("/api/attendance/:id", h.Update)
	return r, student, group
}

func TestAttendanceHandlerCreateAndFilter(t *testing.T) {
	r, student, group := newAttendanceTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"studentId": student.ID,
		"groupId":   group.ID,
		"date":      "2024-03-04",
		"status":    "present",
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/attendance", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance?studentId="+student.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.Attendance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, models.AttendancePresent, envelope.Data[0].Status)
	assert.Equal(t, "2024-03-04", envelope.Data[0].Date.Format("2006-01-02"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance?studentId=other", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	envelope.Data = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestAttendanceHandlerCreateRejectsBadStatus(t *testing.T) {
	r, student, group := newAttendanceTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"studentId": student.ID,
		"groupId":   group.ID,
		"status":    "vacation",
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/attendance", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestAttendanceHandlerUpdateChangesStatus(t *testing.T) {
	r, student, group := newAttendanceTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"studentId": student.ID,
		"groupId":   group.ID,
		"date":      "2024-03-04",
		"status":    "absent",
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/attendance", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Attendance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	body, _ = json.Marshal(map[string]string{"status": "late"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/attendance/"+created.Data.ID, bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Data models.Attendance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.AttendanceLate, updated.Data.Status)
}

func TestAttendanceHandlerUpdateUnknownRecord(t *testing.T) {
	r, _, _ := newAttendanceTestRouter(t)

	body, _ := json.Marshal(map[string]string{"status": "late"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/attendance/missing", bytes.NewReader(body)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
