package handler

import (
	"bytes"
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

func newGroupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewGroupHandler(service.NewGroupService(ledger.NewStore(), nil, nil, nil))

	r := gin.New()
	r.GET("/api/groups", h.List)
	r.POST("/api/groups", h.Create)
	r.GET("/api/groups/:id", h.Get)
	r.DELETE("/api/groups/:id", h.Delete)
	return r
}

func TestGroupHandlerCreateAppliesDefaults(t *testing.T) {
	r := newGroupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"name": "React Fundamentals"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/groups", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data models.Group `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "React Fundamentals", envelope.Data.Name)
	assert.Equal(t, models.DefaultGroupCapacity, envelope.Data.Capacity)
	assert.Equal(t, models.GroupActive, envelope.Data.Status)
	assert.NotEmpty(t, envelope.Data.ID)
}

func TestGroupHandlerCreateRequiresName(t *testing.T) {
	r := newGroupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"description": "no name"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/groups", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestGroupHandlerListRoundTrip(t *testing.T) {
	r := newGroupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"name": "Go Basics"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/groups", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/groups", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.Group `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Go Basics", envelope.Data[0].Name)
}

func TestGroupHandlerDeleteUnknownGroup(t *testing.T) {
	r := newGroupTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/groups/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}
