package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/middleware"
	"github.com/tit-academy/crm-api/internal/models"
	"github.com/tit-academy/crm-api/internal/service"
	"github.com/tit-academy/crm-api/pkg/response"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := ledger.NewStore()
	admin := &models.User{Email: "admin@mail.com", Password: "admin123", Role: models.RoleAdmin, Name: "Admin User"}
	require.NoError(t, store.CreateUser(context.Background(), admin))

	svc := service.NewAuthService(store, nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "crm-api-test",
	})
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/auth/me", middleware.JWT(svc), h.Me)
	return r
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	r := newAuthTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@mail.com", "password": "admin123"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "admin@mail.com", envelope.Data.User.Email)
	assert.NotEmpty(t, envelope.Data.AccessToken)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	r := newAuthTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@mail.com", "password": "wrong"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	r := newAuthTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{"))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerMeRoundTrip(t *testing.T) {
	r := newAuthTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@mail.com", "password": "admin123"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Data.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data models.UserInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, models.RoleAdmin, me.Data.Role)
}

func TestAuthHandlerMeWithoutToken(t *testing.T) {
	r := newAuthTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
