package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/infrastructure/auth"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
	"github.com/synvya/retail-backend/internal/interfaces/http/dto"
)

func newAuthTestEngine(env string) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "retail-backend-test",
	})

	engine := gin.New()
	group := engine.Group("/api/v1")
	NewAuthHandler(jwtService, env, zap.NewNop()).RegisterRoutes(group)
	return engine, jwtService
}

func TestIssueToken_MintsUsableSession(t *testing.T) {
	engine, _ := newAuthTestEngine("development")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token/M1", nil)
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var session auth.SessionToken
	require.NoError(t, json.Unmarshal(payload, &session))
	require.NotEmpty(t, session.Token)

	// the minted token passes the same middleware the real endpoints use
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "M1")
}

func TestIssueToken_NotRegisteredInProduction(t *testing.T) {
	engine, _ := newAuthTestEngine("production")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token/M1", nil)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	engine, _ := newAuthTestEngine("development")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
