package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synvya/retail-backend/internal/infrastructure/auth"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthFixture(expiration time.Duration) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "retail-backend-test",
	})

	engine := gin.New()
	engine.GET("/protected", RequireMerchant(jwtService), func(c *gin.Context) {
		c.String(http.StatusOK, GetMerchantID(c))
	})
	return engine, jwtService
}

func TestRequireMerchant_ValidToken(t *testing.T) {
	engine, jwtService := newAuthFixture(time.Hour)

	session, err := jwtService.GenerateToken("M1")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+session.Token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "M1", w.Body.String())
}

func TestRequireMerchant_Rejections(t *testing.T) {
	engine, _ := newAuthFixture(time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "Token abc"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireMerchant_ExpiredToken(t *testing.T) {
	engine, jwtService := newAuthFixture(-time.Minute)

	session, err := jwtService.GenerateToken("M1")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+session.Token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDHeader))
	})

	t.Run("generates when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("reuses caller's", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "caller-id", w.Body.String())
	})
}
