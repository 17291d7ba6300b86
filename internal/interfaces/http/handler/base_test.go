package handler

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/domain/shared"
	"github.com/synvya/retail-backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
	}{
		{
			name:         "credential not found",
			err:          merchant.ErrCredentialNotFound,
			expectedCode: dto.ErrCodeNotFound,
		},
		{
			name:         "wrapped credential not found",
			err:          fmt.Errorf("lookup: %w", merchant.ErrCredentialNotFound),
			expectedCode: dto.ErrCodeNotFound,
		},
		{
			name:         "missing private key is an integrity fault",
			err:          merchant.ErrPrivateKeyMissing,
			expectedCode: dto.ErrCodeDataIntegrity,
		},
		{
			name:         "duplicate private key attach",
			err:          merchant.ErrPrivateKeyAlreadySet,
			expectedCode: dto.ErrCodeDataIntegrity,
		},
		{
			name:         "platform rejected authorization",
			err:          commerce.ErrAuthorizationFailed,
			expectedCode: dto.ErrCodeUpstreamAuth,
		},
		{
			name:         "platform unreachable",
			err:          commerce.ErrPlatformUnavailable,
			expectedCode: dto.ErrCodeUpstreamUnavailable,
		},
		{
			name:         "no published profile",
			err:          marketplace.ErrProfileNotFound,
			expectedCode: dto.ErrCodeNotFound,
		},
		{
			name:         "relays rejected event",
			err:          marketplace.ErrPublishFailed,
			expectedCode: dto.ErrCodePublishFailed,
		},
		{
			name:         "domain error carries its own code",
			err:          shared.ErrDataIntegrity,
			expectedCode: dto.ErrCodeDataIntegrity,
		},
		{
			name:         "coded wrap wins over the inner sentinel",
			err:          fmt.Errorf("%w: %w", shared.ErrInvalidInput, marketplace.ErrProfileNameRequired),
			expectedCode: dto.ErrCodeInvalidInput,
		},
		{
			name:         "missing key wrapped with the integrity code",
			err:          fmt.Errorf("merchant M1: %w: %w", shared.ErrDataIntegrity, merchant.ErrPrivateKeyMissing),
			expectedCode: dto.ErrCodeDataIntegrity,
		},
		{
			name:         "unknown error",
			err:          errors.New("boom"),
			expectedCode: dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := classifyError(tt.err)
			assert.Equal(t, tt.expectedCode, code)
		})
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "not found", err: merchant.ErrCredentialNotFound, expectedStatus: 404},
		{name: "integrity fault", err: merchant.ErrPrivateKeyMissing, expectedStatus: 500},
		{name: "upstream auth", err: commerce.ErrAuthorizationFailed, expectedStatus: 401},
		{name: "publish failed", err: marketplace.ErrPublishFailed, expectedStatus: 502},
		{name: "unknown", err: errors.New("boom"), expectedStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
