package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/domain/shared"
	"github.com/synvya/retail-backend/internal/interfaces/http/dto"
	"github.com/synvya/retail-backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDHeader); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and collaborator errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code, message := classifyError(err)
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// classifyError maps an error to an API error code and client-safe message
func classifyError(err error) (string, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return dto.NormalizeErrorCode(domainErr.Code), domainErr.Message
	}

	switch {
	case errors.Is(err, merchant.ErrCredentialNotFound):
		return dto.ErrCodeNotFound, "Merchant is not connected"
	case errors.Is(err, merchant.ErrPrivateKeyMissing),
		errors.Is(err, merchant.ErrPrivateKeyAlreadySet):
		return dto.ErrCodeDataIntegrity, "Merchant credential record is inconsistent"
	case errors.Is(err, commerce.ErrAuthorizationFailed):
		return dto.ErrCodeUpstreamAuth, "Platform authorization failed"
	case errors.Is(err, commerce.ErrPlatformUnavailable):
		return dto.ErrCodeUpstreamUnavailable, "Commerce platform is unavailable"
	case errors.Is(err, marketplace.ErrProfileNameRequired):
		return dto.ErrCodeInvalidInput, "Profile name is required"
	case errors.Is(err, marketplace.ErrProfileNotFound):
		return dto.ErrCodeNotFound, "No profile published for this merchant"
	case errors.Is(err, marketplace.ErrNetworkUnavailable):
		return dto.ErrCodeUpstreamUnavailable, "Marketplace network is unavailable"
	case errors.Is(err, marketplace.ErrPublishFailed):
		return dto.ErrCodePublishFailed, "Marketplace network rejected the event"
	default:
		return dto.ErrCodeInternal, "An unexpected error occurred"
	}
}
