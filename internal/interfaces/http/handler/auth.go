package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/infrastructure/auth"
	"github.com/synvya/retail-backend/internal/interfaces/http/middleware"
)

// AuthHandler exposes session token introspection and, outside production,
// direct token minting for development and integration tests
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	env        string
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtService *auth.JWTService, env string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{jwtService: jwtService, env: env, logger: logger}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	if h.env != "production" {
		authGroup.POST("/token/:merchant_id", h.IssueToken)
	}

	authed := authGroup.Group("")
	authed.Use(middleware.RequireMerchant(h.jwtService))
	{
		authed.GET("/me", h.Me)
	}
}

// MeResponse identifies the authenticated merchant and the session expiry
type MeResponse struct {
	MerchantID string     `json:"merchant_id"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// Me returns the merchant bound to the presented session token
func (h *AuthHandler) Me(c *gin.Context) {
	resp := MeResponse{MerchantID: middleware.GetMerchantID(c)}
	if claims := middleware.GetClaims(c); claims != nil && claims.ExpiresAt != nil {
		resp.ExpiresAt = &claims.ExpiresAt.Time
	}
	h.Success(c, resp)
}

// IssueToken mints a session token for an arbitrary merchant ID. Not
// registered in production.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	merchantID := c.Param("merchant_id")
	if merchantID == "" {
		h.BadRequest(c, "merchant_id is required")
		return
	}

	session, err := h.jwtService.GenerateToken(merchantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.logger.Warn("development token minted", zap.String("merchant_id", merchantID))
	h.Success(c, session)
}
