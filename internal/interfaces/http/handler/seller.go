package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/application/publishing"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/infrastructure/auth"
	"github.com/synvya/retail-backend/internal/interfaces/http/middleware"
)

// SellerHandler exposes the authenticated merchant operations: platform
// snapshot inspection, profile read/publish, and bulk stall/product publish
type SellerHandler struct {
	BaseHandler
	service    *publishing.Service
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(service *publishing.Service, jwtService *auth.JWTService, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{
		service:    service,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterRoutes registers the seller routes, all behind session auth
func (h *SellerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	seller := rg.Group("/square")
	seller.Use(middleware.RequireMerchant(h.jwtService))
	{
		seller.GET("/seller/info", h.GetSellerInfo)
		seller.GET("/profile", h.GetProfile)
		seller.POST("/profile/publish", h.PublishProfile)
		seller.POST("/stalls/publish", h.PublishStalls)
		seller.POST("/products/publish", h.PublishProducts)
	}
}

// GetSellerInfo returns the merchant's current platform snapshot
func (h *SellerHandler) GetSellerInfo(c *gin.Context) {
	info, err := h.service.GetSellerInfo(c.Request.Context(), middleware.GetMerchantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// GetProfile returns the profile currently published on the network
func (h *SellerHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), middleware.GetMerchantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// PublishProfile publishes the profile in the request body, or rebuilds it
// from platform data when the body is empty
func (h *SellerHandler) PublishProfile(c *gin.Context) {
	var supplied *marketplace.Profile
	if c.Request.ContentLength > 0 {
		supplied = &marketplace.Profile{}
		if err := c.ShouldBindJSON(supplied); err != nil {
			h.BadRequest(c, "invalid profile payload")
			return
		}
	}
	profile, err := h.service.PublishProfile(c.Request.Context(), middleware.GetMerchantID(c), supplied)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// PublishStalls publishes one stall per platform location and returns the
// per-item counts
func (h *SellerHandler) PublishStalls(c *gin.Context) {
	result, err := h.service.PublishStalls(c.Request.Context(), middleware.GetMerchantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PublishProducts publishes one product per catalog item and returns the
// per-item counts
func (h *SellerHandler) PublishProducts(c *gin.Context) {
	result, err := h.service.PublishProducts(c.Request.Context(), middleware.GetMerchantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
