package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	// oauthScope is the scope requested during OAuth authorization
	oauthScope = "MERCHANT_PROFILE_READ ITEMS_READ"
)

// Adapter implements commerce.Client against the Square Connect API
type Adapter struct {
	cfg        config.SquareConfig
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter creates a new Square adapter with the given configuration
func NewAdapter(cfg config.SquareConfig, logger *zap.Logger) *Adapter {
	return &Adapter{
		cfg:     cfg,
		baseURL: cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// AuthorizeURL builds the platform authorization URL the merchant's browser
// is redirected to when initiating OAuth. The state is an opaque value the
// platform echoes back on the callback.
func (a *Adapter) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", a.cfg.AppID)
	q.Set("scope", oauthScope)
	q.Set("redirect_uri", a.cfg.RedirectURI)
	q.Set("response_type", "code")
	if state != "" {
		q.Set("state", state)
	}
	return a.baseURL + "/oauth2/authorize?" + q.Encode()
}

// ExchangeCode exchanges an OAuth authorization code for an access token
func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*commerce.TokenGrant, error) {
	reqBody := obtainTokenRequest{
		ClientID:     a.cfg.AppID,
		ClientSecret: a.cfg.AppSecret,
		Code:         code,
		GrantType:    "authorization_code",
		RedirectURI:  a.cfg.RedirectURI,
	}

	respBody, status, err := a.doRequest(ctx, http.MethodPost, "/oauth2/token", "", reqBody)
	if err != nil {
		return nil, err
	}

	// The status decides the error class; the body may not be JSON on a
	// rejected exchange, so it is only decoded for detail.
	if status != http.StatusOK {
		var resp obtainTokenResponse
		if err := json.Unmarshal(respBody, &resp); err == nil && len(resp.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", commerce.ErrAuthorizationFailed, joinErrors(resp.Errors))
		}
		return nil, fmt.Errorf("%w: status %d", commerce.ErrAuthorizationFailed, status)
	}

	var resp obtainTokenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", commerce.ErrAuthorizationFailed, joinErrors(resp.Errors))
	}
	if resp.MerchantID == "" || resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing merchant_id or access_token", commerce.ErrInvalidResponse)
	}

	grant := &commerce.TokenGrant{
		MerchantID:  resp.MerchantID,
		AccessToken: resp.AccessToken,
	}
	if resp.ExpiresAt != "" {
		if expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
			grant.ExpiresAt = expiresAt
		}
	}

	// The token status check verifies the granted scopes; a failure here means
	// the authorization itself is unusable.
	scopes, err := a.retrieveTokenStatus(ctx, resp.AccessToken)
	if err != nil {
		return nil, err
	}
	grant.Scopes = scopes

	a.logger.Info("Exchanged authorization code",
		zap.String("merchant_id", grant.MerchantID),
		zap.Strings("scopes", grant.Scopes))

	return grant, nil
}

// retrieveTokenStatus verifies the token and returns its granted scopes
func (a *Adapter) retrieveTokenStatus(ctx context.Context, accessToken string) ([]string, error) {
	respBody, status, err := a.doRequest(ctx, http.MethodPost, "/oauth2/token/status", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var resp tokenStatusResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if status != http.StatusOK || len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", commerce.ErrAuthorizationFailed, joinErrors(resp.Errors))
	}
	return resp.Scopes, nil
}

// RetrieveMerchant fetches the merchant account behind the access token
func (a *Adapter) RetrieveMerchant(ctx context.Context, accessToken string) (*commerce.MerchantAccount, error) {
	respBody, status, err := a.doRequest(ctx, http.MethodGet, "/v2/merchants/me", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var resp retrieveMerchantResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if status != http.StatusOK || len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", commerce.ErrRequestFailed, joinErrors(resp.Errors))
	}
	if resp.Merchant == nil {
		return nil, fmt.Errorf("%w: merchant response missing merchant object", commerce.ErrInvalidResponse)
	}

	m := resp.Merchant
	return &commerce.MerchantAccount{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		Country:      m.Country,
		LanguageCode: m.LanguageCode,
		Currency:     m.Currency,
		Status:       m.Status,
	}, nil
}

// ListLocations lists the merchant's locations
func (a *Adapter) ListLocations(ctx context.Context, accessToken string) ([]commerce.Location, error) {
	respBody, status, err := a.doRequest(ctx, http.MethodGet, "/v2/locations", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var resp listLocationsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}
	if status != http.StatusOK || len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", commerce.ErrRequestFailed, joinErrors(resp.Errors))
	}

	locations := make([]commerce.Location, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		loc := commerce.Location{
			ID:           l.ID,
			Name:         l.Name,
			Description:  l.Description,
			BusinessName: l.BusinessName,
			Currency:     l.Currency,
			WebsiteURL:   l.WebsiteURL,
			Status:       l.Status,
		}
		if l.Address != nil {
			loc.Country = l.Address.Country
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// ListCatalog lists the merchant's catalog objects of the given types,
// following pagination cursors until the snapshot is complete
func (a *Adapter) ListCatalog(ctx context.Context, accessToken string, types ...commerce.CatalogObjectType) (*commerce.Catalog, error) {
	path := "/v2/catalog/list"
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		path += "?types=" + url.QueryEscape(strings.Join(names, ","))
	}

	catalog := &commerce.Catalog{}
	cursor := ""
	for {
		pagePath := path
		if cursor != "" {
			sep := "?"
			if strings.Contains(pagePath, "?") {
				sep = "&"
			}
			pagePath += sep + "cursor=" + url.QueryEscape(cursor)
		}

		respBody, status, err := a.doRequest(ctx, http.MethodGet, pagePath, accessToken, nil)
		if err != nil {
			return nil, err
		}

		var resp listCatalogResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
		}
		if status != http.StatusOK || len(resp.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", commerce.ErrRequestFailed, joinErrors(resp.Errors))
		}

		appendCatalogObjects(catalog, resp.Objects)

		if resp.Cursor == "" {
			return catalog, nil
		}
		cursor = resp.Cursor
	}
}

// appendCatalogObjects maps wire catalog objects into the domain snapshot
func appendCatalogObjects(catalog *commerce.Catalog, objects []catalogObject) {
	for _, obj := range objects {
		switch commerce.CatalogObjectType(obj.Type) {
		case commerce.CatalogObjectTypeItem:
			if obj.ItemData == nil {
				continue
			}
			item := commerce.CatalogItem{
				ID:          obj.ID,
				Name:        obj.ItemData.Name,
				Description: obj.ItemData.Description,
				ImageIDs:    obj.ItemData.ImageIDs,
			}
			if obj.ItemData.CategoryID != "" {
				item.CategoryIDs = append(item.CategoryIDs, obj.ItemData.CategoryID)
			}
			for _, ref := range obj.ItemData.Categories {
				item.CategoryIDs = append(item.CategoryIDs, ref.ID)
			}
			for _, v := range obj.ItemData.Variations {
				if v.ItemVariationData == nil {
					continue
				}
				variation := commerce.CatalogItemVariation{
					ID:   v.ID,
					Name: v.ItemVariationData.Name,
				}
				if v.ItemVariationData.PriceMoney != nil {
					variation.PriceAmount = v.ItemVariationData.PriceMoney.Amount
					variation.PriceCurrency = v.ItemVariationData.PriceMoney.Currency
				}
				item.Variations = append(item.Variations, variation)
			}
			catalog.Items = append(catalog.Items, item)
		case commerce.CatalogObjectTypeCategory:
			if obj.CategoryData == nil {
				continue
			}
			catalog.Categories = append(catalog.Categories, commerce.CatalogCategory{
				ID:   obj.ID,
				Name: obj.CategoryData.Name,
			})
		case commerce.CatalogObjectTypeImage:
			if obj.ImageData == nil {
				continue
			}
			catalog.Images = append(catalog.Images, commerce.CatalogImage{
				ID:   obj.ID,
				Name: obj.ImageData.Name,
				URL:  obj.ImageData.URL,
			})
		}
	}
}

// doRequest performs an HTTP request against the platform API
func (a *Adapter) doRequest(ctx context.Context, method, path, accessToken string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("square: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("square: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", a.cfg.APIVersion)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", commerce.ErrPlatformUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", commerce.ErrInvalidResponse, err)
	}

	return respBody, resp.StatusCode, nil
}

// joinErrors renders the platform error list for error wrapping
func joinErrors(errs []apiError) string {
	if len(errs) == 0 {
		return "unknown platform error"
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = fmt.Sprintf("%s/%s: %s", e.Category, e.Code, e.Detail)
	}
	return strings.Join(parts, "; ")
}
