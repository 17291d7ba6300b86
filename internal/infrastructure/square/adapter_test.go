package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func newTestAdapter(serverURL string) *Adapter {
	return &Adapter{
		cfg: config.SquareConfig{
			AppID:       "app-id",
			AppSecret:   "app-secret",
			RedirectURI: "http://localhost:8080/square/oauth/callback",
			APIVersion:  "2025-03-19",
		},
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     zap.NewNop(),
	}
}

func TestAdapter_ExchangeCode(t *testing.T) {
	t.Run("Successful exchange with scope verification", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/oauth2/token":
				assert.Equal(t, http.MethodPost, r.Method)
				var req obtainTokenRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "auth-code", req.Code)
				assert.Equal(t, "authorization_code", req.GrantType)
				_ = json.NewEncoder(w).Encode(obtainTokenResponse{
					AccessToken: "EAAA-token",
					MerchantID:  "MLMERCHANT1",
				})
			case "/oauth2/token/status":
				assert.Equal(t, "Bearer EAAA-token", r.Header.Get("Authorization"))
				_ = json.NewEncoder(w).Encode(tokenStatusResponse{
					Scopes: []string{"MERCHANT_PROFILE_READ", "ITEMS_READ"},
				})
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		grant, err := newTestAdapter(server.URL).ExchangeCode(context.Background(), "auth-code")
		require.NoError(t, err)
		assert.Equal(t, "MLMERCHANT1", grant.MerchantID)
		assert.Equal(t, "EAAA-token", grant.AccessToken)
		assert.Equal(t, []string{"MERCHANT_PROFILE_READ", "ITEMS_READ"}, grant.Scopes)
	})

	t.Run("Bad code surfaces authorization error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(obtainTokenResponse{
				Errors: []apiError{{Category: "OAUTH", Code: "INVALID_GRANT", Detail: "code expired"}},
			})
		}))
		defer server.Close()

		_, err := newTestAdapter(server.URL).ExchangeCode(context.Background(), "stale-code")
		assert.ErrorIs(t, err, commerce.ErrAuthorizationFailed)
		assert.Contains(t, err.Error(), "code expired")
	})

	t.Run("Rejection with non-JSON body is still an authorization error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
		}))
		defer server.Close()

		_, err := newTestAdapter(server.URL).ExchangeCode(context.Background(), "bad-code")
		assert.ErrorIs(t, err, commerce.ErrAuthorizationFailed)
		assert.NotErrorIs(t, err, commerce.ErrInvalidResponse)
	})
}

func TestAdapter_ListLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/locations", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(listLocationsResponse{
			Locations: []locationObject{
				{
					ID:          "LOC1",
					Name:        "Main Street",
					Description: "Flagship store",
					Currency:    "USD",
					WebsiteURL:  "https://shop.example.com",
					Address:     &address{Country: "US"},
				},
			},
		})
	}))
	defer server.Close()

	locations, err := newTestAdapter(server.URL).ListLocations(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "LOC1", locations[0].ID)
	assert.Equal(t, "US", locations[0].Country)
	assert.Equal(t, "https://shop.example.com", locations[0].WebsiteURL)
}

func TestAdapter_ListCatalog(t *testing.T) {
	t.Run("Maps items, categories and images", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/catalog/list", r.URL.Path)
			_ = json.NewEncoder(w).Encode(listCatalogResponse{
				Objects: []catalogObject{
					{
						Type: "ITEM",
						ID:   "ITEM1",
						ItemData: &itemData{
							Name:       "Espresso",
							CategoryID: "CAT1",
							ImageIDs:   []string{"IMG1"},
							Variations: []catalogObject{
								{
									Type: "ITEM_VARIATION",
									ID:   "VAR1",
									ItemVariationData: &itemVariationData{
										ItemID:     "ITEM1",
										Name:       "Regular",
										PriceMoney: &money{Amount: 350, Currency: "USD"},
									},
								},
							},
						},
					},
					{Type: "CATEGORY", ID: "CAT1", CategoryData: &categoryData{Name: "Drinks"}},
					{Type: "IMAGE", ID: "IMG1", ImageData: &imageData{URL: "https://img.example.com/1.png"}},
				},
			})
		}))
		defer server.Close()

		catalog, err := newTestAdapter(server.URL).ListCatalog(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, catalog.Items, 1)
		assert.Equal(t, []string{"CAT1"}, catalog.Items[0].CategoryIDs)
		require.Len(t, catalog.Items[0].Variations, 1)
		assert.Equal(t, int64(350), catalog.Items[0].Variations[0].PriceAmount)
		require.Len(t, catalog.Categories, 1)
		assert.Equal(t, "Drinks", catalog.Categories[0].Name)
		require.Len(t, catalog.Images, 1)
	})

	t.Run("Follows pagination cursor", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				_ = json.NewEncoder(w).Encode(listCatalogResponse{
					Objects: []catalogObject{{Type: "CATEGORY", ID: "CAT1", CategoryData: &categoryData{Name: "A"}}},
					Cursor:  "next-page",
				})
				return
			}
			assert.Equal(t, "next-page", r.URL.Query().Get("cursor"))
			_ = json.NewEncoder(w).Encode(listCatalogResponse{
				Objects: []catalogObject{{Type: "CATEGORY", ID: "CAT2", CategoryData: &categoryData{Name: "B"}}},
			})
		}))
		defer server.Close()

		catalog, err := newTestAdapter(server.URL).ListCatalog(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Len(t, catalog.Categories, 2)
	})
}

func TestAdapter_AuthorizeURL(t *testing.T) {
	a := newTestAdapter("https://connect.squareupsandbox.com")

	u := a.AuthorizeURL("http://localhost:3000/auth/callback")
	assert.Contains(t, u, "https://connect.squareupsandbox.com/oauth2/authorize?")
	assert.Contains(t, u, "client_id=app-id")
	assert.Contains(t, u, "response_type=code")
	assert.Contains(t, u, "state=")
}
