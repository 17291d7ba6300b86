package commerce

import (
	"context"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	// ErrAuthorizationFailed indicates the platform rejected the authorization
	// code or the token's scopes (fatal, no retry)
	ErrAuthorizationFailed = errors.New("commerce: platform authorization failed")
	// ErrRequestFailed indicates a platform API request failed
	ErrRequestFailed = errors.New("commerce: platform request failed")
	// ErrInvalidResponse indicates the platform returned an unparseable response
	ErrInvalidResponse = errors.New("commerce: invalid platform response")
	// ErrPlatformUnavailable indicates the platform is temporarily unreachable
	ErrPlatformUnavailable = errors.New("commerce: platform temporarily unavailable")
)

// ---------------------------------------------------------------------------
// Catalog Object Types
// ---------------------------------------------------------------------------

// CatalogObjectType identifies the kind of catalog object to list
type CatalogObjectType string

const (
	// CatalogObjectTypeItem is a sellable catalog item
	CatalogObjectTypeItem CatalogObjectType = "ITEM"
	// CatalogObjectTypeCategory is a catalog category
	CatalogObjectTypeCategory CatalogObjectType = "CATEGORY"
	// CatalogObjectTypeImage is a catalog image
	CatalogObjectTypeImage CatalogObjectType = "IMAGE"
)

// String returns the string representation of CatalogObjectType
func (t CatalogObjectType) String() string {
	return string(t)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// TokenGrant is the result of exchanging an authorization code
type TokenGrant struct {
	// MerchantID is the platform merchant the token belongs to
	MerchantID string
	// AccessToken is the OAuth access token
	AccessToken string
	// ExpiresAt is when the token expires
	ExpiresAt time.Time
	// Scopes are the scopes actually granted to the token
	Scopes []string
}

// MerchantAccount is the platform's record of the merchant business
type MerchantAccount struct {
	// ID is the platform merchant ID
	ID string
	// BusinessName is the registered business name
	BusinessName string
	// Country is the ISO country code of the business
	Country string
	// LanguageCode is the merchant's preferred language
	LanguageCode string
	// Currency is the merchant's settlement currency
	Currency string
	// Status is the platform account status
	Status string
}

// Location is a physical or online selling location of the merchant
type Location struct {
	// ID is the platform location ID
	ID string
	// Name is the location name
	Name string
	// Description is the location description
	Description string
	// BusinessName is the location-level business name
	BusinessName string
	// Country is the ISO country code of the location address
	Country string
	// Currency is the currency used at this location
	Currency string
	// WebsiteURL is the location's website
	WebsiteURL string
	// Status is the platform location status
	Status string
}

// CatalogItemVariation is a purchasable variation of a catalog item
type CatalogItemVariation struct {
	// ID is the platform variation ID
	ID string
	// Name is the variation name
	Name string
	// PriceAmount is the price in minor currency units (e.g. cents)
	PriceAmount int64
	// PriceCurrency is the ISO currency code of the price
	PriceCurrency string
}

// CatalogItem is a sellable item in the merchant's catalog
type CatalogItem struct {
	// ID is the platform item ID
	ID string
	// Name is the item name
	Name string
	// Description is the item description
	Description string
	// CategoryIDs references categories in the same catalog snapshot
	CategoryIDs []string
	// ImageIDs references images in the same catalog snapshot
	ImageIDs []string
	// Variations are the purchasable variations; the first one is primary
	Variations []CatalogItemVariation
}

// PrimaryVariation returns the item's primary variation, or false when the
// item has none
func (i *CatalogItem) PrimaryVariation() (CatalogItemVariation, bool) {
	if len(i.Variations) == 0 {
		return CatalogItemVariation{}, false
	}
	return i.Variations[0], true
}

// CatalogCategory is a category in the merchant's catalog
type CatalogCategory struct {
	// ID is the platform category ID
	ID string
	// Name is the category name
	Name string
}

// CatalogImage is an image in the merchant's catalog
type CatalogImage struct {
	// ID is the platform image ID
	ID string
	// Name is the image name
	Name string
	// URL is the hosted image URL
	URL string
}

// Catalog is a point-in-time snapshot of the merchant's catalog, split by
// object type. Items reference categories and images by ID within the same
// snapshot.
type Catalog struct {
	Items      []CatalogItem
	Categories []CatalogCategory
	Images     []CatalogImage
}

// CategoryNames resolves category IDs to their names, skipping unknown IDs
func (c *Catalog) CategoryNames(ids []string) []string {
	byID := make(map[string]string, len(c.Categories))
	for _, cat := range c.Categories {
		byID[cat.ID] = cat.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ImageURLs resolves image IDs to their URLs, skipping unknown IDs
func (c *Catalog) ImageURLs(ids []string) []string {
	byID := make(map[string]string, len(c.Images))
	for _, img := range c.Images {
		byID[img.ID] = img.URL
	}
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		if url, ok := byID[id]; ok && url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// ---------------------------------------------------------------------------
// Client Port Interface
// ---------------------------------------------------------------------------

// Client defines the port interface for the commerce platform. It follows the
// Ports & Adapters pattern: the interface lives in the domain layer and the
// HTTP adapter lives in the infrastructure layer.
type Client interface {
	// ExchangeCode exchanges an OAuth authorization code for an access token
	ExchangeCode(ctx context.Context, code string) (*TokenGrant, error)

	// RetrieveMerchant fetches the merchant account behind the access token
	RetrieveMerchant(ctx context.Context, accessToken string) (*MerchantAccount, error)

	// ListLocations lists the merchant's locations
	ListLocations(ctx context.Context, accessToken string) ([]Location, error)

	// ListCatalog lists the merchant's catalog objects of the given types.
	// With no types it returns the full catalog.
	ListCatalog(ctx context.Context, accessToken string, types ...CatalogObjectType) (*Catalog, error)
}
