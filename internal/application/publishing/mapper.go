package publishing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
)

// ---------------------------------------------------------------------------
// Profile Mapping
// ---------------------------------------------------------------------------

// ProfileFromSnapshot derives a marketplace profile from the merchant's
// current platform data. The handle is the platform merchant ID, not the
// display name: the ID is stable and unique, the name is neither. Fields the
// platform does not supply map to their zero value, never to null; the
// network schema rejects nulls.
func ProfileFromSnapshot(account *commerce.MerchantAccount, locations []commerce.Location, categories []commerce.CatalogCategory) *marketplace.Profile {
	profile := &marketplace.Profile{
		Name:        account.ID,
		Identifier:  account.ID + "@" + marketplace.IdentifierDomain,
		DisplayName: account.BusinessName,
		Namespace:   marketplace.DefaultNamespace,
		ProfileType: marketplace.ProfileTypeOther,
	}

	if len(locations) > 0 {
		profile.About = locations[0].Description
		profile.Website = locations[0].WebsiteURL
	}

	for _, category := range categories {
		if category.Name != "" {
			profile.AddHashtag(category.Name)
		}
	}

	// PublicKey and ProfileURL stay blank: they are resolved from the
	// private key at publish time, never accepted as input.
	profile.Normalize()
	return profile
}

// ---------------------------------------------------------------------------
// Stall Mapping
// ---------------------------------------------------------------------------

// StallFromLocation maps a platform location to a stall. Shipping is a
// single zero-cost zone whose only region is the location's country; the
// geohash is left empty until coordinate support lands.
func StallFromLocation(location *commerce.Location) *marketplace.Stall {
	regions := []string{}
	if location.Country != "" {
		regions = append(regions, location.Country)
	}
	return &marketplace.Stall{
		ID:          location.ID,
		Name:        location.Name,
		Description: location.Description,
		Currency:    location.Currency,
		Shipping: []marketplace.ShippingZone{
			{
				ID:      location.ID,
				Name:    "Default",
				Cost:    decimal.Zero,
				Regions: regions,
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Product Mapping
// ---------------------------------------------------------------------------

// ProductFromItem maps a catalog item to a product addressed to the given
// stall. Image and category references are resolved against the catalog
// snapshot; unknown IDs are skipped. The price is the primary variation's
// minor-unit amount scaled to major units.
func ProductFromItem(item *commerce.CatalogItem, catalog *commerce.Catalog, stall *marketplace.Stall, sellerPublicKey string) (*marketplace.Product, error) {
	variation, ok := item.PrimaryVariation()
	if !ok {
		return nil, fmt.Errorf("item %s: %w", item.ID, marketplace.ErrProductNoVariation)
	}

	shipping := []marketplace.ProductShipping{}
	for _, zone := range stall.Shipping {
		shipping = append(shipping, marketplace.ProductShipping{ID: zone.ID, Cost: decimal.Zero})
	}

	return &marketplace.Product{
		ID:          item.ID,
		StallID:     stall.ID,
		Name:        item.Name,
		Description: item.Description,
		Images:      catalog.ImageURLs(item.ImageIDs),
		Currency:    variation.PriceCurrency,
		Price:       decimal.New(variation.PriceAmount, -2),
		Quantity:    marketplace.DefaultProductQuantity,
		Shipping:    shipping,
		Categories:  catalog.CategoryNames(item.CategoryIDs),
		Seller:      sellerPublicKey,
	}, nil
}
