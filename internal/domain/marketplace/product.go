package marketplace

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIDRequired indicates a product without an ID
	ErrProductIDRequired = errors.New("marketplace: product ID is required")
	// ErrProductStallRequired indicates a product without a stall reference
	ErrProductStallRequired = errors.New("marketplace: product stall ID is required")
	// ErrProductNoVariation indicates a catalog item with no purchasable
	// variation, which cannot be priced
	ErrProductNoVariation = errors.New("marketplace: item has no primary variation")
)

// DefaultProductQuantity is the placeholder quantity published for every
// product. Whether it should reflect live inventory is unresolved upstream.
const DefaultProductQuantity = 10

// ProductShipping is a per-product shipping cost entry tied to one of the
// stall's shipping zones
type ProductShipping struct {
	// ID references a shipping zone of the product's stall
	ID string `json:"id"`
	// Cost is the extra shipping cost for this product
	Cost decimal.Decimal `json:"cost"`
}

// Product is the network's representation of a catalog item
type Product struct {
	// ID is the product identifier (the platform item ID)
	ID string `json:"id"`
	// StallID references the stall the product is sold from
	StallID string `json:"stall_id"`
	// Name is the product name
	Name string `json:"name"`
	// Description is the product description
	Description string `json:"description"`
	// Images are the resolved product image URLs
	Images []string `json:"images"`
	// Currency is the ISO currency code of the price
	Currency string `json:"currency"`
	// Price is the major-unit price derived from the primary variation
	Price decimal.Decimal `json:"price"`
	// Quantity is the published stock quantity (fixed placeholder)
	Quantity int `json:"quantity"`
	// Shipping holds per-product shipping cost entries
	Shipping []ProductShipping `json:"shipping"`
	// Categories are the resolved category names
	Categories []string `json:"categories"`
	// Seller is the merchant's public key
	Seller string `json:"seller"`
}

// Validate checks the product's invariants
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrProductIDRequired
	}
	if p.StallID == "" {
		return ErrProductStallRequired
	}
	return nil
}
