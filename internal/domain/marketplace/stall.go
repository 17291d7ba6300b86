package marketplace

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrStallIDRequired indicates a stall without an ID
	ErrStallIDRequired = errors.New("marketplace: stall ID is required")
	// ErrStallNameRequired indicates a stall without a name
	ErrStallNameRequired = errors.New("marketplace: stall name is required")
)

// ShippingZone is a shipping method offered by a stall
type ShippingZone struct {
	// ID is the shipping zone identifier
	ID string `json:"id"`
	// Name is the shipping method name
	Name string `json:"name"`
	// Cost is the base shipping cost in the stall's currency
	Cost decimal.Decimal `json:"cost"`
	// Regions are the regions the zone ships to
	Regions []string `json:"regions"`
}

// Stall is the network's representation of a merchant selling location.
// One stall exists per platform location.
type Stall struct {
	// ID is the stall identifier (the platform location ID)
	ID string `json:"id"`
	// Name is the stall name
	Name string `json:"name"`
	// Description is the stall description
	Description string `json:"description"`
	// Currency is the stall's trading currency
	Currency string `json:"currency"`
	// Shipping holds the stall's shipping methods
	Shipping []ShippingZone `json:"shipping"`
	// Geohash locates the stall geographically. Left empty in this version;
	// deriving it from the location coordinates is deferred.
	Geohash string `json:"geohash,omitempty"`
}

// Validate checks the stall's invariants
func (s *Stall) Validate() error {
	if s.ID == "" {
		return ErrStallIDRequired
	}
	if s.Name == "" {
		return ErrStallNameRequired
	}
	return nil
}
