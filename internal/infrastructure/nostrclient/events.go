package nostrclient

import (
	"encoding/json"

	"github.com/nbd-wtf/go-nostr"
	"github.com/shopspring/decimal"

	"github.com/synvya/retail-backend/internal/domain/marketplace"
)

// Event kinds used by the marketplace (NIP-15)
const (
	kindStall   = 30017
	kindProduct = 30018
)

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// profileContent is the kind-0 metadata payload (NIP-24 field names)
type profileContent struct {
	Name        string   `json:"name"`
	About       string   `json:"about"`
	Banner      string   `json:"banner"`
	Bot         bool     `json:"bot"`
	DisplayName string   `json:"display_name"`
	NIP05       string   `json:"nip05"`
	Picture     string   `json:"picture"`
	Website     string   `json:"website"`
	Locations   []string `json:"locations,omitempty"`
}

// stallContent is the kind-30017 stall payload
type stallContent struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Currency    string             `json:"currency"`
	Shipping    []shippingZoneWire `json:"shipping"`
}

type shippingZoneWire struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Cost    float64  `json:"cost"`
	Regions []string `json:"regions"`
}

// productContent is the kind-30018 product payload
type productContent struct {
	ID          string             `json:"id"`
	StallID     string             `json:"stall_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Images      []string           `json:"images"`
	Currency    string             `json:"currency"`
	Price       float64            `json:"price"`
	Quantity    int                `json:"quantity"`
	Shipping    []shippingCostWire `json:"shipping"`
}

type shippingCostWire struct {
	ID   string  `json:"id"`
	Cost float64 `json:"cost"`
}

// buildProfileEvent builds the unsigned kind-0 event for a profile. The
// namespace label, profile type label and hashtags travel as tags; everything
// else is metadata content.
func buildProfileEvent(profile *marketplace.Profile) (nostr.Event, error) {
	content := profileContent{
		Name:        profile.Name,
		About:       profile.About,
		Banner:      profile.Banner,
		Bot:         profile.Bot,
		DisplayName: profile.DisplayName,
		NIP05:       profile.Identifier,
		Picture:     profile.Picture,
		Website:     profile.Website,
		Locations:   profile.Locations,
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nostr.Event{}, err
	}

	tags := nostr.Tags{
		nostr.Tag{"L", profile.Namespace},
		nostr.Tag{"l", profile.ProfileType.String(), profile.Namespace},
	}
	for _, hashtag := range profile.Hashtags {
		tags = append(tags, nostr.Tag{"t", hashtag})
	}

	return nostr.Event{
		CreatedAt: nostr.Now(),
		Kind:      nostr.KindProfileMetadata,
		Tags:      tags,
		Content:   string(data),
	}, nil
}

// buildStallEvent builds the unsigned kind-30017 event for a stall
func buildStallEvent(stall *marketplace.Stall) (nostr.Event, error) {
	content := stallContent{
		ID:          stall.ID,
		Name:        stall.Name,
		Description: stall.Description,
		Currency:    stall.Currency,
		Shipping:    make([]shippingZoneWire, 0, len(stall.Shipping)),
	}
	for _, zone := range stall.Shipping {
		cost, _ := zone.Cost.Float64()
		content.Shipping = append(content.Shipping, shippingZoneWire{
			ID:      zone.ID,
			Name:    zone.Name,
			Cost:    cost,
			Regions: zone.Regions,
		})
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nostr.Event{}, err
	}

	tags := nostr.Tags{nostr.Tag{"d", stall.ID}}
	if stall.Geohash != "" {
		tags = append(tags, nostr.Tag{"g", stall.Geohash})
	}

	return nostr.Event{
		CreatedAt: nostr.Now(),
		Kind:      kindStall,
		Tags:      tags,
		Content:   string(data),
	}, nil
}

// buildProductEvent builds the unsigned kind-30018 event for a product.
// Category names travel as t tags per NIP-15.
func buildProductEvent(product *marketplace.Product) (nostr.Event, error) {
	price, _ := product.Price.Float64()
	content := productContent{
		ID:          product.ID,
		StallID:     product.StallID,
		Name:        product.Name,
		Description: product.Description,
		Images:      product.Images,
		Currency:    product.Currency,
		Price:       price,
		Quantity:    product.Quantity,
		Shipping:    make([]shippingCostWire, 0, len(product.Shipping)),
	}
	for _, s := range product.Shipping {
		cost, _ := s.Cost.Float64()
		content.Shipping = append(content.Shipping, shippingCostWire{ID: s.ID, Cost: cost})
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nostr.Event{}, err
	}

	tags := nostr.Tags{nostr.Tag{"d", product.ID}}
	for _, category := range product.Categories {
		tags = append(tags, nostr.Tag{"t", category})
	}

	return nostr.Event{
		CreatedAt: nostr.Now(),
		Kind:      kindProduct,
		Tags:      tags,
		Content:   string(data),
	}, nil
}
