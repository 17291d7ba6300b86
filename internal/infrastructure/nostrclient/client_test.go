package nostrclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
)

func newTestClient() *Client {
	return NewClient(&config.NostrConfig{
		Relays:         []string{"wss://relay.example.com"},
		TimeoutSeconds: 1,
	}, zap.NewNop())
}

func TestGenerateKeyPair(t *testing.T) {
	client := newTestClient()

	pair, err := client.GenerateKeyPair()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.PrivateKey, "nsec"))
	assert.True(t, strings.HasPrefix(pair.PublicKey, "npub"))

	derived, err := client.DerivePublicKey(pair.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, derived)
}

func TestDerivePublicKey_InvalidKey(t *testing.T) {
	client := newTestClient()

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "garbage", key: "not-a-key"},
		{name: "truncated nsec", key: "nsec1abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.DerivePublicKey(tt.key)
			assert.ErrorIs(t, err, marketplace.ErrInvalidPrivateKey)
		})
	}
}

func TestBuildProfileEvent(t *testing.T) {
	profile := &marketplace.Profile{
		Name:        "acme",
		About:       "Coffee and pastries",
		DisplayName: "ACME Coffee",
		Identifier:  "acme@synvya.com",
		Namespace:   marketplace.DefaultNamespace,
		ProfileType: marketplace.ProfileTypeRestaurant,
		Hashtags:    []string{"coffee", "bakery"},
		Website:     "https://acme.example.com",
	}

	event, err := buildProfileEvent(profile)
	require.NoError(t, err)
	assert.Equal(t, 0, event.Kind)

	var content profileContent
	require.NoError(t, json.Unmarshal([]byte(event.Content), &content))
	assert.Equal(t, "acme", content.Name)
	assert.Equal(t, "ACME Coffee", content.DisplayName)
	assert.Equal(t, "acme@synvya.com", content.NIP05)

	label := event.Tags.GetFirst([]string{"l"})
	require.NotNil(t, label)
	assert.Equal(t, "business.restaurant", label.Value())

	var hashtags []string
	for _, tag := range event.Tags {
		if len(tag) >= 2 && tag[0] == "t" {
			hashtags = append(hashtags, tag[1])
		}
	}
	assert.Equal(t, []string{"coffee", "bakery"}, hashtags)
}

func TestBuildStallEvent(t *testing.T) {
	stall := &marketplace.Stall{
		ID:       "LOC123",
		Name:     "Main Street",
		Currency: "USD",
		Shipping: []marketplace.ShippingZone{
			{ID: "LOC123-shipping", Name: "Local pickup", Cost: decimal.Zero, Regions: []string{"US"}},
		},
	}

	event, err := buildStallEvent(stall)
	require.NoError(t, err)
	assert.Equal(t, kindStall, event.Kind)

	d := event.Tags.GetFirst([]string{"d"})
	require.NotNil(t, d)
	assert.Equal(t, "LOC123", d.Value())

	var content stallContent
	require.NoError(t, json.Unmarshal([]byte(event.Content), &content))
	require.Len(t, content.Shipping, 1)
	assert.Zero(t, content.Shipping[0].Cost)
	assert.Equal(t, []string{"US"}, content.Shipping[0].Regions)
}

func TestBuildProductEvent(t *testing.T) {
	product := &marketplace.Product{
		ID:         "ITEM456",
		StallID:    "LOC123",
		Name:       "Espresso",
		Currency:   "USD",
		Price:      decimal.RequireFromString("19.99"),
		Quantity:   marketplace.DefaultProductQuantity,
		Categories: []string{"Drinks"},
	}

	event, err := buildProductEvent(product)
	require.NoError(t, err)
	assert.Equal(t, kindProduct, event.Kind)

	var content productContent
	require.NoError(t, json.Unmarshal([]byte(event.Content), &content))
	assert.Equal(t, "LOC123", content.StallID)
	assert.InDelta(t, 19.99, content.Price, 0.0001)
	assert.Equal(t, 10, content.Quantity)

	category := event.Tags.GetFirst([]string{"t"})
	require.NotNil(t, category)
	assert.Equal(t, "Drinks", category.Value())
}

func TestStallFromEvent_FallsBackToDTag(t *testing.T) {
	event, err := buildStallEvent(&marketplace.Stall{ID: "LOC9", Name: "Annex", Currency: "EUR"})
	require.NoError(t, err)

	// strip the id from the content to force the d-tag fallback
	var content stallContent
	require.NoError(t, json.Unmarshal([]byte(event.Content), &content))
	content.ID = ""
	raw, err := json.Marshal(content)
	require.NoError(t, err)
	event.Content = string(raw)

	stall, err := stallFromEvent(&event)
	require.NoError(t, err)
	assert.Equal(t, "LOC9", stall.ID)
	assert.Equal(t, "EUR", stall.Currency)
}
