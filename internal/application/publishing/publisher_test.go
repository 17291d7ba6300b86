package publishing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
)

// fakeNetwork is a hand-rolled marketplace.Client for publisher tests
type fakeNetwork struct {
	stalls          []marketplace.Stall
	listStallsErr   error
	failProducts    map[string]error
	failStalls      map[string]error
	publishedStalls []string
	attempted       []string
}

func (f *fakeNetwork) GenerateKeyPair() (marketplace.KeyPair, error) {
	return marketplace.KeyPair{PrivateKey: "nsec1test", PublicKey: "npub1test"}, nil
}

func (f *fakeNetwork) DerivePublicKey(privateKey string) (string, error) {
	return "npub1test", nil
}

func (f *fakeNetwork) PublishProfile(ctx context.Context, profile *marketplace.Profile, privateKey string) error {
	return nil
}

func (f *fakeNetwork) GetProfile(ctx context.Context, privateKey string) (*marketplace.Profile, error) {
	return nil, marketplace.ErrProfileNotFound
}

func (f *fakeNetwork) ListStalls(ctx context.Context, publicKey string) ([]marketplace.Stall, error) {
	if f.listStallsErr != nil {
		return nil, f.listStallsErr
	}
	return f.stalls, nil
}

func (f *fakeNetwork) PublishStall(ctx context.Context, stall *marketplace.Stall, privateKey string) error {
	if err := f.failStalls[stall.ID]; err != nil {
		return err
	}
	f.publishedStalls = append(f.publishedStalls, stall.ID)
	return nil
}

func (f *fakeNetwork) PublishProduct(ctx context.Context, product *marketplace.Product, privateKey string) error {
	f.attempted = append(f.attempted, product.ID)
	return f.failProducts[product.ID]
}

func itemWithVariation(id string) commerce.CatalogItem {
	return commerce.CatalogItem{
		ID:   id,
		Name: "Item " + id,
		Variations: []commerce.CatalogItemVariation{
			{ID: id + "-V", PriceAmount: 500, PriceCurrency: "USD"},
		},
	}
}

func TestPublishProducts_PartialFailure(t *testing.T) {
	network := &fakeNetwork{
		stalls: []marketplace.Stall{{ID: "L1"}},
		failProducts: map[string]error{
			"I2": errors.New("relay rejected"),
			"I4": errors.New("relay rejected"),
		},
	}
	publisher := NewPublisher(network, zap.NewNop())

	catalog := &commerce.Catalog{
		Items: []commerce.CatalogItem{
			itemWithVariation("I1"), itemWithVariation("I2"), itemWithVariation("I3"),
			itemWithVariation("I4"), itemWithVariation("I5"),
		},
	}

	result, err := publisher.PublishProducts(context.Background(), catalog, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 3, Failed: 2}, result)
	// every item is attempted, failures never abort the batch
	assert.Equal(t, []string{"I1", "I2", "I3", "I4", "I5"}, network.attempted)
}

func TestPublishProducts_NoStalls(t *testing.T) {
	network := &fakeNetwork{}
	publisher := NewPublisher(network, zap.NewNop())

	catalog := &commerce.Catalog{
		Items: []commerce.CatalogItem{
			itemWithVariation("I1"), itemWithVariation("I2"), itemWithVariation("I3"),
		},
	}

	result, err := publisher.PublishProducts(context.Background(), catalog, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 0, Failed: 3}, result)
	assert.Empty(t, network.attempted)
}

func TestPublishProducts_StallLookupFatal(t *testing.T) {
	network := &fakeNetwork{listStallsErr: marketplace.ErrNetworkUnavailable}
	publisher := NewPublisher(network, zap.NewNop())

	catalog := &commerce.Catalog{Items: []commerce.CatalogItem{itemWithVariation("I1")}}

	_, err := publisher.PublishProducts(context.Background(), catalog, "nsec1test")
	assert.ErrorIs(t, err, marketplace.ErrNetworkUnavailable)
}

func TestPublishProducts_MappingFailureCounted(t *testing.T) {
	network := &fakeNetwork{stalls: []marketplace.Stall{{ID: "L1"}}}
	publisher := NewPublisher(network, zap.NewNop())

	catalog := &commerce.Catalog{
		Items: []commerce.CatalogItem{
			itemWithVariation("I1"),
			{ID: "I2", Name: "no variation"},
		},
	}

	result, err := publisher.PublishProducts(context.Background(), catalog, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 1, Failed: 1}, result)
	assert.Equal(t, []string{"I1"}, network.attempted)
}

func TestPublishStalls(t *testing.T) {
	network := &fakeNetwork{
		failStalls: map[string]error{"L2": errors.New("relay rejected")},
	}
	publisher := NewPublisher(network, zap.NewNop())

	locations := []commerce.Location{
		{ID: "L1", Name: "Main", Country: "US", Currency: "USD"},
		{ID: "L2", Name: "Annex", Country: "US", Currency: "USD"},
		{ID: "L3", Name: "Kiosk", Country: "US", Currency: "USD"},
	}

	result, err := publisher.PublishStalls(context.Background(), locations, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 2, Failed: 1}, result)
	assert.Equal(t, []string{"L1", "L3"}, network.publishedStalls)
}

func TestPublishStalls_InvalidStallCounted(t *testing.T) {
	network := &fakeNetwork{}
	publisher := NewPublisher(network, zap.NewNop())

	locations := []commerce.Location{
		{ID: "L1", Name: "Main", Country: "US", Currency: "USD"},
		{ID: "L2", Country: "US", Currency: "USD"}, // no name, fails validation
	}

	result, err := publisher.PublishStalls(context.Background(), locations, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 1, Failed: 1}, result)
	assert.Equal(t, []string{"L1"}, network.publishedStalls)
}

func TestPublishProducts_InvalidProductCounted(t *testing.T) {
	network := &fakeNetwork{stalls: []marketplace.Stall{{ID: "L1"}}}
	publisher := NewPublisher(network, zap.NewNop())

	catalog := &commerce.Catalog{
		Items: []commerce.CatalogItem{
			itemWithVariation("I1"),
			itemWithVariation(""), // no ID, fails validation after mapping
		},
	}

	result, err := publisher.PublishProducts(context.Background(), catalog, "nsec1test")
	require.NoError(t, err)

	assert.Equal(t, Result{Published: 1, Failed: 1}, result)
	assert.Equal(t, []string{"I1"}, network.attempted)
}
