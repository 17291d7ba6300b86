package publishing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
)

// Result is the per-batch accounting of a bulk publish. The batch always
// attempts every entry and reports exact counts; failures are reconciled
// out-of-band, not retried here.
type Result struct {
	Published int `json:"published"`
	Failed    int `json:"failed"`
}

// Publisher maps platform records to marketplace entities and pushes them to
// the network with per-item failure accounting.
type Publisher struct {
	network marketplace.Client
	logger  *zap.Logger
}

// NewPublisher creates a publisher backed by the given network client
func NewPublisher(network marketplace.Client, logger *zap.Logger) *Publisher {
	return &Publisher{network: network, logger: logger}
}

// PublishStalls maps each location to a stall and publishes them one by one.
// A failed stall is counted and the batch continues.
func (p *Publisher) PublishStalls(ctx context.Context, locations []commerce.Location, privateKey string) (Result, error) {
	var result Result
	for i := range locations {
		stall := StallFromLocation(&locations[i])
		if err := stall.Validate(); err != nil {
			p.logger.Warn("stall mapping failed",
				zap.String("location_id", locations[i].ID),
				zap.Error(err))
			result.Failed++
			continue
		}
		if err := p.network.PublishStall(ctx, stall, privateKey); err != nil {
			p.logger.Warn("stall publish failed",
				zap.String("stall_id", stall.ID),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Published++
	}
	return result, nil
}

// PublishProducts maps each catalog item to a product and publishes them one
// by one, in catalog order. Every product needs a stall reference, so when
// the merchant has no stalls the whole batch is reported failed without a
// single publish attempt. A failure while resolving stalls is fatal to the
// call; a failure mapping or publishing one item only increments the counter.
func (p *Publisher) PublishProducts(ctx context.Context, catalog *commerce.Catalog, privateKey string) (Result, error) {
	publicKey, err := p.network.DerivePublicKey(privateKey)
	if err != nil {
		return Result{}, fmt.Errorf("derive public key: %w", err)
	}

	stalls, err := p.network.ListStalls(ctx, publicKey)
	if err != nil {
		return Result{}, fmt.Errorf("list stalls: %w", err)
	}
	if len(stalls) == 0 {
		p.logger.Warn("no stalls published for merchant, failing whole batch",
			zap.Int("items", len(catalog.Items)))
		return Result{Failed: len(catalog.Items)}, nil
	}
	stall := &stalls[0]

	var result Result
	for i := range catalog.Items {
		item := &catalog.Items[i]
		product, err := ProductFromItem(item, catalog, stall, publicKey)
		if err == nil {
			err = product.Validate()
		}
		if err != nil {
			p.logger.Warn("product mapping failed",
				zap.String("item_id", item.ID),
				zap.Error(err))
			result.Failed++
			continue
		}
		if err := p.network.PublishProduct(ctx, product, privateKey); err != nil {
			p.logger.Warn("product publish failed",
				zap.String("item_id", item.ID),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Published++
	}
	return result, nil
}
