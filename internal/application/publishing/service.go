package publishing

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/domain/shared"
)

// Service exposes the standalone synchronization operations for merchants
// that already completed onboarding: inspecting the platform snapshot,
// reading and republishing the profile, and bulk-publishing stalls and
// products.
type Service struct {
	credentials merchant.CredentialRepository
	platform    commerce.Client
	network     marketplace.Client
	publisher   *Publisher
	logger      *zap.Logger
}

// NewService creates a new synchronization service
func NewService(
	credentials merchant.CredentialRepository,
	platform commerce.Client,
	network marketplace.Client,
	publisher *Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		credentials: credentials,
		platform:    platform,
		network:     network,
		publisher:   publisher,
		logger:      logger,
	}
}

// credential loads the merchant's credential row
func (s *Service) credential(ctx context.Context, merchantID string) (*merchant.Credential, error) {
	return s.credentials.FindByMerchantID(ctx, merchantID)
}

// signingCredential loads the credential and requires its private key. An
// existing row without a key is a corrupted record, not a first-time path.
func (s *Service) signingCredential(ctx context.Context, merchantID string) (*merchant.Credential, error) {
	cred, err := s.credentials.FindByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !cred.HasPrivateKey() {
		return nil, fmt.Errorf("merchant %s: %w: %w", merchantID, shared.ErrDataIntegrity, merchant.ErrPrivateKeyMissing)
	}
	return cred, nil
}

// GetSellerInfo fetches the merchant account, locations and catalog items
// from the platform. The three calls are independent, so they run
// concurrently and join before returning.
func (s *Service) GetSellerInfo(ctx context.Context, merchantID string) (*SellerInfo, error) {
	cred, err := s.credential(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	var (
		account   *commerce.MerchantAccount
		locations []commerce.Location
		catalog   *commerce.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.platform.RetrieveMerchant(gctx, cred.AccessToken)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.platform.ListLocations(gctx, cred.AccessToken)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.platform.ListCatalog(gctx, cred.AccessToken, commerce.CatalogObjectTypeItem)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SellerInfo{
		Merchant:  account,
		Locations: locations,
		Items:     catalog.Items,
	}, nil
}

// GetProfile reads the profile currently published on the network for the
// merchant's identity key
func (s *Service) GetProfile(ctx context.Context, merchantID string) (*marketplace.Profile, error) {
	cred, err := s.signingCredential(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return s.network.GetProfile(ctx, cred.PrivateKey)
}

// PublishProfile publishes a profile for the merchant. With a supplied
// profile it publishes that, after discarding its key-derived fields; with
// nil it rebuilds the profile from the current platform snapshot. The public
// key and profile URL are always derived server-side from the signing key.
func (s *Service) PublishProfile(ctx context.Context, merchantID string, supplied *marketplace.Profile) (*marketplace.Profile, error) {
	cred, err := s.signingCredential(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	var profile *marketplace.Profile
	if supplied != nil {
		profile = supplied
		profile.PublicKey = ""
		profile.ProfileURL = ""
		profile.Normalize()
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
		}
	} else {
		profile, err = s.BuildProfile(ctx, cred.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	if err := s.network.PublishProfile(ctx, profile, cred.PrivateKey); err != nil {
		return nil, err
	}

	s.logger.Info("profile published",
		zap.String("merchant_id", merchantID),
		zap.String("name", profile.Name))
	return profile, nil
}

// PublishStalls maps every platform location to a stall and publishes the
// batch, reporting per-item counts
func (s *Service) PublishStalls(ctx context.Context, merchantID string) (Result, error) {
	cred, err := s.signingCredential(ctx, merchantID)
	if err != nil {
		return Result{}, err
	}

	locations, err := s.platform.ListLocations(ctx, cred.AccessToken)
	if err != nil {
		return Result{}, fmt.Errorf("list locations: %w", err)
	}

	result, err := s.publisher.PublishStalls(ctx, locations, cred.PrivateKey)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("stall batch published",
		zap.String("merchant_id", merchantID),
		zap.Int("published", result.Published),
		zap.Int("failed", result.Failed))
	return result, nil
}

// PublishProducts maps every catalog item to a product and publishes the
// batch, reporting per-item counts
func (s *Service) PublishProducts(ctx context.Context, merchantID string) (Result, error) {
	cred, err := s.signingCredential(ctx, merchantID)
	if err != nil {
		return Result{}, err
	}

	catalog, err := s.platform.ListCatalog(ctx, cred.AccessToken,
		commerce.CatalogObjectTypeItem, commerce.CatalogObjectTypeCategory, commerce.CatalogObjectTypeImage)
	if err != nil {
		return Result{}, fmt.Errorf("list catalog: %w", err)
	}

	result, err := s.publisher.PublishProducts(ctx, catalog, cred.PrivateKey)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("product batch published",
		zap.String("merchant_id", merchantID),
		zap.Int("published", result.Published),
		zap.Int("failed", result.Failed))
	return result, nil
}

// BuildProfile assembles the profile from platform data. Merchant account,
// locations and category list are fetched concurrently.
func (s *Service) BuildProfile(ctx context.Context, accessToken string) (*marketplace.Profile, error) {
	var (
		account   *commerce.MerchantAccount
		locations []commerce.Location
		catalog   *commerce.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.platform.RetrieveMerchant(gctx, accessToken)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.platform.ListLocations(gctx, accessToken)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.platform.ListCatalog(gctx, accessToken, commerce.CatalogObjectTypeCategory)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ProfileFromSnapshot(account, locations, catalog.Categories), nil
}
