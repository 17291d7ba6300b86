package onboarding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/application/publishing"
	"github.com/synvya/retail-backend/internal/domain/commerce"
	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/infrastructure/auth"
)

// TokenIssuer mints session tokens for the API
type TokenIssuer interface {
	GenerateToken(merchantID string) (*auth.SessionToken, error)
}

// Authorizer builds the platform's OAuth authorization URL
type Authorizer interface {
	AuthorizeURL(state string) string
}

// Service runs the OAuth completion flow: exchange the authorization code,
// resolve the credential row, ensure an identity key, publish the initial
// profile for new merchants, and mint a session token.
type Service struct {
	credentials merchant.CredentialRepository
	platform    commerce.Client
	network     marketplace.Client
	provisioner *Provisioner
	profiles    *publishing.Service
	tokens      TokenIssuer
	authorizer  Authorizer
	environment merchant.Environment
	logger      *zap.Logger
}

// NewService creates a new onboarding service
func NewService(
	credentials merchant.CredentialRepository,
	platform commerce.Client,
	network marketplace.Client,
	provisioner *Provisioner,
	profiles *publishing.Service,
	tokens TokenIssuer,
	authorizer Authorizer,
	environment merchant.Environment,
	logger *zap.Logger,
) *Service {
	return &Service{
		credentials: credentials,
		platform:    platform,
		network:     network,
		provisioner: provisioner,
		profiles:    profiles,
		tokens:      tokens,
		authorizer:  authorizer,
		environment: environment,
		logger:      logger,
	}
}

// AuthorizeURL builds the platform authorization URL for the given state
func (s *Service) AuthorizeURL(state string) string {
	return s.authorizer.AuthorizeURL(state)
}

// CompleteOAuth runs the onboarding flow for an authorization code. Failures
// up to identity provisioning are fatal and propagate to the caller. A
// profile-publish failure for a new merchant is logged and swallowed; the
// flow still completes and reports ProfilePublished=false.
func (s *Service) CompleteOAuth(ctx context.Context, code string) (*Result, error) {
	grant, err := s.platform.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	cred, created, err := s.credentials.Upsert(ctx, grant.MerchantID, grant.AccessToken, s.environment)
	if err != nil {
		return nil, fmt.Errorf("resolve credential: %w", err)
	}

	privateKey, err := s.provisioner.EnsureIdentity(ctx, cred)
	if err != nil {
		return nil, err
	}

	profilePublished := false
	if created {
		// publish failures here must not abort onboarding; returning
		// merchants republish through the explicit profile endpoint
		profilePublished = s.publishInitialProfile(ctx, cred.AccessToken, privateKey, grant.MerchantID)
	}

	session, err := s.tokens.GenerateToken(grant.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("onboarding complete",
		zap.String("merchant_id", grant.MerchantID),
		zap.Bool("new_merchant", created),
		zap.Bool("profile_published", profilePublished))

	return &Result{
		MerchantID:       grant.MerchantID,
		SessionToken:     session,
		NewMerchant:      created,
		ProfilePublished: profilePublished,
	}, nil
}

func (s *Service) publishInitialProfile(ctx context.Context, accessToken, privateKey, merchantID string) bool {
	profile, err := s.profiles.BuildProfile(ctx, accessToken)
	if err != nil {
		s.logger.Warn("initial profile build failed",
			zap.String("merchant_id", merchantID),
			zap.Error(err))
		return false
	}
	if err := s.network.PublishProfile(ctx, profile, privateKey); err != nil {
		s.logger.Warn("initial profile publish failed",
			zap.String("merchant_id", merchantID),
			zap.Error(err))
		return false
	}
	return true
}
