package onboarding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/domain/shared"
)

// Provisioner ensures exactly one network identity key exists per merchant
type Provisioner struct {
	credentials merchant.CredentialRepository
	network     marketplace.Client
	logger      *zap.Logger
}

// NewProvisioner creates a new identity provisioner
func NewProvisioner(credentials merchant.CredentialRepository, network marketplace.Client, logger *zap.Logger) *Provisioner {
	return &Provisioner{credentials: credentials, network: network, logger: logger}
}

// EnsureIdentity returns the merchant's private key, generating and
// attaching one if the credential has none yet. An existing key is returned
// verbatim with no generation or store write. When two first-time
// onboardings race, the store's guarded attach lets exactly one key win; the
// loser re-reads the row and adopts the winning key.
func (p *Provisioner) EnsureIdentity(ctx context.Context, cred *merchant.Credential) (string, error) {
	if cred.HasPrivateKey() {
		return cred.PrivateKey, nil
	}

	pair, err := p.network.GenerateKeyPair()
	if err != nil {
		return "", fmt.Errorf("generate keypair: %w", err)
	}

	err = p.credentials.AttachPrivateKey(ctx, cred.MerchantID, pair.PrivateKey)
	if err == nil {
		p.logger.Info("identity provisioned",
			zap.String("merchant_id", cred.MerchantID),
			zap.String("public_key", pair.PublicKey))
		return pair.PrivateKey, nil
	}

	if errors.Is(err, merchant.ErrPrivateKeyAlreadySet) {
		// lost the race, adopt the key the concurrent call attached
		current, findErr := p.credentials.FindByMerchantID(ctx, cred.MerchantID)
		if findErr != nil {
			return "", findErr
		}
		if !current.HasPrivateKey() {
			return "", fmt.Errorf("merchant %s: %w: %w", cred.MerchantID, shared.ErrDataIntegrity, merchant.ErrPrivateKeyMissing)
		}
		p.logger.Info("identity race lost, reusing attached key",
			zap.String("merchant_id", cred.MerchantID))
		return current.PrivateKey, nil
	}

	return "", fmt.Errorf("attach private key: %w", err)
}
