package marketplace

import (
	"context"
	"errors"
)

// ---------------------------------------------------------------------------
// Network Errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidPrivateKey indicates a private key the network client cannot use
	ErrInvalidPrivateKey = errors.New("marketplace: invalid private key")
	// ErrPublishFailed indicates an event was rejected by every relay
	ErrPublishFailed = errors.New("marketplace: publish failed")
	// ErrNetworkUnavailable indicates no relay could be reached
	ErrNetworkUnavailable = errors.New("marketplace: network unavailable")
)

// KeyPair is a freshly generated network identity
type KeyPair struct {
	// PrivateKey is the signing key, stored in the credential row
	PrivateKey string
	// PublicKey is the derived public key
	PublicKey string
}

// Client defines the port interface for the marketplace network. Concrete
// implementations (relay transport, key handling) live in the infrastructure
// layer; the core consumes only this narrow surface.
type Client interface {
	// GenerateKeyPair creates a fresh asymmetric keypair. Pure local
	// computation, no network side effects.
	GenerateKeyPair() (KeyPair, error)

	// DerivePublicKey derives the public key from a private key
	DerivePublicKey(privateKey string) (string, error)

	// PublishProfile signs and publishes the profile with the private key
	PublishProfile(ctx context.Context, profile *Profile, privateKey string) error

	// GetProfile fetches the profile currently published for the key, or
	// ErrProfileNotFound when the network has none
	GetProfile(ctx context.Context, privateKey string) (*Profile, error)

	// ListStalls lists the stalls published by the public key
	ListStalls(ctx context.Context, publicKey string) ([]Stall, error)

	// PublishStall signs and publishes a stall
	PublishStall(ctx context.Context, stall *Stall, privateKey string) error

	// PublishProduct signs and publishes a product
	PublishProduct(ctx context.Context, product *Product, privateKey string) error
}
