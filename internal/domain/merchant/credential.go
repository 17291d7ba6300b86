package merchant

import (
	"context"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Credential Errors
// ---------------------------------------------------------------------------

var (
	// ErrCredentialNotFound indicates no credential row exists for the merchant
	ErrCredentialNotFound = errors.New("merchant: credential not found")
	// ErrInvalidMerchantID indicates an empty or malformed merchant ID
	ErrInvalidMerchantID = errors.New("merchant: invalid merchant ID")
	// ErrInvalidAccessToken indicates an empty platform access token
	ErrInvalidAccessToken = errors.New("merchant: invalid access token")
	// ErrInvalidEnvironment indicates an unknown platform environment
	ErrInvalidEnvironment = errors.New("merchant: invalid environment")
	// ErrPrivateKeyAlreadySet indicates an attempt to overwrite a provisioned key.
	// The key is write-once; hitting this on a normal path is a data-integrity fault.
	ErrPrivateKeyAlreadySet = errors.New("merchant: private key already set")
	// ErrPrivateKeyMissing indicates a flow required the key of an existing
	// credential and found none
	ErrPrivateKeyMissing = errors.New("merchant: private key missing for existing credential")
	// ErrInvalidPrivateKey indicates an empty private key was supplied
	ErrInvalidPrivateKey = errors.New("merchant: invalid private key")
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// Environment identifies which platform environment issued the access token.
// It is set when the credential row is created and never changed afterward.
type Environment string

const (
	// EnvironmentSandbox is the platform's sandbox environment
	EnvironmentSandbox Environment = "sandbox"
	// EnvironmentProduction is the live platform environment
	EnvironmentProduction Environment = "production"
)

// IsValid returns true if the environment is valid
func (e Environment) IsValid() bool {
	switch e {
	case EnvironmentSandbox, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// String returns the string representation of Environment
func (e Environment) String() string {
	return string(e)
}

// ---------------------------------------------------------------------------
// Credential
// ---------------------------------------------------------------------------

// Credential binds a platform merchant ID to its OAuth access token and its
// marketplace signing key. One row exists per merchant.
type Credential struct {
	// MerchantID is the platform-assigned merchant identifier (primary key)
	MerchantID string
	// AccessToken is the platform OAuth access token. It is overwritten on
	// every successful re-authorization.
	AccessToken string
	// Environment is the platform environment the token belongs to
	Environment Environment
	// PrivateKey is the merchant's marketplace signing key. Empty until first
	// onboarding completes; write-once afterwards.
	PrivateKey string
	// CreatedAt is when the credential row was created
	CreatedAt time.Time
}

// HasPrivateKey returns true once an identity key has been provisioned
func (c *Credential) HasPrivateKey() bool {
	return c.PrivateKey != ""
}

// Validate checks the credential's invariants
func (c *Credential) Validate() error {
	if c.MerchantID == "" {
		return ErrInvalidMerchantID
	}
	if c.AccessToken == "" {
		return ErrInvalidAccessToken
	}
	if !c.Environment.IsValid() {
		return ErrInvalidEnvironment
	}
	return nil
}

// ---------------------------------------------------------------------------
// CredentialRepository Port
// ---------------------------------------------------------------------------

// CredentialRepository defines the persistence port for merchant credentials.
// Implementations live in the infrastructure layer. Every method executes as
// a single atomic unit; concurrent readers never observe partial writes.
type CredentialRepository interface {
	// FindByMerchantID returns the credential for the merchant, or
	// ErrCredentialNotFound if none exists
	FindByMerchantID(ctx context.Context, merchantID string) (*Credential, error)

	// Upsert creates the credential row if absent (with no private key) or
	// updates only the access token if present. The private key and the
	// environment are never touched on the update path. The returned bool is
	// true when a new row was created. Create-if-absent is idempotent per
	// merchant ID: a concurrent duplicate create degenerates to a token update.
	Upsert(ctx context.Context, merchantID, accessToken string, env Environment) (*Credential, bool, error)

	// AttachPrivateKey sets the private key for a credential that has none.
	// It returns ErrPrivateKeyAlreadySet if a key is already present (the
	// stored key is left unchanged) and ErrCredentialNotFound if the row
	// does not exist.
	AttachPrivateKey(ctx context.Context, merchantID, privateKey string) error
}
