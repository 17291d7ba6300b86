package models

import (
	"time"

	"github.com/synvya/retail-backend/internal/domain/merchant"
)

// CredentialModel is the persistence model for the merchant Credential entity.
// The private key column is nullable: NULL means no identity has been
// provisioned yet. The write-once guard lives in the repository, not here.
type CredentialModel struct {
	MerchantID  string    `gorm:"type:varchar(64);primary_key"`
	AccessToken string    `gorm:"type:text;not null;column:access_token"`
	Environment string    `gorm:"type:varchar(16);not null"`
	PrivateKey  *string   `gorm:"type:text;column:private_key"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "oauth_credentials"
}

// ToDomain converts the persistence model to a domain Credential entity
func (m *CredentialModel) ToDomain() *merchant.Credential {
	cred := &merchant.Credential{
		MerchantID:  m.MerchantID,
		AccessToken: m.AccessToken,
		Environment: merchant.Environment(m.Environment),
		CreatedAt:   m.CreatedAt,
	}
	if m.PrivateKey != nil {
		cred.PrivateKey = *m.PrivateKey
	}
	return cred
}

// FromDomain populates the persistence model from a domain Credential entity
func (m *CredentialModel) FromDomain(c *merchant.Credential) {
	m.MerchantID = c.MerchantID
	m.AccessToken = c.AccessToken
	m.Environment = string(c.Environment)
	if c.PrivateKey != "" {
		key := c.PrivateKey
		m.PrivateKey = &key
	} else {
		m.PrivateKey = nil
	}
	m.CreatedAt = c.CreatedAt
}
