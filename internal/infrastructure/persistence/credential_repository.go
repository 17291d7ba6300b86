package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/synvya/retail-backend/internal/domain/merchant"
	"github.com/synvya/retail-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCredentialRepository implements merchant.CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByMerchantID finds a credential by its merchant ID
func (r *GormCredentialRepository) FindByMerchantID(ctx context.Context, merchantID string) (*merchant.Credential, error) {
	if merchantID == "" {
		return nil, merchant.ErrInvalidMerchantID
	}

	var model models.CredentialModel
	if err := r.db.WithContext(ctx).First(&model, "merchant_id = ?", merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, merchant.ErrCredentialNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert creates the credential row if absent or updates only the access
// token if present. The conflict clause makes create-if-absent idempotent per
// merchant ID: the losing side of a concurrent first onboarding degenerates
// to a token update, so at most one row ever exists and the private key and
// environment are never touched on the update path.
func (r *GormCredentialRepository) Upsert(ctx context.Context, merchantID, accessToken string, env merchant.Environment) (*merchant.Credential, bool, error) {
	candidate := &merchant.Credential{
		MerchantID:  merchantID,
		AccessToken: accessToken,
		Environment: env,
		CreatedAt:   time.Now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return nil, false, err
	}

	var existed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CredentialModel{}).
			Where("merchant_id = ?", merchantID).
			Count(&count).Error; err != nil {
			return err
		}
		existed = count > 0

		var model models.CredentialModel
		model.FromDomain(candidate)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "merchant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token"}),
		}).Create(&model).Error
	})
	if err != nil {
		return nil, false, err
	}

	cred, err := r.FindByMerchantID(ctx, merchantID)
	if err != nil {
		return nil, false, err
	}
	return cred, !existed, nil
}

// AttachPrivateKey sets the private key for a credential that has none. The
// guard is pushed into the UPDATE's WHERE clause so the write-once invariant
// holds under concurrency: zero affected rows means either the row is missing
// or a key already exists, distinguished by a follow-up read.
func (r *GormCredentialRepository) AttachPrivateKey(ctx context.Context, merchantID, privateKey string) error {
	if merchantID == "" {
		return merchant.ErrInvalidMerchantID
	}
	if privateKey == "" {
		return merchant.ErrInvalidPrivateKey
	}

	result := r.db.WithContext(ctx).
		Model(&models.CredentialModel{}).
		Where("merchant_id = ? AND (private_key IS NULL OR private_key = '')", merchantID).
		Update("private_key", privateKey)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.FindByMerchantID(ctx, merchantID); err != nil {
		return err
	}
	return merchant.ErrPrivateKeyAlreadySet
}
