package onboarding

import "github.com/synvya/retail-backend/internal/infrastructure/auth"

// Result is the caller-facing outcome of a completed OAuth flow
type Result struct {
	// MerchantID is the platform merchant identifier
	MerchantID string `json:"merchant_id"`
	// SessionToken is the API session credential bound to the merchant
	SessionToken *auth.SessionToken `json:"session"`
	// NewMerchant reports whether this call created the credential row
	NewMerchant bool `json:"new_merchant"`
	// ProfilePublished reports whether the initial profile reached the
	// network. Always false for returning merchants, and false when the
	// publish failed during a first onboarding.
	ProfilePublished bool `json:"profile_published"`
}
