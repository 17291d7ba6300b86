package publishing

import "github.com/synvya/retail-backend/internal/domain/commerce"

// SellerInfo bundles the merchant's current platform snapshot for display
type SellerInfo struct {
	Merchant  *commerce.MerchantAccount `json:"merchant"`
	Locations []commerce.Location       `json:"locations"`
	Items     []commerce.CatalogItem    `json:"items"`
}
