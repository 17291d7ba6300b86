package square

// Wire types for the Square Connect API. Only the fields the backend reads
// are modeled; everything else in the payload is ignored.

type apiError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

type obtainTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
	RedirectURI  string `json:"redirect_uri"`
}

type obtainTokenResponse struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	ExpiresAt    string     `json:"expires_at"`
	MerchantID   string     `json:"merchant_id"`
	RefreshToken string     `json:"refresh_token"`
	Errors       []apiError `json:"errors,omitempty"`
}

type tokenStatusResponse struct {
	Scopes     []string   `json:"scopes"`
	ExpiresAt  string     `json:"expires_at"`
	ClientID   string     `json:"client_id"`
	MerchantID string     `json:"merchant_id"`
	Errors     []apiError `json:"errors,omitempty"`
}

type merchantObject struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Country      string `json:"country"`
	LanguageCode string `json:"language_code"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type retrieveMerchantResponse struct {
	Merchant *merchantObject `json:"merchant"`
	Errors   []apiError      `json:"errors,omitempty"`
}

type address struct {
	AddressLine1 string `json:"address_line_1"`
	Locality     string `json:"locality"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type locationObject struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	BusinessName string   `json:"business_name"`
	Address      *address `json:"address"`
	Currency     string   `json:"currency"`
	WebsiteURL   string   `json:"website_url"`
	Status       string   `json:"status"`
}

type listLocationsResponse struct {
	Locations []locationObject `json:"locations"`
	Errors    []apiError       `json:"errors,omitempty"`
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type itemVariationData struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	PriceMoney *money `json:"price_money"`
}

type itemData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Categories  []objectRef     `json:"categories"`
	ImageIDs    []string        `json:"image_ids"`
	Variations  []catalogObject `json:"variations"`
}

type objectRef struct {
	ID string `json:"id"`
}

type categoryData struct {
	Name string `json:"name"`
}

type imageData struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type catalogObject struct {
	Type              string             `json:"type"`
	ID                string             `json:"id"`
	ItemData          *itemData          `json:"item_data,omitempty"`
	ItemVariationData *itemVariationData `json:"item_variation_data,omitempty"`
	CategoryData      *categoryData      `json:"category_data,omitempty"`
	ImageData         *imageData         `json:"image_data,omitempty"`
}

type listCatalogResponse struct {
	Objects []catalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
	Errors  []apiError      `json:"errors,omitempty"`
}
