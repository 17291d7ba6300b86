package marketplace

import "errors"

// ---------------------------------------------------------------------------
// Profile Errors
// ---------------------------------------------------------------------------

var (
	// ErrProfileNameRequired indicates a profile without its required name
	ErrProfileNameRequired = errors.New("marketplace: profile name is required")
	// ErrProfileNotFound indicates no profile exists on the network for the key
	ErrProfileNotFound = errors.New("marketplace: profile not found")
)

// DefaultNamespace is the label namespace under which merchant profiles are
// published on the network.
const DefaultNamespace = "com.synvya.merchant"

// IdentifierDomain is the domain appended to the merchant name to form the
// default network identifier (NIP-05 style).
const IdentifierDomain = "synvya.com"

// ---------------------------------------------------------------------------
// ProfileType
// ---------------------------------------------------------------------------

// ProfileType is the business category tag attached to a published profile
type ProfileType string

const (
	// ProfileTypeRestaurant tags a restaurant business
	ProfileTypeRestaurant ProfileType = "business.restaurant"
	// ProfileTypeRetail tags a retail business
	ProfileTypeRetail ProfileType = "business.retail"
	// ProfileTypeService tags a service business
	ProfileTypeService ProfileType = "business.service"
	// ProfileTypeEntertainment tags an entertainment business
	ProfileTypeEntertainment ProfileType = "business.entertainment"
	// ProfileTypeOther is the generic fallback used when no mapping applies
	ProfileTypeOther ProfileType = "business.other"
)

// IsValid returns true if the profile type is valid
func (p ProfileType) IsValid() bool {
	switch p {
	case ProfileTypeRestaurant, ProfileTypeRetail, ProfileTypeService,
		ProfileTypeEntertainment, ProfileTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProfileType
func (p ProfileType) String() string {
	return string(p)
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

// Profile is the merchant's identity record on the marketplace network. It is
// derived fresh from the current platform snapshot on every mapping call and
// never persisted locally. The downstream network schema rejects nulls, so
// every field carries its type's zero value instead of an absent marker.
type Profile struct {
	// Name is the stable identity handle (the platform merchant ID)
	Name string `json:"name"`
	// About is a short business description
	About string `json:"about"`
	// Banner is the banner image URL
	Banner string `json:"banner"`
	// Bot marks automated accounts; merchant profiles are never bots
	Bot bool `json:"bot"`
	// DisplayName is the human-readable business name
	DisplayName string `json:"display_name"`
	// Hashtags are discovery tags derived from catalog category names
	Hashtags []string `json:"hashtags"`
	// Locations are stall references; populated by later pipeline stages,
	// never by the initial derivation
	Locations []string `json:"locations"`
	// Namespace is the fixed label namespace the profile is published under
	Namespace string `json:"namespace"`
	// Identifier is the network identifier, <name>@<domain> when not supplied
	Identifier string `json:"nip05"`
	// Picture is the avatar image URL
	Picture string `json:"picture"`
	// ProfileType is the business category tag
	ProfileType ProfileType `json:"profile_type"`
	// Website is the business website URL
	Website string `json:"website"`

	// PublicKey is derived from the merchant's private key at publish time.
	// Read-only; never accepted as input.
	PublicKey string `json:"public_key"`
	// ProfileURL is the public viewer URL for the profile. Read-only.
	ProfileURL string `json:"profile_url"`
}

// Validate checks the profile's invariants
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrProfileNameRequired
	}
	return nil
}

// Normalize replaces nil collections and unmapped enum values with their
// zero-value equivalents so the profile always serializes without nulls.
func (p *Profile) Normalize() {
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Locations == nil {
		p.Locations = []string{}
	}
	if p.Namespace == "" {
		p.Namespace = DefaultNamespace
	}
	if !p.ProfileType.IsValid() {
		p.ProfileType = ProfileTypeOther
	}
}

// AddHashtag appends a hashtag if not already present
func (p *Profile) AddHashtag(tag string) {
	if tag == "" {
		return
	}
	for _, existing := range p.Hashtags {
		if existing == tag {
			return
		}
	}
	p.Hashtags = append(p.Hashtags, tag)
}

// AddLocation appends a location reference if not already present
func (p *Profile) AddLocation(location string) {
	if location == "" {
		return
	}
	for _, existing := range p.Locations {
		if existing == location {
			return
		}
	}
	p.Locations = append(p.Locations, location)
}
