package nostrclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
	"go.uber.org/zap"

	"github.com/synvya/retail-backend/internal/domain/marketplace"
	"github.com/synvya/retail-backend/internal/infrastructure/config"
)

const profileURLBase = "https://njump.me/"

// Client implements marketplace.Client over a set of Nostr relays
type Client struct {
	relays  []string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a relay-backed marketplace client
func NewClient(cfg *config.NostrConfig, logger *zap.Logger) *Client {
	return &Client{
		relays:  cfg.Relays,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

// GenerateKeyPair creates a fresh keypair. The private key is returned in
// bech32 nsec form, which is what the credential store persists.
func (c *Client) GenerateKeyPair() (marketplace.KeyPair, error) {
	secretHex := nostr.GeneratePrivateKey()
	publicHex, err := nostr.GetPublicKey(secretHex)
	if err != nil {
		return marketplace.KeyPair{}, fmt.Errorf("derive public key: %w", err)
	}
	nsec, err := nip19.EncodePrivateKey(secretHex)
	if err != nil {
		return marketplace.KeyPair{}, fmt.Errorf("encode private key: %w", err)
	}
	npub, err := nip19.EncodePublicKey(publicHex)
	if err != nil {
		return marketplace.KeyPair{}, fmt.Errorf("encode public key: %w", err)
	}
	return marketplace.KeyPair{PrivateKey: nsec, PublicKey: npub}, nil
}

// DerivePublicKey derives the bech32 public key from a stored private key
func (c *Client) DerivePublicKey(privateKey string) (string, error) {
	secretHex, err := decodePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	publicHex, err := nostr.GetPublicKey(secretHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", marketplace.ErrInvalidPrivateKey, err)
	}
	return nip19.EncodePublicKey(publicHex)
}

// decodePrivateKey accepts either a bech32 nsec or a raw hex key and returns
// the hex form go-nostr signs with
func decodePrivateKey(privateKey string) (string, error) {
	key := strings.TrimSpace(privateKey)
	if key == "" {
		return "", marketplace.ErrInvalidPrivateKey
	}
	if strings.HasPrefix(key, "nsec") {
		prefix, value, err := nip19.Decode(key)
		if err != nil || prefix != "nsec" {
			return "", fmt.Errorf("%w: malformed nsec", marketplace.ErrInvalidPrivateKey)
		}
		return value.(string), nil
	}
	if !nostr.IsValid32ByteHex(key) {
		return "", fmt.Errorf("%w: not hex or nsec", marketplace.ErrInvalidPrivateKey)
	}
	return key, nil
}

// decodePublicKey accepts either a bech32 npub or a raw hex key
func decodePublicKey(publicKey string) (string, error) {
	key := strings.TrimSpace(publicKey)
	if strings.HasPrefix(key, "npub") {
		prefix, value, err := nip19.Decode(key)
		if err != nil || prefix != "npub" {
			return "", fmt.Errorf("malformed npub %q", publicKey)
		}
		return value.(string), nil
	}
	if !nostr.IsValid32ByteHex(key) {
		return "", fmt.Errorf("malformed public key %q", publicKey)
	}
	return key, nil
}

// ---------------------------------------------------------------------------
// Publishing
// ---------------------------------------------------------------------------

// PublishProfile signs and publishes the kind-0 metadata event
func (c *Client) PublishProfile(ctx context.Context, profile *marketplace.Profile, privateKey string) error {
	event, err := buildProfileEvent(profile)
	if err != nil {
		return fmt.Errorf("build profile event: %w", err)
	}
	return c.signAndPublish(ctx, &event, privateKey)
}

// PublishStall signs and publishes the kind-30017 stall event
func (c *Client) PublishStall(ctx context.Context, stall *marketplace.Stall, privateKey string) error {
	event, err := buildStallEvent(stall)
	if err != nil {
		return fmt.Errorf("build stall event: %w", err)
	}
	return c.signAndPublish(ctx, &event, privateKey)
}

// PublishProduct signs and publishes the kind-30018 product event
func (c *Client) PublishProduct(ctx context.Context, product *marketplace.Product, privateKey string) error {
	event, err := buildProductEvent(product)
	if err != nil {
		return fmt.Errorf("build product event: %w", err)
	}
	return c.signAndPublish(ctx, &event, privateKey)
}

// signAndPublish signs the event and sends it to every configured relay.
// One accepting relay is enough; the event is lost only when all reject it.
func (c *Client) signAndPublish(ctx context.Context, event *nostr.Event, privateKey string) error {
	secretHex, err := decodePrivateKey(privateKey)
	if err != nil {
		return err
	}
	if err := event.Sign(secretHex); err != nil {
		return fmt.Errorf("sign event: %w", err)
	}

	accepted := 0
	for _, url := range c.relays {
		if err := c.publishToRelay(ctx, url, event); err != nil {
			c.logger.Warn("relay rejected event",
				zap.String("relay", url),
				zap.Int("kind", event.Kind),
				zap.Error(err))
			continue
		}
		accepted++
	}
	if accepted == 0 {
		return fmt.Errorf("%w: no relay accepted kind %d", marketplace.ErrPublishFailed, event.Kind)
	}
	return nil
}

func (c *Client) publishToRelay(ctx context.Context, url string, event *nostr.Event) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer relay.Close()

	return relay.Publish(ctx, *event)
}

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

// GetProfile fetches the latest kind-0 metadata the key has published
func (c *Client) GetProfile(ctx context.Context, privateKey string) (*marketplace.Profile, error) {
	secretHex, err := decodePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	publicHex, err := nostr.GetPublicKey(secretHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", marketplace.ErrInvalidPrivateKey, err)
	}

	events, err := c.query(ctx, nostr.Filter{
		Kinds:   []int{nostr.KindProfileMetadata},
		Authors: []string{publicHex},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, marketplace.ErrProfileNotFound
	}

	profile, err := profileFromEvent(events[0])
	if err != nil {
		return nil, err
	}

	npub, err := nip19.EncodePublicKey(publicHex)
	if err != nil {
		return nil, err
	}
	profile.PublicKey = npub
	profile.ProfileURL = profileURLBase + npub
	return profile, nil
}

// ListStalls lists the stalls the public key has published
func (c *Client) ListStalls(ctx context.Context, publicKey string) ([]marketplace.Stall, error) {
	publicHex, err := decodePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	events, err := c.query(ctx, nostr.Filter{
		Kinds:   []int{kindStall},
		Authors: []string{publicHex},
	})
	if err != nil {
		return nil, err
	}

	stalls := make([]marketplace.Stall, 0, len(events))
	for _, event := range events {
		stall, err := stallFromEvent(event)
		if err != nil {
			c.logger.Warn("skipping malformed stall event",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
		stalls = append(stalls, *stall)
	}
	return stalls, nil
}

// query runs the filter against each relay in turn and returns the first
// non-empty result set
func (c *Client) query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	var lastErr error
	reached := false
	for _, url := range c.relays {
		events, err := c.queryRelay(ctx, url, filter)
		if err != nil {
			lastErr = err
			c.logger.Warn("relay query failed",
				zap.String("relay", url),
				zap.Error(err))
			continue
		}
		reached = true
		if len(events) > 0 {
			return events, nil
		}
	}
	if !reached {
		return nil, fmt.Errorf("%w: %v", marketplace.ErrNetworkUnavailable, lastErr)
	}
	return nil, nil
}

func (c *Client) queryRelay(ctx context.Context, url string, filter nostr.Filter) ([]*nostr.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer relay.Close()

	return relay.QuerySync(ctx, filter)
}

// ---------------------------------------------------------------------------
// Event decoding
// ---------------------------------------------------------------------------

func profileFromEvent(event *nostr.Event) (*marketplace.Profile, error) {
	var content profileContent
	if err := json.Unmarshal([]byte(event.Content), &content); err != nil {
		return nil, fmt.Errorf("decode profile metadata: %w", err)
	}

	profile := &marketplace.Profile{
		Name:        content.Name,
		About:       content.About,
		Banner:      content.Banner,
		Bot:         content.Bot,
		DisplayName: content.DisplayName,
		Identifier:  content.NIP05,
		Picture:     content.Picture,
		Website:     content.Website,
		Locations:   content.Locations,
	}
	for _, tag := range event.Tags {
		switch {
		case len(tag) >= 2 && tag[0] == "t":
			profile.AddHashtag(tag[1])
		case len(tag) >= 3 && tag[0] == "l":
			profile.ProfileType = marketplace.ProfileType(tag[1])
			profile.Namespace = tag[2]
		}
	}
	profile.Normalize()
	return profile, nil
}

func stallFromEvent(event *nostr.Event) (*marketplace.Stall, error) {
	var content stallContent
	if err := json.Unmarshal([]byte(event.Content), &content); err != nil {
		return nil, fmt.Errorf("decode stall content: %w", err)
	}

	stall := &marketplace.Stall{
		ID:          content.ID,
		Name:        content.Name,
		Description: content.Description,
		Currency:    content.Currency,
	}
	if stall.ID == "" {
		if d := event.Tags.GetFirst([]string{"d"}); d != nil {
			stall.ID = d.Value()
		}
	}
	for _, zone := range content.Shipping {
		stall.Shipping = append(stall.Shipping, marketplace.ShippingZone{
			ID:      zone.ID,
			Name:    zone.Name,
			Cost:    decimalFromFloat(zone.Cost),
			Regions: zone.Regions,
		})
	}
	if g := event.Tags.GetFirst([]string{"g"}); g != nil {
		stall.Geohash = g.Value()
	}
	return stall, nil
}
