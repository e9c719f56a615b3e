package token

import (
	"encoding/base64"
	"fmt"
	"time"
)

// TTL is how long a minted token stays valid on the platform.
const TTL = 3600 * time.Second

// Minter mints tokens for a single API key.
type Minter struct {
	key APIKey
	kid string
	now func() time.Time
}

// NewMinter parses apiKey and returns a Minter bound to it.
func NewMinter(apiKey string) (*Minter, error) {
	key, err := ParseAPIKey(apiKey)
	if err != nil {
		return nil, err
	}
	return &Minter{
		key: key,
		kid: key.CanonicalID(),
		now: time.Now,
	}, nil
}

// SetNow overrides the time function (for testing).
func (m *Minter) SetNow(fn func() time.Time) {
	m.now = fn
}

// KeyID returns the canonical id used as the token kid.
func (m *Minter) KeyID() string {
	return m.kid
}

// Mint builds and signs a token for id. Extension claims are merged last and
// win over identity claims with the same name.
func (m *Minter) Mint(id Identity, extensions map[string]any) (string, error) {
	if id == nil {
		return "", fmt.Errorf("%w: identity is nil", ErrInvalidIdentity)
	}
	payload, err := id.claims()
	if err != nil {
		return "", err
	}

	now := m.now().Unix()

	header := newClaimSet()
	header.set("iat", now)
	header.set("alg", "HS256")
	header.set("typ", "JWT")
	header.set("kid", m.kid)

	payload.set("expires", now+int64(TTL/time.Second))
	payload.merge(extensions)

	headerJSON, err := header.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: encode header: %w", ErrSigningFailure, err)
	}
	payloadJSON, err := payload.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %w", ErrSigningFailure, err)
	}

	signingInput := b64(headerJSON) + "." + b64(payloadJSON)
	sig := hmacSHA256(m.key.signingKey(), []byte(signingInput))

	return signingInput + "." + b64(sig), nil
}

// Mint parses apiKey and mints a token for id in one step.
func Mint(apiKey string, id Identity, extensions map[string]any) (string, error) {
	m, err := NewMinter(apiKey)
	if err != nil {
		return "", err
	}
	return m.Mint(id, extensions)
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
