package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeyPrefix is the only accepted first segment of a Vortex API key.
const KeyPrefix = "VRTX"

const keyIDBytes = 16

// APIKey is a parsed VRTX.<id>.<secret> key.
type APIKey struct {
	Prefix string
	ID     [keyIDBytes]byte
	Secret string
}

// ParseAPIKey splits and validates an API key.
func ParseAPIKey(raw string) (APIKey, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return APIKey{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidKeyFormat, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return APIKey{}, fmt.Errorf("%w: empty segment", ErrInvalidKeyFormat)
		}
	}

	prefix, encodedID, secret := parts[0], parts[1], parts[2]
	if prefix != KeyPrefix {
		return APIKey{}, ErrInvalidKeyPrefix
	}

	raw16, err := base64.RawURLEncoding.DecodeString(encodedID)
	if err != nil {
		return APIKey{}, fmt.Errorf("%w: %v", ErrMalformedKeyID, err)
	}
	if len(raw16) != keyIDBytes {
		return APIKey{}, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrMalformedKeyID, len(raw16), keyIDBytes)
	}

	key := APIKey{Prefix: prefix, Secret: secret}
	copy(key.ID[:], raw16)
	return key, nil
}

// CanonicalID renders the embedded id as lowercase 8-4-4-4-12 hex.
func (k APIKey) CanonicalID() string {
	return uuid.UUID(k.ID).String()
}

// String masks the secret so keys can be printed safely.
func (k APIKey) String() string {
	return fmt.Sprintf("%s.%s.****", k.Prefix, base64.RawURLEncoding.EncodeToString(k.ID[:]))
}

func (k APIKey) signingKey() []byte {
	return hmacSHA256([]byte(k.Secret), []byte(k.CanonicalID()))
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}
