package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// SignatureHeader is the HTTP header carrying the delivery signature.
const SignatureHeader = "X-Vortex-Signature"

// Sign returns hex(HMAC-SHA256(secret, payload)), the value a sender puts in
// SignatureHeader.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the hex HMAC-SHA256 of payload under
// secret. It never panics and returns false for empty input.
func Verify(payload []byte, signature, secret string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if signature == "" || secret == "" {
		return false
	}
	expected := Sign(payload, secret)
	if len(signature) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithStrictClassification rejects payloads with neither "name" nor "type"
// instead of treating them as state-change events.
func WithStrictClassification() Option {
	return func(v *Verifier) {
		v.strict = true
	}
}

// Verifier checks and classifies deliveries for one shared secret.
type Verifier struct {
	secret string
	strict bool
}

// NewVerifier returns a Verifier for secret. An empty or blank secret is a
// configuration error.
func NewVerifier(secret string, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: webhook secret is empty", ErrConfiguration)
	}
	v := &Verifier{secret: secret}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify reports whether signature matches payload.
func (v *Verifier) Verify(payload []byte, signature string) bool {
	return Verify(payload, signature, v.secret)
}

// ConstructEvent verifies payload and parses it into an Event. The signature
// is checked before any parsing happens.
func (v *Verifier) ConstructEvent(payload []byte, signature string) (Event, error) {
	if !v.Verify(payload, signature) {
		return nil, ErrSignatureVerificationFailed
	}
	return classify(payload, v.strict)
}

// ConstructEvent is a one-shot form of Verifier.ConstructEvent.
func ConstructEvent(payload []byte, signature, secret string) (Event, error) {
	v, err := NewVerifier(secret)
	if err != nil {
		return nil, err
	}
	return v.ConstructEvent(payload, signature)
}
