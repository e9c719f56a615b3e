package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Decoded is the unverified content of a token.
type Decoded struct {
	Header map[string]any `json:"header"`
	Claims map[string]any `json:"claims"`
}

// Decode splits and decodes a token without checking its signature.
func Decode(tok string) (*Decoded, error) {
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(tok, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return &Decoded{Header: parsed.Header, Claims: claims}, nil
}

// Verify checks tok against the signing key derived from apiKey and returns
// its claims. No time-based claim (expires, exp, nbf, iat) is enforced; the
// platform does that.
func Verify(apiKey, tok string) (map[string]any, error) {
	key, err := ParseAPIKey(apiKey)
	if err != nil {
		return nil, err
	}
	kid := key.CanonicalID()

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if got, _ := t.Header["kid"].(string); got != kid {
			return nil, fmt.Errorf("unexpected kid %q", got)
		}
		return key.signingKey(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithJSONNumber(),
		// Extensions may carry registered time claims; those are not checked.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
