package token

import "errors"

var (
	// Key errors
	ErrInvalidKeyFormat = errors.New("invalid API key format")
	ErrInvalidKeyPrefix = errors.New("invalid API key prefix")
	ErrMalformedKeyID   = errors.New("malformed API key id")

	// Minting errors
	ErrSigningFailure  = errors.New("token signing failed")
	ErrInvalidIdentity = errors.New("invalid identity")

	// Verification errors
	ErrInvalidToken = errors.New("invalid token")
)
