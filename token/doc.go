// Package token mints the signed bearer tokens the Vortex platform accepts
// from SDK users.
//
// Tokens are derived entirely from the API key, so no network call is made.
// The algorithm is shared by every Vortex SDK and must stay byte compatible
// with them:
//
//  1. The key is split as VRTX.<base64url id>.<secret>; the 16-byte id is
//     rendered as a lowercase dashed UUID (the canonical id).
//  2. signingKey = HMAC-SHA256(key=secret, msg=canonicalID).
//  3. header  = {"iat":now,"alg":"HS256","typ":"JWT","kid":canonicalID}
//     payload = identity claims, "expires":now+3600, then extension claims.
//  4. token = b64(header) "." b64(payload) "." b64(HMAC-SHA256(signingKey, b64(header) "." b64(payload)))
//
// All segments use unpadded base64url. JSON keys are emitted in construction
// order so tokens can be compared byte for byte across SDKs.
//
// Minter and the package-level Mint are safe for concurrent use.
package token
