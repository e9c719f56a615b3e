// Package vortex is the Go SDK for the Vortex invitation platform.
//
// A Client forwards invitation management calls to the platform REST API and
// mints user tokens locally:
//
//	client := vortex.New(vortex.Config{APIKey: os.Getenv("VORTEX_API_KEY")})
//
//	jwt, err := client.GenerateJWT(token.User{ID: "u1", Email: "u1@example.com"}, nil)
//	invs, err := client.GetInvitationsByTarget(ctx, vortex.TargetEmail, "u1@example.com")
//
// Failed calls return *ClientRequestError (4xx), *ServerRequestError (5xx) or
// *UnexpectedResponseError (anything else); use errors.As to branch on them.
//
// Webhook verification lives in package webhook, token minting in package
// token and framework glue in package adapter.
package vortex

// Version is reported in the User-Agent header.
const Version = "0.1.0"
