// Package adapter maps inbound HTTP requests onto token minting and the
// invitation API. It holds the framework-neutral part of the glue: request
// decoding, the authentication and authorization gates, error-to-status
// mapping and the route table. Packages chiadapter and ginadapter bind it to
// a router.
package adapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/token"
)

//go:generate mockgen -destination=mocks/mock_invitation_api.go -package=mocks github.com/mattjoyce/vortex/adapter InvitationAPI

// InvitationAPI is the subset of *vortex.Client the adapters call.
type InvitationAPI interface {
	GenerateJWT(id token.Identity, extensions map[string]any) (string, error)
	GetInvitationsByTarget(ctx context.Context, targetType, targetValue string) ([]vortex.Invitation, error)
	GetInvitation(ctx context.Context, invitationID string) (*vortex.Invitation, error)
	RevokeInvitation(ctx context.Context, invitationID string) error
	AcceptInvitations(ctx context.Context, invitationIDs []string, user vortex.AcceptUser) (*vortex.Invitation, error)
	AcceptInvitationsWithTarget(ctx context.Context, invitationIDs []string, target vortex.Target) (*vortex.Invitation, vortex.Deprecation, error)
	GetInvitationsByGroup(ctx context.Context, groupType, groupID string) ([]vortex.Invitation, error)
	DeleteInvitationsByGroup(ctx context.Context, groupType, groupID string) error
	Reinvite(ctx context.Context, invitationID string) (*vortex.Invitation, error)
}

var _ InvitationAPI = (*vortex.Client)(nil)

// AuthenticateFunc resolves the caller of r. A nil identity with a nil error
// means the request is unauthenticated.
type AuthenticateFunc func(r *http.Request) (token.Identity, error)

// AuthorizeFunc decides whether id may perform op.
type AuthorizeFunc func(ctx context.Context, op Operation, id token.Identity) (bool, error)

// ExtensionsFunc supplies extra claims for tokens minted through POST /jwt.
type ExtensionsFunc func(r *http.Request, id token.Identity) (map[string]any, error)

// Config wires a Handler.
type Config struct {
	Client       InvitationAPI
	Authenticate AuthenticateFunc
	Authorize    AuthorizeFunc
	// Extensions is optional.
	Extensions ExtensionsFunc
	// Logger is optional; nil discards.
	Logger *slog.Logger
}

// Handler executes operations on behalf of an HTTP request. It is safe for
// concurrent use.
type Handler struct {
	client       InvitationAPI
	authenticate AuthenticateFunc
	authorize    AuthorizeFunc
	extensions   ExtensionsFunc
	logger       *slog.Logger
}

// New validates cfg and returns a Handler.
func New(cfg Config) (*Handler, error) {
	if cfg.Client == nil {
		return nil, errors.New("adapter: client is required")
	}
	if cfg.Authenticate == nil {
		return nil, errors.New("adapter: authenticate resolver is required")
	}
	if cfg.Authorize == nil {
		return nil, errors.New("adapter: authorize resolver is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		client:       cfg.Client,
		authenticate: cfg.Authenticate,
		authorize:    cfg.Authorize,
		extensions:   cfg.Extensions,
		logger:       logger.With("component", "vortex-adapter"),
	}, nil
}
