package vortex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const invitationsPath = "/api/v1/invitations"

// ErrMissingArgument is returned before any request is made when a required
// argument is empty.
var ErrMissingArgument = errors.New("vortex: missing required argument")

// ErrUnsupportedTarget is returned when a legacy target is neither an email
// nor a phone number.
var ErrUnsupportedTarget = errors.New("vortex: unsupported target type")

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return nil
}

func invitationPath(id string) string {
	return invitationsPath + "/" + url.PathEscape(id)
}

func groupPath(groupType, groupID string) string {
	return invitationsPath + "/by-group/" + url.PathEscape(groupType) + "/" + url.PathEscape(groupID)
}

// GetInvitationsByTarget lists invitations sent to a target such as an email
// address.
func (c *Client) GetInvitationsByTarget(ctx context.Context, targetType, targetValue string) ([]Invitation, error) {
	if err := errors.Join(required("targetType", targetType), required("targetValue", targetValue)); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("targetType", targetType)
	q.Set("targetValue", targetValue)

	var resp invitationsResponse
	if err := c.do(ctx, http.MethodGet, invitationsPath, q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

// GetInvitation fetches a single invitation.
func (c *Client) GetInvitation(ctx context.Context, invitationID string) (*Invitation, error) {
	if err := required("invitationID", invitationID); err != nil {
		return nil, err
	}
	var inv Invitation
	if err := c.do(ctx, http.MethodGet, invitationPath(invitationID), nil, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RevokeInvitation deletes an invitation.
func (c *Client) RevokeInvitation(ctx context.Context, invitationID string) error {
	if err := required("invitationID", invitationID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, invitationPath(invitationID), nil, nil, nil)
}

// AcceptInvitations accepts invitations on behalf of user.
func (c *Client) AcceptInvitations(ctx context.Context, invitationIDs []string, user AcceptUser) (*Invitation, error) {
	if len(invitationIDs) == 0 {
		return nil, fmt.Errorf("%w: invitationIDs", ErrMissingArgument)
	}
	if user.Email == "" && user.Phone == "" {
		return nil, fmt.Errorf("%w: user email or phone", ErrMissingArgument)
	}

	var inv Invitation
	req := acceptRequest{InvitationIDs: invitationIDs, User: user}
	if err := c.do(ctx, http.MethodPost, invitationsPath+"/accept", nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// LegacyAcceptDeprecation is returned by AcceptInvitationsWithTarget.
var LegacyAcceptDeprecation = Deprecation{
	Operation:   "AcceptInvitationsWithTarget",
	Replacement: "AcceptInvitations",
	Message:     "accepting by target is deprecated; pass an AcceptUser instead",
}

// AcceptInvitationsWithTarget is the deprecated target-based form of
// AcceptInvitations. The target is translated into an AcceptUser and the
// returned Deprecation should be logged by the caller.
//
// Deprecated: use AcceptInvitations.
func (c *Client) AcceptInvitationsWithTarget(ctx context.Context, invitationIDs []string, target Target) (*Invitation, Deprecation, error) {
	user, err := TargetToAcceptUser(target)
	if err != nil {
		return nil, LegacyAcceptDeprecation, err
	}
	inv, err := c.AcceptInvitations(ctx, invitationIDs, user)
	return inv, LegacyAcceptDeprecation, err
}

// TargetToAcceptUser converts a legacy email or phone target.
func TargetToAcceptUser(target Target) (AcceptUser, error) {
	if target.Value == "" {
		return AcceptUser{}, fmt.Errorf("%w: target value", ErrMissingArgument)
	}
	switch target.Type {
	case TargetEmail:
		return AcceptUser{Email: target.Value}, nil
	case TargetPhone, "sms":
		return AcceptUser{Phone: target.Value}, nil
	default:
		return AcceptUser{}, fmt.Errorf("%w %q", ErrUnsupportedTarget, target.Type)
	}
}

// GetInvitationsByGroup lists invitations scoped to a group.
func (c *Client) GetInvitationsByGroup(ctx context.Context, groupType, groupID string) ([]Invitation, error) {
	if err := errors.Join(required("groupType", groupType), required("groupID", groupID)); err != nil {
		return nil, err
	}
	var resp invitationsResponse
	if err := c.do(ctx, http.MethodGet, groupPath(groupType, groupID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

// DeleteInvitationsByGroup deletes every invitation scoped to a group.
func (c *Client) DeleteInvitationsByGroup(ctx context.Context, groupType, groupID string) error {
	if err := errors.Join(required("groupType", groupType), required("groupID", groupID)); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, groupPath(groupType, groupID), nil, nil, nil)
}

// Reinvite resends an invitation.
func (c *Client) Reinvite(ctx context.Context, invitationID string) (*Invitation, error) {
	if err := required("invitationID", invitationID); err != nil {
		return nil, err
	}
	var inv Invitation
	if err := c.do(ctx, http.MethodPost, invitationPath(invitationID)+"/reinvite", nil, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
