package vortex

import "time"

// Target types accepted by GetInvitationsByTarget and the legacy accept call.
const (
	TargetEmail = "email"
	TargetPhone = "phone"
)

// Target is who an invitation was sent to.
type Target struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// InvitationGroup is a group an invitation grants membership of.
type InvitationGroup struct {
	ID        string     `json:"id"`
	AccountID string     `json:"accountId,omitempty"`
	GroupID   string     `json:"groupId"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// InvitationAcceptance records one acceptance of an invitation.
type InvitationAcceptance struct {
	ID         string     `json:"id"`
	AccountID  string     `json:"accountId,omitempty"`
	ProjectID  string     `json:"projectId,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	Target     *Target    `json:"target,omitempty"`
}

// Invitation is an invitation as returned by the platform.
type Invitation struct {
	ID                      string                 `json:"id"`
	AccountID               string                 `json:"accountId"`
	ProjectID               string                 `json:"projectId,omitempty"`
	Status                  string                 `json:"status"`
	InvitationType          string                 `json:"invitationType,omitempty"`
	Deactivated             bool                   `json:"deactivated"`
	DeliveryCount           int                    `json:"deliveryCount"`
	DeliveryTypes           []string               `json:"deliveryTypes,omitempty"`
	ClickThroughs           int                    `json:"clickThroughs"`
	Views                   int                    `json:"views"`
	ForeignCreatorID        string                 `json:"foreignCreatorId,omitempty"`
	WidgetConfigurationID   string                 `json:"widgetConfigurationId,omitempty"`
	Target                  []Target               `json:"target,omitempty"`
	Groups                  []InvitationGroup      `json:"groups,omitempty"`
	Accepts                 []InvitationAcceptance `json:"accepts,omitempty"`
	Attributes              map[string]any         `json:"attributes,omitempty"`
	ConfigurationAttributes map[string]any         `json:"configurationAttributes,omitempty"`
	CreatedAt               *time.Time             `json:"createdAt,omitempty"`
	ModifiedAt              *time.Time             `json:"modifiedAt,omitempty"`
}

// AcceptUser identifies the user accepting invitations. At least one of
// Email or Phone is required.
type AcceptUser struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Deprecation describes a deprecated call shape that was translated to its
// replacement. Callers are expected to log it.
type Deprecation struct {
	Operation   string `json:"operation"`
	Replacement string `json:"replacement"`
	Message     string `json:"message"`
}

type invitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

type acceptRequest struct {
	InvitationIDs []string   `json:"invitationIds"`
	User          AcceptUser `json:"user"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
