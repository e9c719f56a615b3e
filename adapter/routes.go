package adapter

import "net/http"

// Operation names an action exposed by the adapters. The values are passed
// to AuthorizeFunc and are shared with the other platform SDKs.
type Operation string

const (
	OpGenerateJWT              Operation = "generateJwt"
	OpGetInvitationsByTarget   Operation = "getInvitationsByTarget"
	OpGetInvitation            Operation = "getInvitation"
	OpRevokeInvitation         Operation = "revokeInvitation"
	OpAcceptInvitations        Operation = "acceptInvitations"
	OpGetInvitationsByGroup    Operation = "getInvitationsByGroup"
	OpDeleteInvitationsByGroup Operation = "deleteInvitationsByGroup"
	OpReinvite                 Operation = "reinvite"
)

// Path parameter names used in Route patterns.
const (
	ParamInvitationID = "invitationId"
	ParamGroupType    = "groupType"
	ParamGroupID      = "groupId"
)

// Route binds a method and pattern to an operation. Patterns use
// {name} placeholders and are relative to the adapter's mount point.
type Route struct {
	Method    string
	Pattern   string
	Operation Operation
}

// Routes lists every route the adapters register, static segments before
// parameterised ones.
func Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/jwt", Operation: OpGenerateJWT},
		{Method: http.MethodGet, Pattern: "/invitations", Operation: OpGetInvitationsByTarget},
		{Method: http.MethodPost, Pattern: "/invitations/accept", Operation: OpAcceptInvitations},
		{Method: http.MethodGet, Pattern: "/invitations/by-group/{groupType}/{groupId}", Operation: OpGetInvitationsByGroup},
		{Method: http.MethodDelete, Pattern: "/invitations/by-group/{groupType}/{groupId}", Operation: OpDeleteInvitationsByGroup},
		{Method: http.MethodGet, Pattern: "/invitations/{invitationId}", Operation: OpGetInvitation},
		{Method: http.MethodDelete, Pattern: "/invitations/{invitationId}", Operation: OpRevokeInvitation},
		{Method: http.MethodPost, Pattern: "/invitations/{invitationId}/reinvite", Operation: OpReinvite},
	}
}
