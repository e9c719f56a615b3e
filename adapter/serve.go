package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/token"
)

const maxRequestBody = 1 << 20

// Params carries path parameters extracted by the router.
type Params map[string]string

// Response is the outcome of an operation, ready to be written as JSON.
type Response struct {
	Status int
	Body   any
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JWTResponse is the body returned by POST /jwt.
type JWTResponse struct {
	JWT string `json:"jwt"`
}

// InvitationsResponse is the body of the list operations.
type InvitationsResponse struct {
	Invitations []vortex.Invitation `json:"invitations"`
}

// SuccessResponse is returned by operations with no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AcceptRequest is the body of POST /invitations/accept. Target is the
// deprecated form and is only consulted when User is absent.
type AcceptRequest struct {
	InvitationIDs []string           `json:"invitationIds"`
	User          *vortex.AcceptUser `json:"user,omitempty"`
	Target        *vortex.Target     `json:"target,omitempty"`
}

var errBadRequest = errors.New("bad request")

func errorResponse(status int, msg string) Response {
	return Response{Status: status, Body: ErrorBody{Error: msg}}
}

// Serve authenticates and authorizes r, then runs op. It never writes to a
// ResponseWriter; the caller renders the returned Response.
func (h *Handler) Serve(op Operation, r *http.Request, params Params) Response {
	logger := h.logger.With("operation", string(op))

	id, err := h.authenticate(r)
	if err != nil {
		logger.Warn("authentication failed", "error", err)
		return errorResponse(http.StatusUnauthorized, "unauthorized")
	}
	if id == nil {
		return errorResponse(http.StatusUnauthorized, "unauthorized")
	}

	ok, err := h.authorize(r.Context(), op, id)
	if err != nil {
		logger.Error("authorization resolver failed", "error", err)
		return errorResponse(http.StatusInternalServerError, "authorization failed")
	}
	if !ok {
		logger.Info("operation denied", "subject", id.Subject())
		return errorResponse(http.StatusForbidden, "forbidden")
	}

	resp, err := h.dispatch(op, r, params, id)
	if err != nil {
		return mapError(logger, err)
	}
	return resp
}

func (h *Handler) dispatch(op Operation, r *http.Request, params Params, id token.Identity) (Response, error) {
	ctx := r.Context()

	switch op {
	case OpGenerateJWT:
		var ext map[string]any
		if h.extensions != nil {
			var err error
			if ext, err = h.extensions(r, id); err != nil {
				return Response{}, fmt.Errorf("resolve extensions: %w", err)
			}
		}
		jwt, err := h.client.GenerateJWT(id, ext)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: JWTResponse{JWT: jwt}}, nil

	case OpGetInvitationsByTarget:
		q := r.URL.Query()
		invs, err := h.client.GetInvitationsByTarget(ctx, q.Get("targetType"), q.Get("targetValue"))
		if err != nil {
			return Response{}, err
		}
		return listResponse(invs), nil

	case OpGetInvitation:
		inv, err := h.client.GetInvitation(ctx, params[ParamInvitationID])
		if err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: inv}, nil

	case OpRevokeInvitation:
		if err := h.client.RevokeInvitation(ctx, params[ParamInvitationID]); err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: SuccessResponse{Success: true}}, nil

	case OpAcceptInvitations:
		return h.accept(r)

	case OpGetInvitationsByGroup:
		invs, err := h.client.GetInvitationsByGroup(ctx, params[ParamGroupType], params[ParamGroupID])
		if err != nil {
			return Response{}, err
		}
		return listResponse(invs), nil

	case OpDeleteInvitationsByGroup:
		if err := h.client.DeleteInvitationsByGroup(ctx, params[ParamGroupType], params[ParamGroupID]); err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: SuccessResponse{Success: true}}, nil

	case OpReinvite:
		inv, err := h.client.Reinvite(ctx, params[ParamInvitationID])
		if err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: inv}, nil
	}

	return errorResponse(http.StatusNotFound, "unknown operation"), nil
}

func (h *Handler) accept(r *http.Request) (Response, error) {
	var req AcceptRequest
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return Response{}, fmt.Errorf("%w: read body: %w", errBadRequest, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{}, fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}

	if req.User == nil && req.Target != nil {
		//nolint:staticcheck // legacy request shape is still accepted
		inv, dep, err := h.client.AcceptInvitationsWithTarget(r.Context(), req.InvitationIDs, *req.Target)
		h.logger.Warn("deprecated call",
			"operation", dep.Operation,
			"replacement", dep.Replacement,
			"message", dep.Message,
		)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: http.StatusOK, Body: inv}, nil
	}

	var user vortex.AcceptUser
	if req.User != nil {
		user = *req.User
	}
	inv, err := h.client.AcceptInvitations(r.Context(), req.InvitationIDs, user)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: http.StatusOK, Body: inv}, nil
}

func listResponse(invs []vortex.Invitation) Response {
	if invs == nil {
		invs = []vortex.Invitation{}
	}
	return Response{Status: http.StatusOK, Body: InvitationsResponse{Invitations: invs}}
}

func mapError(logger *slog.Logger, err error) Response {
	var (
		clientErr *vortex.ClientRequestError
		serverErr *vortex.ServerRequestError
	)
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, vortex.ErrMissingArgument), errors.Is(err, vortex.ErrUnsupportedTarget):
		return errorResponse(http.StatusBadRequest, err.Error())
	case errors.As(err, &clientErr):
		logger.Warn("platform rejected request", "status", clientErr.StatusCode, "error", clientErr.Message)
		return errorResponse(clientErr.StatusCode, clientErr.Message)
	case errors.As(err, &serverErr):
		logger.Error("platform error", "status", serverErr.StatusCode, "error", serverErr.Message)
		return errorResponse(http.StatusBadGateway, serverErr.Message)
	case errors.Is(err, token.ErrInvalidIdentity):
		return errorResponse(http.StatusBadRequest, err.Error())
	default:
		logger.Error("operation failed", "error", err)
		return errorResponse(http.StatusInternalServerError, "internal error")
	}
}

// WriteJSON renders resp on w.
func WriteJSON(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
