package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/adapter/mocks"
	"github.com/mattjoyce/vortex/token"
)

var testUser = token.User{ID: "u1", Email: "u1@example.com"}

func allowAll(context.Context, Operation, token.Identity) (bool, error) { return true, nil }

func authAs(id token.Identity) AuthenticateFunc {
	return func(*http.Request) (token.Identity, error) { return id, nil }
}

func newTestHandler(t *testing.T, client InvitationAPI, authz AuthorizeFunc) (*Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h, err := New(Config{
		Client:       client,
		Authenticate: authAs(testUser),
		Authorize:    authz,
		Logger:       slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)
	return h, &buf
}

func TestNewValidatesConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)

	_, err := New(Config{Authenticate: authAs(testUser), Authorize: allowAll})
	assert.Error(t, err)
	_, err = New(Config{Client: client, Authorize: allowAll})
	assert.Error(t, err)
	_, err = New(Config{Client: client, Authenticate: authAs(testUser)})
	assert.Error(t, err)

	h, err := New(Config{Client: client, Authenticate: authAs(testUser), Authorize: allowAll})
	require.NoError(t, err)
	assert.NotNil(t, h.logger)
}

func TestServeUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)

	tests := []struct {
		name string
		auth AuthenticateFunc
	}{
		{name: "nil identity", auth: authAs(nil)},
		{name: "resolver error", auth: func(*http.Request) (token.Identity, error) { return nil, errors.New("bad cookie") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authzCalled := false
			h, err := New(Config{
				Client:       client,
				Authenticate: tt.auth,
				Authorize: func(context.Context, Operation, token.Identity) (bool, error) {
					authzCalled = true
					return true, nil
				},
			})
			require.NoError(t, err)

			resp := h.Serve(OpGenerateJWT, httptest.NewRequest(http.MethodPost, "/jwt", nil), nil)
			assert.Equal(t, http.StatusUnauthorized, resp.Status)
			assert.Equal(t, ErrorBody{Error: "unauthorized"}, resp.Body)
			assert.False(t, authzCalled)
		})
	}
}

func TestServeForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)

	var gotOp Operation
	h, _ := newTestHandler(t, client, func(_ context.Context, op Operation, id token.Identity) (bool, error) {
		gotOp = op
		assert.Equal(t, "u1", id.Subject())
		return false, nil
	})

	resp := h.Serve(OpRevokeInvitation, httptest.NewRequest(http.MethodDelete, "/invitations/inv_1", nil), Params{ParamInvitationID: "inv_1"})
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Equal(t, OpRevokeInvitation, gotOp)
}

func TestServeAuthorizeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)

	h, _ := newTestHandler(t, client, func(context.Context, Operation, token.Identity) (bool, error) {
		return false, errors.New("policy store down")
	})

	resp := h.Serve(OpGetInvitation, httptest.NewRequest(http.MethodGet, "/invitations/inv_1", nil), Params{ParamInvitationID: "inv_1"})
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestServeGenerateJWT(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)

	h, err := New(Config{
		Client:       client,
		Authenticate: authAs(testUser),
		Authorize:    allowAll,
		Extensions: func(r *http.Request, id token.Identity) (map[string]any, error) {
			return map[string]any{"tenant": r.Header.Get("X-Tenant")}, nil
		},
	})
	require.NoError(t, err)

	client.EXPECT().GenerateJWT(testUser, map[string]any{"tenant": "t1"}).Return("a.b.c", nil)

	req := httptest.NewRequest(http.MethodPost, "/jwt", nil)
	req.Header.Set("X-Tenant", "t1")
	resp := h.Serve(OpGenerateJWT, req, nil)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, JWTResponse{JWT: "a.b.c"}, resp.Body)
}

func TestServeGenerateJWTInvalidIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	h, _ := newTestHandler(t, client, allowAll)

	client.EXPECT().GenerateJWT(gomock.Any(), gomock.Any()).Return("", token.ErrInvalidIdentity)

	resp := h.Serve(OpGenerateJWT, httptest.NewRequest(http.MethodPost, "/jwt", nil), nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestServeOperations(t *testing.T) {
	inv := &vortex.Invitation{ID: "inv_1"}

	tests := []struct {
		name   string
		op     Operation
		req    *http.Request
		params Params
		expect func(m *mocks.MockInvitationAPIMockRecorder)
		want   any
	}{
		{
			name: "by target",
			op:   OpGetInvitationsByTarget,
			req:  httptest.NewRequest(http.MethodGet, "/invitations?targetType=email&targetValue=a%40b.c", nil),
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.GetInvitationsByTarget(gomock.Any(), "email", "a@b.c").Return([]vortex.Invitation{*inv}, nil)
			},
			want: InvitationsResponse{Invitations: []vortex.Invitation{*inv}},
		},
		{
			name:   "get",
			op:     OpGetInvitation,
			req:    httptest.NewRequest(http.MethodGet, "/invitations/inv_1", nil),
			params: Params{ParamInvitationID: "inv_1"},
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.GetInvitation(gomock.Any(), "inv_1").Return(inv, nil)
			},
			want: inv,
		},
		{
			name:   "revoke",
			op:     OpRevokeInvitation,
			req:    httptest.NewRequest(http.MethodDelete, "/invitations/inv_1", nil),
			params: Params{ParamInvitationID: "inv_1"},
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.RevokeInvitation(gomock.Any(), "inv_1").Return(nil)
			},
			want: SuccessResponse{Success: true},
		},
		{
			name: "accept",
			op:   OpAcceptInvitations,
			req:  httptest.NewRequest(http.MethodPost, "/invitations/accept", strings.NewReader(`{"invitationIds":["inv_1"],"user":{"email":"u1@example.com"}}`)),
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.AcceptInvitations(gomock.Any(), []string{"inv_1"}, vortex.AcceptUser{Email: "u1@example.com"}).Return(inv, nil)
			},
			want: inv,
		},
		{
			name:   "by group empty",
			op:     OpGetInvitationsByGroup,
			req:    httptest.NewRequest(http.MethodGet, "/invitations/by-group/team/g1", nil),
			params: Params{ParamGroupType: "team", ParamGroupID: "g1"},
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.GetInvitationsByGroup(gomock.Any(), "team", "g1").Return(nil, nil)
			},
			want: InvitationsResponse{Invitations: []vortex.Invitation{}},
		},
		{
			name:   "delete by group",
			op:     OpDeleteInvitationsByGroup,
			req:    httptest.NewRequest(http.MethodDelete, "/invitations/by-group/team/g1", nil),
			params: Params{ParamGroupType: "team", ParamGroupID: "g1"},
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.DeleteInvitationsByGroup(gomock.Any(), "team", "g1").Return(nil)
			},
			want: SuccessResponse{Success: true},
		},
		{
			name:   "reinvite",
			op:     OpReinvite,
			req:    httptest.NewRequest(http.MethodPost, "/invitations/inv_1/reinvite", nil),
			params: Params{ParamInvitationID: "inv_1"},
			expect: func(m *mocks.MockInvitationAPIMockRecorder) {
				m.Reinvite(gomock.Any(), "inv_1").Return(inv, nil)
			},
			want: inv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockInvitationAPI(ctrl)
			h, _ := newTestHandler(t, client, allowAll)
			tt.expect(client.EXPECT())

			resp := h.Serve(tt.op, tt.req, tt.params)
			assert.Equal(t, http.StatusOK, resp.Status)
			assert.Equal(t, tt.want, resp.Body)
		})
	}
}

func TestServeLegacyAccept(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	h, logs := newTestHandler(t, client, allowAll)

	client.EXPECT().
		AcceptInvitationsWithTarget(gomock.Any(), []string{"inv_1"}, vortex.Target{Type: "email", Value: "u1@example.com"}).
		Return(&vortex.Invitation{ID: "inv_1"}, vortex.LegacyAcceptDeprecation, nil)

	body := `{"invitationIds":["inv_1"],"target":{"type":"email","value":"u1@example.com"}}`
	resp := h.Serve(OpAcceptInvitations, httptest.NewRequest(http.MethodPost, "/invitations/accept", strings.NewReader(body)), nil)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), "deprecated call")
	assert.Contains(t, logs.String(), "AcceptInvitationsWithTarget")
}

func TestServeAcceptBadBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	h, _ := newTestHandler(t, client, allowAll)

	resp := h.Serve(OpAcceptInvitations, httptest.NewRequest(http.MethodPost, "/invitations/accept", strings.NewReader("{")), nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestServeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "client error", err: &vortex.ClientRequestError{Message: "not found", StatusCode: 404}, wantStatus: 404, wantMsg: "not found"},
		{name: "server error", err: &vortex.ServerRequestError{Message: "boom", StatusCode: 503}, wantStatus: http.StatusBadGateway, wantMsg: "boom"},
		{name: "unexpected", err: &vortex.UnexpectedResponseError{Message: "network error"}, wantStatus: http.StatusInternalServerError, wantMsg: "internal error"},
		{name: "missing argument", err: vortex.ErrMissingArgument, wantStatus: http.StatusBadRequest, wantMsg: vortex.ErrMissingArgument.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockInvitationAPI(ctrl)
			h, _ := newTestHandler(t, client, allowAll)

			client.EXPECT().GetInvitation(gomock.Any(), "inv_1").Return(nil, tt.err)

			resp := h.Serve(OpGetInvitation, httptest.NewRequest(http.MethodGet, "/invitations/inv_1", nil), Params{ParamInvitationID: "inv_1"})
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, ErrorBody{Error: tt.wantMsg}, resp.Body)
		})
	}
}

func TestRoutesCoverEveryOperation(t *testing.T) {
	seen := map[Operation]bool{}
	for _, r := range Routes() {
		seen[r.Operation] = true
	}
	for _, op := range []Operation{
		OpGenerateJWT, OpGetInvitationsByTarget, OpGetInvitation, OpRevokeInvitation,
		OpAcceptInvitations, OpGetInvitationsByGroup, OpDeleteInvitationsByGroup, OpReinvite,
	} {
		assert.True(t, seen[op], op)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, errorResponse(http.StatusForbidden, "forbidden"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
}
