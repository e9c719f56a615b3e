package chiadapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/vortex"
	"github.com/mattjoyce/vortex/adapter"
	"github.com/mattjoyce/vortex/adapter/mocks"
	"github.com/mattjoyce/vortex/token"
)

func newRouter(t *testing.T, client adapter.InvitationAPI) chi.Router {
	t.Helper()
	h, err := adapter.New(adapter.Config{
		Client: client,
		Authenticate: func(r *http.Request) (token.Identity, error) {
			if r.Header.Get("Authorization") == "" {
				return nil, nil
			}
			return token.User{ID: "u1", Email: "u1@example.com"}, nil
		},
		Authorize: func(_ context.Context, op adapter.Operation, _ token.Identity) (bool, error) {
			return op != adapter.OpDeleteInvitationsByGroup, nil
		},
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api/vortex", func(r chi.Router) {
		Mount(r, h)
	})
	return r
}

func do(r http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer x")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMountRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	r := newRouter(t, client)

	client.EXPECT().GenerateJWT(gomock.Any(), gomock.Nil()).Return("a.b.c", nil)
	rec := do(r, http.MethodPost, "/api/vortex/jwt", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jwt":"a.b.c"}`, rec.Body.String())

	client.EXPECT().GetInvitation(gomock.Any(), "inv_1").Return(&vortex.Invitation{ID: "inv_1"}, nil)
	rec = do(r, http.MethodGet, "/api/vortex/invitations/inv_1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"inv_1"`)

	client.EXPECT().AcceptInvitations(gomock.Any(), []string{"inv_1"}, vortex.AcceptUser{Phone: "+1"}).Return(&vortex.Invitation{ID: "inv_1"}, nil)
	rec = do(r, http.MethodPost, "/api/vortex/invitations/accept", `{"invitationIds":["inv_1"],"user":{"phone":"+1"}}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	client.EXPECT().GetInvitationsByGroup(gomock.Any(), "team", "g1").Return([]vortex.Invitation{{ID: "inv_2"}}, nil)
	rec = do(r, http.MethodGet, "/api/vortex/invitations/by-group/team/g1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"inv_2"`)

	client.EXPECT().Reinvite(gomock.Any(), "inv_1").Return(&vortex.Invitation{ID: "inv_1"}, nil)
	rec = do(r, http.MethodPost, "/api/vortex/invitations/inv_1/reinvite", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	client.EXPECT().RevokeInvitation(gomock.Any(), "inv_1").Return(nil)
	rec = do(r, http.MethodDelete, "/api/vortex/invitations/inv_1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestMountAuthGates(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	r := newRouter(t, client)

	rec := do(r, http.MethodGet, "/api/vortex/invitations/inv_1", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	rec = do(r, http.MethodDelete, "/api/vortex/invitations/by-group/team/g1", "", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMountPlatformError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockInvitationAPI(ctrl)
	r := newRouter(t, client)

	client.EXPECT().GetInvitationsByTarget(gomock.Any(), "email", "x@example.com").
		Return(nil, &vortex.ServerRequestError{Message: "upstream down", StatusCode: 503})

	rec := do(r, http.MethodGet, "/api/vortex/invitations?targetType=email&targetValue=x@example.com", "", true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"upstream down"}`, rec.Body.String())
}

func TestParamNames(t *testing.T) {
	assert.Equal(t, []string{"groupType", "groupId"}, paramNames("/invitations/by-group/{groupType}/{groupId}"))
	assert.Nil(t, paramNames("/jwt"))
}
