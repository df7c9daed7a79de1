package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/middleware"
)

func newContext(t *testing.T, method string, header http.Header) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, "/admin/trips", nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestServiceKeyAuthenticator(t *testing.T) {
	auth := middleware.NewServiceKeyAuthenticator("sekrit")

	tests := []struct {
		name       string
		header     http.Header
		wantStatus int
	}{
		{
			name:   "bearer token accepted",
			header: http.Header{"Authorization": {"Bearer sekrit"}},
		},
		{
			name:   "admin key header accepted",
			header: http.Header{"X-Admin-Key": {"sekrit"}},
		},
		{
			name:       "missing credentials",
			header:     http.Header{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key",
			header:     http.Header{"Authorization": {"Bearer nope"}},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(t, http.MethodPut, tt.header)

			identity, err := auth.Authenticate(c)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, middleware.RoleAdmin, identity.Role)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apierror.StatusOf(err))
		})
	}
}

func TestServiceKeyAuthenticator_UnconfiguredKeyRejectsEverything(t *testing.T) {
	auth := middleware.NewServiceKeyAuthenticator("")
	c, _ := newContext(t, http.MethodPut, http.Header{"Authorization": {"Bearer anything"}})

	_, err := auth.Authenticate(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apierror.StatusOf(err))
}

// stubAuthenticator returns a fixed identity or error.
type stubAuthenticator struct {
	identity middleware.Identity
	err      error
}

func (s stubAuthenticator) Authenticate(echo.Context) (middleware.Identity, error) {
	return s.identity, s.err
}

func TestRequireContentEditor(t *testing.T) {
	tests := []struct {
		name       string
		auth       middleware.Authenticator
		wantStatus int
	}{
		{
			name: "admin passes",
			auth: stubAuthenticator{identity: middleware.Identity{Subject: "ops", Role: middleware.RoleAdmin}},
		},
		{
			name: "content editor passes",
			auth: stubAuthenticator{identity: middleware.Identity{Subject: "ed", Role: middleware.RoleContentEditor}},
		},
		{
			name:       "viewer rejected",
			auth:       stubAuthenticator{identity: middleware.Identity{Subject: "ro", Role: "viewer"}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "authentication failure propagates",
			auth:       stubAuthenticator{err: apierror.Unauthorized("missing credentials")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(t, http.MethodPost, nil)

			var sawIdentity bool
			next := func(c echo.Context) error {
				_, sawIdentity = middleware.CallerIdentity(c)
				return c.NoContent(http.StatusNoContent)
			}

			err := middleware.RequireContentEditor(tt.auth)(next)(c)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.True(t, sawIdentity, "handler should see the caller identity")
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apierror.StatusOf(err))
			assert.False(t, sawIdentity)
		})
	}
}

func TestAudit_LogsMutationsOnly(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	c, _ := newContext(t, http.MethodGet, nil)
	require.NoError(t, middleware.Audit(log)(handler)(c))
	assert.Empty(t, buf.String(), "reads should not be audited")

	c, _ = newContext(t, http.MethodPost, nil)
	c.Set(middleware.IdentityKey, middleware.Identity{Subject: "service-key", Role: middleware.RoleAdmin})
	require.NoError(t, middleware.Audit(log)(handler)(c))

	line := buf.String()
	assert.Contains(t, line, `"message":"audit"`)
	assert.Contains(t, line, `"subject":"service-key"`)
	assert.Contains(t, line, `"method":"POST"`)
}

func TestAudit_DerivesStatusFromError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := func(c echo.Context) error { return apierror.NotFound("trip not found") }

	c, _ := newContext(t, http.MethodDelete, nil)
	err := middleware.Audit(log)(handler)(c)
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"status":404`)
}
