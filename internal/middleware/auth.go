// Package middleware provides the echo middleware used by the admin
// API: authentication, audit logging and request logging.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
)

// Roles recognized by the admin surface.
const (
	// RoleAdmin can do everything a content editor can.
	RoleAdmin = "admin"

	// RoleContentEditor can mutate guide content.
	RoleContentEditor = "content_editor"
)

// IdentityKey is the echo context key the caller identity is stored under.
const IdentityKey = "identity"

// adminKeyHeader is the alternative header for the static service key.
const adminKeyHeader = "X-Admin-Key"

// Identity describes an authenticated caller.
type Identity struct {
	Subject string
	Role    string
}

// Authenticator resolves request credentials into an identity.
type Authenticator interface {
	Authenticate(c echo.Context) (Identity, error)
}

// ServiceKeyAuthenticator authenticates a single static service key,
// accepted as a bearer token or via the X-Admin-Key header.
type ServiceKeyAuthenticator struct {
	key string
}

// NewServiceKeyAuthenticator creates an authenticator for key.
func NewServiceKeyAuthenticator(key string) *ServiceKeyAuthenticator {
	return &ServiceKeyAuthenticator{key: key}
}

// Authenticate implements Authenticator.
func (a *ServiceKeyAuthenticator) Authenticate(c echo.Context) (Identity, error) {
	if a.key == "" {
		return Identity{}, apierror.Unauthorized("admin key not configured")
	}

	presented := c.Request().Header.Get(adminKeyHeader)
	if presented == "" {
		authz := c.Request().Header.Get(echo.HeaderAuthorization)
		presented = strings.TrimPrefix(authz, "Bearer ")
	}
	if presented == "" {
		return Identity{}, apierror.Unauthorized("missing credentials")
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(a.key)) != 1 {
		return Identity{}, apierror.Unauthorized("invalid credentials")
	}
	return Identity{Subject: "service-key", Role: RoleAdmin}, nil
}

// RequireContentEditor guards mutating routes. The resolved identity is
// stored in the echo context for handlers and audit logging.
func RequireContentEditor(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := auth.Authenticate(c)
			if err != nil {
				return err
			}
			if identity.Role != RoleAdmin && identity.Role != RoleContentEditor {
				return apierror.Forbidden("content editor role required")
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// CallerIdentity returns the identity stored by RequireContentEditor.
func CallerIdentity(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(IdentityKey).(Identity)
	return identity, ok
}

var _ Authenticator = (*ServiceKeyAuthenticator)(nil)
