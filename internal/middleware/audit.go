package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
)

// actionKey is the echo context key for the audit action label.
const actionKey = "audit_action"

// AuditAction labels the audit entry written for a route, e.g.
// "admin.amenity.create".
func AuditAction(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(actionKey, action)
			return next(c)
		}
	}
}

// Audit logs every mutating request with the caller identity after the
// handler has run. Read requests pass through untouched.
func Audit(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isMutation(c.Request().Method) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			// On error the final status is written later by the error
			// handler, so derive it from the error instead.
			status := c.Response().Status
			event := log.Info()
			if err != nil {
				status = apierror.StatusOf(err)
				event = log.Warn().Err(err)
			}
			if identity, ok := CallerIdentity(c); ok {
				event = event.Str("subject", identity.Subject).Str("role", identity.Role)
			}
			if action, ok := c.Get(actionKey).(string); ok {
				event = event.Str("action", action)
			}
			event.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("elapsed", time.Since(start)).
				Msg("audit")

			return err
		}
	}
}

func isMutation(method string) bool {
	switch method {
	case echo.POST, echo.PUT, echo.PATCH, echo.DELETE:
		return true
	default:
		return false
	}
}
