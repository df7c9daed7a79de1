package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
)

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			// When the handler errored the status in v reflects the
			// pre-error-handler response, so derive it from the error.
			if v.Error != nil {
				var echoErr *echo.HTTPError
				if errors.As(v.Error, &echoErr) {
					status = echoErr.Code
				} else {
					status = apierror.StatusOf(v.Error)
				}
			}

			event := log.Info()
			if status >= 500 {
				event = log.Error().Err(v.Error)
			} else if status >= 400 {
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
