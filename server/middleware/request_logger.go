package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/presence-analyzer/server/internal/observability"
)

// RequestLogger returns an echo middleware that logs one line per request
// with a request ID and duration, and feeds the metrics collector. An
// X-Request-Id header from an upstream proxy is reused as the request ID.
func RequestLogger(logger *slog.Logger, metrics *observability.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}

			var reqCtx *observability.RequestContext
			if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
				reqCtx = observability.NewRequestContextWithID(logger, id, route)
			} else {
				reqCtx = observability.NewRequestContext(logger, route)
			}

			ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

			err := next(c)

			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			failed := err != nil || status >= 500
			if metrics != nil {
				metrics.RecordRequest(route, reqCtx.Duration(), failed)
			}

			attrs := []slog.Attr{
				slog.String("method", c.Request().Method),
				slog.Int(observability.LogFieldStatus, status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			if err != nil {
				reqCtx.Error("request failed", err, attrs...)
			} else {
				reqCtx.Info("request handled", attrs...)
			}

			return err
		}
	}
}
