package settings

import (
	"runtime/pprof"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/gebv/bcpay/httputils"
	"github.com/gebv/bcpay/services"
)

// Middleware с настройками запроса
//
// Устанавливает в контекст
// - request info (from package httputils.RequestInfo)
// - экзмемляр логгера, в нем задан request_id
//
// Отвечает заголовками X-Request-ID и Backend-Version.
func Middleware(appVersion string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, reqMeta := httputils.SetRequestInfo(req.Context(), req, appVersion)

			l := zap.L().Named(c.Path()).With(
				zap.String("request_id", reqMeta.RequestID),
				zap.String("device_id", reqMeta.DeviceID),
				zap.String("session_id", reqMeta.SessionID),
				zap.String("backend_version", reqMeta.AppVersion),
			)
			ctx = services.SetLogger(ctx, l)

			h := c.Response().Header()
			h.Set(httputils.HeaderRequestID, reqMeta.RequestID)
			h.Set(httputils.HeaderBackendVersion, reqMeta.AppVersion)

			// add pprof labels for more useful profiles
			defer pprof.SetGoroutineLabels(req.Context())
			ctx = pprof.WithLabels(ctx, pprof.Labels("method", req.Method+" "+c.Path()))
			pprof.SetGoroutineLabels(ctx)

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
