package auditor

import (
	"time"

	"github.com/labstack/echo"

	"github.com/gebv/bcpay/httputils"
	"github.com/gebv/bcpay/services"
)

// Middleware пишет в аудит каждый запрос. Должен стоять после settings.Middleware,
// иначе в записи не будет request_id.
func (a *HttpAuditor) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			reqMeta := httputils.GetRequestInfo(ctx)
			m := &HTTPRequest{
				RequestID:  reqMeta.RequestID,
				Method:     c.Request().Method,
				Path:       c.Path(),
				Status:     c.Response().Status,
				DurationMs: time.Since(start).Milliseconds(),
				UserIP:     optional(reqMeta.RealIP),
				ProxyIP:    optional(reqMeta.FirstProxyIP()),
				UserAgent:  reqMeta.UserAgent,
				DeviceID:   reqMeta.DeviceID,
				CreatedAt:  start,
			}
			// клиента кладет auth.Middleware, он стоит ниже по цепочке
			if client := services.GetClient(c.Request().Context()); client != nil {
				m.Subject = optional(client.Subject)
			}
			if err != nil {
				m.Error = optional(err.Error())
			}
			a.Log(m)
			return nil
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
