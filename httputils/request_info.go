package httputils

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ctxKey int

const (
	requestInfoCtxKey ctxKey = iota
)

const (
	HeaderRequestID      = "X-Request-ID"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderDeviceID       = "Device-ID"
	HeaderSessionID      = "Session-ID"
	HeaderBackendVersion = "Backend-Version"
)

// SetRequestInfo returns a new context with set (or re-set) RequestInfo.
func SetRequestInfo(ctx context.Context, r *http.Request, appVersion string) (out context.Context, res RequestInfo) {
	if v := r.Header.Get(HeaderForwardedFor); v != "" {
		ipsl := strings.Split(v, ",")
		for i := range ipsl {
			ipsl[i] = strings.TrimSpace(ipsl[i])
		}
		res.RealIP = ipsl[0]
		if len(ipsl) > 1 {
			res.ProxyIPs = ipsl[1:]
		}
	}
	res.UserAgent = r.UserAgent()
	res.DeviceID = r.Header.Get(HeaderDeviceID)
	res.SessionID = r.Header.Get(HeaderSessionID)
	res.RequestID = r.Header.Get(HeaderRequestID)

	if res.RealIP == "" && r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		res.ProxyIPs = []string{host}
	}

	if res.RequestID == "" {
		res.RequestID = appCreatedRequestID()
	}
	res.AppVersion = appVersion

	out = context.WithValue(ctx, requestInfoCtxKey, res)

	return out, res
}

// GetRequestInfo returns RequestInfo from the context.
func GetRequestInfo(ctx context.Context) (res RequestInfo) {
	res, _ = ctx.Value(requestInfoCtxKey).(RequestInfo)
	return res
}

// RequestInfo контейнер с мета-информацией о реквесте.
type RequestInfo struct {
	RealIP     string
	ProxyIPs   []string
	DeviceID   string
	SessionID  string
	UserAgent  string
	RequestID  string
	AppVersion string
}

func (ri RequestInfo) FirstProxyIP() string {
	if len(ri.ProxyIPs) > 0 {
		return ri.ProxyIPs[0]
	}
	return ""
}

// application created
// ac-xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func appCreatedRequestID() string {
	return "ac-" + uuid.NewString()
}
