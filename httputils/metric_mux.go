package httputils

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type logFunc func(v ...interface{})

func (l logFunc) Println(v ...interface{}) {
	l(v...)
}

// DebugMux отдает /metrics из gatherer и /healthz.
// ping может быть nil, тогда /healthz всегда отвечает 200.
func DebugMux(gatherer prometheus.Gatherer, ping func() error) http.Handler {
	l := zap.L().Named("debugMux")
	sugar := l.Sugar()

	s := http.NewServeMux()

	s.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:      logFunc(sugar.Warn),
		ErrorHandling: promhttp.HTTPErrorOnError,
	}))
	s.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(); err != nil {
				l.Warn("Health check failed.", zap.Error(err))
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return s
}
