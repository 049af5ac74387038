package auditor

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/reform.v1"
)

const (
	toInsertCap   = 1024
	maxBatch      = 512
	maxBatchDelay = time.Second
)

//go:generate reform

//reform:bcpay.http_requests
type HTTPRequest struct {
	RequestID  string    `reform:"request_id"`
	Method     string    `reform:"method"`
	Path       string    `reform:"path"`
	Status     int       `reform:"status"`
	DurationMs int64     `reform:"duration_ms"`
	Subject    *string   `reform:"subject"`
	UserIP     *string   `reform:"user_ip"`
	ProxyIP    *string   `reform:"proxy_ip"`
	UserAgent  string    `reform:"user_agent"`
	DeviceID   string    `reform:"device_id"`
	Error      *string   `reform:"error"`
	CreatedAt  time.Time `reform:"created_at"`
}

// Sink куда сохраняются пачки записей аудита.
type Sink interface {
	Insert(ctx context.Context, batch []*HTTPRequest) error
}

type PGSink struct {
	DB *reform.DB
}

func (s *PGSink) Insert(ctx context.Context, batch []*HTTPRequest) error {
	structs := make([]reform.Struct, len(batch))
	for i, m := range batch {
		structs[i] = m
	}
	return s.DB.WithContext(ctx).InsertMulti(structs...)
}

type HttpAuditor struct {
	sink     Sink
	toInsert chan *HTTPRequest
	l        *zap.Logger
	wg       sync.WaitGroup

	mInsertLen      prometheus.Gauge
	mInsertCap      prometheus.Gauge
	mDropped        prometheus.Counter
	mInsertSize     prometheus.Histogram
	mInsertDuration prometheus.Histogram
}

func NewHttpAuditor(sink Sink) *HttpAuditor {
	a := &HttpAuditor{
		sink:     sink,
		toInsert: make(chan *HTTPRequest, toInsertCap),
		l:        zap.L().Named("auditor"),
		mInsertLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auditor_insert_len",
			Help: "Length of internal insert channel.",
		}),
		mInsertCap: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auditor_insert_cap",
			Help: "Capacity of internal insert channel.",
		}),
		mDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auditor_dropped_total",
			Help: "Number of audit messages dropped because the insert channel was full.",
		}),
		mInsertSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auditor_insert_size_rows",
			Help:    "Size of a single batch insert.",
			Buckets: prometheus.ExponentialBuckets(maxBatch/32, 2, 5),
		}),
		mInsertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auditor_insert_duration_seconds",
			Help:    "Duration of a single batch insert.",
			Buckets: prometheus.ExponentialBuckets(maxBatchDelay.Seconds()/32, 2, 5),
		}),
	}

	a.l.Info("Started.")
	a.wg.Add(1)
	go a.runInserter()
	return a
}

// Stop сохраняет то, что осталось в канале. Log после Stop вызывать нельзя.
func (a *HttpAuditor) Stop() {
	close(a.toInsert)
	a.wg.Wait()
	a.l.Info("Stopped.")
}

func (a *HttpAuditor) runInserter() {
	defer a.wg.Done()
	t := time.NewTicker(maxBatchDelay)
	defer t.Stop()

	var exit bool
	for !exit {
		// collect batch up to maxBatch messages and up to maxBatchDelay seconds
		messages := make([]*HTTPRequest, 0, maxBatch)
		var insert bool
		for !insert {
			select {
			case m, ok := <-a.toInsert:
				if !ok {
					exit = true
					insert = true
					break
				}

				messages = append(messages, m)
				if len(messages) == maxBatch {
					insert = true
				}

			case <-t.C:
				insert = true
			}
		}
		if len(messages) > 0 {
			a.insertBatch(messages)
		}
	}
}

func (a *HttpAuditor) insertBatch(messages []*HTTPRequest) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer func() {
		cancel()
		d := time.Since(start)
		a.mInsertSize.Observe(float64(len(messages)))
		a.mInsertDuration.Observe(d.Seconds())
		a.l.Debug("Audit log messages inserted.", zap.Int("count", len(messages)), zap.Duration("duration", d))
	}()
	if err := a.sink.Insert(ctx, messages); err != nil {
		a.l.Error("Failed to put audit log message.", zap.Error(err))
	}
}

// Log не блокирует запрос: при заполненном канале сообщение отбрасывается.
func (a *HttpAuditor) Log(m *HTTPRequest) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	select {
	case a.toInsert <- m:
	default:
		a.mDropped.Inc()
		a.l.Warn("Audit log message dropped.", zap.String("request_id", m.RequestID))
	}
}

func (a *HttpAuditor) Describe(ch chan<- *prometheus.Desc) {
	a.mInsertLen.Describe(ch)
	a.mInsertCap.Describe(ch)
	a.mDropped.Describe(ch)
	a.mInsertSize.Describe(ch)
	a.mInsertDuration.Describe(ch)
}

func (a *HttpAuditor) Collect(ch chan<- prometheus.Metric) {
	a.mInsertLen.Set(float64(len(a.toInsert)))
	a.mInsertCap.Set(float64(cap(a.toInsert)))

	a.mInsertLen.Collect(ch)
	a.mInsertCap.Collect(ch)
	a.mDropped.Collect(ch)
	a.mInsertSize.Collect(ch)
	a.mInsertDuration.Collect(ch)
}

// check interfaces
var (
	_ prometheus.Collector = (*HttpAuditor)(nil)
	_ Sink                 = (*PGSink)(nil)
)
