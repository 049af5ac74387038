package services

import (
	"go.opencensus.io/trace"
	"go.uber.org/zap"
)

// LogExporter пишет завершенные спаны в лог на уровне DEBUG.
type LogExporter struct {
	l *zap.Logger
}

func NewLogExporter(l *zap.Logger) *LogExporter {
	return &LogExporter{l: l}
}

func (e *LogExporter) ExportSpan(s *trace.SpanData) {
	fields := []zap.Field{
		zap.String("trace_id", s.TraceID.String()),
		zap.String("span_id", s.SpanID.String()),
		zap.Duration("duration", s.EndTime.Sub(s.StartTime)),
		zap.Int32("status_code", s.Status.Code),
	}
	if s.Status.Message != "" {
		fields = append(fields, zap.String("status", s.Status.Message))
	}
	for k, v := range s.Attributes {
		fields = append(fields, zap.Any(k, v))
	}
	e.l.Debug(s.Name, fields...)
}

var _ trace.Exporter = (*LogExporter)(nil)
