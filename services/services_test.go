package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gebv/bcpay"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, zap.L(), GetLogger(ctx))

	l := zap.NewNop().Named("req")
	assert.Equal(t, l, GetLogger(SetLogger(ctx, l)))
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetClient(ctx))

	ctx = SetClient(ctx, &Client{Subject: "admin", Roles: []string{"staff", "admin"}})
	c := GetClient(ctx)
	if assert.NotNil(t, c) {
		assert.Equal(t, "admin", c.Subject)
		assert.True(t, c.HasRole("admin"))
		assert.False(t, c.HasRole("viewer"))
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"business", errors.Wrap(bcpay.ErrInvalidCorpTypeOrPaymentMethod, "select"), http.StatusBadRequest, `"code":"PAY003"`},
		{"not supported", errors.Wrap(bcpay.ErrNotSupported, "paybc"), http.StatusNotImplemented, `not supported`},
		{"not found", bcpay.ErrNotFound, http.StatusNotFound, `not found`},
		{"other", errors.New("boom"), http.StatusInternalServerError, `Internal error`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			assert.NoError(t, ErrorResponse(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestLogExporter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := NewLogExporter(zap.New(core))

	start := time.Now()
	e.ExportSpan(&trace.SpanData{
		Name:       "paybc.create_party",
		StartTime:  start,
		EndTime:    start.Add(150 * time.Millisecond),
		Status:     trace.Status{Code: trace.StatusCodeUnknown, Message: "boom"},
		Attributes: map[string]interface{}{"http.status_code": int64(500)},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "paybc.create_party", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, 150*time.Millisecond, fields["duration"])
	assert.Equal(t, "boom", fields["status"])
	assert.EqualValues(t, 500, fields["http.status_code"])
}
