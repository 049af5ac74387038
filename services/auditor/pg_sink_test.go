package auditor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebv/bcpay/schema/pgtest"
)

func TestPGSink(t *testing.T) {
	db := pgtest.DB(t)
	pgtest.Reset(t, db)

	subject := "idir/staff"
	now := time.Now().UTC().Truncate(time.Millisecond)
	sink := &PGSink{DB: db}
	err := sink.Insert(context.Background(), []*HTTPRequest{
		{RequestID: "r1", Method: "GET", Path: "/admin/codes", Status: 200, DurationMs: 3, Subject: &subject, CreatedAt: now},
		{RequestID: "r2", Method: "POST", Path: "/api/v1/invoices", Status: 201, DurationMs: 40, CreatedAt: now},
	})
	require.NoError(t, err)

	structs, err := db.SelectAllFrom(HTTPRequestView, "ORDER BY request_id")
	require.NoError(t, err)
	require.Len(t, structs, 2)
	first := structs[0].(*HTTPRequest)
	assert.Equal(t, "r1", first.RequestID)
	require.NotNil(t, first.Subject)
	assert.Equal(t, subject, *first.Subject)
	assert.Nil(t, structs[1].(*HTTPRequest).Subject)
	assert.Equal(t, 201, structs[1].(*HTTPRequest).Status)
}
