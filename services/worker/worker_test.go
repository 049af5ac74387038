package worker

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
)

type fakeStore struct {
	statuses map[int64]provider.InvoiceStatus
}

func (s *fakeStore) SetInvoiceStatus(id int64, status provider.InvoiceStatus) error {
	if _, ok := s.statuses[id]; !ok {
		return bcpay.ErrNotFound
	}
	s.statuses[id] = status
	return nil
}

func TestHandle(t *testing.T) {
	store := &fakeStore{statuses: map[int64]provider.InvoiceStatus{7: provider.InvoiceCreated}}

	require.NoError(t, Handle(store, []byte(`{"invoice_reference_id": 7, "status": "COMPLETED"}`)))
	assert.Equal(t, provider.InvoiceCompleted, store.statuses[7])

	err := Handle(store, []byte(`{"invoice_reference_id": 8, "status": "COMPLETED"}`))
	assert.Equal(t, bcpay.ErrNotFound, errors.Cause(err))

	err = Handle(store, []byte(`{"invoice_reference_id": 7, "status": "PAID"}`))
	assert.Equal(t, bcpay.ErrInvalidRequest, errors.Cause(err))
	assert.Equal(t, provider.InvoiceCompleted, store.statuses[7])

	assert.Equal(t, bcpay.ErrInvalidRequest, Handle(store, []byte(`{"status": "CANCELLED"}`)))
	assert.Error(t, Handle(store, []byte(`not json`)))
}
