package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/schema/pgtest"
)

func TestStore_paymentAccount(t *testing.T) {
	db := pgtest.DB(t)
	pgtest.Reset(t, db)
	s := &Store{DB: db}

	triple := AccountTriple{PartyNumber: "P100", AccountNumber: "A200", SiteNumber: "S300"}
	acc, err := s.NewPaymentAccount(PAYBC, CP, "Coop", triple)
	require.NoError(t, err)
	assert.NotZero(t, acc.PaymentAccountID)
	assert.False(t, acc.CreatedAt.IsZero())

	got, err := s.FindPaymentAccount(PAYBC, triple)
	require.NoError(t, err)
	assert.Equal(t, acc.PaymentAccountID, got.PaymentAccountID)
	assert.Equal(t, "Coop", got.Name)
	assert.Equal(t, CP, got.CorpType)
	assert.Equal(t, triple, got.Triple())

	_, err = s.FindPaymentAccount(PAYBC, AccountTriple{PartyNumber: "P100", AccountNumber: "A200", SiteNumber: "S301"})
	assert.Equal(t, bcpay.ErrNotFound, err)

	// тройка уникальна
	_, err = s.NewPaymentAccount(PAYBC, CP, "Coop", triple)
	assert.Error(t, err)
}

func TestStore_invoiceReference(t *testing.T) {
	db := pgtest.DB(t)
	pgtest.Reset(t, db)
	s := &Store{DB: db}

	acc, err := s.NewPaymentAccount(PAYBC, CP, "Coop", AccountTriple{"P1", "A1", "S1"})
	require.NoError(t, err)

	first, err := s.NewInvoiceReference(acc.PaymentAccountID, 1001, "REG00001001", "10005")
	require.NoError(t, err)
	assert.Equal(t, InvoiceCreated, first.Status)
	second, err := s.NewInvoiceReference(acc.PaymentAccountID, 1002, "REG00001002", "10006")
	require.NoError(t, err)

	require.NoError(t, s.SetInvoiceStatus(first.InvoiceReferenceID, InvoiceCompleted))
	assert.Equal(t, bcpay.ErrNotFound, s.SetInvoiceStatus(-1, InvoiceCompleted))

	list, err := s.ListInvoiceReferences(acc.PaymentAccountID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.InvoiceReferenceID, list[0].InvoiceReferenceID)
	assert.Equal(t, InvoiceCompleted, list[0].Status)
	assert.Equal(t, "REG00001001", list[0].TransactionNumber)
	assert.Equal(t, second.InvoiceReferenceID, list[1].InvoiceReferenceID)
	assert.Equal(t, InvoiceCreated, list[1].Status)
	assert.EqualValues(t, 1002, list[1].InvoiceNumber)

	list, err = s.ListInvoiceReferences(acc.PaymentAccountID + 100)
	require.NoError(t, err)
	assert.Empty(t, list)
}
