package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/reform.v1/parse"
)

func TestReform_inSync(t *testing.T) {
	for name, tc := range map[string]struct {
		si    *parse.StructInfo
		obj   interface{}
		table string
	}{
		"payment_accounts":   {&PaymentAccountTable.s, new(PaymentAccount), "payment_accounts"},
		"invoice_references": {&InvoiceReferenceTable.s, new(InvoiceReference), "invoice_references"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() { parse.AssertUpToDate(tc.si, tc.obj) })

			parsed, err := parse.Object(tc.obj, "bcpay", tc.table)
			require.NoError(t, err)
			assert.Equal(t, *parsed, *tc.si)
		})
	}
}

func TestPaymentAccount_record(t *testing.T) {
	acc := &PaymentAccount{
		Provider:      PAYBC,
		CorpType:      CP,
		Name:          "Coop",
		PartyNumber:   "P100",
		AccountNumber: "A200",
		SiteNumber:    "S300",
	}
	assert.Equal(t, "bcpay", PaymentAccountTable.Schema())
	assert.Equal(t, "payment_accounts", acc.Table().Name())
	assert.EqualValues(t, 0, PaymentAccountTable.PKColumnIndex())
	assert.Equal(t, "payment_account_id", PaymentAccountTable.Columns()[0])
	assert.Len(t, acc.Values(), len(PaymentAccountTable.Columns()))
	assert.Len(t, acc.Pointers(), len(PaymentAccountTable.Columns()))

	assert.False(t, acc.HasPK())
	acc.SetPK(int64(7))
	assert.True(t, acc.HasPK())
	assert.Equal(t, int64(7), acc.PKValue())
	assert.Contains(t, acc.String(), "PartyNumber: `P100`")

	rec := PaymentAccountTable.NewRecord()
	_, ok := rec.(*PaymentAccount)
	assert.True(t, ok)
}

func TestInvoiceReference_record(t *testing.T) {
	now := time.Now()
	ref := &InvoiceReference{
		PaymentAccountID:  7,
		InvoiceNumber:     1001,
		TransactionNumber: "REG00001001",
		Status:            InvoiceCreated,
		CreatedAt:         now,
	}
	assert.Equal(t, "invoice_references", InvoiceReferenceTable.Name())
	assert.EqualValues(t, 0, InvoiceReferenceTable.PKColumnIndex())
	assert.Len(t, ref.Values(), len(InvoiceReferenceTable.Columns()))

	values := ref.Values()
	assert.Equal(t, int64(7), values[1])
	assert.Equal(t, InvoiceCreated, values[5])
	assert.Equal(t, now, values[6])

	assert.False(t, ref.HasPK())
	ref.SetPK(int64(3))
	assert.Equal(t, int64(3), ref.InvoiceReferenceID)
	assert.True(t, ref.HasPK())
}
