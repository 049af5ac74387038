package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gebv/bcpay/provider"
)

type CreateAccountRequest struct {
	PaymentMethod provider.PaymentMethod  `json:"payment_method"`
	CorpType      provider.CorpType       `json:"corp_type"`
	Name          string                  `json:"name"`
	Address       provider.AccountRequest `json:"address"`
}

type IsValidAccountRequest struct {
	PaymentMethod provider.PaymentMethod
	CorpType      provider.CorpType
	provider.AccountTriple
}

type CreateInvoiceRequest struct {
	PaymentMethod provider.PaymentMethod `json:"payment_method"`
	CorpType      provider.CorpType      `json:"corp_type"`
	provider.AccountTriple
	InvoiceNumber int                 `json:"invoice_number"`
	LineItems     []provider.LineItem `json:"line_items"`
	// ReturnURL куда вернуть плательщика, должен быть в списке разрешенных.
	ReturnURL string `json:"return_url,omitempty"`
}

// Total сумма по всем строкам.
func (r *CreateInvoiceRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.LineItems {
		total = total.Add(item.Total)
	}
	return total
}

// MessageInvoiceCreated событие в NATS после создания счета в платежной системе.
type MessageInvoiceCreated struct {
	Provider          provider.Provider `json:"provider"`
	CorpType          provider.CorpType `json:"corp_type"`
	InvoiceNumber     int               `json:"invoice_number"`
	TransactionNumber string            `json:"transaction_number"`
	ReferenceNumber   string            `json:"reference_number,omitempty"`
	Total             decimal.Decimal   `json:"total"`
	ReturnURL         string            `json:"return_url,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	// по местному времени законодательного собрания
	FiscalYear   int    `json:"fiscal_year,omitempty"`
	BusinessDate string `json:"business_date,omitempty"`
}
