package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

type Provider string

func (p Provider) String() string { return string(p) }

const (
	UNKNOWN_PROVIDER Provider = ""
	PAYBC            Provider = "paybc"
)

type PaymentMethod string

const (
	CC PaymentMethod = "CC"
)

type CorpType string

const (
	CP  CorpType = "CP"
	NRO CorpType = "NRO"
)

// AccountRequest адрес плательщика, из которого строится site.
type AccountRequest struct {
	City         string `json:"city"`
	AddressLine1 string `json:"address_line_1"`
	PostalCode   string `json:"postal_code"`
	Province     string `json:"province"`
	Country      string `json:"country"`
}

// AccountTriple identifies the party/account/site created in the payment system.
// All invoice operations are keyed by it.
type AccountTriple struct {
	PartyNumber   string `json:"party_number"`
	AccountNumber string `json:"account_number"`
	SiteNumber    string `json:"site_number"`
}

func (t AccountTriple) IsZero() bool {
	return t.PartyNumber == "" || t.AccountNumber == "" || t.SiteNumber == ""
}

type LineItem struct {
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	Quantity    int             `json:"quantity"`
}

// InvoiceResponse decoded body returned by the payment system for a created invoice.
type InvoiceResponse map[string]interface{}

// Backend the capability set every payment system implements.
type Backend interface {
	Name() Provider
	CreateAccount(ctx context.Context, name string, req AccountRequest) (AccountTriple, error)
	IsValidAccount(ctx context.Context, partyNumber, accountNumber, siteNumber string) (bool, error)
	CreateInvoice(ctx context.Context, account AccountTriple, items []LineItem, invoiceNumber int) (InvoiceResponse, error)
	UpdateInvoice(ctx context.Context) error
	GetReceipt(ctx context.Context) error
}
