package provider

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/reform.v1"

	"github.com/gebv/bcpay"
)

type InvoiceStatus string

const (
	InvoiceCreated   InvoiceStatus = "CREATED"
	InvoiceCompleted InvoiceStatus = "COMPLETED"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Store сохраняет то, что вернула платежная система.
type Store struct {
	DB *reform.DB
}

func (s *Store) NewPaymentAccount(p Provider, corp CorpType, name string, t AccountTriple) (*PaymentAccount, error) {
	acc := &PaymentAccount{
		Provider:      p,
		CorpType:      corp,
		Name:          name,
		PartyNumber:   t.PartyNumber,
		AccountNumber: t.AccountNumber,
		SiteNumber:    t.SiteNumber,
	}
	if err := s.DB.Insert(acc); err != nil {
		return nil, errors.Wrap(err, "Failed insert payment account")
	}
	return acc, nil
}

func (s *Store) FindPaymentAccount(p Provider, t AccountTriple) (*PaymentAccount, error) {
	var acc PaymentAccount
	err := s.DB.SelectOneTo(
		&acc,
		"WHERE provider = $1 AND party_number = $2 AND account_number = $3 AND site_number = $4",
		p, t.PartyNumber, t.AccountNumber, t.SiteNumber,
	)
	if err != nil {
		if err == reform.ErrNoRows {
			return nil, bcpay.ErrNotFound
		}
		return nil, errors.Wrap(err, "Failed get payment account")
	}
	return &acc, nil
}

func (s *Store) NewInvoiceReference(
	paymentAccountID int64,
	invoiceNumber int,
	transactionNumber string,
	referenceNumber string,
) (*InvoiceReference, error) {
	ref := &InvoiceReference{
		PaymentAccountID:  paymentAccountID,
		InvoiceNumber:     int64(invoiceNumber),
		TransactionNumber: transactionNumber,
		ReferenceNumber:   referenceNumber,
		Status:            InvoiceCreated,
	}
	if err := s.DB.Insert(ref); err != nil {
		return nil, errors.Wrap(err, "Failed insert invoice reference")
	}
	return ref, nil
}

func (s *Store) SetInvoiceStatus(invoiceReferenceID int64, status InvoiceStatus) error {
	ref := &InvoiceReference{InvoiceReferenceID: invoiceReferenceID}
	if err := s.DB.Reload(ref); err != nil {
		if err == reform.ErrNoRows {
			return bcpay.ErrNotFound
		}
		return errors.Wrap(err, "Failed get invoice reference")
	}
	ref.Status = status
	return s.DB.Save(ref)
}

func (s *Store) ListInvoiceReferences(paymentAccountID int64) ([]*InvoiceReference, error) {
	structs, err := s.DB.SelectAllFrom(
		InvoiceReferenceTable,
		"WHERE payment_account_id = $1 ORDER BY invoice_reference_id",
		paymentAccountID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed list invoice references")
	}
	out := make([]*InvoiceReference, 0, len(structs))
	for _, str := range structs {
		out = append(out, str.(*InvoiceReference))
	}
	return out, nil
}

//go:generate reform

//reform:bcpay.payment_accounts
type PaymentAccount struct {
	PaymentAccountID int64     `reform:"payment_account_id,pk"`
	Provider         Provider  `reform:"provider"`
	CorpType         CorpType  `reform:"corp_type"`
	Name             string    `reform:"name"`
	PartyNumber      string    `reform:"party_number"`
	AccountNumber    string    `reform:"account_number"`
	SiteNumber       string    `reform:"site_number"`
	CreatedAt        time.Time `reform:"created_at"`
}

func (a *PaymentAccount) Triple() AccountTriple {
	return AccountTriple{
		PartyNumber:   a.PartyNumber,
		AccountNumber: a.AccountNumber,
		SiteNumber:    a.SiteNumber,
	}
}

func (a *PaymentAccount) BeforeInsert() error {
	a.CreatedAt = time.Now()
	return nil
}

//reform:bcpay.invoice_references
type InvoiceReference struct {
	InvoiceReferenceID int64         `reform:"invoice_reference_id,pk"`
	PaymentAccountID   int64         `reform:"payment_account_id"`
	InvoiceNumber      int64         `reform:"invoice_number"`
	TransactionNumber  string        `reform:"transaction_number"`
	ReferenceNumber    string        `reform:"reference_number"`
	Status             InvoiceStatus `reform:"status"`
	CreatedAt          time.Time     `reform:"created_at"`
	UpdatedAt          time.Time     `reform:"updated_at"`
}

func (o *InvoiceReference) BeforeInsert() error {
	o.UpdatedAt = time.Now()
	o.CreatedAt = time.Now()
	return nil
}

func (o *InvoiceReference) BeforeUpdate() error {
	o.UpdatedAt = time.Now()
	return nil
}
