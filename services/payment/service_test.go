package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/util"
)

var triple = provider.AccountTriple{PartyNumber: "P100", AccountNumber: "A200", SiteNumber: "S300"}

type fakeBackend struct {
	createAccountErr error
	createInvoiceErr error

	gotName    string
	gotItems   []provider.LineItem
	gotInvoice int
}

func (b *fakeBackend) Name() provider.Provider { return provider.PAYBC }

func (b *fakeBackend) CreateAccount(ctx context.Context, name string, req provider.AccountRequest) (provider.AccountTriple, error) {
	b.gotName = name
	if b.createAccountErr != nil {
		return provider.AccountTriple{}, b.createAccountErr
	}
	return triple, nil
}

func (b *fakeBackend) IsValidAccount(ctx context.Context, party, account, site string) (bool, error) {
	return party == triple.PartyNumber && account == triple.AccountNumber && site == triple.SiteNumber, nil
}

func (b *fakeBackend) CreateInvoice(ctx context.Context, t provider.AccountTriple, items []provider.LineItem, n int) (provider.InvoiceResponse, error) {
	b.gotItems, b.gotInvoice = items, n
	if b.createInvoiceErr != nil {
		return nil, b.createInvoiceErr
	}
	return provider.InvoiceResponse{"invoice_number": "INV-1", "pbc_ref_number": "10005"}, nil
}

func (b *fakeBackend) UpdateInvoice(ctx context.Context) error { return bcpay.ErrNotSupported }
func (b *fakeBackend) GetReceipt(ctx context.Context) error    { return bcpay.ErrNotSupported }

type fakeStore struct {
	mutex    sync.Mutex
	accounts []*provider.PaymentAccount
	refs     []*provider.InvoiceReference
	err      error
	refErr   error
}

func (s *fakeStore) NewPaymentAccount(p provider.Provider, corp provider.CorpType, name string, t provider.AccountTriple) (*provider.PaymentAccount, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	acc := &provider.PaymentAccount{
		PaymentAccountID: int64(len(s.accounts) + 1),
		Provider:         p,
		CorpType:         corp,
		Name:             name,
		PartyNumber:      t.PartyNumber,
		AccountNumber:    t.AccountNumber,
		SiteNumber:       t.SiteNumber,
	}
	s.accounts = append(s.accounts, acc)
	return acc, nil
}

func (s *fakeStore) FindPaymentAccount(p provider.Provider, t provider.AccountTriple) (*provider.PaymentAccount, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, acc := range s.accounts {
		if acc.Provider == p && acc.Triple() == t {
			return acc, nil
		}
	}
	return nil, bcpay.ErrNotFound
}

func (s *fakeStore) NewInvoiceReference(accountID int64, n int, txn, ref string) (*provider.InvoiceReference, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.refErr != nil {
		return nil, s.refErr
	}
	r := &provider.InvoiceReference{
		InvoiceReferenceID: int64(len(s.refs) + 1),
		PaymentAccountID:   accountID,
		InvoiceNumber:      int64(n),
		TransactionNumber:  txn,
		ReferenceNumber:    ref,
		Status:             provider.InvoiceCreated,
	}
	s.refs = append(s.refs, r)
	return r, nil
}

type published struct {
	subject string
	msg     interface{}
}

type fakePublisher struct {
	out []published
	err error
}

func (p *fakePublisher) Publish(subject string, v interface{}) error {
	p.out = append(p.out, published{subject: subject, msg: v})
	return p.err
}

func newTestService(b *fakeBackend, store Store, nc Publisher) *Service {
	cal, err := util.NewCalendar("America/Vancouver", []string{"2019-07-01"})
	if err != nil {
		panic(err)
	}
	s := NewService(provider.NewFactory(b), store, nc, Config{
		InvoicePrefix:     "REG",
		SubjectFormat:     "entity.{product}.payment",
		ValidRedirectURLs: []string{"https://www.bcregistry.ca/*"},
		Calendar:          cal,
	})
	s.now = func() time.Time { return time.Date(2019, 7, 3, 10, 20, 30, 0, time.UTC) }
	return s
}

func invoiceRequest() *CreateInvoiceRequest {
	return &CreateInvoiceRequest{
		PaymentMethod: provider.CC,
		CorpType:      provider.CP,
		AccountTriple: triple,
		InvoiceNumber: 1001,
		LineItems: []provider.LineItem{
			{Description: "Annual report", Total: decimal.RequireFromString("50")},
			{Description: "Service fee", Total: decimal.RequireFromString("1.50")},
		},
	}
}

func TestService_CreateAccount(t *testing.T) {
	b := &fakeBackend{}
	store := &fakeStore{}
	s := newTestService(b, store, nil)

	got, err := s.CreateAccount(context.Background(), &CreateAccountRequest{
		PaymentMethod: provider.CC,
		CorpType:      provider.CP,
		Name:          "Coop",
		Address:       provider.AccountRequest{City: "Victoria"},
	})
	require.NoError(t, err)
	assert.Equal(t, triple, got)
	assert.Equal(t, "Coop", b.gotName)
	require.Len(t, store.accounts, 1)
	assert.Equal(t, provider.CP, store.accounts[0].CorpType)
	assert.Equal(t, triple, store.accounts[0].Triple())
}

func TestService_CreateAccount_errors(t *testing.T) {
	s := newTestService(&fakeBackend{}, nil, nil)

	_, err := s.CreateAccount(context.Background(), &CreateAccountRequest{PaymentMethod: provider.CC, CorpType: provider.CP, Name: " "})
	be, ok := bcpay.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, bcpay.PAY001, be.Code)

	_, err = s.CreateAccount(context.Background(), &CreateAccountRequest{PaymentMethod: "DRAWDOWN", CorpType: provider.CP, Name: "Coop"})
	be, ok = bcpay.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, bcpay.PAY003, be.Code)

	gwErr := errors.New("gateway down")
	s = newTestService(&fakeBackend{createAccountErr: gwErr}, nil, nil)
	_, err = s.CreateAccount(context.Background(), &CreateAccountRequest{PaymentMethod: provider.CC, CorpType: provider.CP, Name: "Coop"})
	assert.True(t, errors.Is(err, gwErr))
}

func TestService_IsValidAccount(t *testing.T) {
	s := newTestService(&fakeBackend{}, nil, nil)

	ok, err := s.IsValidAccount(context.Background(), &IsValidAccountRequest{
		PaymentMethod: provider.CC, CorpType: provider.CP, AccountTriple: triple,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsValidAccount(context.Background(), &IsValidAccountRequest{
		PaymentMethod: provider.CC, CorpType: provider.CP,
		AccountTriple: provider.AccountTriple{PartyNumber: "P100", AccountNumber: "A200", SiteNumber: "S999"},
	})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.IsValidAccount(context.Background(), &IsValidAccountRequest{PaymentMethod: provider.CC, CorpType: provider.NRO})
	assert.True(t, errors.Is(err, bcpay.ErrInvalidCorpTypeOrPaymentMethod))
}

func TestService_CreateInvoice(t *testing.T) {
	b := &fakeBackend{}
	store := &fakeStore{}
	nc := &fakePublisher{}
	s := newTestService(b, store, nc)
	_, err := store.NewPaymentAccount(provider.PAYBC, provider.CP, "Coop", triple)
	require.NoError(t, err)

	resp, err := s.CreateInvoice(context.Background(), invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-1", resp["invoice_number"])
	assert.Equal(t, 1001, b.gotInvoice)
	assert.Len(t, b.gotItems, 2)

	require.Len(t, store.refs, 1)
	assert.Equal(t, "REG00001001", store.refs[0].TransactionNumber)
	assert.Equal(t, "10005", store.refs[0].ReferenceNumber)
	assert.EqualValues(t, 1, store.refs[0].PaymentAccountID)

	require.Len(t, nc.out, 1)
	assert.Equal(t, "entity.filing.payment", nc.out[0].subject)
	msg := nc.out[0].msg.(*MessageInvoiceCreated)
	assert.Equal(t, provider.PAYBC, msg.Provider)
	assert.Equal(t, "REG00001001", msg.TransactionNumber)
	assert.Equal(t, "51.5", msg.Total.String())
	assert.Equal(t, time.Date(2019, 7, 3, 10, 20, 30, 0, time.UTC), msg.CreatedAt)
	assert.Equal(t, 2020, msg.FiscalYear)
	assert.Equal(t, "07-03-2019", msg.BusinessDate)
}

func TestService_CreateInvoice_businessDate(t *testing.T) {
	nc := &fakePublisher{}
	s := newTestService(&fakeBackend{}, nil, nc)
	// воскресенье 30 июня по Ванкуверу, понедельник 1 июля праздник
	s.now = func() time.Time { return time.Date(2019, 7, 1, 5, 0, 0, 0, time.UTC) }

	req := invoiceRequest()
	req.ReturnURL = "https://www.bcregistry.ca/business/CP0001234"
	_, err := s.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, nc.out, 1)
	msg := nc.out[0].msg.(*MessageInvoiceCreated)
	assert.Equal(t, "07-02-2019", msg.BusinessDate)
	assert.Equal(t, req.ReturnURL, msg.ReturnURL)
}

func TestService_CreateInvoice_unknownAccountAndPublishFailure(t *testing.T) {
	store := &fakeStore{}
	nc := &fakePublisher{err: errors.New("nats: connection closed")}
	s := newTestService(&fakeBackend{}, store, nc)

	resp, err := s.CreateInvoice(context.Background(), invoiceRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, store.refs)
	assert.Len(t, nc.out, 1)
}

func TestService_CreateAccount_notSaved(t *testing.T) {
	b := &fakeBackend{}
	store := &fakeStore{err: errors.New("pq: connection refused")}
	s := newTestService(b, store, nil)

	got, err := s.CreateAccount(context.Background(), &CreateAccountRequest{
		PaymentMethod: provider.CC,
		CorpType:      provider.CP,
		Name:          "Coop",
	})
	require.NoError(t, err)
	assert.Equal(t, triple, got)
	assert.Empty(t, store.accounts)
}

func TestService_CreateInvoice_referenceNotSaved(t *testing.T) {
	store := &fakeStore{}
	_, err := store.NewPaymentAccount(provider.PAYBC, provider.CP, "Coop", triple)
	require.NoError(t, err)
	store.refErr = errors.New("pq: connection refused")
	nc := &fakePublisher{}
	s := newTestService(&fakeBackend{}, store, nc)

	resp, err := s.CreateInvoice(context.Background(), invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-1", resp["invoice_number"])
	assert.Empty(t, store.refs)
	require.Len(t, nc.out, 1)
	assert.Equal(t, "REG00001001", nc.out[0].msg.(*MessageInvoiceCreated).TransactionNumber)
}

func TestService_CreateInvoice_errors(t *testing.T) {
	nc := &fakePublisher{}
	s := newTestService(&fakeBackend{}, nil, nc)

	req := invoiceRequest()
	req.SiteNumber = ""
	_, err := s.CreateInvoice(context.Background(), req)
	assert.Equal(t, bcpay.ErrInvalidAccount, err)

	req = invoiceRequest()
	req.LineItems = nil
	_, err = s.CreateInvoice(context.Background(), req)
	assert.True(t, errors.Is(err, bcpay.ErrInvalidRequest))

	req = invoiceRequest()
	req.ReturnURL = "https://evil.example/phish"
	_, err = s.CreateInvoice(context.Background(), req)
	assert.True(t, errors.Is(err, bcpay.ErrInvalidRequest))

	gwErr := errors.New("gateway down")
	s = newTestService(&fakeBackend{createInvoiceErr: gwErr}, nil, nc)
	_, err = s.CreateInvoice(context.Background(), invoiceRequest())
	assert.True(t, errors.Is(err, gwErr))
	assert.Empty(t, nc.out)
}

func TestReferenceNumber(t *testing.T) {
	assert.Equal(t, "10005", referenceNumber(provider.InvoiceResponse{"pbc_ref_number": "10005", "invoice_number": "INV-1"}))
	assert.Equal(t, "INV-1", referenceNumber(provider.InvoiceResponse{"invoice_number": "INV-1"}))
	assert.Equal(t, "", referenceNumber(provider.InvoiceResponse{}))
}
