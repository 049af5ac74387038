package payment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/services"
	"github.com/gebv/bcpay/util"
)

// Publisher is satisfied by *nats.EncodedConn.
type Publisher interface {
	Publish(subject string, v interface{}) error
}

// Store is satisfied by *provider.Store.
type Store interface {
	NewPaymentAccount(p provider.Provider, corp provider.CorpType, name string, t provider.AccountTriple) (*provider.PaymentAccount, error)
	FindPaymentAccount(p provider.Provider, t provider.AccountTriple) (*provider.PaymentAccount, error)
	NewInvoiceReference(paymentAccountID int64, invoiceNumber int, transactionNumber, referenceNumber string) (*provider.InvoiceReference, error)
}

type Config struct {
	InvoicePrefix string
	// SubjectFormat формат subject, {product} заменяется по типу корпорации.
	SubjectFormat     string
	ValidRedirectURLs []string
	Calendar          *util.Calendar
}

// NewService store и nc могут быть nil, тогда ничего не сохраняется и не публикуется.
func NewService(factory *provider.Factory, store Store, nc Publisher, cfg Config) *Service {
	return &Service{
		factory: factory,
		store:   store,
		nc:      nc,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Service выбирает платежную систему по способу оплаты и типу корпорации
// и выполняет в ней операции.
type Service struct {
	factory *provider.Factory
	store   Store
	nc      Publisher
	cfg     Config
	now     func() time.Time
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (provider.AccountTriple, error) {
	l := services.GetLogger(ctx)
	if strings.TrimSpace(req.Name) == "" {
		return provider.AccountTriple{}, errors.Wrap(bcpay.ErrInvalidRequest, "name is required")
	}
	backend, err := s.factory.Create(req.PaymentMethod, req.CorpType)
	if err != nil {
		return provider.AccountTriple{}, err
	}
	triple, err := backend.CreateAccount(ctx, req.Name, req.Address)
	if err != nil {
		return provider.AccountTriple{}, errors.Wrap(err, "Failed create account")
	}
	l.Info("Account created.",
		zap.Stringer("provider", backend.Name()),
		zap.String("party_number", triple.PartyNumber),
		zap.String("account_number", triple.AccountNumber),
		zap.String("site_number", triple.SiteNumber),
	)
	// в PayBC счет уже создан, повтор запроса создаст еще один party
	if s.store != nil {
		if _, err := s.store.NewPaymentAccount(backend.Name(), req.CorpType, req.Name, triple); err != nil {
			l.Error("Account created but not saved.", zap.Any("triple", triple), zap.Error(err))
		}
	}
	return triple, nil
}

func (s *Service) IsValidAccount(ctx context.Context, req *IsValidAccountRequest) (bool, error) {
	backend, err := s.factory.Create(req.PaymentMethod, req.CorpType)
	if err != nil {
		return false, err
	}
	return backend.IsValidAccount(ctx, req.PartyNumber, req.AccountNumber, req.SiteNumber)
}

func (s *Service) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (provider.InvoiceResponse, error) {
	l := services.GetLogger(ctx)
	if req.AccountTriple.IsZero() {
		return nil, bcpay.ErrInvalidAccount
	}
	if req.InvoiceNumber <= 0 || len(req.LineItems) == 0 {
		return nil, errors.Wrap(bcpay.ErrInvalidRequest, "invoice number and line items are required")
	}
	if req.ReturnURL != "" && !util.IsValidRedirectURL(req.ReturnURL, s.cfg.ValidRedirectURLs) {
		return nil, errors.Wrap(bcpay.ErrInvalidRequest, "return url is not allowed")
	}
	backend, err := s.factory.Create(req.PaymentMethod, req.CorpType)
	if err != nil {
		return nil, err
	}

	var account *provider.PaymentAccount
	if s.store != nil {
		account, err = s.store.FindPaymentAccount(backend.Name(), req.AccountTriple)
		switch errors.Cause(err) {
		case nil:
		case bcpay.ErrNotFound:
			l.Warn("Payment account is not known, invoice reference is not saved.", zap.Any("triple", req.AccountTriple))
		default:
			return nil, err
		}
	}

	resp, err := backend.CreateInvoice(ctx, req.AccountTriple, req.LineItems, req.InvoiceNumber)
	if err != nil {
		return nil, errors.Wrap(err, "Failed create invoice")
	}

	txn := util.GenerateTransactionNumber(s.cfg.InvoicePrefix, strconv.Itoa(req.InvoiceNumber))
	ref := referenceNumber(resp)
	l.Info("Invoice created.",
		zap.Stringer("provider", backend.Name()),
		zap.String("transaction_number", txn),
		zap.String("reference_number", ref),
	)

	if account != nil {
		if _, err := s.store.NewInvoiceReference(account.PaymentAccountID, req.InvoiceNumber, txn, ref); err != nil {
			l.Error("Invoice created but reference not saved.", zap.String("transaction_number", txn), zap.Error(err))
		}
	}

	if s.nc != nil {
		subject := util.PaySubjectName(req.CorpType, s.cfg.SubjectFormat)
		now := s.now()
		msg := &MessageInvoiceCreated{
			Provider:          backend.Name(),
			CorpType:          req.CorpType,
			InvoiceNumber:     req.InvoiceNumber,
			TransactionNumber: txn,
			ReferenceNumber:   ref,
			Total:             req.Total(),
			ReturnURL:         req.ReturnURL,
			CreatedAt:         now,
		}
		if s.cfg.Calendar != nil {
			local := s.cfg.Calendar.LocalTime(now)
			msg.FiscalYear = util.FiscalYear(local)
			msg.BusinessDate = s.cfg.Calendar.NearestBusinessDay(local, true).Format(util.DateFormat)
		}
		// счет уже создан, ошибку публикации только логируем
		if err := s.nc.Publish(subject, msg); err != nil {
			l.Error("Failed publish invoice created.", zap.String("subject", subject), zap.Error(err))
		}
	}
	return resp, nil
}

func referenceNumber(resp provider.InvoiceResponse) string {
	for _, path := range []string{"pbc_ref_number", "invoice_number"} {
		if v, ok := util.StrByPath(resp, path); ok {
			return v
		}
	}
	return ""
}
