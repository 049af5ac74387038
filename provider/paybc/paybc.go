package paybc

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
)

const (
	TimeFormat = "2006-01-02T15:04:05Z"

	DefaultCountry = "CA"
	customerSiteID = "1"

	batchSource  = "BC REG MANUAL_OTHER"
	custTrxType  = "BC_REG_CO_OP"
	termName     = "IMMEDIATE"
	lineType     = "LINE"
	memoLineName = "Test Memo Line"
)

var ErrProviderNotSet = errors.New("Provider not set")

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

func NewProvider(cfg Config) *Provider {
	m := newMetrics()
	var c *client
	if cfg.BaseURL != "" {
		c = newClient(cfg.Timeout, m)
	}
	return &Provider{
		cfg: cfg,
		c:   c,
		m:   m,
		l:   zap.L().Named("paybc_provider"),
		now: time.Now,
	}
}

// Provider клиент платежной системы PayBC (CFS).
// Токен запрашивается заново на каждую операцию.
type Provider struct {
	cfg Config
	c   *client
	m   *metrics
	l   *zap.Logger
	now func() time.Time
}

func (p *Provider) Name() provider.Provider {
	return provider.PAYBC
}

// CreateAccount создает в PayBC последовательно party, account и site.
// Ошибка на любом шаге прерывает цепочку, уже созданные записи не откатываются.
func (p *Provider) CreateAccount(
	ctx context.Context,
	name string,
	req provider.AccountRequest,
) (provider.AccountTriple, error) {
	if p.c == nil {
		return provider.AccountTriple{}, ErrProviderNotSet
	}
	token, err := p.getToken(ctx)
	if err != nil {
		return provider.AccountTriple{}, err
	}
	party, err := p.createParty(ctx, token.AccessToken, name)
	if err != nil {
		return provider.AccountTriple{}, err
	}
	account, err := p.createAccount(ctx, token.AccessToken, party)
	if err != nil {
		p.l.Warn(
			"party created without account",
			zap.String("party_number", party.PartyNumber),
		)
		return provider.AccountTriple{}, err
	}
	site, err := p.createSite(ctx, token.AccessToken, party, account, req)
	if err != nil {
		p.l.Warn(
			"account created without site",
			zap.String("party_number", account.PartyNumber),
			zap.String("account_number", account.AccountNumber),
		)
		return provider.AccountTriple{}, err
	}
	return provider.AccountTriple{
		PartyNumber:   party.PartyNumber,
		AccountNumber: account.AccountNumber,
		SiteNumber:    site.SiteNumber,
	}, nil
}

// IsValidAccount сверяет идентификаторы с site, который возвращает PayBC.
// Без любого из идентификаторов возвращает false без обращения к PayBC.
// Ошибки транспорта (в том числе 404) возвращаются как есть.
func (p *Provider) IsValidAccount(
	ctx context.Context,
	partyNumber string,
	accountNumber string,
	siteNumber string,
) (bool, error) {
	p.l.Debug("<is_valid_account")
	defer p.l.Debug(">is_valid_account")
	if partyNumber == "" || accountNumber == "" || siteNumber == "" {
		return false, nil
	}
	if p.c == nil {
		return false, ErrProviderNotSet
	}
	_url, err := url.Parse(p.cfg.BaseURL +
		"/cfs/parties/" + url.PathEscape(partyNumber) +
		"/accs/" + url.PathEscape(accountNumber) +
		"/sites/")
	if err != nil {
		return false, errors.Wrap(err, "Failed parse url")
	}
	token, err := p.getToken(ctx)
	if err != nil {
		return false, err
	}
	// поля сверяются как есть, нестроковое значение считается несовпадением
	out := map[string]interface{}{}
	err = p.c.GETAndUnmarshalJson(ctx, "get_site", _url.String(), token.AccessToken, &out)
	if err != nil {
		p.l.Warn(
			"get site",
			zap.String("url", _url.String()),
			zap.Error(err),
		)
		return false, errors.Wrap(err, "Failed get site")
	}
	return fieldEquals(out, "party_number", partyNumber) &&
		fieldEquals(out, "account_number", accountNumber) &&
		fieldEquals(out, "site_number", siteNumber), nil
}

func fieldEquals(m map[string]interface{}, key, want string) bool {
	v, ok := m[key].(string)
	return ok && v == want
}

// CreateInvoice создает счет на оплату под account/site.
// Строки нумеруются по порядку начиная с 1, quantity всегда 1.
func (p *Provider) CreateInvoice(
	ctx context.Context,
	account provider.AccountTriple,
	items []provider.LineItem,
	invoiceNumber int,
) (provider.InvoiceResponse, error) {
	p.l.Debug("<create_invoice")
	defer p.l.Debug(">create_invoice")
	if p.c == nil {
		return nil, ErrProviderNotSet
	}
	_url, err := url.Parse(p.cfg.BaseURL +
		"/cfs/parties/" + url.PathEscape(account.PartyNumber) +
		"/accs/" + url.PathEscape(account.AccountNumber) +
		"/sites/" + url.PathEscape(account.SiteNumber) +
		"/invs/")
	if err != nil {
		return nil, errors.Wrap(err, "Failed parse url")
	}
	in := p.buildInvoice(items, invoiceNumber)

	token, err := p.getToken(ctx)
	if err != nil {
		return nil, err
	}
	out := provider.InvoiceResponse{}
	err = p.c.POSTAndUnmarshalJson(ctx, "create_invoice", _url.String(), token.AccessToken, in, &out)
	if err != nil {
		p.l.Warn(
			"create invoice",
			zap.String("url", _url.String()),
			zap.Any("in", in),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "Failed http post request")
	}
	return out, nil
}

func (p *Provider) buildInvoice(items []provider.LineItem, invoiceNumber int) *Invoice {
	currTime := p.now().UTC().Format(TimeFormat)
	in := &Invoice{
		BatchSource:       batchSource,
		CustTrxType:       custTrxType,
		TransactionDate:   currTime,
		TransactionNumber: invoiceNumber,
		GLDate:            currTime,
		TermName:          termName,
		Comments:          "",
		Lines:             make([]InvoiceLine, 0, len(items)),
	}
	for i, item := range items {
		in.Lines = append(in.Lines, InvoiceLine{
			LineNumber:   i + 1,
			LineType:     lineType,
			MemoLineName: memoLineName,
			Description:  item.Description,
			UnitPrice:    json.Number(item.Total.String()),
			Quantity:     1,
		})
	}
	return in
}

// UpdateInvoice PayBC не поддерживает изменение счета.
func (p *Provider) UpdateInvoice(ctx context.Context) error {
	return bcpay.ErrNotSupported
}

// GetReceipt получение квитанции из PayBC не реализовано.
func (p *Provider) GetReceipt(ctx context.Context) error {
	return bcpay.ErrNotSupported
}

func (p *Provider) createParty(ctx context.Context, accessToken, name string) (*Party, error) {
	p.l.Debug("<Creating party Record")
	defer p.l.Debug(">Creating party Record")
	_url, err := url.Parse(p.cfg.BaseURL + "/cfs/parties/")
	if err != nil {
		return nil, errors.Wrap(err, "Failed parse url")
	}
	in := &Party{CustomerName: name}
	out := &Party{}
	err = p.c.POSTAndUnmarshalJson(ctx, "create_party", _url.String(), accessToken, in, out)
	if err != nil {
		p.l.Warn(
			"create party",
			zap.String("url", _url.String()),
			zap.Any("in", in),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "Failed http post request")
	}
	return out, nil
}

func (p *Provider) createAccount(ctx context.Context, accessToken string, party *Party) (*Account, error) {
	p.l.Debug("<Creating account")
	defer p.l.Debug(">Creating account")
	_url, err := url.Parse(p.cfg.BaseURL + "/cfs/parties/" + url.PathEscape(party.PartyNumber) + "/accs/")
	if err != nil {
		return nil, errors.Wrap(err, "Failed parse url")
	}
	in := &Account{
		PartyNumber:        party.PartyNumber,
		AccountDescription: party.CustomerName,
	}
	out := &Account{}
	err = p.c.POSTAndUnmarshalJson(ctx, "create_account", _url.String(), accessToken, in, out)
	if err != nil {
		p.l.Warn(
			"create account",
			zap.String("url", _url.String()),
			zap.Any("in", in),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "Failed http post request")
	}
	return out, nil
}

func (p *Provider) createSite(
	ctx context.Context,
	accessToken string,
	party *Party,
	account *Account,
	req provider.AccountRequest,
) (*Site, error) {
	p.l.Debug("<Creating site")
	defer p.l.Debug(">Creating site")
	_url, err := url.Parse(p.cfg.BaseURL +
		"/cfs/parties/" + url.PathEscape(account.PartyNumber) +
		"/accs/" + url.PathEscape(account.AccountNumber) +
		"/sites/")
	if err != nil {
		return nil, errors.Wrap(err, "Failed parse url")
	}
	country := req.Country
	if country == "" {
		country = DefaultCountry
	}
	in := &Site{
		PartyNumber:    account.PartyNumber,
		AccountNumber:  account.AccountNumber,
		SiteName:       party.CustomerName + " Site",
		City:           req.City,
		AddressLine1:   req.AddressLine1,
		PostalCode:     req.PostalCode,
		Province:       req.Province,
		Country:        country,
		CustomerSiteID: customerSiteID,
	}
	out := &Site{}
	err = p.c.POSTAndUnmarshalJson(ctx, "create_site", _url.String(), accessToken, in, out)
	if err != nil {
		p.l.Warn(
			"create site",
			zap.String("url", _url.String()),
			zap.Any("in", in),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "Failed http post request")
	}
	return out, nil
}

// getToken запрашивает oauth токен, которым подписываются все остальные запросы.
func (p *Provider) getToken(ctx context.Context) (*TokenResponse, error) {
	p.l.Debug("<Getting token")
	defer p.l.Debug(">Getting token")
	_url, err := url.Parse(p.cfg.BaseURL + "/oauth/token")
	if err != nil {
		return nil, errors.Wrap(err, "Failed parse url")
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	out := &TokenResponse{}
	err = p.c.POSTFormAndUnmarshalJson(
		ctx,
		"get_token",
		_url.String(),
		basicCredentials(p.cfg.ClientID, p.cfg.ClientSecret),
		form,
		out,
	)
	if err != nil {
		p.l.Warn(
			"get token",
			zap.String("url", _url.String()),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "Failed http post request")
	}
	return out, nil
}

var _ provider.Backend = (*Provider)(nil)
