package paybc

import "encoding/json"

// TokenResponse ответ на client_credentials запрос.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Party клиент в системе PayBC.
type Party struct {
	PartyNumber  string `json:"party_number,omitempty"`
	CustomerName string `json:"customer_name"`
}

// Account лицевой счет клиента в PayBC.
type Account struct {
	PartyNumber        string `json:"party_number"`
	AccountNumber      string `json:"account_number,omitempty"`
	AccountDescription string `json:"account_description"`
}

// Site адрес (площадка) счета в PayBC.
type Site struct {
	PartyNumber    string `json:"party_number"`
	AccountNumber  string `json:"account_number"`
	SiteNumber     string `json:"site_number,omitempty"`
	SiteName       string `json:"site_name"`
	City           string `json:"city"`
	AddressLine1   string `json:"address_line_1"`
	PostalCode     string `json:"postal_code"`
	Province       string `json:"province"`
	Country        string `json:"country"`
	CustomerSiteID string `json:"customer_site_id"`
}

type Invoice struct {
	BatchSource       string        `json:"batch_source"`
	CustTrxType       string        `json:"cust_trx_type"`
	TransactionDate   string        `json:"transaction_date"`
	TransactionNumber int           `json:"transaction_number"`
	GLDate            string        `json:"gl_date"`
	TermName          string        `json:"term_name"`
	Comments          string        `json:"comments"`
	Lines             []InvoiceLine `json:"lines"`
}

type InvoiceLine struct {
	LineNumber   int         `json:"line_number"`
	LineType     string      `json:"line_type"`
	MemoLineName string      `json:"memo_line_name"`
	Description  string      `json:"description"`
	UnitPrice    json.Number `json:"unit_price"`
	Quantity     int         `json:"quantity"`
}
