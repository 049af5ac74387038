package payment

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
	"github.com/gebv/bcpay/services"
)

func NewServer(s *Service) *Server {
	return &Server{s: s}
}

// Server HTTP API платежей.
type Server struct {
	s *Service
}

func (srv *Server) Register(g *echo.Group) {
	g.POST("/accounts", srv.CreateAccount)
	g.GET("/accounts/valid", srv.IsValidAccount)
	g.POST("/invoices", srv.CreateInvoice)
}

func (srv *Server) CreateAccount(c echo.Context) error {
	req := &CreateAccountRequest{}
	if err := c.Bind(req); err != nil {
		return services.ErrorResponse(c, bcpay.ErrInvalidRequest)
	}
	triple, err := srv.s.CreateAccount(c.Request().Context(), req)
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, triple)
}

func (srv *Server) IsValidAccount(c echo.Context) error {
	req := &IsValidAccountRequest{
		PaymentMethod: provider.PaymentMethod(c.QueryParam("payment_method")),
		CorpType:      provider.CorpType(c.QueryParam("corp_type")),
		AccountTriple: provider.AccountTriple{
			PartyNumber:   c.QueryParam("party_number"),
			AccountNumber: c.QueryParam("account_number"),
			SiteNumber:    c.QueryParam("site_number"),
		},
	}
	valid, err := srv.s.IsValidAccount(c.Request().Context(), req)
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

func (srv *Server) CreateInvoice(c echo.Context) error {
	req := &CreateInvoiceRequest{}
	if err := c.Bind(req); err != nil {
		return services.ErrorResponse(c, bcpay.ErrInvalidRequest)
	}
	resp, err := srv.s.CreateInvoice(c.Request().Context(), req)
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}
