package codes

import (
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/services"
)

func NewServer(store Store) *Server {
	return &Server{store: store}
}

// Server CRUD справочников для админки.
type Server struct {
	store Store
}

func (s *Server) Register(g *echo.Group) {
	g.GET("", s.ListTables)
	g.GET("/:table", s.List)
	g.POST("/:table", s.Create)
	g.GET("/:table/:code", s.Get)
	g.PUT("/:table/:code", s.Update)
	g.DELETE("/:table/:code", s.Delete)
}

func (s *Server) ListTables(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"tables": TableNames()})
}

func (s *Server) List(c echo.Context) error {
	list, err := s.store.List(c.Param("table"), c.QueryParam("search"))
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]*Code{"items": list})
}

func (s *Server) Get(c echo.Context) error {
	code, err := s.store.Get(c.Param("table"), c.Param("code"))
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, code)
}

func (s *Server) Create(c echo.Context) error {
	in := &Code{}
	if err := c.Bind(in); err != nil {
		return services.ErrorResponse(c, bcpay.ErrInvalidRequest)
	}
	code, err := s.store.Create(c.Param("table"), in)
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	audit(c, "Code created.", code)
	return c.JSON(http.StatusCreated, code)
}

func (s *Server) Update(c echo.Context) error {
	in := &Code{}
	if err := c.Bind(in); err != nil {
		return services.ErrorResponse(c, bcpay.ErrInvalidRequest)
	}
	code, err := s.store.UpdateDescription(c.Param("table"), c.Param("code"), in)
	if err != nil {
		return services.ErrorResponse(c, err)
	}
	audit(c, "Code updated.", code)
	return c.JSON(http.StatusOK, code)
}

func (s *Server) Delete(c echo.Context) error {
	if err := s.store.Delete(c.Param("table"), c.Param("code")); err != nil {
		return services.ErrorResponse(c, err)
	}
	audit(c, "Code deleted.", &Code{Code: c.Param("code")})
	return c.NoContent(http.StatusNoContent)
}

func audit(c echo.Context, msg string, code *Code) {
	ctx := c.Request().Context()
	var subject string
	if client := services.GetClient(ctx); client != nil {
		subject = client.Subject
	}
	services.GetLogger(ctx).Info(msg,
		zap.String("table", c.Param("table")),
		zap.String("code", code.Code),
		zap.String("subject", subject),
	)
}
