package services

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/gebv/bcpay"
)

// ErrorBody тело ответа с ошибкой.
type ErrorBody struct {
	Code    bcpay.Code `json:"code"`
	Message string     `json:"message"`
}

// ErrorResponse business errors are answered with their status and code.
func ErrorResponse(c echo.Context, err error) error {
	if be, ok := bcpay.AsBusinessError(err); ok {
		return c.JSON(be.Status, &ErrorBody{Code: be.Code, Message: be.Message})
	}
	switch {
	case errors.Is(err, bcpay.ErrNotSupported):
		return c.JSON(http.StatusNotImplemented, &ErrorBody{Message: err.Error()})
	case errors.Is(err, bcpay.ErrNotFound):
		return c.JSON(http.StatusNotFound, &ErrorBody{Message: err.Error()})
	}
	GetLogger(c.Request().Context()).Warn("Request failed.", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &ErrorBody{Message: "Internal error"})
}
