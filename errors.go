package bcpay

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNotSupported = errors.New("not supported")
)

// Code stable error code reported to the callers of the payment API.
type Code string

const (
	PAY001 Code = "PAY001"
	PAY003 Code = "PAY003"
	PAY004 Code = "PAY004"
	PAY005 Code = "PAY005"
	PAY006 Code = "PAY006"
)

// BusinessError ошибка бизнес-правила с кодом, который не меняется между релизами.
type BusinessError struct {
	Code    Code
	Message string
	Status  int
}

func (e *BusinessError) Error() string {
	return string(e.Code) + ": " + e.Message
}

var (
	ErrInvalidRequest = &BusinessError{
		Code:    PAY001,
		Message: "Invalid Request",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidCorpTypeOrPaymentMethod = &BusinessError{
		Code:    PAY003,
		Message: "Cannot identify payment system, Invalid Corp Type or Payment Method",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidAccount = &BusinessError{
		Code:    PAY004,
		Message: "Invalid Account Number for the User",
		Status:  http.StatusBadRequest,
	}
	ErrCodeReadOnly = &BusinessError{
		Code:    PAY005,
		Message: "Code is read only",
		Status:  http.StatusBadRequest,
	}
	ErrCodeExists = &BusinessError{
		Code:    PAY006,
		Message: "Code already exists",
		Status:  http.StatusConflict,
	}
)

// AsBusinessError returns the business error from the chain of err, if any.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
