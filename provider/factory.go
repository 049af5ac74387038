package provider

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/gebv/bcpay"
)

type selection struct {
	method PaymentMethod
	corp   CorpType
}

// selections закрытый список допустимых комбинаций (способ оплаты, тип корпорации).
// Новые платежные системы добавляются сюда.
var selections = map[selection]Provider{
	{method: CC, corp: CP}: PAYBC,
}

// SelectionError no payment system is mapped to the combination.
type SelectionError struct {
	Method   PaymentMethod
	CorpType CorpType
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("payment method %q with corp type %q: %s", e.Method, e.CorpType, bcpay.ErrInvalidCorpTypeOrPaymentMethod)
}

func (e *SelectionError) Unwrap() error {
	return bcpay.ErrInvalidCorpTypeOrPaymentMethod
}

// Cause makes errors.Cause of pkg/errors stop at the business error.
func (e *SelectionError) Cause() error {
	return bcpay.ErrInvalidCorpTypeOrPaymentMethod
}

// Select returns the payment system for the payment method and corp type.
func Select(method PaymentMethod, corp CorpType) (Provider, error) {
	if p, ok := selections[selection{method: method, corp: corp}]; ok {
		return p, nil
	}
	return UNKNOWN_PROVIDER, &SelectionError{Method: method, CorpType: corp}
}

// Factory holds the registered backends.
type Factory struct {
	mutex    sync.RWMutex
	backends map[Provider]Backend
}

func NewFactory(backends ...Backend) *Factory {
	f := &Factory{backends: make(map[Provider]Backend)}
	for _, b := range backends {
		f.Reg(b)
	}
	return f
}

func (f *Factory) Reg(b Backend) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if _, ok := f.backends[b.Name()]; ok {
		panic("name payment system is registered")
	}
	f.backends[b.Name()] = b
}

func (f *Factory) Get(name Provider) Backend {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.backends[name]
}

// Create selects the payment system and returns its backend.
func (f *Factory) Create(method PaymentMethod, corp CorpType) (Backend, error) {
	name, err := Select(method, corp)
	if err != nil {
		return nil, err
	}
	b := f.Get(name)
	if b == nil {
		return nil, errors.Wrapf(bcpay.ErrNotSupported, "payment system %q is not configured", name)
	}
	return b, nil
}
