package worker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/bcpay"
	"github.com/gebv/bcpay/provider"
)

const queueName = "bcpay-invoice-update"

// MessageUpdateInvoice новый статус счета, присланный после оплаты или отмены.
type MessageUpdateInvoice struct {
	InvoiceReferenceID int64                  `json:"invoice_reference_id"`
	Status             provider.InvoiceStatus `json:"status"`
}

type StatusSetter interface {
	SetInvoiceStatus(invoiceReferenceID int64, status provider.InvoiceStatus) error
}

// SubToNATS подписывает группу воркеров на обновления статусов счетов.
func SubToNATS(nc *nats.Conn, subject string, store StatusSetter) (*nats.Subscription, error) {
	l := zap.L().Named("worker")
	sub, err := nc.QueueSubscribe(subject, queueName, func(msg *nats.Msg) {
		if err := Handle(store, msg.Data); err != nil {
			l.Warn("Failed update invoice status.", zap.String("subject", msg.Subject), zap.Error(err))
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Failed subscribe to %q", subject)
	}
	l.Info("Subscribed.", zap.String("subject", subject), zap.String("queue", queueName))
	return sub, nil
}

func Handle(store StatusSetter, data []byte) error {
	var m MessageUpdateInvoice
	if err := json.Unmarshal(data, &m); err != nil {
		return errors.Wrap(err, "Failed unmarshal msg")
	}
	if m.InvoiceReferenceID <= 0 {
		return bcpay.ErrInvalidRequest
	}
	switch m.Status {
	case provider.InvoiceCreated, provider.InvoiceCompleted, provider.InvoiceCancelled:
	default:
		return errors.Wrapf(bcpay.ErrInvalidRequest, "unknown status %q", m.Status)
	}
	if err := store.SetInvoiceStatus(m.InvoiceReferenceID, m.Status); err != nil {
		return errors.Wrapf(err, "invoice reference %d", m.InvoiceReferenceID)
	}
	return nil
}
