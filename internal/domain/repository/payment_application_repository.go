package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// PaymentApplicationRepository define el puerto para las aplicaciones de pago
// (porciones de un pago aplicadas a cuotas). La pareja (payment_id, invoice_id)
// es única en la tabla: Create debe retornar domain.ErrDuplicate si se viola.
type PaymentApplicationRepository interface {
	Create(app *entity.PaymentApplication) error
	// SumAppliedByInvoice suma los montos de las aplicaciones NO anuladas de
	// la cuota. Es la fuente de verdad del saldo pendiente.
	SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error)
	ListByPayment(paymentID string) ([]*entity.PaymentApplication, error)
	ListByInvoice(invoiceID string) ([]*entity.PaymentApplication, error)
}
