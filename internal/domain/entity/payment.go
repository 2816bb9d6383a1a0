package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados por caja.
const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodDeposit  = "deposit"
	PaymentMethodCheck    = "check"
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
)

// Tipo de pago según cuántas cuotas cubrió: se deriva del plan aplicado, nunca
// lo elige el caller.
const (
	PaymentKindSingle   = "single"   // una sola cuota
	PaymentKindMultiple = "multiple" // dos o más cuotas
)

// Payment representa un pago recibido del cliente. Es inmutable: una vez
// conciliado nunca se edita, solo se consulta junto a sus aplicaciones.
type Payment struct {
	ID        string
	Amount    decimal.Decimal
	Date      time.Time
	Method    string
	Reference string // número de transferencia, cheque, voucher, etc.
	Kind      string
	CreatedAt time.Time
}

// ValidPaymentMethod reporta si el método es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodTransfer, PaymentMethodDeposit, PaymentMethodCheck,
		PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}
