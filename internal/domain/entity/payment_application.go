package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentApplication es la porción de un pago aplicada a una cuota concreta.
// La pareja (PaymentID, InvoiceID) es única: un pago aplica a lo sumo una vez
// sobre cada cuota, lo que hace idempotente reintentar una conciliación.
//
// Las etiquetas y el método/fecha/referencia se copian del pago y del contrato
// al momento de aplicar: el historial del recibo no cambia aunque después se
// renombre el vehículo o el cliente.
type PaymentApplication struct {
	ID            string
	PaymentID     string
	InvoiceID     string
	Amount        decimal.Decimal
	InvoiceLabel  string // ej. "Cuota 2026-03-02"
	ContractLabel string // ej. "ABC-123 / Chevrolet Spark 2022"
	ClientName    string
	Method        string
	Date          time.Time
	Reference     string
	Voided        bool // las aplicaciones anuladas no cuentan para el saldo
	CreatedAt     time.Time
}
