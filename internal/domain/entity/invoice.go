package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de liquidación de una cuota (factura semanal).
const (
	InvoiceStatusPending   = "pending"   // emitida, con saldo por cobrar
	InvoiceStatusPaid      = "paid"      // cubierta por aplicaciones de pago (terminal para este motor)
	InvoiceStatusOverdue   = "overdue"   // vencida sin pago (marcada por proceso externo)
	InvoiceStatusCancelled = "cancelled" // anulada (proceso externo)
)

// Invoice representa una cuota semanal facturada contra un contrato de renta.
// El estado pasa a "paid" únicamente cuando la suma de aplicaciones no anuladas
// alcanza el monto total (ver motor de liquidación).
type Invoice struct {
	ID         string
	ContractID string
	ClientID   string
	ClientName string // denormalizado para reportes y recibos
	Amount     decimal.Decimal
	DueDate    time.Time
	Status     string
	PaidAt     *time.Time // fecha de liquidación (solo si Status == paid)
	PaidMethod string     // método del pago que completó la cuota
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
