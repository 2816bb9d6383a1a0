package repository

import (
	"time"

	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para las cuotas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Usar solo dentro de
	// una transacción: es la guarda contra el doble gasto concurrente.
	GetForUpdate(id string) (*entity.Invoice, error)
	// ListOutstandingByContract retorna las cuotas pending/overdue del
	// contrato ordenadas por fecha de vencimiento ascendente.
	ListOutstandingByContract(contractID string) ([]*entity.Invoice, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Invoice, error)
	// MarkPaid hace la transición condicional a "paid" (solo si el estado
	// actual no es "paid") y retorna si la fila realmente cambió. Ese booleano
	// es el que autoriza el incremento del contador del contrato.
	MarkPaid(id string, paidAt time.Time, method string) (bool, error)
}
