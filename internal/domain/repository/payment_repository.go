package repository

import "github.com/tu-usuario/cobranza-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para los pagos recibidos.
// Los pagos son inmutables: solo Create y lecturas.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	List(limit, offset int) ([]*entity.Payment, error)
}
