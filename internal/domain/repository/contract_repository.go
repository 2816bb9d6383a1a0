package repository

import "github.com/tu-usuario/cobranza-api/internal/domain/entity"

// ContractRepository define el puerto de persistencia para contratos.
// Este motor solo los lee y avanza su contador de semanas pagadas.
type ContractRepository interface {
	Create(contract *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	// IncrementWeeksPaid suma uno a weeks_paid. Debe invocarse únicamente
	// cuando MarkPaid reportó una transición real (guarda de doble liquidación).
	IncrementWeeksPaid(id string) error
}
