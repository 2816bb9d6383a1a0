package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create persiste un contrato (usado por el seeder).
func (r *ContractRepo) Create(contract *entity.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.New().String()
	}
	query := `
		INSERT INTO contracts (id, client_id, client_name, vehicle_label, weekly_amount, weeks_paid, total_weeks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		contract.ID, contract.ClientID, contract.ClientName, nullIfEmpty(contract.VehicleLabel),
		contract.WeeklyAmount, contract.WeeksPaid, contract.TotalWeeks,
		contract.CreatedAt, contract.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID. Retorna (nil, nil) si no existe.
func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	query := `
		SELECT id, client_id, client_name, COALESCE(vehicle_label, ''), weekly_amount, weeks_paid, total_weeks, created_at, updated_at
		FROM contracts WHERE id = $1`
	var c entity.Contract
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ClientID, &c.ClientName, &c.VehicleLabel,
		&c.WeeklyAmount, &c.WeeksPaid, &c.TotalWeeks,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// IncrementWeeksPaid suma uno a weeks_paid. El incremento es aritmético en la
// fila (no read-modify-write en memoria), así dos transacciones serializadas
// por el lock de la cuota nunca pierden un avance.
func (r *ContractRepo) IncrementWeeksPaid(id string) error {
	query := `
		UPDATE contracts
		SET weeks_paid = weeks_paid + 1, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("increment weeks paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment weeks paid: contrato %s no existe", id)
	}
	return nil
}
