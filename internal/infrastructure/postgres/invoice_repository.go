package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, contract_id, client_id, client_name, amount, due_date,
	       status, paid_at, COALESCE(paid_method, ''), created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una cuota (usado por el seeder; el motor no emite cuotas).
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, contract_id, client_id, client_name, amount, due_date, status, paid_at, paid_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ContractID, invoice.ClientID, invoice.ClientName,
		invoice.Amount, invoice.DueDate, invoice.Status,
		invoice.PaidAt, nullIfEmpty(invoice.PaidMethod),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una cuota por ID. Retorna (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice")
}

// GetForUpdate obtiene la cuota y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice for update")
}

// ListOutstandingByContract retorna las cuotas pending/overdue del contrato,
// más viejas primero (el orden que usa el planificador).
func (r *InvoiceRepo) ListOutstandingByContract(contractID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE contract_id = $1 AND status IN ('pending', 'overdue')
		ORDER BY due_date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, contractID)
	if err != nil {
		return nil, fmt.Errorf("list outstanding invoices: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByStatus lista cuotas por estado con paginación.
func (r *InvoiceRepo) ListByStatus(status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE status = $1
		ORDER BY due_date ASC, id ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices by status: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// MarkPaid transición condicional a "paid": solo actualiza si el estado actual
// no es "paid" (compare-and-swap sobre el estado). Retorna si la fila cambió;
// ese booleano serializa la liquidación y evita el doble incremento del
// contrato bajo concurrencia.
func (r *InvoiceRepo) MarkPaid(id string, paidAt time.Time, method string) (bool, error) {
	query := `
		UPDATE invoices
		SET status = 'paid', paid_at = $2, paid_method = $3, updated_at = now()
		WHERE id = $1 AND status <> 'paid'`
	tag, err := r.q.Exec(context.Background(), query, id, paidAt, nullIfEmpty(method))
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InvoiceRepo) scanOne(row pgx.Row, op string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.ContractID, &inv.ClientID, &inv.ClientName,
		&inv.Amount, &inv.DueDate, &inv.Status, &inv.PaidAt, &inv.PaidMethod,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) scanAll(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.ContractID, &inv.ClientID, &inv.ClientName,
			&inv.Amount, &inv.DueDate, &inv.Status, &inv.PaidAt, &inv.PaidMethod,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
