package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.PaymentApplicationRepository = (*PaymentApplicationRepo)(nil)

const applicationColumns = `id, payment_id, invoice_id, amount,
	       COALESCE(invoice_label, ''), COALESCE(contract_label, ''), COALESCE(client_name, ''),
	       method, date, COALESCE(reference, ''), voided, created_at`

// PaymentApplicationRepo implementación de PaymentApplicationRepository
// (usable con pool o tx).
type PaymentApplicationRepo struct {
	q Querier
}

// NewPaymentApplicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentApplicationRepository(q Querier) *PaymentApplicationRepo {
	return &PaymentApplicationRepo{q: q}
}

// Create persiste una aplicación de pago. La tabla tiene
// UNIQUE (payment_id, invoice_id): si se viola retorna domain.ErrDuplicate,
// lo que hace idempotente reintentar un plan ya aplicado.
func (r *PaymentApplicationRepo) Create(app *entity.PaymentApplication) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payment_applications
			(id, payment_id, invoice_id, amount, invoice_label, contract_label, client_name, method, date, reference, voided, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		app.ID, app.PaymentID, app.InvoiceID, app.Amount,
		nullIfEmpty(app.InvoiceLabel), nullIfEmpty(app.ContractLabel), nullIfEmpty(app.ClientName),
		app.Method, app.Date, nullIfEmpty(app.Reference), app.Voided, app.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("aplicación ya existe para (pago %s, cuota %s): %w",
				app.PaymentID, app.InvoiceID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert payment application: %w", err)
	}
	return nil
}

// SumAppliedByInvoice suma los montos de las aplicaciones NO anuladas de la
// cuota. COALESCE(..., 0) para cuotas sin aplicaciones.
func (r *PaymentApplicationRepo) SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_applications
		WHERE invoice_id = $1 AND NOT voided`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum applications: %w", err)
	}
	return sum, nil
}

// ListByPayment lista las aplicaciones de un pago en orden de creación.
func (r *PaymentApplicationRepo) ListByPayment(paymentID string) ([]*entity.PaymentApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM payment_applications WHERE payment_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(query, paymentID)
}

// ListByInvoice lista las aplicaciones históricas contra una cuota.
func (r *PaymentApplicationRepo) ListByInvoice(invoiceID string) ([]*entity.PaymentApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM payment_applications WHERE invoice_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(query, invoiceID)
}

func (r *PaymentApplicationRepo) list(query, arg string) ([]*entity.PaymentApplication, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list payment applications: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanApplication(rows pgx.Rows) (*entity.PaymentApplication, error) {
	var a entity.PaymentApplication
	if err := rows.Scan(
		&a.ID, &a.PaymentID, &a.InvoiceID, &a.Amount,
		&a.InvoiceLabel, &a.ContractLabel, &a.ClientName,
		&a.Method, &a.Date, &a.Reference, &a.Voided, &a.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan payment application: %w", err)
	}
	return &a, nil
}
