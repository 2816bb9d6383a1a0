package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// Ensure TxRunner implements reconciliation.LedgerTxRunner.
var _ reconciliation.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Pago, aplicaciones y liquidación se confirman juntas o se revierten juntas:
// el libro mayor nunca queda con un pago a medio aplicar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	appRepo repository.PaymentApplicationRepository,
	contractRepo repository.ContractRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	appRepo := NewPaymentApplicationRepository(tx)
	contractRepo := NewContractRepository(tx)

	if err := fn(invoiceRepo, paymentRepo, appRepo, contractRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
