package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// SettlementEvaluator decide y ejecuta la transición cuota → "paid" y su
// efecto colateral sobre el contrato (weeks_paid + 1).
//
// Es la frontera de idempotencia de toda la cascada: puede invocarse cuantas
// veces sea necesario para la misma cuota. El incremento del contrato queda
// condicionado a que MarkPaid reporte una transición real, de modo que dos
// evaluaciones concurrentes nunca incrementan dos veces.
type SettlementEvaluator struct {
	txRunner LedgerTxRunner
}

// NewSettlementEvaluator construye el evaluador.
func NewSettlementEvaluator(txRunner LedgerTxRunner) *SettlementEvaluator {
	return &SettlementEvaluator{txRunner: txRunner}
}

// SettleInTx evalúa una cuota usando repositorios del caller (misma
// transacción). Suma las aplicaciones no anuladas y, si cubren el total y la
// cuota aún no está en "paid", la marca pagada e incrementa el contrato.
//
// Retorna (settled, status): settled es true solo si ESTA evaluación hizo la
// transición; status es el estado final de la cuota.
func (ev *SettlementEvaluator) SettleInTx(
	invoiceRepo repository.InvoiceRepository,
	appRepo repository.PaymentApplicationRepository,
	contractRepo repository.ContractRepository,
	invoiceID string,
	paidAt time.Time,
	method string,
) (bool, string, error) {
	inv, err := invoiceRepo.GetForUpdate(invoiceID)
	if err != nil {
		return false, "", fmt.Errorf("liquidación: leer cuota %s: %w", invoiceID, err)
	}
	if inv == nil {
		return false, "", domain.ErrNotFound
	}

	applied, err := appRepo.SumAppliedByInvoice(invoiceID)
	if err != nil {
		return false, inv.Status, fmt.Errorf("liquidación: sumar aplicaciones de %s: %w", invoiceID, err)
	}
	if applied.LessThan(inv.Amount) {
		// Pago parcial: la cuota conserva su estado (pending/overdue).
		return false, inv.Status, nil
	}

	// MarkPaid es condicional (status <> 'paid'); si la cuota ya estaba
	// pagada retorna false y NO se toca el contrato.
	transitioned, err := invoiceRepo.MarkPaid(invoiceID, paidAt, method)
	if err != nil {
		return false, inv.Status, fmt.Errorf("liquidación: marcar pagada %s: %w", invoiceID, err)
	}
	if !transitioned {
		return false, entity.InvoiceStatusPaid, nil
	}
	if err := contractRepo.IncrementWeeksPaid(inv.ContractID); err != nil {
		return false, inv.Status, fmt.Errorf("liquidación: avanzar contrato %s: %w", inv.ContractID, err)
	}
	return true, entity.InvoiceStatusPaid, nil
}

// Evaluate re-evalúa la liquidación de una cuota en su propia transacción.
// Pensado para re-ejecuciones operativas (p. ej. tras anular una aplicación
// por fuera de este motor): llamarlo dos veces seguidas produce el mismo
// estado y avanza el contrato a lo sumo una vez.
func (ev *SettlementEvaluator) Evaluate(ctx context.Context, invoiceID string) (bool, string, error) {
	var settled bool
	var status string
	err := ev.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		appRepo repository.PaymentApplicationRepository,
		contractRepo repository.ContractRepository,
	) error {
		// Fecha y método de liquidación: los de la última aplicación vigente
		// (el "pago disparador"); si no hay ninguna, la evaluación igual es
		// segura porque la suma será cero.
		paidAt := time.Now()
		method := ""
		apps, err := appRepo.ListByInvoice(invoiceID)
		if err != nil {
			return fmt.Errorf("liquidación: listar aplicaciones de %s: %w", invoiceID, err)
		}
		for _, a := range apps {
			if !a.Voided {
				paidAt = a.Date
				method = a.Method
			}
		}
		settled, status, err = ev.SettleInTx(invoiceRepo, appRepo, contractRepo, invoiceID, paidAt, method)
		return err
	})
	return settled, status, err
}
